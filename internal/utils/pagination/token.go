package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor is the position of the last journal of a page. Journals are listed by
// entry date then ID, both descending, so the pair identifies a row uniquely.
type Cursor struct {
	EntryDate time.Time
	JournalID int64
}

// Before reports whether a journal at (date, id) sorts after the cursor in a
// newest-first listing, i.e. belongs on a later page.
func (c Cursor) Before(date time.Time, id int64) bool {
	if date.Equal(c.EntryDate) {
		return id < c.JournalID
	}
	return date.Before(c.EntryDate)
}

// EncodeToken creates a base64 encoded token from a journal date and ID.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%s|%d", c.EntryDate.Format(timeFormat), c.JournalID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	journalID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (journal id parse): %w", err)
	}

	return Cursor{EntryDate: entryDate, JournalID: journalID}, nil
}
