package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// --- chart of accounts ---

func (v *view) FindAccountByID(_ context.Context, accountID int64) (*domain.Account, error) {
	st, done := v.begin()
	defer done()
	a, ok := st.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", accountID, apperrors.ErrNotFound)
	}
	return &a, nil
}

func (v *view) FindAccountsByIDs(_ context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	st, done := v.begin()
	defer done()
	found := make(map[int64]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := st.accounts[id]; ok {
			found[id] = a
		}
	}
	return found, nil
}

func (v *view) FindAccountsByNames(_ context.Context, names []string) (map[string]domain.Account, error) {
	st, done := v.begin()
	defer done()
	found := make(map[string]domain.Account, len(names))
	for _, a := range st.accounts {
		if slices.Contains(names, a.Name) {
			found[a.Name] = a
		}
	}
	return found, nil
}

func (v *view) ListAccounts(_ context.Context) ([]domain.Account, error) {
	st, done := v.begin()
	defer done()
	accounts := make([]domain.Account, 0, len(st.accounts))
	for _, a := range st.accounts {
		accounts = append(accounts, a)
	}
	slices.SortFunc(accounts, func(a, b domain.Account) int { return cmp.Compare(a.AccountNumber, b.AccountNumber) })
	return accounts, nil
}

// --- journals ---

func (v *view) FindJournalByID(_ context.Context, journalID int64) (*domain.Journal, error) {
	st, done := v.begin()
	defer done()
	j, ok := st.journals[journalID]
	if !ok {
		return nil, fmt.Errorf("journal %d: %w", journalID, apperrors.ErrNotFound)
	}
	j.Lines = slices.Clone(j.Lines)
	return &j, nil
}

func (v *view) ListJournals(_ context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		cursor = &c
	}

	st, done := v.begin()
	defer done()
	journals := make([]domain.Journal, 0, len(st.journals))
	for _, j := range st.journals {
		if cursor != nil && !cursor.Before(j.EntryDate, j.JournalID) {
			continue
		}
		j.Lines = nil
		journals = append(journals, j)
	}
	slices.SortFunc(journals, func(a, b domain.Journal) int {
		if c := b.EntryDate.Compare(a.EntryDate); c != 0 {
			return c
		}
		return cmp.Compare(b.JournalID, a.JournalID)
	})

	if len(journals) <= limit {
		return journals, nil, nil
	}
	journals = journals[:limit]
	last := journals[limit-1]
	token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, JournalID: last.JournalID})
	return journals, &token, nil
}

func (v *view) CountReferencesWithPrefix(_ context.Context, prefix string) (int, error) {
	st, done := v.begin()
	defer done()
	n := 0
	for _, j := range st.journals {
		if strings.HasPrefix(j.ReferenceNumber, prefix) {
			n++
		}
	}
	return n, nil
}

func (v *view) SumMovements(_ context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountMovement, error) {
	st, done := v.begin()
	defer done()
	byAccount := make(map[int64]*domain.AccountMovement)
	for _, j := range st.journals {
		if j.EntryDate.Before(from) || !j.EntryDate.Before(to) {
			continue
		}
		for _, l := range j.Lines {
			a := st.accounts[l.AccountID]
			if !a.IsLeaf() || !slices.Contains(types, a.AccountType) {
				continue
			}
			m, ok := byAccount[a.AccountID]
			if !ok {
				m = &domain.AccountMovement{AccountID: a.AccountID, AccountName: a.Name, AccountType: a.AccountType, Debit: decimal.Zero, Credit: decimal.Zero}
				byAccount[a.AccountID] = m
			}
			m.Debit = m.Debit.Add(l.Debit)
			m.Credit = m.Credit.Add(l.Credit)
		}
	}

	movements := make([]domain.AccountMovement, 0, len(byAccount))
	for _, m := range byAccount {
		movements = append(movements, *m)
	}
	slices.SortFunc(movements, func(a, b domain.AccountMovement) int {
		return cmp.Compare(st.accounts[a.AccountID].AccountNumber, st.accounts[b.AccountID].AccountNumber)
	})
	return movements, nil
}

func (v *view) InsertJournal(_ context.Context, journal domain.Journal) (int64, error) {
	st, done := v.begin()
	defer done()
	journal.JournalID = st.nextID()
	journal.Lines = nil
	st.journals[journal.JournalID] = journal
	return journal.JournalID, nil
}

func (v *view) InsertJournalLines(_ context.Context, journalID int64, lines []domain.JournalLine) error {
	st, done := v.begin()
	defer done()
	j, ok := st.journals[journalID]
	if !ok {
		return fmt.Errorf("journal %d: %w", journalID, apperrors.ErrNotFound)
	}
	stored := make([]domain.JournalLine, 0, len(j.Lines)+len(lines))
	stored = append(stored, j.Lines...)
	for _, l := range lines {
		if _, ok := st.accounts[l.AccountID]; !ok {
			return fmt.Errorf("account %d: %w", l.AccountID, apperrors.ErrNotFound)
		}
		l.LineID = st.nextID()
		l.JournalID = journalID
		stored = append(stored, l)
	}
	j.Lines = stored
	st.journals[journalID] = j
	return nil
}

func (v *view) DeleteJournal(_ context.Context, journalID int64) error {
	st, done := v.begin()
	defer done()
	if _, ok := st.journals[journalID]; !ok {
		return fmt.Errorf("journal %d: %w", journalID, apperrors.ErrNotFound)
	}
	delete(st.journals, journalID)
	return nil
}

// --- monthly closings ---

func (v *view) FindClosing(_ context.Context, period domain.Period) (*domain.MonthlyClosing, error) {
	st, done := v.begin()
	defer done()
	c, ok := st.closings[period]
	if !ok {
		return nil, fmt.Errorf("closing %s: %w", period, apperrors.ErrNotFound)
	}
	return &c, nil
}

func (v *view) FindClosingForUpdate(ctx context.Context, period domain.Period) (*domain.MonthlyClosing, error) {
	return v.FindClosing(ctx, period)
}

// LockPeriod and LockPeriodShared are no-ops: units of work on the store
// already run one at a time.
func (v *view) LockPeriod(context.Context, domain.Period) error { return nil }

func (v *view) LockPeriodShared(context.Context, domain.Period) error { return nil }

func (v *view) IsClosed(_ context.Context, period domain.Period) (bool, error) {
	st, done := v.begin()
	defer done()
	_, ok := st.closings[period]
	return ok, nil
}

func (v *view) HasClosingAfter(_ context.Context, period domain.Period) (bool, error) {
	st, done := v.begin()
	defer done()
	for p := range st.closings {
		if p.After(period) {
			return true, nil
		}
	}
	return false, nil
}

func (v *view) InsertClosing(_ context.Context, closing domain.MonthlyClosing) error {
	st, done := v.begin()
	defer done()
	period := domain.Period{Year: closing.Year, Month: closing.Month}
	if _, ok := st.closings[period]; ok {
		return fmt.Errorf("closing %s: %w", period, apperrors.ErrAlreadyClosed)
	}
	st.closings[period] = closing
	return nil
}

func (v *view) DeleteClosing(_ context.Context, period domain.Period) error {
	st, done := v.begin()
	defer done()
	if _, ok := st.closings[period]; !ok {
		return fmt.Errorf("closing %s: %w", period, apperrors.ErrNotFound)
	}
	delete(st.closings, period)
	return nil
}

func (v *view) ListClosings(_ context.Context) ([]domain.MonthlyClosing, error) {
	st, done := v.begin()
	defer done()
	closings := make([]domain.MonthlyClosing, 0, len(st.closings))
	for _, c := range st.closings {
		closings = append(closings, c)
	}
	slices.SortFunc(closings, func(a, b domain.MonthlyClosing) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return closings, nil
}
