package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils/pagination"
)

type PgxJournalRepository struct {
	db DBTX
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// InsertJournal stores a journal header and returns its ID.
func (r *PgxJournalRepository) InsertJournal(ctx context.Context, journal domain.Journal) (int64, error) {
	query := `
		INSERT INTO general_journal (entry_date, description, reference_number, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		journal.EntryDate,
		journal.Description,
		journal.ReferenceNumber,
		journal.CreatedAt,
		journal.CreatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert journal %s: %w", journal.ReferenceNumber, err)
	}
	return id, nil
}

// InsertJournalLines stores every line of a journal in a single statement.
func (r *PgxJournalRepository) InsertJournalLines(ctx context.Context, journalID int64, lines []domain.JournalLine) error {
	rows := make([][]any, len(lines))
	for i, l := range lines {
		rows[i] = []any{journalID, l.AccountID, l.Debit, l.Credit}
	}
	query, args, err := multiRowInsert("journal_entries", []string{"journal_id", "account_id", "debit", "credit"}, rows)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert lines of journal %d: %w", journalID, err)
	}
	return nil
}

// DeleteJournal removes a journal; journal_entries cascade.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM general_journal WHERE id = $1`, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal %d: %w", journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("journal %d not found for delete", journalID))
	}
	return nil
}

// FindJournalByID retrieves a journal header with its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	query := `
		SELECT id, entry_date, description, reference_number, created_at, created_by
		FROM general_journal
		WHERE id = $1;
	`
	var j domain.Journal
	err := r.db.QueryRow(ctx, query, journalID).Scan(
		&j.JournalID, &j.EntryDate, &j.Description, &j.ReferenceNumber, &j.CreatedAt, &j.CreatedBy,
	)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("journal %d", journalID))
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, journal_id, account_id, debit, credit
		FROM journal_entries
		WHERE journal_id = $1
		ORDER BY id;
	`, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of journal %d: %w", journalID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(&l.LineID, &l.JournalID, &l.AccountID, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan line of journal %d: %w", journalID, err)
		}
		j.Lines = append(j.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lines of journal %d: %w", journalID, err)
	}
	return &j, nil
}

// ListJournals retrieves journal headers newest first using token-based pagination.
// The token points to the last journal included in the page; the next query
// starts after it.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT id, entry_date, description, reference_number, created_at, created_by
		FROM general_journal
	`
	orderByClause := `ORDER BY entry_date DESC, id DESC`
	args := []any{}
	filterClause := ""
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken: " + err.Error())
		}
		filterClause = `WHERE (entry_date, id) < ($1, $2)`
		args = append(args, cursor.EntryDate, cursor.JournalID)
	}
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals := make([]domain.Journal, 0, fetchLimit)
	for rows.Next() {
		var j domain.Journal
		if err := rows.Scan(&j.JournalID, &j.EntryDate, &j.Description, &j.ReferenceNumber, &j.CreatedAt, &j.CreatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	if len(journals) <= limit {
		return journals, nil, nil
	}
	journals = journals[:limit]
	last := journals[limit-1]
	token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, JournalID: last.JournalID})
	return journals, &token, nil
}

// CountReferencesWithPrefix counts journals whose reference number starts with prefix.
func (r *PgxJournalRepository) CountReferencesWithPrefix(ctx context.Context, prefix string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM general_journal WHERE reference_number LIKE $1 || '%'`, prefix).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count references with prefix %s: %w", prefix, err)
	}
	return n, nil
}

// SumMovements aggregates debit and credit per leaf account of the given types in [from, to).
func (r *PgxJournalRepository) SumMovements(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountMovement, error) {
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}
	query := `
		SELECT a.id, a.account_name, a.account_type,
		       COALESCE(SUM(je.debit), 0) AS total_debit,
		       COALESCE(SUM(je.credit), 0) AS total_credit
		FROM journal_entries je
		JOIN general_journal gj ON gj.id = je.journal_id
		JOIN chart_of_accounts a ON a.id = je.account_id
		WHERE gj.entry_date >= $1 AND gj.entry_date < $2
		  AND a.account_type = ANY($3)
		  AND NOT EXISTS (SELECT 1 FROM chart_of_accounts c WHERE c.parent_id = a.id)
		GROUP BY a.id, a.account_name, a.account_type, a.account_number
		ORDER BY a.account_number;
	`
	rows, err := r.db.Query(ctx, query, from, to, typeNames)
	if err != nil {
		return nil, fmt.Errorf("failed to sum account movements: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AccountMovement, error) {
		var m domain.AccountMovement
		err := row.Scan(&m.AccountID, &m.AccountName, &m.AccountType, &m.Debit, &m.Credit)
		return m, err
	})
}
