package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// AccountBalances returns debit and credit totals per account for journals dated before 'before'.
func (r *reportingRepository) AccountBalances(ctx context.Context, before time.Time) ([]domain.AccountBalance, error) {
	query := `
		SELECT
			a.id,
			a.account_number,
			a.account_name,
			a.account_type,
			SUM(je.debit) AS total_debit,
			SUM(je.credit) AS total_credit
		FROM journal_entries je
		JOIN chart_of_accounts a ON je.account_id = a.id
		JOIN general_journal gj ON je.journal_id = gj.id
		WHERE gj.entry_date < $1
		GROUP BY a.id, a.account_number, a.account_name, a.account_type
		ORDER BY a.account_number
	`

	rows, err := r.Pool.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountBalance{}
	for rows.Next() {
		var row domain.AccountBalance
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountNumber,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// AccountTotals sums one account's lines for journals dated before 'before'.
func (r *reportingRepository) AccountTotals(ctx context.Context, accountID int64, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(je.debit), 0), COALESCE(SUM(je.credit), 0)
		FROM journal_entries je
		JOIN general_journal gj ON je.journal_id = gj.id
		WHERE je.account_id = $1 AND gj.entry_date < $2
	`, accountID, before).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error querying totals of account %d: %w", accountID, err)
	}
	return debit, credit, nil
}

// LedgerLines returns one account's lines in [from, to) in posting order.
func (r *reportingRepository) LedgerLines(ctx context.Context, accountID int64, from, to time.Time) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT gj.id, gj.entry_date, gj.reference_number, gj.description, je.debit, je.credit
		FROM journal_entries je
		JOIN general_journal gj ON je.journal_id = gj.id
		WHERE je.account_id = $1 AND gj.entry_date >= $2 AND gj.entry_date < $3
		ORDER BY gj.entry_date, gj.id, je.id
	`, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger of account %d: %w", accountID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerEntry, error) {
		var e domain.LedgerEntry
		err := row.Scan(&e.JournalID, &e.EntryDate, &e.ReferenceNumber, &e.Description, &e.Debit, &e.Credit)
		return e, err
	})
}

// FindImbalancedJournals flags journals with fewer than two lines, no debit, or
// a debit/credit difference above tolerance.
func (r *reportingRepository) FindImbalancedJournals(ctx context.Context, tolerance decimal.Decimal) ([]domain.JournalImbalance, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT gj.id,
		       COALESCE(SUM(je.debit), 0) AS total_debit,
		       COALESCE(SUM(je.credit), 0) AS total_credit,
		       COUNT(je.id) AS line_count
		FROM general_journal gj
		LEFT JOIN journal_entries je ON je.journal_id = gj.id
		GROUP BY gj.id
		HAVING COUNT(je.id) < 2
		    OR COALESCE(SUM(je.debit), 0) = 0
		    OR ABS(COALESCE(SUM(je.debit), 0) - COALESCE(SUM(je.credit), 0)) > $1
		ORDER BY gj.id
	`, tolerance)
	if err != nil {
		return nil, fmt.Errorf("error querying imbalanced journals: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalImbalance, error) {
		var j domain.JournalImbalance
		err := row.Scan(&j.JournalID, &j.TotalDebit, &j.TotalCredit, &j.LineCount)
		return j, err
	})
}
