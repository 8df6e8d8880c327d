package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

type PgxClosingRepository struct {
	db DBTX
}

var _ portsrepo.ClosingRepository = (*PgxClosingRepository)(nil)

const closingColumns = `year, month, closed_at, closed_by, net_income, journal_id`

func scanClosing(row pgx.Row) (domain.MonthlyClosing, error) {
	var c domain.MonthlyClosing
	err := row.Scan(&c.Year, &c.Month, &c.ClosedAt, &c.ClosedBy, &c.NetIncome, &c.JournalID)
	return c, err
}

func (r *PgxClosingRepository) findClosing(ctx context.Context, period domain.Period, suffix string) (*domain.MonthlyClosing, error) {
	query := `SELECT ` + closingColumns + ` FROM monthly_closings WHERE year = $1 AND month = $2` + suffix
	c, err := scanClosing(r.db.QueryRow(ctx, query, period.Year, period.Month))
	if err != nil {
		return nil, notFound(err, "closing of "+period.String())
	}
	return &c, nil
}

func (r *PgxClosingRepository) FindClosing(ctx context.Context, period domain.Period) (*domain.MonthlyClosing, error) {
	return r.findClosing(ctx, period, "")
}

func (r *PgxClosingRepository) FindClosingForUpdate(ctx context.Context, period domain.Period) (*domain.MonthlyClosing, error) {
	return r.findClosing(ctx, period, " FOR UPDATE")
}

func (r *PgxClosingRepository) LockPeriod(ctx context.Context, period domain.Period) error {
	return advisoryXactLock(ctx, r.db, periodLockKey(period), false)
}

func (r *PgxClosingRepository) LockPeriodShared(ctx context.Context, period domain.Period) error {
	return advisoryXactLock(ctx, r.db, periodLockKey(period), true)
}

func (r *PgxClosingRepository) IsClosed(ctx context.Context, period domain.Period) (bool, error) {
	var closed bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM monthly_closings WHERE year = $1 AND month = $2)`,
		period.Year, period.Month).Scan(&closed)
	if err != nil {
		return false, fmt.Errorf("failed to check closing of %s: %w", period, err)
	}
	return closed, nil
}

// HasClosingAfter compares (year, month) as a row value.
func (r *PgxClosingRepository) HasClosingAfter(ctx context.Context, period domain.Period) (bool, error) {
	var later bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM monthly_closings WHERE (year, month) > ($1, $2))`,
		period.Year, period.Month).Scan(&later)
	if err != nil {
		return false, fmt.Errorf("failed to check closings after %s: %w", period, err)
	}
	return later, nil
}

func (r *PgxClosingRepository) InsertClosing(ctx context.Context, closing domain.MonthlyClosing) error {
	query := `INSERT INTO monthly_closings (` + closingColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, closing.Year, closing.Month, closing.ClosedAt, closing.ClosedBy, closing.NetIncome, closing.JournalID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %04d-%02d", apperrors.ErrAlreadyClosed, closing.Year, closing.Month)
		}
		return fmt.Errorf("failed to insert closing %04d-%02d: %w", closing.Year, closing.Month, err)
	}
	return nil
}

func (r *PgxClosingRepository) DeleteClosing(ctx context.Context, period domain.Period) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM monthly_closings WHERE year = $1 AND month = $2`, period.Year, period.Month)
	if err != nil {
		return fmt.Errorf("failed to delete closing of %s: %w", period, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("closing of " + period.String() + " not found for delete")
	}
	return nil
}

func (r *PgxClosingRepository) ListClosings(ctx context.Context) ([]domain.MonthlyClosing, error) {
	rows, err := r.db.Query(ctx, `SELECT `+closingColumns+` FROM monthly_closings ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MonthlyClosing, error) {
		return scanClosing(row)
	})
}
