package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

type PgxSHURepository struct {
	db DBTX
}

var _ portsrepo.SHURepository = (*PgxSHURepository)(nil)

func (r *PgxSHURepository) FindDistribution(ctx context.Context, year int) (*domain.SHUDistribution, error) {
	var d domain.SHUDistribution
	err := r.db.QueryRow(ctx, `
		SELECT year, total_shu, distributed, journal_id, distributed_at, distributed_by
		FROM shu_distributions
		WHERE year = $1;
	`, year).Scan(&d.Year, &d.TotalSHU, &d.Distributed, &d.JournalID, &d.DistributedAt, &d.DistributedBy)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("SHU distribution %d", year))
	}

	rows, err := r.db.Query(ctx, `
		SELECT member_id, capital_share, business_share, total
		FROM shu_allocations
		WHERE year = $1
		ORDER BY member_id;
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations of %d: %w", year, err)
	}
	d.Allocations, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SHUAllocation, error) {
		var a domain.SHUAllocation
		err := row.Scan(&a.MemberID, &a.CapitalShare, &a.BusinessShare, &a.Total)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan allocations of %d: %w", year, err)
	}
	return &d, nil
}

// MemberContributions nets approved savings up to 'to' and sums member purchases in [from, to).
func (r *PgxSHURepository) MemberContributions(ctx context.Context, from, to time.Time) ([]domain.MemberContribution, error) {
	rows, err := r.db.Query(ctx, `
		WITH saved AS (
			SELECT member_id, SUM(CASE WHEN kind = $3 THEN -amount ELSE amount END) AS savings
			FROM savings
			WHERE status = $4 AND date < $2
			GROUP BY member_id
		), bought AS (
			SELECT member_id, SUM(total_amount) AS purchases
			FROM sales
			WHERE member_id IS NOT NULL AND sale_date >= $1 AND sale_date < $2
			GROUP BY member_id
		)
		SELECT COALESCE(s.member_id, b.member_id) AS member_id,
		       COALESCE(s.savings, 0), COALESCE(b.purchases, 0)
		FROM saved s
		FULL OUTER JOIN bought b ON b.member_id = s.member_id
		WHERE COALESCE(s.savings, 0) > 0 OR COALESCE(b.purchases, 0) > 0
		ORDER BY 1;
	`, from, to, string(domain.SavingWithdrawal), string(domain.SavingApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to query member contributions: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MemberContribution, error) {
		var c domain.MemberContribution
		err := row.Scan(&c.MemberID, &c.Savings, &c.Purchases)
		return c, err
	})
}

func (r *PgxSHURepository) InsertDistribution(ctx context.Context, distribution domain.SHUDistribution) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO shu_distributions (year, total_shu, distributed, journal_id, distributed_at, distributed_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, distribution.Year, distribution.TotalSHU, distribution.Distributed, distribution.JournalID,
		distribution.DistributedAt, distribution.DistributedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: SHU for %d has already been distributed", apperrors.ErrDuplicate, distribution.Year)
		}
		return fmt.Errorf("failed to insert SHU distribution %d: %w", distribution.Year, err)
	}
	return nil
}

func (r *PgxSHURepository) InsertAllocations(ctx context.Context, year int, allocations []domain.SHUAllocation) error {
	rows := make([][]any, len(allocations))
	for i, a := range allocations {
		rows[i] = []any{year, a.MemberID, a.CapitalShare, a.BusinessShare, a.Total}
	}
	query, args, err := multiRowInsert("shu_allocations", []string{"year", "member_id", "capital_share", "business_share", "total"}, rows)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert allocations of %d: %w", year, err)
	}
	return nil
}
