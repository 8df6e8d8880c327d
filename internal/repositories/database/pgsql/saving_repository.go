package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type PgxSavingRepository struct {
	db DBTX
}

var _ portsrepo.SavingRepository = (*PgxSavingRepository)(nil)

const savingColumns = `id, member_id, saving_type, kind, amount, date, status, journal_id`

func scanSaving(row pgx.Row) (domain.Saving, error) {
	var s domain.Saving
	err := row.Scan(&s.SavingID, &s.MemberID, &s.SavingType, &s.Kind, &s.Amount, &s.Date, &s.Status, &s.JournalID)
	return s, err
}

func (r *PgxSavingRepository) FindSavingByID(ctx context.Context, savingID int64) (*domain.Saving, error) {
	s, err := scanSaving(r.db.QueryRow(ctx, `SELECT `+savingColumns+` FROM savings WHERE id = $1`, savingID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("saving %d", savingID))
	}
	return &s, nil
}

func (r *PgxSavingRepository) FindSavingForUpdate(ctx context.Context, savingID int64) (*domain.Saving, error) {
	s, err := scanSaving(r.db.QueryRow(ctx, `SELECT `+savingColumns+` FROM savings WHERE id = $1 FOR UPDATE`, savingID))
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("saving %d", savingID))
	}
	return &s, nil
}

func (r *PgxSavingRepository) ListSavingsByMember(ctx context.Context, memberID int64) ([]domain.Saving, error) {
	rows, err := r.db.Query(ctx, `SELECT `+savingColumns+` FROM savings WHERE member_id = $1 ORDER BY date, id`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings of member %d: %w", memberID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Saving, error) {
		return scanSaving(row)
	})
}

func (r *PgxSavingRepository) InsertSaving(ctx context.Context, saving domain.Saving) (int64, error) {
	query := `
		INSERT INTO savings (member_id, saving_type, kind, amount, date, status, journal_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	var id int64
	err := r.db.QueryRow(ctx, query, saving.MemberID, saving.SavingType, saving.Kind, saving.Amount,
		saving.Date, saving.Status, saving.JournalID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert saving for member %d: %w", saving.MemberID, err)
	}
	return id, nil
}

func (r *PgxSavingRepository) UpdateSaving(ctx context.Context, saving domain.Saving) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE savings SET status = $2, journal_id = $3 WHERE id = $1`,
		saving.SavingID, saving.Status, saving.JournalID)
	if err != nil {
		return fmt.Errorf("failed to update saving %d: %w", saving.SavingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("saving %d not found for update", saving.SavingID))
	}
	return nil
}

func (r *PgxSavingRepository) LockMemberSavings(ctx context.Context, memberID int64, savingType string) error {
	return advisoryXactLock(ctx, r.db, memberSavingsLockKey(memberID, savingType), false)
}

func (r *PgxSavingRepository) ApprovedBalance(ctx context.Context, memberID int64, savingType string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN kind = $3 THEN -amount ELSE amount END), 0)
		FROM savings
		WHERE member_id = $1 AND saving_type = $2 AND status = $4;
	`, memberID, savingType, string(domain.SavingWithdrawal), string(domain.SavingApproved)).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute %s balance of member %d: %w", savingType, memberID, err)
	}
	return balance, nil
}
