package repositories

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SavingRepository persists member savings transactions.
type SavingRepository interface {
	FindSavingByID(ctx context.Context, savingID int64) (*domain.Saving, error)
	FindSavingForUpdate(ctx context.Context, savingID int64) (*domain.Saving, error)
	ListSavingsByMember(ctx context.Context, memberID int64) ([]domain.Saving, error)
	InsertSaving(ctx context.Context, saving domain.Saving) (int64, error)
	UpdateSaving(ctx context.Context, saving domain.Saving) error

	// LockMemberSavings serializes withdrawal approvals of one member and saving
	// type until the transaction ends.
	LockMemberSavings(ctx context.Context, memberID int64, savingType string) error

	// ApprovedBalance is approved deposits minus approved withdrawals of one saving type.
	ApprovedBalance(ctx context.Context, memberID int64, savingType string) (decimal.Decimal, error)
}
