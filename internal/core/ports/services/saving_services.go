package services

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SavingSvcFacade covers member savings transactions.
type SavingSvcFacade interface {
	SubmitSaving(ctx context.Context, saving domain.Saving, actor domain.Actor) (*domain.SavingOutcome, error)
	ApproveSaving(ctx context.Context, savingID int64, actor domain.Actor) (*domain.SavingOutcome, error)
	RejectSaving(ctx context.Context, savingID int64, actor domain.Actor) (*domain.SavingOutcome, error)
	GetSaving(ctx context.Context, savingID int64) (*domain.Saving, error)
	ListMemberSavings(ctx context.Context, memberID int64) ([]domain.Saving, error)
	Balance(ctx context.Context, memberID int64, savingType string) (decimal.Decimal, error)
}
