package services

import (
	"context"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance as of the end of a date.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// AccountLedger returns an account's entries over [from, to] with running balances.
	AccountLedger(ctx context.Context, accountID int64, from, to time.Time) (*domain.AccountLedger, error)

	// ProfitAndLoss summarises nominal accounts over [from, to].
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error)

	// VerifyJournals lists stored journals that break the balance invariant.
	VerifyJournals(ctx context.Context) ([]domain.JournalImbalance, error)
}
