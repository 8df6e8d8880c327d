package repositories

import (
	"context"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines read-only queries over the journal-entry stream.
type ReportingRepository interface {
	// AccountBalances returns debit/credit totals of every account for journals dated before 'before'.
	AccountBalances(ctx context.Context, before time.Time) ([]domain.AccountBalance, error)

	// AccountTotals sums an account's lines for journals dated before 'before'.
	AccountTotals(ctx context.Context, accountID int64, before time.Time) (debit, credit decimal.Decimal, err error)

	// LedgerLines returns an account's lines in [from, to) in posting order; RunningBalance is left zero.
	LedgerLines(ctx context.Context, accountID int64, from, to time.Time) ([]domain.LedgerEntry, error)

	// FindImbalancedJournals returns journals whose stored lines break the balance invariant.
	FindImbalancedJournals(ctx context.Context, tolerance decimal.Decimal) ([]domain.JournalImbalance, error)
}
