package services

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// ClosingSvcFacade drives the monthly close state machine.
type ClosingSvcFacade interface {
	// CloseMonth zeroes the month's Revenue, COGS and Expense accounts into the income summary.
	CloseMonth(ctx context.Context, year, month int, actor domain.Actor) (*domain.ClosingOutcome, error)

	// ReopenMonth undoes the close of the latest closed month.
	ReopenMonth(ctx context.Context, year, month int, actor domain.Actor) ([]domain.Effect, error)

	GetClosing(ctx context.Context, year, month int) (*domain.MonthlyClosing, error)
	ListClosings(ctx context.Context) ([]domain.MonthlyClosing, error)
}
