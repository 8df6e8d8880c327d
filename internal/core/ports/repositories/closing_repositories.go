package repositories

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// ClosingRepository persists monthly closing records.
type ClosingRepository interface {
	// LockPeriod takes the exclusive month lock held by a closing or reopening
	// until the transaction ends.
	LockPeriod(ctx context.Context, period domain.Period) error

	// LockPeriodShared takes the month lock in shared mode. Postings hold it so
	// a concurrent close waits for them and they wait for the close.
	LockPeriodShared(ctx context.Context, period domain.Period) error

	// FindClosing returns the closing of a month or ErrNotFound.
	FindClosing(ctx context.Context, period domain.Period) (*domain.MonthlyClosing, error)

	// FindClosingForUpdate is FindClosing with a row lock.
	FindClosingForUpdate(ctx context.Context, period domain.Period) (*domain.MonthlyClosing, error)

	// IsClosed reports whether a closing row exists for the month.
	IsClosed(ctx context.Context, period domain.Period) (bool, error)

	// HasClosingAfter reports whether any month strictly after period is closed.
	HasClosingAfter(ctx context.Context, period domain.Period) (bool, error)

	// InsertClosing stores a closing; a duplicate month fails with ErrAlreadyClosed.
	InsertClosing(ctx context.Context, closing domain.MonthlyClosing) error

	// DeleteClosing removes the closing row of a month.
	DeleteClosing(ctx context.Context, period domain.Period) error

	// ListClosings returns all closings, oldest first.
	ListClosings(ctx context.Context) ([]domain.MonthlyClosing, error)
}
