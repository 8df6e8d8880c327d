package repositories

import (
	"context"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// SHURepository persists yearly SHU distributions.
type SHURepository interface {
	// FindDistribution returns the distribution of a year (with allocations) or ErrNotFound.
	FindDistribution(ctx context.Context, year int) (*domain.SHUDistribution, error)

	// MemberContributions returns each member's approved savings balance at 'to'
	// and purchase total over [from, to). Members with neither are omitted.
	MemberContributions(ctx context.Context, from, to time.Time) ([]domain.MemberContribution, error)

	// InsertDistribution stores the header; a second distribution for a year fails with ErrDuplicate.
	InsertDistribution(ctx context.Context, distribution domain.SHUDistribution) error

	InsertAllocations(ctx context.Context, year int, allocations []domain.SHUAllocation) error
}
