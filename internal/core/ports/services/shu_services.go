package services

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// SHUSvcFacade covers the yearly SHU distribution.
type SHUSvcFacade interface {
	// PreviewSHU computes allocations without posting anything.
	PreviewSHU(ctx context.Context, rules domain.SHURules) ([]domain.SHUAllocation, error)
	DistributeSHU(ctx context.Context, rules domain.SHURules, actor domain.Actor) (*domain.SHUOutcome, error)
	GetDistribution(ctx context.Context, year int) (*domain.SHUDistribution, error)
}
