package services

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Closing   ClosingSvcFacade
	Loan      LoanSvcFacade
	Saving    SavingSvcFacade
	Sale      SaleSvcFacade
	Purchase  PurchaseSvcFacade
	SHU       SHUSvcFacade
	Reporting ReportingService
	Effects   EffectDispatcher
}

// EffectDispatcher runs post-commit side effects. Failures are logged, never returned,
// because the ledger change they follow is already committed.
type EffectDispatcher interface {
	Dispatch(ctx context.Context, effects []domain.Effect)
}
