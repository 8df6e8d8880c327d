package services

import (
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, effects portssvc.EffectDispatcher, options ...ServiceOption) *portssvc.ServiceContainer {
	directory := NewAccountDirectory(cfg.Accounts)
	reader := repos.Reader

	// The journal service doubles as the posting engine every orchestrator shares.
	journal := NewJournalService(repos.UnitOfWork, reader.Journals(), options...)
	var engine portssvc.JournalEngine = journal

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(reader.Accounts(), directory, options...),
		Journal:   journal,
		Closing:   NewClosingService(repos.UnitOfWork, reader.Closings(), engine, directory, options...),
		Loan:      NewLoanService(repos.UnitOfWork, reader.Loans(), engine, directory, options...),
		Saving:    NewSavingService(repos.UnitOfWork, reader.Savings(), engine, directory, options...),
		Sale:      NewSaleService(repos.UnitOfWork, reader, engine, directory, options...),
		Purchase:  NewPurchaseService(repos.UnitOfWork, reader.Purchases(), engine, directory, options...),
		SHU:       NewSHUService(repos.UnitOfWork, reader.SHU(), engine, directory, options...),
		Reporting: NewReportingService(repos.Reporting, reader.Accounts(), reader.Journals(), options...),
		Effects:   effects,
	}
}
