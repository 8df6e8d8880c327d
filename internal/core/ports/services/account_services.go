package services

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

// AccountDirectory resolves chart-of-accounts names to IDs. It is the only place
// the ledger maps human-readable account names, and a missing name always fails
// with *apperrors.ConfigurationError.
type AccountDirectory interface {
	// ResolveAccountIDs resolves names through the given reader, so orchestrators
	// can resolve inside their own unit of work.
	ResolveAccountIDs(ctx context.Context, accounts repositories.AccountReader, names ...string) (map[string]int64, error)

	// Names returns the configured well-known account names.
	Names() domain.AccountNames
}

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ResolveAccounts resolves names outside of any transaction.
	ResolveAccounts(ctx context.Context, names ...string) (map[string]int64, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
}
