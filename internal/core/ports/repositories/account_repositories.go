package repositories

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts.
// The chart is reference data; the ledger never writes it.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Unknown IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)

	// FindAccountsByNames retrieves accounts keyed by their exact name. Unknown names are absent from the map.
	FindAccountsByNames(ctx context.Context, names []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the whole chart ordered by account number.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
}
