package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// TxRepositories exposes every repository bound to one unit of work.
// Repositories obtained from it must not be used after the unit of work returns.
type TxRepositories interface {
	Accounts() AccountRepositoryFacade
	Journals() JournalRepositoryFacade
	Closings() ClosingRepository
	Loans() LoanRepositoryFacade
	Savings() SavingRepository
	Products() ProductRepository
	Sales() SaleRepository
	Purchases() PurchaseRepository
	SHU() SHURepository
}

// UnitOfWork runs fn inside a single atomic transaction. Any error returned by fn
// (or a panic) rolls the whole transaction back; a nil error commits it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
