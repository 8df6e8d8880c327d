package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	// UnitOfWork opens transactions for every state-changing operation.
	UnitOfWork UnitOfWork
	// Reader serves non-transactional reads straight from the pool.
	Reader TxRepositories
	// Reporting serves the balance and ledger read path.
	Reporting ReportingRepository
}
