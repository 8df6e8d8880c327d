package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

// txRepositories binds every repository to the same DBTX.
type txRepositories struct {
	accounts  *PgxAccountRepository
	journals  *PgxJournalRepository
	closings  *PgxClosingRepository
	loans     *PgxLoanRepository
	savings   *PgxSavingRepository
	products  *PgxProductRepository
	sales     *PgxSaleRepository
	purchases *PgxPurchaseRepository
	shu       *PgxSHURepository
}

func newTxRepositories(db DBTX) *txRepositories {
	return &txRepositories{
		accounts:  &PgxAccountRepository{db: db},
		journals:  &PgxJournalRepository{db: db},
		closings:  &PgxClosingRepository{db: db},
		loans:     &PgxLoanRepository{db: db},
		savings:   &PgxSavingRepository{db: db},
		products:  &PgxProductRepository{db: db},
		sales:     &PgxSaleRepository{db: db},
		purchases: &PgxPurchaseRepository{db: db},
		shu:       &PgxSHURepository{db: db},
	}
}

var _ portsrepo.TxRepositories = (*txRepositories)(nil)

func (r *txRepositories) Accounts() portsrepo.AccountRepositoryFacade { return r.accounts }
func (r *txRepositories) Journals() portsrepo.JournalRepositoryFacade { return r.journals }
func (r *txRepositories) Closings() portsrepo.ClosingRepository       { return r.closings }
func (r *txRepositories) Loans() portsrepo.LoanRepositoryFacade       { return r.loans }
func (r *txRepositories) Savings() portsrepo.SavingRepository         { return r.savings }
func (r *txRepositories) Products() portsrepo.ProductRepository       { return r.products }
func (r *txRepositories) Sales() portsrepo.SaleRepository             { return r.sales }
func (r *txRepositories) Purchases() portsrepo.PurchaseRepository     { return r.purchases }
func (r *txRepositories) SHU() portsrepo.SHURepository                { return r.shu }

// NewRepositoryProvider wires the Postgres repositories for the service container.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork: newUnitOfWork(dbPool),
		Reader:     newTxRepositories(dbPool),
		Reporting:  newReportingRepository(dbPool),
	}
}
