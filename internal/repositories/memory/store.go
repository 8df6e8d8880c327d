// Package memory provides an in-process implementation of the ledger repositories
// for development and tests. A single mutex serialises every unit of work.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
)

type state struct {
	seq int64

	accounts        map[int64]domain.Account
	journals        map[int64]domain.Journal
	closings        map[domain.Period]domain.MonthlyClosing
	loans           map[int64]domain.Loan
	payments        map[int64]domain.LoanPayment
	savings         map[int64]domain.Saving
	products        map[int64]domain.Product
	sales           map[int64]domain.Sale
	receipts        map[int64]domain.GoodsReceipt
	payables        map[int64]domain.Payable
	payablePayments map[int64]domain.PayablePayment
	distributions   map[int]domain.SHUDistribution
}

func newState() *state {
	return &state{
		accounts:        make(map[int64]domain.Account),
		journals:        make(map[int64]domain.Journal),
		closings:        make(map[domain.Period]domain.MonthlyClosing),
		loans:           make(map[int64]domain.Loan),
		payments:        make(map[int64]domain.LoanPayment),
		savings:         make(map[int64]domain.Saving),
		products:        make(map[int64]domain.Product),
		sales:           make(map[int64]domain.Sale),
		receipts:        make(map[int64]domain.GoodsReceipt),
		payables:        make(map[int64]domain.Payable),
		payablePayments: make(map[int64]domain.PayablePayment),
		distributions:   make(map[int]domain.SHUDistribution),
	}
}

// clone copies every table. Stored values are replaced, never mutated in place,
// so a shallow copy of each map is a full snapshot.
func (st *state) clone() *state {
	return &state{
		seq:             st.seq,
		accounts:        maps.Clone(st.accounts),
		journals:        maps.Clone(st.journals),
		closings:        maps.Clone(st.closings),
		loans:           maps.Clone(st.loans),
		payments:        maps.Clone(st.payments),
		savings:         maps.Clone(st.savings),
		products:        maps.Clone(st.products),
		sales:           maps.Clone(st.sales),
		receipts:        maps.Clone(st.receipts),
		payables:        maps.Clone(st.payables),
		payablePayments: maps.Clone(st.payablePayments),
		distributions:   maps.Clone(st.distributions),
	}
}

func (st *state) nextID() int64 {
	st.seq++
	return st.seq
}

// Store is the in-memory ledger database.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

var (
	_ portsrepo.UnitOfWork          = (*Store)(nil)
	_ portsrepo.TxRepositories      = (*view)(nil)
	_ portsrepo.ReportingRepository = (*view)(nil)
)

// WithinTx runs fn against a snapshot of the store and publishes the snapshot only
// when fn returns nil. A panic in fn leaves the store untouched.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &view{store: s, tx: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// Reader returns repositories that read committed state. They must not be used
// from inside WithinTx.
func (s *Store) Reader() portsrepo.TxRepositories {
	return &view{store: s}
}

// Provider bundles the store for the service container.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	v := &view{store: s}
	return portsrepo.RepositoryProvider{UnitOfWork: s, Reader: v, Reporting: v}
}

// view implements every repository interface. Inside a unit of work it works on
// the transaction's snapshot; otherwise it locks the store per call.
type view struct {
	store *Store
	tx    *state
}

func (v *view) begin() (*state, func()) {
	if v.tx != nil {
		return v.tx, func() {}
	}
	v.store.mu.Lock()
	return v.store.state, v.store.mu.Unlock
}

func (v *view) Accounts() portsrepo.AccountRepositoryFacade { return v }
func (v *view) Journals() portsrepo.JournalRepositoryFacade { return v }
func (v *view) Closings() portsrepo.ClosingRepository       { return v }
func (v *view) Loans() portsrepo.LoanRepositoryFacade       { return v }
func (v *view) Savings() portsrepo.SavingRepository         { return v }
func (v *view) Products() portsrepo.ProductRepository       { return v }
func (v *view) Sales() portsrepo.SaleRepository             { return v }
func (v *view) Purchases() portsrepo.PurchaseRepository     { return v }
func (v *view) SHU() portsrepo.SHURepository                { return v }
