package services_test

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/platform/config"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	admin      = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	accountant = domain.Actor{UserID: "akunting-1", Role: domain.RoleAccounting}
	manager    = domain.Actor{UserID: "manager-1", Role: domain.RoleManager}
	member     = domain.Actor{UserID: "anggota-7", Role: domain.RoleMember}
)

// ledgerFixture wires the real services to an in-memory store with a controllable clock.
type ledgerFixture struct {
	store    *memory.Store
	accounts map[string]int64
	names    domain.AccountNames
	svc      *portssvc.ServiceContainer
	now      time.Time
}

func newLedgerFixture(t *testing.T, now time.Time) *ledgerFixture {
	t.Helper()
	return newLedgerFixtureWithNames(t, now, domain.DefaultAccountNames())
}

// newLedgerFixtureWithNames seeds the default chart but configures the services with names,
// so a mismatch between the two reproduces a misconfigured deployment.
func newLedgerFixtureWithNames(t *testing.T, now time.Time, names domain.AccountNames) *ledgerFixture {
	t.Helper()
	return buildLedgerFixture(t, now, names, nil)
}

// newRecordingFixture is newLedgerFixture with every unit of work logging its
// lock, check and insert calls in order.
func newRecordingFixture(t *testing.T, now time.Time) (*ledgerFixture, *callLog) {
	t.Helper()
	log := &callLog{}
	f := buildLedgerFixture(t, now, domain.DefaultAccountNames(), func(uow portsrepo.UnitOfWork) portsrepo.UnitOfWork {
		return recordingUoW{inner: uow, log: log}
	})
	return f, log
}

func buildLedgerFixture(t *testing.T, now time.Time, names domain.AccountNames, wrap func(portsrepo.UnitOfWork) portsrepo.UnitOfWork) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{store: memory.NewStore(), names: names, now: now}
	f.accounts = f.store.SeedChart(domain.DefaultAccountNames())
	provider := f.store.Provider()
	if wrap != nil {
		provider.UnitOfWork = wrap(provider.UnitOfWork)
	}
	cfg := &config.Config{Accounts: names}
	f.svc = services.NewServiceContainer(cfg, provider, nil, services.WithClock(func() time.Time { return f.now }))
	return f
}

func (f *ledgerFixture) id(t *testing.T, name string) int64 {
	t.Helper()
	id, ok := f.accounts[name]
	require.True(t, ok, "account %q not seeded", name)
	return id
}

// post creates a two-line manual journal.
func (f *ledgerFixture) post(t *testing.T, date time.Time, debit, credit string, amount int64) *domain.Journal {
	t.Helper()
	j, err := f.svc.Journal.CreateJournal(context.Background(), dto.CreateJournalRequest{
		Date:        date,
		Description: "test posting",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: f.id(t, debit), Debit: decimal.NewFromInt(amount), Credit: decimal.Zero},
			{AccountID: f.id(t, credit), Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)},
		},
	}, admin)
	require.NoError(t, err)
	return j
}

// balanceOf returns an account's trial-balance balance as of the fixture clock.
func (f *ledgerFixture) balanceOf(t *testing.T, name string) decimal.Decimal {
	t.Helper()
	tb, err := f.svc.Reporting.TrialBalance(context.Background(), f.now)
	require.NoError(t, err)
	for _, row := range tb.Rows {
		if row.AccountName == name {
			return row.Balance
		}
	}
	return decimal.Zero
}

// requireBalancedLedger asserts the global double-entry invariants.
func (f *ledgerFixture) requireBalancedLedger(t *testing.T) {
	t.Helper()
	tb, err := f.svc.Reporting.TrialBalance(context.Background(), f.now.AddDate(10, 0, 0))
	require.NoError(t, err)
	require.True(t, tb.Balanced, "trial balance debit %s credit %s", tb.TotalDebit, tb.TotalCredit)

	imbalanced, err := f.svc.Reporting.VerifyJournals(context.Background())
	require.NoError(t, err)
	require.Empty(t, imbalanced)
}

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = nil
}

// indexOf returns the position of the first occurrence of call, or -1.
func (l *callLog) indexOf(call string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Index(l.calls, call)
}

type recordingUoW struct {
	inner portsrepo.UnitOfWork
	log   *callLog
}

func (u recordingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	return u.inner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		return fn(ctx, recordingRepos{TxRepositories: repos, log: u.log})
	})
}

type recordingRepos struct {
	portsrepo.TxRepositories
	log *callLog
}

func (r recordingRepos) Closings() portsrepo.ClosingRepository {
	return recordingClosings{ClosingRepository: r.TxRepositories.Closings(), log: r.log}
}

func (r recordingRepos) Journals() portsrepo.JournalRepositoryFacade {
	return recordingJournals{JournalRepositoryFacade: r.TxRepositories.Journals(), log: r.log}
}

func (r recordingRepos) Savings() portsrepo.SavingRepository {
	return recordingSavings{SavingRepository: r.TxRepositories.Savings(), log: r.log}
}

type recordingClosings struct {
	portsrepo.ClosingRepository
	log *callLog
}

func (c recordingClosings) LockPeriod(ctx context.Context, period domain.Period) error {
	c.log.add("LockPeriod " + period.String())
	return c.ClosingRepository.LockPeriod(ctx, period)
}

func (c recordingClosings) LockPeriodShared(ctx context.Context, period domain.Period) error {
	c.log.add("LockPeriodShared " + period.String())
	return c.ClosingRepository.LockPeriodShared(ctx, period)
}

func (c recordingClosings) IsClosed(ctx context.Context, period domain.Period) (bool, error) {
	c.log.add("IsClosed " + period.String())
	return c.ClosingRepository.IsClosed(ctx, period)
}

func (c recordingClosings) InsertClosing(ctx context.Context, closing domain.MonthlyClosing) error {
	c.log.add("InsertClosing")
	return c.ClosingRepository.InsertClosing(ctx, closing)
}

type recordingJournals struct {
	portsrepo.JournalRepositoryFacade
	log *callLog
}

func (j recordingJournals) InsertJournal(ctx context.Context, journal domain.Journal) (int64, error) {
	j.log.add("InsertJournal")
	return j.JournalRepositoryFacade.InsertJournal(ctx, journal)
}

type recordingSavings struct {
	portsrepo.SavingRepository
	log *callLog
}

func (s recordingSavings) LockMemberSavings(ctx context.Context, memberID int64, savingType string) error {
	s.log.add(fmt.Sprintf("LockMemberSavings %d %s", memberID, savingType))
	return s.SavingRepository.LockMemberSavings(ctx, memberID, savingType)
}

func (s recordingSavings) ApprovedBalance(ctx context.Context, memberID int64, savingType string) (decimal.Decimal, error) {
	s.log.add(fmt.Sprintf("ApprovedBalance %d %s", memberID, savingType))
	return s.SavingRepository.ApprovedBalance(ctx, memberID, savingType)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
