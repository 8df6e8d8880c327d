package handlers_test

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) PostJournal(ctx context.Context, repos portsrepo.TxRepositories, req domain.JournalRequest) (int64, error) {
	args := m.Called(ctx, repos, req)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockJournalService) DeleteJournal(ctx context.Context, repos portsrepo.TxRepositories, journalID int64) error {
	args := m.Called(ctx, repos, journalID)
	return args.Error(0)
}
func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}
func (m *MockJournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actor domain.Actor) (*domain.Journal, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ClosingService ---
type MockClosingService struct {
	mock.Mock
}

func (m *MockClosingService) CloseMonth(ctx context.Context, year, month int, actor domain.Actor) (*domain.ClosingOutcome, error) {
	args := m.Called(ctx, year, month, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingOutcome), args.Error(1)
}
func (m *MockClosingService) ReopenMonth(ctx context.Context, year, month int, actor domain.Actor) ([]domain.Effect, error) {
	args := m.Called(ctx, year, month, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Effect), args.Error(1)
}
func (m *MockClosingService) GetClosing(ctx context.Context, year, month int) (*domain.MonthlyClosing, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyClosing), args.Error(1)
}
func (m *MockClosingService) ListClosings(ctx context.Context) ([]domain.MonthlyClosing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyClosing), args.Error(1)
}

var _ portssvc.ClosingSvcFacade = (*MockClosingService)(nil)

// --- Mock EffectDispatcher ---
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, effects []domain.Effect) {
	m.Called(ctx, effects)
}

var _ portssvc.EffectDispatcher = (*MockDispatcher)(nil)
