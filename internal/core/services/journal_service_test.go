package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalReader ---
type MockJournalReader struct {
	mock.Mock
}

var _ portsrepo.JournalReader = (*MockJournalReader)(nil)

func (m *MockJournalReader) FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalReader) ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalReader) CountReferencesWithPrefix(ctx context.Context, prefix string) (int, error) {
	args := m.Called(ctx, prefix)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalReader) SumMovements(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountMovement, error) {
	args := m.Called(ctx, from, to, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountMovement), args.Error(1)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	f *ledgerFixture
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.f = newLedgerFixture(suite.T(), time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC))
}

func (suite *JournalServiceTestSuite) request(date time.Time, lines ...dto.CreateJournalLineRequest) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{Date: date, Description: "Penyesuaian", Lines: lines}
}

func (suite *JournalServiceTestSuite) debit(name string, amount string) dto.CreateJournalLineRequest {
	return dto.CreateJournalLineRequest{AccountID: suite.f.id(suite.T(), name), Debit: dec(amount), Credit: decimal.Zero}
}

func (suite *JournalServiceTestSuite) credit(name string, amount string) dto.CreateJournalLineRequest {
	return dto.CreateJournalLineRequest{AccountID: suite.f.id(suite.T(), name), Debit: decimal.Zero, Credit: dec(amount)}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_GeneratesSequentialReferences() {
	ctx := context.Background()
	day := date(2024, 3, 15)

	first, err := suite.f.svc.Journal.CreateJournal(ctx, suite.request(day, suite.debit("Kas", "100"), suite.credit("Pendapatan Jasa Pinjaman", "100")), admin)
	suite.Require().NoError(err)
	second, err := suite.f.svc.Journal.CreateJournal(ctx, suite.request(day, suite.debit("Kas", "50"), suite.credit("Pendapatan Jasa Pinjaman", "50")), admin)
	suite.Require().NoError(err)

	suite.Equal("JRNL-20240315-0001", first.ReferenceNumber)
	suite.Equal("JRNL-20240315-0002", second.ReferenceNumber)
	suite.Len(first.Lines, 2)
	suite.Equal(admin.UserID, first.CreatedBy)

	stored, err := suite.f.svc.Journal.GetJournalByID(ctx, first.JournalID)
	suite.Require().NoError(err)
	suite.Equal(first.ReferenceNumber, stored.ReferenceNumber)
	suite.f.requireBalancedLedger(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_KeepsSuppliedReference() {
	req := suite.request(date(2024, 3, 1), suite.debit("Kas", "10"), suite.credit("Pendapatan Jasa Pinjaman", "10"))
	req.ReferenceNumber = "ADJ-001"

	j, err := suite.f.svc.Journal.CreateJournal(context.Background(), req, admin)
	suite.Require().NoError(err)
	suite.Equal("ADJ-001", j.ReferenceNumber)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AcceptsDifferenceWithinTolerance() {
	_, err := suite.f.svc.Journal.CreateJournal(context.Background(),
		suite.request(date(2024, 3, 1), suite.debit("Kas", "100.005"), suite.credit("Pendapatan Jasa Pinjaman", "100")), admin)
	suite.NoError(err)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsInvalidLines() {
	day := date(2024, 3, 1)
	both := suite.debit("Kas", "10")
	both.Credit = dec("10")

	tests := []struct {
		name  string
		lines []dto.CreateJournalLineRequest
	}{
		{"unbalanced", []dto.CreateJournalLineRequest{suite.debit("Kas", "100"), suite.credit("Pendapatan Jasa Pinjaman", "90")}},
		{"single line", []dto.CreateJournalLineRequest{suite.debit("Kas", "100")}},
		{"both sides on one line", []dto.CreateJournalLineRequest{both, suite.credit("Pendapatan Jasa Pinjaman", "10")}},
		{"zero total", []dto.CreateJournalLineRequest{suite.debit("Kas", "0"), suite.credit("Pendapatan Jasa Pinjaman", "0")}},
		{"negative amount", []dto.CreateJournalLineRequest{suite.debit("Kas", "-10"), suite.credit("Pendapatan Jasa Pinjaman", "-10")}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.f.svc.Journal.CreateJournal(context.Background(), suite.request(day, tt.lines...), admin)
			suite.ErrorIs(err, apperrors.ErrUnbalancedJournal)
		})
	}

	page, err := suite.f.svc.Journal.ListJournals(context.Background(), dto.ListJournalsParams{Limit: 10})
	suite.Require().NoError(err)
	suite.Empty(page.Journals, "rejected journals must leave no trace")
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsUnknownAndParentAccounts() {
	ctx := context.Background()
	parent := suite.f.store.AddAccount(domain.Account{AccountNumber: "1-900", Name: "Aset Lain", AccountType: domain.Asset})
	suite.f.store.AddAccount(domain.Account{AccountNumber: "1-901", Name: "Deposito", AccountType: domain.Asset, ParentID: &parent})

	_, err := suite.f.svc.Journal.CreateJournal(ctx, suite.request(date(2024, 3, 1),
		dto.CreateJournalLineRequest{AccountID: parent, Debit: dec("10"), Credit: decimal.Zero},
		suite.credit("Kas", "10")), admin)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.f.svc.Journal.CreateJournal(ctx, suite.request(date(2024, 3, 1),
		dto.CreateJournalLineRequest{AccountID: 999999, Debit: dec("10"), Credit: decimal.Zero},
		suite.credit("Kas", "10")), admin)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_RejectsClosedPeriod() {
	ctx := context.Background()
	suite.f.post(suite.T(), date(2024, 2, 10), "Kas", "Pendapatan Jasa Pinjaman", 100)
	_, err := suite.f.svc.Closing.CloseMonth(ctx, 2024, 2, manager)
	suite.Require().NoError(err)

	_, err = suite.f.svc.Journal.CreateJournal(ctx, suite.request(date(2024, 2, 20), suite.debit("Kas", "5"), suite.credit("Pendapatan Jasa Pinjaman", "5")), admin)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)

	_, err = suite.f.svc.Journal.CreateJournal(ctx, suite.request(date(2024, 3, 1), suite.debit("Kas", "5"), suite.credit("Pendapatan Jasa Pinjaman", "5")), admin)
	suite.NoError(err)
}

func (suite *JournalServiceTestSuite) TestGetJournal_NotFound() {
	_, err := suite.f.svc.Journal.GetJournalByID(context.Background(), 424242)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func TestListJournals_DefaultsLimitAndPassesToken(t *testing.T) {
	ctx := context.Background()
	reader := new(MockJournalReader)
	svc := services.NewJournalService(memory.NewStore(), reader)

	journals := []domain.Journal{{JournalID: 3, ReferenceNumber: "JRNL-20240301-0001"}}
	reader.On("ListJournals", ctx, 20, (*string)(nil)).Return(journals, "next-page", nil).Once()

	resp, err := svc.ListJournals(ctx, dto.ListJournalsParams{})
	assert.NoError(t, err)
	assert.Len(t, resp.Journals, 1)
	if assert.NotNil(t, resp.NextToken) {
		assert.Equal(t, "next-page", *resp.NextToken)
	}
	reader.AssertExpectations(t)
}

func TestListJournals_WrapsRepositoryError(t *testing.T) {
	ctx := context.Background()
	reader := new(MockJournalReader)
	svc := services.NewJournalService(memory.NewStore(), reader)

	dbErr := errors.New("connection reset")
	reader.On("ListJournals", ctx, 50, (*string)(nil)).Return(nil, nil, dbErr).Once()

	_, err := svc.ListJournals(ctx, dto.ListJournalsParams{Limit: 50})
	assert.ErrorIs(t, err, dbErr)
	reader.AssertExpectations(t)
}
