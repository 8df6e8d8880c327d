package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/handlers"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var (
	accountant = domain.Actor{UserID: "akunting-1", Role: domain.RoleAccounting}
	manager    = domain.Actor{UserID: "manager-1", Role: domain.RoleManager}
	member     = domain.Actor{UserID: "anggota-7", Role: domain.RoleMember}
)

type HandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	jwtSecret  string
	journalSvc *MockJournalService
	closingSvc *MockClosingService
	dispatcher *MockDispatcher
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.journalSvc = new(MockJournalService)
	suite.closingSvc = new(MockClosingService)
	suite.dispatcher = new(MockDispatcher)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Journal: suite.journalSvc,
		Closing: suite.closingSvc,
		Effects: suite.dispatcher,
	}, nil)
}

func (suite *HandlerTestSuite) token(actor domain.Actor, ttl time.Duration) string {
	token, err := middleware.IssueToken(suite.jwtSecret, actor, ttl)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, path string, actor *domain.Actor, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+suite.token(*actor, time.Hour))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestAuthentication() {
	w := suite.do(http.MethodGet, "/api/v1/journals/1", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/journals/1", nil)
	req.Header.Set("Authorization", "Bearer "+suite.token(accountant, -time.Minute))
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Token has expired")

	suite.journalSvc.AssertNotCalled(suite.T(), "GetJournalByID", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) journalBody(debit, credit string) map[string]any {
	return map[string]any{
		"date":        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"description": "Penyesuaian beban",
		"lines": []map[string]any{
			{"accountID": 11, "debit": debit, "credit": "0"},
			{"accountID": 1, "debit": "0", "credit": credit},
		},
	}
}

func (suite *HandlerTestSuite) TestCreateJournal_Success() {
	journal := &domain.Journal{
		JournalID:       42,
		ReferenceNumber: "JRNL-20240315-0001",
		Description:     "Penyesuaian beban",
		Lines: []domain.JournalLine{
			{AccountID: 11, Debit: decimal.NewFromInt(1000), Credit: decimal.Zero},
			{AccountID: 1, Debit: decimal.Zero, Credit: decimal.NewFromInt(1000)},
		},
	}
	suite.journalSvc.On("CreateJournal", mock.Anything, mock.AnythingOfType("dto.CreateJournalRequest"), accountant).
		Return(journal, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", &accountant, suite.journalBody("1000", "1000"))

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.GetJournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(42), resp.Journal.JournalID)
	suite.Equal("JRNL-20240315-0001", resp.Journal.ReferenceNumber)
	suite.Len(resp.Lines, 2)
	suite.Equal("DEBIT", resp.Lines[0].Side)
	suite.journalSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateJournal_RequestRejectedBeforeService() {
	testCases := []struct {
		name   string
		actor  domain.Actor
		body   map[string]any
		status int
	}{
		{"member role", member, suite.journalBody("1000", "1000"), http.StatusForbidden},
		{"manager role", manager, suite.journalBody("1000", "1000"), http.StatusForbidden},
		{"negative debit", accountant, suite.journalBody("-1000", "1000"), http.StatusBadRequest},
		{"single line", accountant, map[string]any{
			"date":        time.Now(),
			"description": "x",
			"lines":       []map[string]any{{"accountID": 1, "debit": "5", "credit": "0"}},
		}, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/journals", &tc.actor, tc.body)
			suite.Equal(tc.status, w.Code, w.Body.String())
		})
	}
	suite.journalSvc.AssertNotCalled(suite.T(), "CreateJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestServiceErrorMapping() {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperrors.NewNotFoundError("journal 1 not found"), http.StatusNotFound, "journal 1 not found"},
		{"configuration", &apperrors.ConfigurationError{MissingAccounts: []string{"Kas"}}, http.StatusBadRequest, "Kas"},
		{"period closed", fmt.Errorf("post journal: %w", apperrors.ErrPeriodClosed), http.StatusBadRequest, "accounting period is closed"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "conflict"},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict, "already exists"},
		{"storage failure", errors.New("pq: connection refused"), http.StatusInternalServerError, "Failed to retrieve journal"},
	}

	for i, tc := range testCases {
		suite.Run(tc.name, func() {
			journalID := int64(i + 1)
			suite.journalSvc.On("GetJournalByID", mock.Anything, journalID).Return(nil, tc.err).Once()

			w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/journals/%d", journalID), &accountant, nil)

			suite.Equal(tc.status, w.Code)
			suite.Contains(w.Body.String(), tc.message)
			suite.NotContains(w.Body.String(), "connection refused")
		})
	}
}

func (suite *HandlerTestSuite) TestGetJournal_InvalidID() {
	w := suite.do(http.MethodGet, "/api/v1/journals/abc", &accountant, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListJournals() {
	next := "token-2"
	suite.journalSvc.On("ListJournals", mock.Anything, dto.ListJournalsParams{Limit: 20}).
		Return(&dto.ListJournalsResponse{Journals: []dto.JournalResponse{{JournalID: 3}}, NextToken: &next}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals", &member, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"nextToken":"token-2"`)

	w = suite.do(http.MethodGet, "/api/v1/journals?limit=500", &member, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journalSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCloseMonth_DispatchesEffectsAfterSuccess() {
	effects := []domain.Effect{{Recipient: domain.RoleRecipient(domain.RoleManager), Subject: "Tutup buku", Message: "2024-03"}}
	outcome := &domain.ClosingOutcome{
		Closing: domain.MonthlyClosing{Year: 2024, Month: 3, ClosedBy: manager.UserID, NetIncome: decimal.NewFromInt(650)},
		Effects: effects,
	}
	suite.closingSvc.On("CloseMonth", mock.Anything, 2024, 3, manager).Return(outcome, nil).Once()
	suite.dispatcher.On("Dispatch", mock.Anything, effects).Return().Once()

	w := suite.do(http.MethodPost, "/api/v1/closings/2024/3", &manager, nil)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Contains(w.Body.String(), `"netIncome":"650"`)
	suite.NotContains(w.Body.String(), "Tutup buku")
	suite.closingSvc.AssertExpectations(suite.T())
	suite.dispatcher.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCloseMonth_Rejections() {
	w := suite.do(http.MethodPost, "/api/v1/closings/2024/13", &manager, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/closings/2024/3", &member, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	suite.closingSvc.On("CloseMonth", mock.Anything, 2024, 2, accountant).
		Return(nil, fmt.Errorf("close 2024-02: %w", apperrors.ErrAlreadyClosed)).Once()
	w = suite.do(http.MethodPost, "/api/v1/closings/2024/2", &accountant, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "already closed")

	suite.dispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestReopenMonth() {
	suite.closingSvc.On("ReopenMonth", mock.Anything, 2024, 1, accountant).
		Return(nil, apperrors.ErrSubsequentMonthClosed).Once()
	w := suite.do(http.MethodDelete, "/api/v1/closings/2024/1", &accountant, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.closingSvc.On("ReopenMonth", mock.Anything, 2024, 2, accountant).Return([]domain.Effect{}, nil).Once()
	w = suite.do(http.MethodDelete, "/api/v1/closings/2024/2", &accountant, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	suite.closingSvc.AssertExpectations(suite.T())
	suite.dispatcher.AssertNotCalled(suite.T(), "Dispatch", mock.Anything, mock.Anything)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
