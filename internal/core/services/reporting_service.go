package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	journalRepo   portsrepo.JournalReader
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(options...),
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		journalRepo:   journalRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report including every journal dated on or before asOf.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	before := dayAfter(asOf)
	rows, err := s.reportingRepo.AccountBalances(ctx, before)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalance{AsOf: asOf, Rows: rows, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for i := range report.Rows {
		row := &report.Rows[i]
		balance, err := signedBalance(row.AccountID, row.Debit, row.Credit, row.AccountType)
		if err != nil {
			return nil, err
		}
		row.Balance = balance
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	report.Balanced = report.TotalDebit.Sub(report.TotalCredit).Abs().LessThanOrEqual(accounting.BalanceTolerance)

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(rows)),
		slog.Bool("balanced", report.Balanced))
	return report, nil
}

// AccountLedger lists an account's lines over [from, to] with the balance brought forward.
func (s *reportingService) AccountLedger(ctx context.Context, accountID int64, from, to time.Time) (*domain.AccountLedger, error) {
	if to.Before(from) {
		return nil, apperrors.NewValidationError("'to' must not be before 'from'")
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	debit, credit, err := s.reportingRepo.AccountTotals(ctx, accountID, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve opening balance", slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve opening balance: %w", err)
	}
	entries, err := s.reportingRepo.LedgerLines(ctx, accountID, from, dayAfter(to))
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve ledger lines", slog.Int64("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve ledger lines: %w", err)
	}

	opening, err := signedBalance(accountID, debit, credit, account.AccountType)
	if err != nil {
		return nil, err
	}
	ledger := &domain.AccountLedger{
		Account:        *account,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Entries:        entries,
	}
	running := opening
	for i := range ledger.Entries {
		delta, err := signedBalance(accountID, ledger.Entries[i].Debit, ledger.Entries[i].Credit, account.AccountType)
		if err != nil {
			return nil, err
		}
		running = running.Add(delta)
		ledger.Entries[i].RunningBalance = running
	}
	ledger.ClosingBalance = running
	return ledger, nil
}

// ProfitAndLoss summarises Revenue, COGS and Expense movement over [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error) {
	if to.Before(from) {
		return nil, apperrors.NewValidationError("'to' must not be before 'from'")
	}
	movements, err := s.journalRepo.SumMovements(ctx, from, dayAfter(to), nominalTypes)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data",
			slog.String("from", from.Format(time.DateOnly)),
			slog.String("to", to.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	report := &domain.ProfitAndLoss{
		From:      from,
		To:        to,
		Revenue:   []domain.AccountMovement{},
		Costs:     []domain.AccountMovement{},
		NetIncome: decimal.Zero,
	}
	for _, m := range movements {
		if m.AccountType == domain.Revenue {
			report.Revenue = append(report.Revenue, m)
			report.NetIncome = report.NetIncome.Add(m.Net())
		} else {
			report.Costs = append(report.Costs, m)
			report.NetIncome = report.NetIncome.Sub(m.Net())
		}
	}
	return report, nil
}

func (s *reportingService) VerifyJournals(ctx context.Context) ([]domain.JournalImbalance, error) {
	imbalanced, err := s.reportingRepo.FindImbalancedJournals(ctx, accounting.BalanceTolerance)
	if err != nil {
		return nil, fmt.Errorf("failed to verify journals: %w", err)
	}
	if len(imbalanced) > 0 {
		s.GetLogger(ctx).Warn("Imbalanced journals found", slog.Int("count", len(imbalanced)))
	}
	return imbalanced, nil
}

// signedBalance measures debit and credit totals on the account type's normal side.
func signedBalance(accountID int64, debit, credit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	return accounting.CalculateSignedAmount(domain.JournalLine{AccountID: accountID, Debit: debit, Credit: credit}, accountType)
}

func dayAfter(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}
