package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils"
	"github.com/shopspring/decimal"
)

var nominalTypes = []domain.AccountType{domain.Revenue, domain.COGS, domain.Expense}

// closingService implements the monthly close and reopen protocol.
type closingService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	closingRepo portsrepo.ClosingRepository
	engine      portssvc.JournalEngine
	directory   portssvc.AccountDirectory
}

// NewClosingService creates a new closing service.
func NewClosingService(uow portsrepo.UnitOfWork, closingRepo portsrepo.ClosingRepository, engine portssvc.JournalEngine, directory portssvc.AccountDirectory, options ...ServiceOption) portssvc.ClosingSvcFacade {
	return &closingService{
		BaseService: newBaseService(options...),
		uow:         uow,
		closingRepo: closingRepo,
		engine:      engine,
		directory:   directory,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// CloseMonth zeroes every Revenue, COGS and Expense account with movement in the month
// into the income summary account. A month without movement is still closed, with no journal.
// The month lock is taken before the closed check, so a concurrent close of the same
// month waits and then fails with ErrAlreadyClosed.
func (s *closingService) CloseMonth(ctx context.Context, year, month int, actor domain.Actor) (*domain.ClosingOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting, domain.RoleManager); err != nil {
		return nil, err
	}
	period, err := domain.NewPeriod(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var outcome domain.ClosingOutcome
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := repos.Closings().LockPeriod(ctx, period); err != nil {
			return err
		}
		closed, err := repos.Closings().IsClosed(ctx, period)
		if err != nil {
			return fmt.Errorf("failed to check closing of %s: %w", period, err)
		}
		if closed {
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyClosed, period)
		}

		movements, err := repos.Journals().SumMovements(ctx, period.Start(), period.End(), nominalTypes)
		if err != nil {
			return fmt.Errorf("failed to aggregate movements for %s: %w", period, err)
		}
		movements = significantMovements(movements)

		closing := domain.MonthlyClosing{
			Year:      period.Year,
			Month:     period.Month,
			ClosedAt:  s.now(),
			ClosedBy:  actor.UserID,
			NetIncome: decimal.Zero,
		}

		if len(movements) > 0 {
			incomeSummary := s.directory.Names().IncomeSummary
			ids, err := s.directory.ResolveAccountIDs(ctx, repos.Accounts(), incomeSummary)
			if err != nil {
				return err
			}

			lines, netIncome := closingLines(movements, ids[incomeSummary])
			journalID, err := s.engine.PostJournal(ctx, repos, domain.JournalRequest{
				Date:        period.LastDay(),
				Description: fmt.Sprintf("Jurnal penutup periode %s", period),
				Lines:       lines,
				CreatedBy:   actor.UserID,
			})
			if err != nil {
				return err
			}
			closing.JournalID = &journalID
			closing.NetIncome = netIncome
		}

		if err := repos.Closings().InsertClosing(ctx, closing); err != nil {
			return fmt.Errorf("failed to record closing of %s: %w", period, err)
		}

		outcome = domain.ClosingOutcome{Closing: closing, Movements: movements}
		return nil
	})
	if err != nil {
		s.logClosingError(ctx, err, "Failed to close month", period)
		return nil, err
	}

	outcome.Effects = []domain.Effect{{
		Recipient: domain.RoleRecipient(domain.RoleManager),
		Subject:   fmt.Sprintf("Tutup buku %s", period),
		Message:   fmt.Sprintf("Periode %s ditutup oleh %s. Laba bersih %s.", period, actor.UserID, utils.FormatRupiah(outcome.Closing.NetIncome)),
	}}

	s.LogInfo(ctx, "Month closed",
		slog.String("period", period.String()),
		slog.String("net_income", outcome.Closing.NetIncome.String()),
		slog.Int("accounts", len(outcome.Movements)))
	return &outcome, nil
}

// ReopenMonth reverses the close of the latest closed month: its closing journal and row are removed.
func (s *closingService) ReopenMonth(ctx context.Context, year, month int, actor domain.Actor) ([]domain.Effect, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting, domain.RoleManager); err != nil {
		return nil, err
	}
	period, err := domain.NewPeriod(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := repos.Closings().LockPeriod(ctx, period); err != nil {
			return err
		}
		closing, err := repos.Closings().FindClosingForUpdate(ctx, period)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError(fmt.Sprintf("month %s is not closed", period))
			}
			return fmt.Errorf("failed to load closing of %s: %w", period, err)
		}

		later, err := repos.Closings().HasClosingAfter(ctx, period)
		if err != nil {
			return fmt.Errorf("failed to check closings after %s: %w", period, err)
		}
		if later {
			return fmt.Errorf("%w: reopen the later months before %s", apperrors.ErrSubsequentMonthClosed, period)
		}

		// The row goes first so the journal's month is open when it is deleted.
		if err := repos.Closings().DeleteClosing(ctx, period); err != nil {
			return fmt.Errorf("failed to delete closing of %s: %w", period, err)
		}
		if closing.JournalID != nil {
			if err := s.engine.DeleteJournal(ctx, repos, *closing.JournalID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logClosingError(ctx, err, "Failed to reopen month", period)
		return nil, err
	}

	s.LogInfo(ctx, "Month reopened", slog.String("period", period.String()), slog.String("user_id", actor.UserID))
	return []domain.Effect{{
		Recipient: domain.RoleRecipient(domain.RoleManager),
		Subject:   fmt.Sprintf("Buka kembali %s", period),
		Message:   fmt.Sprintf("Periode %s dibuka kembali oleh %s.", period, actor.UserID),
	}}, nil
}

func (s *closingService) GetClosing(ctx context.Context, year, month int) (*domain.MonthlyClosing, error) {
	period, err := domain.NewPeriod(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return s.closingRepo.FindClosing(ctx, period)
}

func (s *closingService) ListClosings(ctx context.Context) ([]domain.MonthlyClosing, error) {
	closings, err := s.closingRepo.ListClosings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}
	return closings, nil
}

// logClosingError logs infrastructure failures at error level and rule violations at info.
func (s *closingService) logClosingError(ctx context.Context, err error, msg string, period domain.Period) {
	switch {
	case errors.Is(err, apperrors.ErrAlreadyClosed),
		errors.Is(err, apperrors.ErrSubsequentMonthClosed),
		errors.Is(err, apperrors.ErrNotFound):
		s.LogInfo(ctx, msg, slog.String("period", period.String()), slog.String("reason", err.Error()))
	default:
		s.LogError(ctx, err, msg, slog.String("period", period.String()))
	}
}

// significantMovements drops accounts whose net movement rounds to zero.
func significantMovements(movements []domain.AccountMovement) []domain.AccountMovement {
	out := make([]domain.AccountMovement, 0, len(movements))
	for _, m := range movements {
		if m.Net().Abs().LessThan(domain.MovementEpsilon) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// closingLines builds the zeroing lines and the income summary line.
// A positive movement is zeroed on the side opposite the account's normal side;
// a negative one (e.g. a revenue account with net debits) on the normal side.
func closingLines(movements []domain.AccountMovement, incomeSummaryID int64) ([]domain.JournalLine, decimal.Decimal) {
	lines := make([]domain.JournalLine, 0, len(movements)+1)
	netIncome := decimal.Zero

	for _, m := range movements {
		net := m.Net()
		if m.AccountType == domain.Revenue {
			netIncome = netIncome.Add(net)
		} else {
			netIncome = netIncome.Sub(net)
		}

		zeroOnDebit := m.AccountType.NormalSide() == domain.Credit
		if net.IsNegative() {
			zeroOnDebit = !zeroOnDebit
		}
		if zeroOnDebit {
			lines = append(lines, domain.DebitLine(m.AccountID, net.Abs()))
		} else {
			lines = append(lines, domain.CreditLine(m.AccountID, net.Abs()))
		}
	}

	switch {
	case netIncome.IsPositive():
		lines = append(lines, domain.CreditLine(incomeSummaryID, netIncome))
	case netIncome.IsNegative():
		lines = append(lines, domain.DebitLine(incomeSummaryID, netIncome.Abs()))
	}
	return lines, netIncome
}
