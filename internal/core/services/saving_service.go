package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils"
	"github.com/shopspring/decimal"
)

// savingService approves member deposits and withdrawals.
type savingService struct {
	BaseService
	uow        portsrepo.UnitOfWork
	savingRepo portsrepo.SavingRepository
	engine     portssvc.JournalEngine
	directory  portssvc.AccountDirectory
}

// NewSavingService creates a new saving service.
func NewSavingService(uow portsrepo.UnitOfWork, savingRepo portsrepo.SavingRepository, engine portssvc.JournalEngine, directory portssvc.AccountDirectory, options ...ServiceOption) portssvc.SavingSvcFacade {
	return &savingService{
		BaseService: newBaseService(options...),
		uow:         uow,
		savingRepo:  savingRepo,
		engine:      engine,
		directory:   directory,
	}
}

var _ portssvc.SavingSvcFacade = (*savingService)(nil)

func (s *savingService) SubmitSaving(ctx context.Context, saving domain.Saving, actor domain.Actor) (*domain.SavingOutcome, error) {
	saving.SavingType = strings.TrimSpace(saving.SavingType)
	switch {
	case saving.SavingType == "":
		return nil, apperrors.NewValidationError("saving type is required")
	case saving.Kind != domain.SavingDeposit && saving.Kind != domain.SavingWithdrawal:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown saving kind %q", saving.Kind))
	case !saving.Amount.IsPositive():
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}
	if saving.Date.IsZero() {
		saving.Date = s.now()
	}
	saving.Status = domain.SavingPending
	saving.JournalID = nil

	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		var err error
		saving.SavingID, err = repos.Savings().InsertSaving(ctx, saving)
		if err != nil {
			return fmt.Errorf("failed to insert saving: %w", err)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to submit saving", slog.Int64("member_id", saving.MemberID))
		return nil, err
	}

	return &domain.SavingOutcome{
		Saving: saving,
		Effects: []domain.Effect{{
			Recipient: domain.RoleRecipient(domain.RoleAccounting),
			Subject:   fmt.Sprintf("%s %s menunggu persetujuan", saving.Kind, saving.SavingType),
			Message:   fmt.Sprintf("%s %s anggota #%d sebesar %s menunggu persetujuan.", saving.Kind, saving.SavingType, saving.MemberID, utils.FormatRupiah(saving.Amount)),
		}},
	}, nil
}

// ApproveSaving posts a deposit (Dr Kas / Cr saving account) or a withdrawal
// (Dr saving account / Cr Kas). The saving type's name is its liability account name.
func (s *savingService) ApproveSaving(ctx context.Context, savingID int64, actor domain.Actor) (*domain.SavingOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting); err != nil {
		return nil, err
	}
	var saving *domain.Saving
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		var err error
		saving, err = repos.Savings().FindSavingForUpdate(ctx, savingID)
		if err != nil {
			return err
		}
		if saving.Status != domain.SavingPending {
			return fmt.Errorf("%w: saving %d is %s", apperrors.ErrInvalidTransition, savingID, saving.Status)
		}

		cash := s.directory.Names().Cash
		ids, err := s.directory.ResolveAccountIDs(ctx, repos.Accounts(), cash, saving.SavingType)
		if err != nil {
			return err
		}
		cashID, savingAccountID := ids[cash], ids[saving.SavingType]

		var lines []domain.JournalLine
		switch saving.Kind {
		case domain.SavingDeposit:
			lines = []domain.JournalLine{
				domain.DebitLine(cashID, saving.Amount),
				domain.CreditLine(savingAccountID, saving.Amount),
			}
		case domain.SavingWithdrawal:
			// Two withdrawals approved at once must not both see the balance before the other.
			if err := repos.Savings().LockMemberSavings(ctx, saving.MemberID, saving.SavingType); err != nil {
				return err
			}
			balance, err := repos.Savings().ApprovedBalance(ctx, saving.MemberID, saving.SavingType)
			if err != nil {
				return fmt.Errorf("failed to compute saving balance: %w", err)
			}
			if balance.LessThan(saving.Amount) {
				return fmt.Errorf("%w: %s balance is %s, withdrawal is %s",
					apperrors.ErrInsufficientBalance, saving.SavingType, balance.String(), saving.Amount.String())
			}
			lines = []domain.JournalLine{
				domain.DebitLine(savingAccountID, saving.Amount),
				domain.CreditLine(cashID, saving.Amount),
			}
		default:
			return fmt.Errorf("%w: unknown saving kind %q", apperrors.ErrValidation, saving.Kind)
		}

		journalID, err := s.engine.PostJournal(ctx, repos, domain.JournalRequest{
			Date:        saving.Date,
			Description: fmt.Sprintf("%s %s anggota #%d", saving.Kind, saving.SavingType, saving.MemberID),
			Lines:       lines,
			CreatedBy:   actor.UserID,
		})
		if err != nil {
			return err
		}

		saving.Status = domain.SavingApproved
		saving.JournalID = &journalID
		if err := repos.Savings().UpdateSaving(ctx, *saving); err != nil {
			return fmt.Errorf("failed to update saving %d: %w", savingID, err)
		}
		return nil
	})
	if err != nil {
		if isRuleViolation(err) {
			s.LogInfo(ctx, "Saving approval rejected", slog.Int64("saving_id", savingID), slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to approve saving", slog.Int64("saving_id", savingID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Saving approved", slog.Int64("saving_id", savingID), slog.String("kind", string(saving.Kind)))
	return &domain.SavingOutcome{
		Saving: *saving,
		Effects: []domain.Effect{{
			Recipient: domain.MemberRecipient(saving.MemberID),
			Subject:   fmt.Sprintf("%s disetujui", saving.Kind),
			Message:   fmt.Sprintf("%s %s sebesar %s telah disetujui.", saving.Kind, saving.SavingType, utils.FormatRupiah(saving.Amount)),
		}},
	}, nil
}

func (s *savingService) RejectSaving(ctx context.Context, savingID int64, actor domain.Actor) (*domain.SavingOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting); err != nil {
		return nil, err
	}
	var saving *domain.Saving
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		var err error
		saving, err = repos.Savings().FindSavingForUpdate(ctx, savingID)
		if err != nil {
			return err
		}
		if saving.Status != domain.SavingPending {
			return fmt.Errorf("%w: saving %d is %s", apperrors.ErrInvalidTransition, savingID, saving.Status)
		}
		saving.Status = domain.SavingRejected
		return repos.Savings().UpdateSaving(ctx, *saving)
	})
	if err != nil {
		return nil, err
	}

	return &domain.SavingOutcome{
		Saving: *saving,
		Effects: []domain.Effect{{
			Recipient: domain.MemberRecipient(saving.MemberID),
			Subject:   fmt.Sprintf("%s ditolak", saving.Kind),
			Message:   fmt.Sprintf("%s %s sebesar %s ditolak oleh %s.", saving.Kind, saving.SavingType, utils.FormatRupiah(saving.Amount), actor.UserID),
		}},
	}, nil
}

func (s *savingService) GetSaving(ctx context.Context, savingID int64) (*domain.Saving, error) {
	return s.savingRepo.FindSavingByID(ctx, savingID)
}

func (s *savingService) ListMemberSavings(ctx context.Context, memberID int64) ([]domain.Saving, error) {
	savings, err := s.savingRepo.ListSavingsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings of member %d: %w", memberID, err)
	}
	return savings, nil
}

func (s *savingService) Balance(ctx context.Context, memberID int64, savingType string) (decimal.Decimal, error) {
	balance, err := s.savingRepo.ApprovedBalance(ctx, memberID, savingType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute saving balance: %w", err)
	}
	return balance, nil
}
