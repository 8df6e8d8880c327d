package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// shuService splits a year's SHU between members and posts the payable.
type shuService struct {
	BaseService
	uow       portsrepo.UnitOfWork
	shuRepo   portsrepo.SHURepository
	engine    portssvc.JournalEngine
	directory portssvc.AccountDirectory
}

// NewSHUService creates a new SHU distribution service.
func NewSHUService(uow portsrepo.UnitOfWork, shuRepo portsrepo.SHURepository, engine portssvc.JournalEngine, directory portssvc.AccountDirectory, options ...ServiceOption) portssvc.SHUSvcFacade {
	return &shuService{
		BaseService: newBaseService(options...),
		uow:         uow,
		shuRepo:     shuRepo,
		engine:      engine,
		directory:   directory,
	}
}

var _ portssvc.SHUSvcFacade = (*shuService)(nil)

func (s *shuService) PreviewSHU(ctx context.Context, rules domain.SHURules) ([]domain.SHUAllocation, error) {
	if err := validateSHURules(rules); err != nil {
		return nil, err
	}
	from, to := yearRange(rules.Year)
	contributions, err := s.shuRepo.MemberContributions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load member contributions: %w", err)
	}
	return allocateSHU(rules, contributions), nil
}

// DistributeSHU allocates the year's SHU and posts Dr SHU Tahun Berjalan / Cr Hutang SHU Anggota
// for the allocated total. A year can be distributed once.
func (s *shuService) DistributeSHU(ctx context.Context, rules domain.SHURules, actor domain.Actor) (*domain.SHUOutcome, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleManager); err != nil {
		return nil, err
	}
	if err := validateSHURules(rules); err != nil {
		return nil, err
	}

	var distribution domain.SHUDistribution
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		_, err := repos.SHU().FindDistribution(ctx, rules.Year)
		switch {
		case err == nil:
			return fmt.Errorf("%w: SHU for %d has already been distributed", apperrors.ErrDuplicate, rules.Year)
		case !errors.Is(err, apperrors.ErrNotFound):
			return fmt.Errorf("failed to check distribution of %d: %w", rules.Year, err)
		}

		from, to := yearRange(rules.Year)
		contributions, err := repos.SHU().MemberContributions(ctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to load member contributions: %w", err)
		}
		allocations := allocateSHU(rules, contributions)
		distributed := decimal.Zero
		for _, a := range allocations {
			distributed = distributed.Add(a.Total)
		}
		if !distributed.IsPositive() {
			return apperrors.NewValidationError(fmt.Sprintf("no member contributions to distribute SHU %d over", rules.Year))
		}

		names := s.directory.Names()
		ids, err := s.directory.ResolveAccountIDs(ctx, repos.Accounts(), names.SHUCurrentYear, names.SHUPayable)
		if err != nil {
			return err
		}

		now := s.now()
		journalID, err := s.engine.PostJournal(ctx, repos, domain.JournalRequest{
			Date:        now,
			Description: fmt.Sprintf("Pembagian SHU tahun %d", rules.Year),
			Lines: []domain.JournalLine{
				domain.DebitLine(ids[names.SHUCurrentYear], distributed),
				domain.CreditLine(ids[names.SHUPayable], distributed),
			},
			CreatedBy: actor.UserID,
		})
		if err != nil {
			return err
		}

		distribution = domain.SHUDistribution{
			Year:          rules.Year,
			TotalSHU:      rules.TotalSHU,
			Distributed:   distributed,
			Allocations:   allocations,
			JournalID:     &journalID,
			DistributedAt: now,
			DistributedBy: actor.UserID,
		}
		if err := repos.SHU().InsertDistribution(ctx, distribution); err != nil {
			return err
		}
		if err := repos.SHU().InsertAllocations(ctx, rules.Year, allocations); err != nil {
			return fmt.Errorf("failed to insert SHU allocations: %w", err)
		}
		return nil
	})
	if err != nil {
		if isRuleViolation(err) {
			s.LogInfo(ctx, "SHU distribution rejected", slog.Int("year", rules.Year), slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to distribute SHU", slog.Int("year", rules.Year))
		}
		return nil, err
	}

	s.LogInfo(ctx, "SHU distributed",
		slog.Int("year", rules.Year),
		slog.String("distributed", distribution.Distributed.String()),
		slog.Int("members", len(distribution.Allocations)))

	effects := make([]domain.Effect, 0, len(distribution.Allocations))
	for _, a := range distribution.Allocations {
		effects = append(effects, domain.Effect{
			Recipient: domain.MemberRecipient(a.MemberID),
			Subject:   fmt.Sprintf("SHU tahun %d", rules.Year),
			Message:   fmt.Sprintf("Bagian SHU Anda tahun %d sebesar %s.", rules.Year, utils.FormatRupiah(a.Total)),
		})
	}
	return &domain.SHUOutcome{Distribution: distribution, Effects: effects}, nil
}

func (s *shuService) GetDistribution(ctx context.Context, year int) (*domain.SHUDistribution, error) {
	return s.shuRepo.FindDistribution(ctx, year)
}

func validateSHURules(rules domain.SHURules) error {
	if rules.Year < 1900 || rules.Year > 9999 {
		return apperrors.NewValidationError(fmt.Sprintf("year %d out of range", rules.Year))
	}
	if !rules.TotalSHU.IsPositive() {
		return apperrors.NewValidationError("total SHU must be greater than zero")
	}
	if rules.CapitalPercent.IsNegative() || rules.BusinessPercent.IsNegative() {
		return apperrors.NewValidationError("percentages must not be negative")
	}
	if rules.CapitalPercent.Add(rules.BusinessPercent).GreaterThan(hundred) {
		return apperrors.NewValidationError("capital and business percentages exceed 100")
	}
	return nil
}

// allocateSHU splits the capital pool pro rata to savings and the business pool pro rata
// to purchases. Shares are rounded to 2 dp; members with a zero total are skipped.
func allocateSHU(rules domain.SHURules, contributions []domain.MemberContribution) []domain.SHUAllocation {
	capitalPool := rules.TotalSHU.Mul(rules.CapitalPercent).Div(hundred)
	businessPool := rules.TotalSHU.Mul(rules.BusinessPercent).Div(hundred)

	totalSavings, totalPurchases := decimal.Zero, decimal.Zero
	for _, c := range contributions {
		totalSavings = totalSavings.Add(c.Savings)
		totalPurchases = totalPurchases.Add(c.Purchases)
	}

	allocations := make([]domain.SHUAllocation, 0, len(contributions))
	for _, c := range contributions {
		a := domain.SHUAllocation{MemberID: c.MemberID, CapitalShare: decimal.Zero, BusinessShare: decimal.Zero}
		if totalSavings.IsPositive() && c.Savings.IsPositive() {
			a.CapitalShare = capitalPool.Mul(c.Savings).Div(totalSavings).Round(2)
		}
		if totalPurchases.IsPositive() && c.Purchases.IsPositive() {
			a.BusinessShare = businessPool.Mul(c.Purchases).Div(totalPurchases).Round(2)
		}
		a.Total = a.CapitalShare.Add(a.BusinessShare)
		if a.Total.IsPositive() {
			allocations = append(allocations, a)
		}
	}
	return allocations
}

func yearRange(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}
