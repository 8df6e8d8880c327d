package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portsrepo "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/utils/accounting"
)

// journalService is the journal engine: the only component that writes journals and lines.
type journalService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	journalRepo portsrepo.JournalReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(uow portsrepo.UnitOfWork, journalRepo portsrepo.JournalReader, options ...ServiceOption) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(options...),
		uow:         uow,
		journalRepo: journalRepo,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostJournal validates and persists a journal inside the caller's unit of work.
//
// Reference numbers are generated as count(existing refs with the day's prefix)+1.
// The count and the insert are not serialised, so two postings on the same day can
// receive the same number under concurrency. Reference numbers are informational
// and carry no unique constraint.
func (s *journalService) PostJournal(ctx context.Context, repos portsrepo.TxRepositories, req domain.JournalRequest) (int64, error) {
	if err := accounting.ValidateJournalBalance(req.Lines); err != nil {
		s.LogError(ctx, err, "Rejected unbalanced journal", slog.String("description", req.Description))
		return 0, err
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	date = domain.CivilDate(date)

	if err := s.checkPostingAccounts(ctx, repos, req.Lines); err != nil {
		return 0, err
	}

	if err := s.ensurePeriodOpen(ctx, repos, domain.PeriodOf(date)); err != nil {
		return 0, err
	}

	ref := req.ReferenceNumber
	if ref == "" {
		prefix := accounting.ReferencePrefix(req.ReferencePrefix, date)
		count, err := repos.Journals().CountReferencesWithPrefix(ctx, prefix)
		if err != nil {
			return 0, fmt.Errorf("failed to count references for %s: %w", prefix, err)
		}
		ref = accounting.FormatReferenceNumber(req.ReferencePrefix, date, count+1)
	}

	journal := domain.Journal{
		EntryDate:       date,
		Description:     req.Description,
		ReferenceNumber: ref,
		AuditFields: domain.AuditFields{
			CreatedAt: s.now(),
			CreatedBy: req.CreatedBy,
		},
	}

	journalID, err := repos.Journals().InsertJournal(ctx, journal)
	if err != nil {
		return 0, fmt.Errorf("failed to insert journal header: %w", err)
	}
	if err := repos.Journals().InsertJournalLines(ctx, journalID, req.Lines); err != nil {
		return 0, fmt.Errorf("failed to insert lines of journal %d: %w", journalID, err)
	}

	s.LogDebug(ctx, "Journal posted",
		slog.Int64("journal_id", journalID),
		slog.String("reference_number", ref),
		slog.Int("lines", len(req.Lines)))
	return journalID, nil
}

// DeleteJournal removes a whole journal. Journals in a closed month are immutable.
func (s *journalService) DeleteJournal(ctx context.Context, repos portsrepo.TxRepositories, journalID int64) error {
	journal, err := repos.Journals().FindJournalByID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to find journal %d: %w", journalID, err)
	}
	if err := s.ensurePeriodOpen(ctx, repos, domain.PeriodOf(journal.EntryDate)); err != nil {
		return err
	}
	if err := repos.Journals().DeleteJournal(ctx, journalID); err != nil {
		return fmt.Errorf("failed to delete journal %d: %w", journalID, err)
	}
	s.LogDebug(ctx, "Journal deleted", slog.Int64("journal_id", journalID), slog.String("reference_number", journal.ReferenceNumber))
	return nil
}

// checkPostingAccounts requires every line to target an existing leaf account.
func (s *journalService) checkPostingAccounts(ctx context.Context, repos portsrepo.TxRepositories, lines []domain.JournalLine) error {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if !slices.Contains(ids, l.AccountID) {
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := repos.Accounts().FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load posting accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return apperrors.NewNotFoundError(fmt.Sprintf("account %d not found", id))
		}
		if !acc.IsLeaf() {
			return fmt.Errorf("%w: account %s (%s) has sub-accounts and cannot receive postings", apperrors.ErrValidation, acc.AccountNumber, acc.Name)
		}
	}
	return nil
}

func (s *journalService) ensurePeriodOpen(ctx context.Context, repos portsrepo.TxRepositories, period domain.Period) error {
	if err := repos.Closings().LockPeriodShared(ctx, period); err != nil {
		return err
	}
	closed, err := repos.Closings().IsClosed(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to check closing of %s: %w", period, err)
	}
	if closed {
		return fmt.Errorf("%w: %s", apperrors.ErrPeriodClosed, period)
	}
	return nil
}

// CreateJournal posts a manual adjusting journal in its own transaction.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actor domain.Actor) (*domain.Journal, error) {
	if err := s.AuthorizeRole(ctx, actor, domain.RoleAdmin, domain.RoleAccounting); err != nil {
		return nil, err
	}
	var created *domain.Journal
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		journalID, err := s.PostJournal(ctx, repos, domain.JournalRequest{
			Date:            req.Date,
			Description:     req.Description,
			Lines:           req.ToJournalLines(),
			ReferenceNumber: req.ReferenceNumber,
			CreatedBy:       actor.UserID,
		})
		if err != nil {
			return err
		}
		created, err = repos.Journals().FindJournalByID(ctx, journalID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal", slog.String("user_id", actor.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Manual journal created",
		slog.Int64("journal_id", created.JournalID),
		slog.String("reference_number", created.ReferenceNumber))
	return created, nil
}

// GetJournalByID retrieves a journal with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal", slog.Int64("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

// ListJournals retrieves a page of journals, newest first.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	journals, nextToken, err := s.journalRepo.ListJournals(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return dto.ToListJournalsResponse(journals, nextToken), nil
}
