package services

import (
	"context"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/repositories"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
)

// JournalEngine is the sole writer of ledger state. It runs inside the caller's unit of work.
type JournalEngine interface {
	// PostJournal validates and persists a balanced journal and returns its ID.
	PostJournal(ctx context.Context, repos repositories.TxRepositories, req domain.JournalRequest) (int64, error)

	// DeleteJournal removes a journal and its lines as a whole.
	DeleteJournal(ctx context.Context, repos repositories.TxRepositories, journalID int64) error
}

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal with its lines.
	GetJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for manual journals
type JournalWriterSvc interface {
	// CreateJournal posts a manual adjusting journal in its own transaction.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, actor domain.Actor) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalEngine
	JournalReaderSvc
	JournalWriterSvc
}
