package repositories

import (
	"context"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal header together with its lines.
	FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error)

	// ListJournals retrieves headers newest first using token-based pagination.
	// It returns the journals, a token for the next page, and an error.
	ListJournals(ctx context.Context, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// CountReferencesWithPrefix counts journals whose reference number starts with prefix.
	CountReferencesWithPrefix(ctx context.Context, prefix string) (int, error)

	// SumMovements aggregates debit and credit per leaf account of the given types
	// for lines whose journal is dated in [from, to).
	SumMovements(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountMovement, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// InsertJournal persists a journal header and returns its ID.
	InsertJournal(ctx context.Context, journal domain.Journal) (int64, error)

	// InsertJournalLines persists all lines of a journal in one statement.
	InsertJournalLines(ctx context.Context, journalID int64, lines []domain.JournalLine) error

	// DeleteJournal removes a journal; its lines cascade.
	DeleteJournal(ctx context.Context, journalID int64) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
