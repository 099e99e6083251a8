package repositories

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
)

// JournalReader defines read operations for the journal store.
type JournalReader interface {
	// FindEntryByID retrieves an entry with all of its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entries ordered by reference number, starting
	// after afterRefNo (0 for the beginning), up to limit.
	ListEntries(ctx context.Context, limit int, afterRefNo int64) ([]domain.JournalEntry, error)

	// FindAllEntries retrieves every entry of the current period with lines.
	// The balance projector and the closing engine replay this snapshot.
	FindAllEntries(ctx context.Context) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for the journal store.
type JournalWriter interface {
	// NextRefNo reserves the next reference number. Numbers are assigned
	// once and never reused, even across period truncations.
	NextRefNo(ctx context.Context) (int64, error)

	// SaveEntry appends an entry with its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceEntryLines atomically swaps all of an entry's lines and updates
	// its header fields. This is the delete-and-repost edit path.
	ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal repository capabilities.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
