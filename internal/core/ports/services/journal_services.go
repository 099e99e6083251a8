package services

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
)

// JournalSvcFacade defines the command API of the journal store. All
// validation errors are returned synchronously and nothing is partially
// applied.
type JournalSvcFacade interface {
	// CommitEntry validates, locks currency rates, assigns a reference
	// number and appends the entry atomically.
	CommitEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// EditEntry replaces all of an entry's lines atomically, re-resolving
	// rates as if the lines were new postings.
	EditEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries ordered by reference number.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
