package dto

import (
	"time"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineSide is the posting side requested for a line.
type LineSide string

const (
	SideDebit  LineSide = "DEBIT"
	SideCredit LineSide = "CREDIT"
)

// CreateLineRequest is one requested posting. Amount is expressed in the
// line's currency; the service locks the exchange rate and derives the
// base-currency amount at commit time.
type CreateLineRequest struct {
	Kind         domain.AccountKind `json:"kind" binding:"required"`
	AccountID    string             `json:"accountID" binding:"required"`
	Side         LineSide           `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount       decimal.Decimal    `json:"amount" binding:"required,gt=0"`
	CurrencyCode string             `json:"currencyCode" binding:"required"`
	CostCenterID *string            `json:"costCenterID,omitempty"`
	ProgramID    *string            `json:"programID,omitempty"`
	ComponentID  *string            `json:"componentID,omitempty"`
}

// CreateEntryRequest is the commit payload: a balanced set of lines.
type CreateEntryRequest struct {
	Date        time.Time           `json:"date" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Lines       []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest replaces all of an entry's lines atomically. Rates are
// re-resolved as if the lines were new postings.
type UpdateEntryRequest struct {
	Date        time.Time           `json:"date" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Lines       []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// LineResponse is the API representation of a locked journal line.
type LineResponse struct {
	LineID         string          `json:"lineID"`
	Kind           string          `json:"kind"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	CurrencyCode   string          `json:"currencyCode"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	ProgramID      *string         `json:"programID,omitempty"`
	ComponentID    *string         `json:"componentID,omitempty"`
}

// EntryResponse is the API representation of a committed journal entry.
type EntryResponse struct {
	EntryID     string         `json:"entryID"`
	RefNo       int64          `json:"refNo"`
	Date        time.Time      `json:"date"`
	Description string         `json:"description"`
	Lines       []LineResponse `json:"lines"`
	CreatedAt   time.Time      `json:"createdAt"`
	CreatedBy   string         `json:"createdBy"`
}

// ListEntriesParams carries pagination inputs for entry listing. The cursor
// is opaque to clients.
type ListEntriesParams struct {
	Limit  int    `form:"limit"`
	Cursor string `form:"cursor"`
}

// ListEntriesResponse is a page of entries plus the cursor for the next one.
type ListEntriesResponse struct {
	Entries    []EntryResponse `json:"entries"`
	NextCursor *string         `json:"nextCursor,omitempty"`
}

// ToLineResponse converts a domain line to its API representation.
func ToLineResponse(l domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:         l.LineID,
		Kind:           string(l.Account.Kind),
		AccountID:      l.Account.AccountID,
		Debit:          l.Debit,
		Credit:         l.Credit,
		CurrencyCode:   l.CurrencyCode,
		ExchangeRate:   l.ExchangeRate,
		OriginalAmount: l.OriginalAmount,
		CostCenterID:   l.CostCenterID,
		ProgramID:      l.ProgramID,
		ComponentID:    l.ComponentID,
	}
}

// ToEntryResponse converts a domain entry to its API representation.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = ToLineResponse(l)
	}
	return EntryResponse{
		EntryID:     e.EntryID,
		RefNo:       e.RefNo,
		Date:        e.EntryDate,
		Description: e.Description,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}
