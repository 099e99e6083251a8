package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is a single posting within an entry: one account, one side,
// one currency. ExchangeRate and OriginalAmount are locked when the line is
// posted and are never recomputed, so historical reports stay stable when
// the currency table moves.
type JournalLine struct {
	LineID  string     `json:"lineID"`  // Primary key (UUID)
	EntryID string     `json:"entryID"` // FK -> journal_entries.entry_id
	Account AccountRef `json:"account"`
	// Exactly one of Debit/Credit is non-zero, both in base currency.
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	CurrencyCode   string          `json:"currencyCode"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`   // Locked at posting
	OriginalAmount decimal.Decimal `json:"originalAmount"` // Locked at posting
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	ProgramID      *string         `json:"programID,omitempty"`
	ComponentID    *string         `json:"componentID,omitempty"`
}

// IsDebit reports whether the line posts to the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// BaseAmount returns the line's base-currency amount regardless of side.
func (l JournalLine) BaseAmount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// JournalEntry is an atomic, balanced set of journal lines. Entries are
// immutable once committed; the only mutation path replaces all lines at
// once (delete-and-repost), and entries are destroyed only by the period
// closing truncation.
type JournalEntry struct {
	EntryID     string        `json:"entryID"` // Primary key (UUID)
	RefNo       int64         `json:"refNo"`   // Assigned once at commit, never reused
	EntryDate   time.Time     `json:"entryDate"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	AuditFields
}

// TotalDebits sums the base-currency debit side of the entry.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredits sums the base-currency credit side of the entry.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}
