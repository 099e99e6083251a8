package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingState is the period-closing state machine. CLOSED is terminal for
// the period being closed; the engine re-enters OPEN for the next period.
type ClosingState string

const (
	ClosingOpen   ClosingState = "OPEN"
	ClosingReview ClosingState = "REVIEW"
	ClosingClosed ClosingState = "CLOSED"
)

// DistributionMode selects how the period's net profit is distributed to
// partner accounts when a closing is finalized.
type DistributionMode string

const (
	// DistributeRetained adds the whole profit to the retained-earnings
	// partner pseudo-account.
	DistributeRetained DistributionMode = "RETAINED"
	// DistributeEqually splits the profit over all real partner accounts.
	DistributeEqually DistributionMode = "EQUALLY"
	// DistributeManual applies caller-supplied per-partner deltas, which
	// must sum to the net profit exactly.
	DistributeManual DistributionMode = "MANUAL"
)

// IsValid reports whether m is a known distribution mode.
func (m DistributionMode) IsValid() bool {
	switch m {
	case DistributeRetained, DistributeEqually, DistributeManual:
		return true
	}
	return false
}

// ReviewSnapshot is the frozen result of the OPEN -> REVIEW transition:
// every account's final balance and the period's net profit, presented to
// the caller so the distribution choice is an explicit state rather than a
// confirmation dialog.
type ReviewSnapshot struct {
	Balances  map[AccountRef]Balance `json:"balances"`
	NetProfit decimal.Decimal        `json:"netProfit"`
	StartedAt time.Time              `json:"startedAt"`
	StartedBy string                 `json:"startedBy"`
}

// OpeningUpdate carries one account's next-period opening position, written
// when a closing is finalized.
type OpeningUpdate struct {
	AccountID       string
	OpeningBase     decimal.Decimal
	OpeningOriginal decimal.Decimal
	OpeningCurrency string
}
