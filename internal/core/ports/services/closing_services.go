package services

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClosingSvcFacade is the two-phase period-closing engine:
// OPEN -> REVIEW -> CLOSED. While a review is active the journal is frozen;
// a finalized closing cannot be undone through this API.
type ClosingSvcFacade interface {
	// StartClosing freezes the journal, computes final balances and net
	// profit, and moves the engine to REVIEW.
	StartClosing(ctx context.Context, userID string) (*domain.ReviewSnapshot, error)

	// FinalizeClosing distributes the profit, rolls balances into the next
	// period's openings and truncates the journal, all-or-nothing.
	FinalizeClosing(ctx context.Context, mode domain.DistributionMode, manualDeltas map[string]decimal.Decimal, userID string) error

	// CancelClosing abandons an active review without effect.
	CancelClosing(ctx context.Context, userID string) error

	// State reports the engine's current state.
	State() domain.ClosingState
}
