package dto

import (
	"time"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReviewSnapshotResponse presents the frozen balances and net profit of a
// closing review to the caller choosing a distribution mode.
type ReviewSnapshotResponse struct {
	Balances  []BalanceResponse `json:"balances"`
	NetProfit decimal.Decimal   `json:"netProfit"`
	StartedAt time.Time         `json:"startedAt"`
	StartedBy string            `json:"startedBy"`
}

// FinalizeClosingRequest commits the REVIEW -> CLOSED transition.
// ManualDeltas maps partner account IDs to profit deltas and is required for
// MANUAL mode only; the deltas must sum to the snapshot's net profit.
type FinalizeClosingRequest struct {
	Mode         domain.DistributionMode    `json:"mode" binding:"required,oneof=RETAINED EQUALLY MANUAL"`
	ManualDeltas map[string]decimal.Decimal `json:"manualDeltas,omitempty"`
}

// ClosingStateResponse reports the engine's current state.
type ClosingStateResponse struct {
	State string `json:"state"`
}

// ToReviewSnapshotResponse converts a domain snapshot to its API shape.
func ToReviewSnapshotResponse(s *domain.ReviewSnapshot) ReviewSnapshotResponse {
	balances := make([]BalanceResponse, 0, len(s.Balances))
	for ref, b := range s.Balances {
		balances = append(balances, ToBalanceResponse(ref, b))
	}
	return ReviewSnapshotResponse{
		Balances:  balances,
		NetProfit: s.NetProfit,
		StartedAt: s.StartedAt,
		StartedBy: s.StartedBy,
	}
}
