package dto

import (
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse is one account's projected balance.
type BalanceResponse struct {
	Kind      string          `json:"kind"`
	AccountID string          `json:"accountID"`
	Base      decimal.Decimal `json:"base"`
	Original  decimal.Decimal `json:"original"`
	Currency  string          `json:"currency"`
}

// ProjectionResponse is the full projected balance map plus any line refs
// that were skipped because they did not resolve to an account.
type ProjectionResponse struct {
	Balances    []BalanceResponse `json:"balances"`
	SkippedRefs []string          `json:"skippedRefs,omitempty"`
}

// ToBalanceResponse converts one projected balance to its API shape.
func ToBalanceResponse(ref domain.AccountRef, b domain.Balance) BalanceResponse {
	return BalanceResponse{
		Kind:      string(ref.Kind),
		AccountID: ref.AccountID,
		Base:      b.Base,
		Original:  b.Original,
		Currency:  b.Currency,
	}
}
