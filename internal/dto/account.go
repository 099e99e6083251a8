package dto

import (
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest opens a new ledger account with its opening position.
type CreateAccountRequest struct {
	Kind                   domain.AccountKind `json:"kind" binding:"required"`
	Name                   string             `json:"name" binding:"required"`
	OpeningBalanceBase     decimal.Decimal    `json:"openingBalanceBase"`
	OpeningBalanceOriginal decimal.Decimal    `json:"openingBalanceOriginal"`
	OpeningBalanceCurrency string             `json:"openingBalanceCurrency"`
}

// CorrectOpeningBalanceRequest adjusts an account's opening base balance.
// The correction is applied by posting a two-line correcting entry, never by
// editing the stored balance directly.
type CorrectOpeningBalanceRequest struct {
	NewOpeningBase decimal.Decimal `json:"newOpeningBase" binding:"required"`
	Reason         string          `json:"reason" binding:"required"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID              string          `json:"accountID"`
	Kind                   string          `json:"kind"`
	Name                   string          `json:"name"`
	OpeningBalanceBase     decimal.Decimal `json:"openingBalanceBase"`
	OpeningBalanceOriginal decimal.Decimal `json:"openingBalanceOriginal"`
	OpeningBalanceCurrency string          `json:"openingBalanceCurrency"`
	IsActive               bool            `json:"isActive"`
	IsRetained             bool            `json:"isRetained"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:              a.AccountID,
		Kind:                   string(a.Kind),
		Name:                   a.Name,
		OpeningBalanceBase:     a.OpeningBalanceBase,
		OpeningBalanceOriginal: a.OpeningBalanceOriginal,
		OpeningBalanceCurrency: a.OpeningBalanceCurrency,
		IsActive:               a.IsActive,
		IsRetained:             a.IsRetained,
	}
}
