package dto

import (
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest registers a currency with its rate to base.
type CreateCurrencyRequest struct {
	Code       string          `json:"code" binding:"required,alpha,len=3"`
	Name       string          `json:"name" binding:"required"`
	RateToBase decimal.Decimal `json:"rateToBase" binding:"required,gt=0"`
}

// UpdateRateRequest changes a currency's rate for future postings only.
type UpdateRateRequest struct {
	RateToBase decimal.Decimal `json:"rateToBase" binding:"required,gt=0"`
}

// CurrencyResponse is the API representation of a currency.
type CurrencyResponse struct {
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	RateToBase   decimal.Decimal  `json:"rateToBase"`
	PreviousRate *decimal.Decimal `json:"previousRate,omitempty"`
}

// ToCurrencyResponse converts a domain currency to its API representation.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:         c.Code,
		Name:         c.Name,
		RateToBase:   c.RateToBase,
		PreviousRate: c.PreviousRate,
	}
}
