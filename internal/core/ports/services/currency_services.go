package services

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
)

// CurrencySvcFacade manages the currency table and resolves posting rates.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// UpdateRate changes a currency's rate for future postings; lines
	// already posted keep their locked rates.
	UpdateRate(ctx context.Context, code string, req dto.UpdateRateRequest, userID string) (*domain.Currency, error)

	// ResolveRate returns the current rate for a code. Unknown codes fall
	// back to the base rate of 1; this is a named recovery rule, not an
	// error.
	ResolveRate(ctx context.Context, code string) domain.Currency
}
