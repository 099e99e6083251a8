package repositories

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
)

// CurrencyReader defines read operations for the currency table.
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a currency by its code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for the currency table.
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateRate sets a currency's rate to base, retaining the previous
	// rate. Already-posted lines keep their locked rates.
	UpdateRate(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency repository capabilities.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
