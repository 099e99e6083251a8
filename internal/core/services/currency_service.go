package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// currencyService manages the currency table and resolves posting rates.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	baseCurrency string
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, baseCurrency string) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo: currencyRepo,
		baseCurrency: baseCurrency,
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a currency with its rate to base.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RateToBase.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate to base must be positive", apperrors.ErrValidation)
	}

	if existing, err := s.currencyRepo.FindCurrencyByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency %s: %w", req.Code, err)
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		Code:       req.Code,
		Name:       req.Name,
		RateToBase: req.RateToBase,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		logger.Error("Failed to save currency", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}

	logger.Info("Currency created", slog.String("code", currency.Code))
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", code, err)
	}
	return currency, nil
}

// ListCurrencies retrieves all currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

// UpdateRate changes a currency's rate for future postings. The old rate is
// retained as PreviousRate; lines already posted keep their locked rates.
func (s *currencyService) UpdateRate(ctx context.Context, code string, req dto.UpdateRateRequest, userID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RateToBase.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate to base must be positive", apperrors.ErrValidation)
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency %s: %w", code, err)
	}

	previous := currency.RateToBase
	currency.PreviousRate = &previous
	currency.RateToBase = req.RateToBase
	currency.LastUpdatedAt = time.Now().UTC()
	currency.LastUpdatedBy = userID

	if err := s.currencyRepo.UpdateRate(ctx, *currency); err != nil {
		logger.Error("Failed to update currency rate", slog.String("code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update currency rate: %w", err)
	}

	logger.Info("Currency rate updated",
		slog.String("code", code),
		slog.String("previous_rate", previous.String()),
		slog.String("new_rate", currency.RateToBase.String()))
	return currency, nil
}

// ResolveRate returns the current table rate for a code. The base currency
// and unknown codes resolve to rate 1: an unknown code is a recoverable
// condition, logged and defaulted, never a posting failure.
func (s *currencyService) ResolveRate(ctx context.Context, code string) domain.Currency {
	if code == "" || code == s.baseCurrency {
		return domain.Currency{Code: s.baseCurrency, RateToBase: domain.BaseCurrencyRate}
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Unknown currency, falling back to base rate",
			slog.String("code", code), slog.String("error", err.Error()))
		return domain.Currency{Code: code, RateToBase: domain.BaseCurrencyRate}
	}
	return *currency
}
