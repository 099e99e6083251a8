package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
)

func TestCreateCurrency(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCurrencyRepository)
	repo.On("FindCurrencyByCode", ctx, "USD").Return(nil, apperrors.ErrNotFound)
	repo.On("SaveCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Code == "USD" && c.RateToBase.Equal(decimal.NewFromFloat(3.75)) && c.CreatedBy == "user-1"
	})).Return(nil)

	svc := services.NewCurrencyService(repo, "SAR")
	currency, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		Code:       "USD",
		Name:       "US Dollar",
		RateToBase: decimal.NewFromFloat(3.75),
	}, "user-1")

	require.NoError(t, err)
	assert.Equal(t, "USD", currency.Code)
	repo.AssertExpectations(t)
}

func TestCreateCurrency_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	existing := baseRate("USD")

	repo := new(MockCurrencyRepository)
	repo.On("FindCurrencyByCode", ctx, "USD").Return(&existing, nil)

	svc := services.NewCurrencyService(repo, "SAR")
	_, err := svc.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		Code:       "USD",
		Name:       "US Dollar",
		RateToBase: decimal.NewFromFloat(3.75),
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	repo.AssertNotCalled(t, "SaveCurrency", mock.Anything, mock.Anything)
}

func TestCreateCurrency_NonPositiveRateRejected(t *testing.T) {
	svc := services.NewCurrencyService(new(MockCurrencyRepository), "SAR")

	_, err := svc.CreateCurrency(context.Background(), dto.CreateCurrencyRequest{
		Code:       "USD",
		Name:       "US Dollar",
		RateToBase: decimal.Zero,
	}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateRate_KeepsPreviousRate(t *testing.T) {
	ctx := context.Background()
	stored := domain.Currency{Code: "USD", RateToBase: decimal.NewFromFloat(3.75)}

	repo := new(MockCurrencyRepository)
	repo.On("FindCurrencyByCode", ctx, "USD").Return(&stored, nil)
	repo.On("UpdateRate", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.RateToBase.Equal(decimal.NewFromFloat(3.80)) &&
			c.PreviousRate != nil && c.PreviousRate.Equal(decimal.NewFromFloat(3.75))
	})).Return(nil)

	svc := services.NewCurrencyService(repo, "SAR")
	updated, err := svc.UpdateRate(ctx, "USD", dto.UpdateRateRequest{
		RateToBase: decimal.NewFromFloat(3.80),
	}, "user-1")

	require.NoError(t, err)
	assert.True(t, updated.RateToBase.Equal(decimal.NewFromFloat(3.80)))
	require.NotNil(t, updated.PreviousRate)
	assert.True(t, updated.PreviousRate.Equal(decimal.NewFromFloat(3.75)))
	repo.AssertExpectations(t)
}

func TestResolveRate(t *testing.T) {
	ctx := context.Background()
	stored := domain.Currency{Code: "USD", RateToBase: decimal.NewFromFloat(3.75)}

	repo := new(MockCurrencyRepository)
	repo.On("FindCurrencyByCode", ctx, "USD").Return(&stored, nil)
	repo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound)

	svc := services.NewCurrencyService(repo, "SAR")

	// Base currency and the empty code short-circuit to rate 1.
	assert.True(t, svc.ResolveRate(ctx, "").RateToBase.Equal(decimal.NewFromInt(1)))
	assert.True(t, svc.ResolveRate(ctx, "SAR").RateToBase.Equal(decimal.NewFromInt(1)))

	assert.True(t, svc.ResolveRate(ctx, "USD").RateToBase.Equal(decimal.NewFromFloat(3.75)))

	// An unknown code falls back to rate 1 instead of failing the posting.
	fallback := svc.ResolveRate(ctx, "XXX")
	assert.Equal(t, "XXX", fallback.Code)
	assert.True(t, fallback.RateToBase.Equal(decimal.NewFromInt(1)))
}
