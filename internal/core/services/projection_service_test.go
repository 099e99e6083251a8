package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/services"
)

func entryWithLines(lines ...domain.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{EntryID: uuid.NewString(), Lines: lines}
}

func debitLine(ref domain.AccountRef, amount, original decimal.Decimal, currency string) domain.JournalLine {
	return domain.JournalLine{
		LineID:         uuid.NewString(),
		Account:        ref,
		Debit:          amount,
		CurrencyCode:   currency,
		OriginalAmount: original,
	}
}

func creditLine(ref domain.AccountRef, amount, original decimal.Decimal, currency string) domain.JournalLine {
	return domain.JournalLine{
		LineID:         uuid.NewString(),
		Account:        ref,
		Credit:         amount,
		CurrencyCode:   currency,
		OriginalAmount: original,
	}
}

func TestProjectBalances_OpeningPlusReplay(t *testing.T) {
	customer := domain.Account{
		AccountID:              "cust-1",
		Kind:                   domain.KindCustomer,
		OpeningBalanceBase:     decimal.NewFromInt(1000),
		OpeningBalanceOriginal: decimal.NewFromInt(1000),
		OpeningBalanceCurrency: "SAR",
	}
	treasury := domain.Account{
		AccountID:              "cash-1",
		Kind:                   domain.KindTreasury,
		OpeningBalanceBase:     decimal.NewFromInt(500),
		OpeningBalanceOriginal: decimal.NewFromInt(500),
		OpeningBalanceCurrency: "SAR",
	}

	// Customer pays 300 into treasury: credit customer, debit treasury.
	entry := entryWithLines(
		creditLine(customer.Ref(), decimal.NewFromInt(300), decimal.NewFromInt(300), "SAR"),
		debitLine(treasury.Ref(), decimal.NewFromInt(300), decimal.NewFromInt(300), "SAR"),
	)

	balances, skipped := services.ProjectBalances(
		[]domain.Account{customer, treasury},
		[]domain.JournalEntry{entry},
		"SAR",
	)

	require.Empty(t, skipped)
	assert.True(t, balances[customer.Ref()].Base.Equal(decimal.NewFromInt(700)))
	assert.True(t, balances[treasury.Ref()].Base.Equal(decimal.NewFromInt(800)))
}

func TestProjectBalances_OrderIndependent(t *testing.T) {
	account := domain.Account{
		AccountID:              "cust-1",
		Kind:                   domain.KindCustomer,
		OpeningBalanceBase:     decimal.Zero,
		OpeningBalanceCurrency: "SAR",
	}
	revenue := domain.Account{
		AccountID:              "rev-1",
		Kind:                   domain.KindRevenue,
		OpeningBalanceBase:     decimal.Zero,
		OpeningBalanceCurrency: "SAR",
	}

	first := entryWithLines(
		debitLine(account.Ref(), decimal.NewFromInt(100), decimal.NewFromInt(100), "SAR"),
		creditLine(revenue.Ref(), decimal.NewFromInt(100), decimal.NewFromInt(100), "SAR"),
	)
	second := entryWithLines(
		debitLine(account.Ref(), decimal.NewFromInt(250), decimal.NewFromInt(250), "SAR"),
		creditLine(revenue.Ref(), decimal.NewFromInt(250), decimal.NewFromInt(250), "SAR"),
	)

	forward, _ := services.ProjectBalances([]domain.Account{account, revenue}, []domain.JournalEntry{first, second}, "SAR")
	reversed, _ := services.ProjectBalances([]domain.Account{account, revenue}, []domain.JournalEntry{second, first}, "SAR")

	assert.True(t, forward[account.Ref()].Base.Equal(reversed[account.Ref()].Base))
	assert.True(t, forward[revenue.Ref()].Base.Equal(reversed[revenue.Ref()].Base))
	assert.True(t, forward[account.Ref()].Base.Equal(decimal.NewFromInt(350)))
}

func TestProjectBalances_CreditNormalSigns(t *testing.T) {
	supplier := domain.Account{
		AccountID:              "supp-1",
		Kind:                   domain.KindSupplier,
		OpeningBalanceBase:     decimal.Zero,
		OpeningBalanceCurrency: "SAR",
	}
	expense := domain.Account{
		AccountID:              "exp-1",
		Kind:                   domain.KindExpense,
		OpeningBalanceBase:     decimal.Zero,
		OpeningBalanceCurrency: "SAR",
	}

	// Hotel invoice: supplier balance grows on credit, expense on debit.
	entry := entryWithLines(
		debitLine(expense.Ref(), decimal.NewFromInt(400), decimal.NewFromInt(400), "SAR"),
		creditLine(supplier.Ref(), decimal.NewFromInt(400), decimal.NewFromInt(400), "SAR"),
	)

	balances, _ := services.ProjectBalances([]domain.Account{supplier, expense}, []domain.JournalEntry{entry}, "SAR")

	assert.True(t, balances[supplier.Ref()].Base.Equal(decimal.NewFromInt(400)))
	assert.True(t, balances[expense.Ref()].Base.Equal(decimal.NewFromInt(400)))
}

func TestProjectBalances_SkipsUnresolvedRefs(t *testing.T) {
	account := domain.Account{
		AccountID:              "cust-1",
		Kind:                   domain.KindCustomer,
		OpeningBalanceBase:     decimal.NewFromInt(50),
		OpeningBalanceCurrency: "SAR",
	}
	ghost := domain.AccountRef{Kind: domain.KindSupplier, AccountID: "deleted"}

	entry := entryWithLines(
		debitLine(account.Ref(), decimal.NewFromInt(10), decimal.NewFromInt(10), "SAR"),
		creditLine(ghost, decimal.NewFromInt(10), decimal.NewFromInt(10), "SAR"),
	)

	balances, skipped := services.ProjectBalances([]domain.Account{account}, []domain.JournalEntry{entry, entry}, "SAR")

	require.Len(t, skipped, 1) // Reported once despite two occurrences
	assert.Equal(t, ghost, skipped[0])
	assert.True(t, balances[account.Ref()].Base.Equal(decimal.NewFromInt(70)))
}

func TestProjectBalances_ZeroOriginalForcesBaseToZero(t *testing.T) {
	account := domain.Account{
		AccountID:              "supp-usd",
		Kind:                   domain.KindSupplier,
		OpeningBalanceBase:     decimal.Zero,
		OpeningBalanceOriginal: decimal.Zero,
		OpeningBalanceCurrency: "USD",
	}
	cash := domain.Account{
		AccountID:              "cash-1",
		Kind:                   domain.KindTreasury,
		OpeningBalanceBase:     decimal.NewFromInt(10000),
		OpeningBalanceOriginal: decimal.NewFromInt(10000),
		OpeningBalanceCurrency: "SAR",
	}

	// Invoice posted at 3.75, settled at 3.80: the USD position nets to
	// zero while the base drift would be -5.
	invoice := entryWithLines(
		creditLine(account.Ref(), decimal.NewFromInt(375), decimal.NewFromInt(100), "USD"),
		debitLine(cash.Ref(), decimal.NewFromInt(375), decimal.NewFromInt(375), "SAR"),
	)
	settlement := entryWithLines(
		debitLine(account.Ref(), decimal.NewFromInt(380), decimal.NewFromInt(100), "USD"),
		creditLine(cash.Ref(), decimal.NewFromInt(380), decimal.NewFromInt(380), "SAR"),
	)

	balances, _ := services.ProjectBalances([]domain.Account{account, cash}, []domain.JournalEntry{invoice, settlement}, "SAR")

	balance := balances[account.Ref()]
	assert.True(t, balance.Original.IsZero())
	assert.True(t, balance.Base.IsZero(), "flat original position must clear residual base drift, got %s", balance.Base)
}

func TestProjectBalances_BaseCurrencyAccountKeepsDrift(t *testing.T) {
	// The zero-original rule only applies to foreign-currency accounts.
	account := domain.Account{
		AccountID:              "cash-1",
		Kind:                   domain.KindTreasury,
		OpeningBalanceBase:     decimal.NewFromInt(5),
		OpeningBalanceOriginal: decimal.Zero,
		OpeningBalanceCurrency: "SAR",
	}

	balances, _ := services.ProjectBalances([]domain.Account{account}, nil, "SAR")

	assert.True(t, balances[account.Ref()].Base.Equal(decimal.NewFromInt(5)))
}

func TestProjectionService_ProjectAccount(t *testing.T) {
	ctx := context.Background()

	account := domain.Account{
		AccountID:              "cust-1",
		Kind:                   domain.KindCustomer,
		OpeningBalanceBase:     decimal.NewFromInt(120),
		OpeningBalanceOriginal: decimal.NewFromInt(120),
		OpeningBalanceCurrency: "SAR",
	}

	accountRepo := new(MockAccountRepository)
	journalRepo := new(MockJournalRepository)
	accountRepo.On("ListAccounts", ctx, (*domain.AccountKind)(nil)).Return([]domain.Account{account}, nil)
	journalRepo.On("FindAllEntries", ctx).Return([]domain.JournalEntry{}, nil)

	svc := services.NewProjectionService(accountRepo, journalRepo, nil, "SAR")

	balance, err := svc.ProjectAccount(ctx, account.Ref())
	require.NoError(t, err)
	assert.True(t, balance.Base.Equal(decimal.NewFromInt(120)))

	_, err = svc.ProjectAccount(ctx, domain.AccountRef{Kind: domain.KindCustomer, AccountID: "missing"})
	assert.Error(t, err)
}
