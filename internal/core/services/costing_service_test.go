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

func taggedLine(line domain.JournalLine, costCenterID string) domain.JournalLine {
	line.CostCenterID = &costCenterID
	return line
}

func TestMirrorExpenseLines(t *testing.T) {
	revenue := domain.AccountRef{Kind: domain.KindRevenue, AccountID: "rev-1"}
	expense := domain.AccountRef{Kind: domain.KindExpense, AccountID: "exp-1"}
	customer := domain.AccountRef{Kind: domain.KindCustomer, AccountID: "cust-1"}

	mirror := debitLine(expense, decimal.NewFromInt(1000), decimal.NewFromInt(1000), "SAR")
	genuine := debitLine(expense, decimal.NewFromInt(250), decimal.NewFromInt(250), "SAR")

	entry := entryWithLines(
		debitLine(customer, decimal.NewFromInt(1250), decimal.NewFromInt(1250), "SAR"),
		creditLine(revenue, decimal.NewFromInt(1000), decimal.NewFromInt(1000), "SAR"),
		mirror,
		genuine,
		creditLine(domain.AccountRef{Kind: domain.KindSupplier, AccountID: "supp-1"}, decimal.NewFromInt(1250), decimal.NewFromInt(1250), "SAR"),
	)

	excluded := services.MirrorExpenseLines(entry)

	assert.Contains(t, excluded, mirror.LineID)
	assert.NotContains(t, excluded, genuine.LineID)
	assert.Len(t, excluded, 1)
}

func TestMirrorExpenseLines_NoRevenueNoMatch(t *testing.T) {
	expense := domain.AccountRef{Kind: domain.KindExpense, AccountID: "exp-1"}

	entry := entryWithLines(
		debitLine(expense, decimal.NewFromInt(100), decimal.NewFromInt(100), "SAR"),
		creditLine(domain.AccountRef{Kind: domain.KindTreasury, AccountID: "cash-1"}, decimal.NewFromInt(100), decimal.NewFromInt(100), "SAR"),
	)

	assert.Empty(t, services.MirrorExpenseLines(entry))
}

func TestFilterForCostAnalysis_KeepsLedgerUntouched(t *testing.T) {
	revenue := domain.AccountRef{Kind: domain.KindRevenue, AccountID: "rev-1"}
	expense := domain.AccountRef{Kind: domain.KindExpense, AccountID: "exp-1"}

	entry := entryWithLines(
		creditLine(revenue, decimal.NewFromInt(1000), decimal.NewFromInt(1000), "SAR"),
		debitLine(expense, decimal.NewFromInt(1000), decimal.NewFromInt(1000), "SAR"),
	)

	kept := services.FilterForCostAnalysis(entry)

	require.Len(t, kept, 1)
	assert.Equal(t, revenue, kept[0].Account)
	// The entry itself still carries both lines for ledger replay.
	assert.Len(t, entry.Lines, 2)
}

func TestCostCenterSummary_ExcludesMirrorCost(t *testing.T) {
	ctx := context.Background()
	costCenter := uuid.NewString()

	revenue := domain.AccountRef{Kind: domain.KindRevenue, AccountID: "rev-1"}
	expense := domain.AccountRef{Kind: domain.KindExpense, AccountID: "exp-1"}
	customer := domain.AccountRef{Kind: domain.KindCustomer, AccountID: "cust-1"}

	// Sale of 1000 with a mirrored pass-through cost of 1000 and a genuine
	// cost of 300, all tagged to the same cost center.
	entry := entryWithLines(
		debitLine(customer, decimal.NewFromInt(1000), decimal.NewFromInt(1000), "SAR"),
		taggedLine(creditLine(revenue, decimal.NewFromInt(1000), decimal.NewFromInt(1000), "SAR"), costCenter),
		taggedLine(debitLine(expense, decimal.NewFromInt(1000), decimal.NewFromInt(1000), "SAR"), costCenter),
		taggedLine(debitLine(expense, decimal.NewFromInt(300), decimal.NewFromInt(300), "SAR"), costCenter),
		creditLine(domain.AccountRef{Kind: domain.KindSupplier, AccountID: "supp-1"}, decimal.NewFromInt(1300), decimal.NewFromInt(1300), "SAR"),
	)

	journalRepo := new(MockJournalRepository)
	journalRepo.On("FindAllEntries", ctx).Return([]domain.JournalEntry{entry}, nil)

	svc := services.NewCostingService(journalRepo)
	summary, err := svc.CostCenterSummary(ctx, costCenter)

	require.NoError(t, err)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.TotalCost.Equal(decimal.NewFromInt(300)))
	assert.True(t, summary.ExcludedMirrorCost.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.NetResult.Equal(decimal.NewFromInt(700)))
}

func TestCostCenterSummary_OtherCostCentersIgnored(t *testing.T) {
	ctx := context.Background()

	revenue := domain.AccountRef{Kind: domain.KindRevenue, AccountID: "rev-1"}

	entry := entryWithLines(
		taggedLine(creditLine(revenue, decimal.NewFromInt(500), decimal.NewFromInt(500), "SAR"), "hajj-2026"),
		debitLine(domain.AccountRef{Kind: domain.KindCustomer, AccountID: "cust-1"}, decimal.NewFromInt(500), decimal.NewFromInt(500), "SAR"),
	)

	journalRepo := new(MockJournalRepository)
	journalRepo.On("FindAllEntries", ctx).Return([]domain.JournalEntry{entry}, nil)

	svc := services.NewCostingService(journalRepo)
	summary, err := svc.CostCenterSummary(ctx, "umrah-2026")

	require.NoError(t, err)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.True(t, summary.TotalCost.IsZero())
}
