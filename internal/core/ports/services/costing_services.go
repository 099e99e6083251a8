package services

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
)

// CostingSvcFacade is the reporting-only cost-center profitability view.
// It never affects ledger balances.
type CostingSvcFacade interface {
	// CostCenterSummary aggregates revenue and cost for one cost center,
	// excluding expense lines that mirror a revenue line in the same entry.
	CostCenterSummary(ctx context.Context, costCenterID string) (*dto.CostCenterSummaryResponse, error)
}
