package dto

import "github.com/shopspring/decimal"

// CostCenterSummaryResponse is the per-cost-center profitability view.
// Mirror costs are excluded from TotalCost but reported separately; the raw
// ledger balances are unaffected by this filtering.
type CostCenterSummaryResponse struct {
	CostCenterID       string          `json:"costCenterID"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	TotalCost          decimal.Decimal `json:"totalCost"`
	ExcludedMirrorCost decimal.Decimal `json:"excludedMirrorCost"`
	NetResult          decimal.Decimal `json:"netResult"`
}
