package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
)

// MirrorExpenseLines returns, for one entry, the line IDs of expense debits
// that exactly mirror a revenue credit in the same entry. Such postings
// record a sale and its pass-through cost at the same figure; counting both
// would double-count in profitability views. Matching never crosses entry
// boundaries and never pairs expense-vs-expense or revenue-vs-revenue.
func MirrorExpenseLines(entry domain.JournalEntry) map[string]struct{} {
	var revenueCredits []decimal.Decimal
	for _, line := range entry.Lines {
		if line.Account.Kind == domain.KindRevenue && line.Credit.IsPositive() {
			revenueCredits = append(revenueCredits, line.Credit)
		}
	}

	excluded := make(map[string]struct{})
	if len(revenueCredits) == 0 {
		return excluded
	}

	for _, line := range entry.Lines {
		if line.Account.Kind != domain.KindExpense || !line.Debit.IsPositive() {
			continue
		}
		for _, credit := range revenueCredits {
			if line.Debit.Equal(credit) {
				excluded[line.LineID] = struct{}{}
				break
			}
		}
	}
	return excluded
}

// FilterForCostAnalysis returns the entry's lines with mirrored expense
// debits removed. Display-layer only: the excluded lines still count in the
// raw ledger balances.
func FilterForCostAnalysis(entry domain.JournalEntry) []domain.JournalLine {
	excluded := MirrorExpenseLines(entry)
	kept := make([]domain.JournalLine, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		if _, skip := excluded[line.LineID]; skip {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// costingService aggregates per-cost-center profitability over the journal.
type costingService struct {
	journalRepo portsrepo.JournalReader
}

// NewCostingService creates a new CostingService.
func NewCostingService(journalRepo portsrepo.JournalReader) portssvc.CostingSvcFacade {
	return &costingService{journalRepo: journalRepo}
}

var _ portssvc.CostingSvcFacade = (*costingService)(nil)

// CostCenterSummary totals revenue credits and expense debits tagged with
// the cost center, excluding mirrored expense lines entry by entry.
func (s *costingService) CostCenterSummary(ctx context.Context, costCenterID string) (*dto.CostCenterSummaryResponse, error) {
	if costCenterID == "" {
		return nil, fmt.Errorf("%w: cost center ID is required", apperrors.ErrValidation)
	}

	entries, err := s.journalRepo.FindAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for cost analysis: %w", err)
	}

	summary := &dto.CostCenterSummaryResponse{
		CostCenterID:       costCenterID,
		TotalRevenue:       decimal.Zero,
		TotalCost:          decimal.Zero,
		ExcludedMirrorCost: decimal.Zero,
	}

	for _, entry := range entries {
		// Mirror matching considers the whole entry, not just lines tagged
		// with this cost center.
		excluded := MirrorExpenseLines(entry)

		for _, line := range entry.Lines {
			if line.CostCenterID == nil || *line.CostCenterID != costCenterID {
				continue
			}
			switch line.Account.Kind {
			case domain.KindRevenue:
				summary.TotalRevenue = summary.TotalRevenue.Add(line.Credit).Sub(line.Debit)
			case domain.KindExpense:
				if _, skip := excluded[line.LineID]; skip {
					summary.ExcludedMirrorCost = summary.ExcludedMirrorCost.Add(line.Debit)
					continue
				}
				summary.TotalCost = summary.TotalCost.Add(line.Debit).Sub(line.Credit)
			}
		}
	}

	summary.NetResult = summary.TotalRevenue.Sub(summary.TotalCost)
	return summary, nil
}
