package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
)

// closingService is the one-shot period-closing engine. A closing walks
// OPEN -> REVIEW -> CLOSED: review freezes the journal and snapshots final
// balances; finalize distributes profit, rewrites opening balances and
// truncates the journal in a single transaction. There is no programmatic
// undo after finalize; recovery is an external backup concern.
type closingService struct {
	accountSvc   portssvc.AccountSvcFacade
	currencySvc  portssvc.CurrencySvcFacade
	journalRepo  portsrepo.JournalReader
	closingRepo  portsrepo.ClosingRepository
	auditSvc     portssvc.AuditSvcFacade
	gate         *PostingGate
	invalidator  projectionInvalidator
	baseCurrency string

	mu       sync.Mutex
	state    domain.ClosingState
	snapshot *domain.ReviewSnapshot
	accounts []domain.Account // Frozen with the snapshot
}

// NewClosingService creates a new ClosingService in the OPEN state.
func NewClosingService(
	accountSvc portssvc.AccountSvcFacade,
	currencySvc portssvc.CurrencySvcFacade,
	journalRepo portsrepo.JournalReader,
	closingRepo portsrepo.ClosingRepository,
	auditSvc portssvc.AuditSvcFacade,
	gate *PostingGate,
	invalidator projectionInvalidator,
	baseCurrency string,
) portssvc.ClosingSvcFacade {
	return &closingService{
		accountSvc:   accountSvc,
		currencySvc:  currencySvc,
		journalRepo:  journalRepo,
		closingRepo:  closingRepo,
		auditSvc:     auditSvc,
		gate:         gate,
		invalidator:  invalidator,
		baseCurrency: baseCurrency,
		state:        domain.ClosingOpen,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// State reports the engine's current state.
func (s *closingService) State() domain.ClosingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// netProfit sums the period's result from journal lines: revenue credit
// deltas minus expense debit deltas. Lines on other account kinds do not
// contribute.
func netProfit(entries []domain.JournalEntry) decimal.Decimal {
	profit := decimal.Zero
	for _, entry := range entries {
		for _, line := range entry.Lines {
			switch line.Account.Kind {
			case domain.KindRevenue:
				profit = profit.Add(line.Credit).Sub(line.Debit)
			case domain.KindExpense:
				profit = profit.Sub(line.Debit).Add(line.Credit)
			}
		}
	}
	return profit
}

// StartClosing freezes the journal, computes every account's final balance
// and the period's net profit, and moves the engine to REVIEW.
func (s *closingService) StartClosing(ctx context.Context, userID string) (*domain.ReviewSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ClosingOpen {
		return nil, fmt.Errorf("%w: closing already in state %s", apperrors.ErrConflict, s.state)
	}
	if err := s.gate.Freeze(); err != nil {
		return nil, err
	}

	accounts, err := s.accountSvc.ListAccounts(ctx, nil)
	if err != nil {
		s.gate.Unfreeze()
		return nil, fmt.Errorf("failed to load accounts for closing: %w", err)
	}
	entries, err := s.journalRepo.FindAllEntries(ctx)
	if err != nil {
		s.gate.Unfreeze()
		return nil, fmt.Errorf("failed to load entries for closing: %w", err)
	}

	balances, skipped := ProjectBalances(accounts, entries, s.baseCurrency)
	for _, ref := range skipped {
		logger.Warn("Closing projection skipped line with unresolved account", slog.String("account_ref", ref.String()))
	}

	s.snapshot = &domain.ReviewSnapshot{
		Balances:  balances,
		NetProfit: netProfit(entries),
		StartedAt: time.Now().UTC(),
		StartedBy: userID,
	}
	s.accounts = accounts
	s.state = domain.ClosingReview

	s.auditSvc.Record(ctx, domain.AuditClosingStarted, "", s.snapshot.NetProfit, userID)
	logger.Info("Closing review started", slog.String("net_profit", s.snapshot.NetProfit.String()))
	return s.snapshot, nil
}

// CancelClosing abandons an active review without effect and reopens the
// journal.
func (s *closingService) CancelClosing(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ClosingReview {
		return fmt.Errorf("%w: no closing review to cancel", apperrors.ErrConflict)
	}

	s.snapshot = nil
	s.accounts = nil
	s.state = domain.ClosingOpen
	s.gate.Unfreeze()

	middleware.GetLoggerFromCtx(ctx).Info("Closing review cancelled", slog.String("user_id", userID))
	return nil
}

// FinalizeClosing performs the irreversible REVIEW -> CLOSED transition:
// validates the distribution, rolls every account's final balance into the
// next period's opening and truncates the journal store. Any validation or
// persistence failure leaves the review intact with nothing written.
func (s *closingService) FinalizeClosing(ctx context.Context, mode domain.DistributionMode, manualDeltas map[string]decimal.Decimal, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.ClosingReview {
		return fmt.Errorf("%w: closing must be in review to finalize", apperrors.ErrConflict)
	}
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown distribution mode %q", apperrors.ErrValidation, mode)
	}

	deltas, err := s.distributionDeltas(ctx, mode, manualDeltas, userID)
	if err != nil {
		return err
	}

	updates := make([]domain.OpeningUpdate, 0, len(s.accounts))
	for _, acc := range s.accounts {
		final := s.snapshot.Balances[acc.Ref()]
		base := final.Base
		if delta, ok := deltas[acc.AccountID]; ok {
			base = base.Add(delta)
		}

		currency := acc.OpeningBalanceCurrency
		if currency == "" {
			currency = s.baseCurrency
		}

		// The next period's original-currency opening is re-derived from the
		// base balance at the account currency's current rate, not carried
		// from the old original position.
		original := base
		if currency != s.baseCurrency {
			rate := s.currencySvc.ResolveRate(ctx, currency).RateToBase
			original = base.Div(rate)
		}

		updates = append(updates, domain.OpeningUpdate{
			AccountID:       acc.AccountID,
			OpeningBase:     base,
			OpeningOriginal: original,
			OpeningCurrency: currency,
		})
	}

	if err := s.closingRepo.ApplyClosing(ctx, updates, userID); err != nil {
		logger.Error("Failed to apply closing", slog.String("error", err.Error()))
		return fmt.Errorf("failed to apply closing: %w", err)
	}

	net := s.snapshot.NetProfit
	s.snapshot = nil
	s.accounts = nil
	s.state = domain.ClosingOpen // New period begins
	s.gate.Unfreeze()

	if s.invalidator != nil {
		s.invalidator.InvalidateProjection(ctx)
	}
	s.auditSvc.Record(ctx, domain.AuditClosingFinished, "", map[string]string{
		"mode":      string(mode),
		"netProfit": net.String(),
	}, userID)

	logger.Info("Closing finalized",
		slog.String("mode", string(mode)),
		slog.String("net_profit", net.String()),
		slog.Int("accounts", len(updates)))
	return nil
}

// distributionDeltas resolves the per-partner profit deltas for the chosen
// mode. Manual deltas must sum to the net profit exactly.
func (s *closingService) distributionDeltas(ctx context.Context, mode domain.DistributionMode, manualDeltas map[string]decimal.Decimal, userID string) (map[string]decimal.Decimal, error) {
	partners := make(map[string]domain.Account)
	var realPartners []domain.Account
	for _, acc := range s.accounts {
		if acc.Kind != domain.KindPartner {
			continue
		}
		partners[acc.AccountID] = acc
		if !acc.IsRetained {
			realPartners = append(realPartners, acc)
		}
	}

	deltas := make(map[string]decimal.Decimal)

	switch mode {
	case domain.DistributeManual:
		sum := decimal.Zero
		for accountID, delta := range manualDeltas {
			if _, ok := partners[accountID]; !ok {
				return nil, fmt.Errorf("%w: %s is not a partner account", apperrors.ErrValidation, accountID)
			}
			deltas[accountID] = delta
			sum = sum.Add(delta)
		}
		if !sum.Equal(s.snapshot.NetProfit) {
			return nil, fmt.Errorf("%w: deltas sum to %s, net profit is %s",
				apperrors.ErrDistributionMismatch, sum.String(), s.snapshot.NetProfit.String())
		}

	case domain.DistributeEqually:
		if len(realPartners) == 0 {
			return nil, fmt.Errorf("%w: no partner accounts to distribute to", apperrors.ErrValidation)
		}
		count := decimal.NewFromInt(int64(len(realPartners)))
		share := s.snapshot.NetProfit.DivRound(count, 2)
		distributed := decimal.Zero
		for i, partner := range realPartners {
			if i == len(realPartners)-1 {
				// The last partner absorbs the rounding remainder so the
				// total distributed equals the net profit exactly.
				deltas[partner.AccountID] = s.snapshot.NetProfit.Sub(distributed)
			} else {
				deltas[partner.AccountID] = share
				distributed = distributed.Add(share)
			}
		}

	case domain.DistributeRetained:
		retained, err := s.accountSvc.EnsureRetainedEarnings(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve retained earnings account: %w", err)
		}
		if _, known := partners[retained.AccountID]; !known {
			// Created during this review; include it in the rollover.
			s.accounts = append(s.accounts, *retained)
		}
		deltas[retained.AccountID] = s.snapshot.NetProfit
	}

	return deltas, nil
}
