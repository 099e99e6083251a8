package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
)

// zeroOriginalEpsilon bounds the "flat original position" test of the
// zero-original rule. Anything below a cent of original currency counts as
// flat.
var zeroOriginalEpsilon = decimal.New(1, -2)

const (
	projectionCacheKey = "projection:all"
	projectionCacheTTL = 5 * time.Minute
)

// ProjectBalances replays the journal over every account's opening balance
// and returns the derived balance map. It is deterministic, idempotent and
// side-effect-free; entry order does not affect the result. Lines whose ref
// does not resolve are skipped and reported, not fatal. Entries are assumed
// balanced: commit already rejected anything unbalanced.
func ProjectBalances(accounts []domain.Account, entries []domain.JournalEntry, baseCurrency string) (map[domain.AccountRef]domain.Balance, []domain.AccountRef) {
	balances := make(map[domain.AccountRef]domain.Balance, len(accounts))
	byRef := make(map[domain.AccountRef]domain.Account, len(accounts))
	for _, acc := range accounts {
		ref := acc.Ref()
		byRef[ref] = acc
		balances[ref] = domain.Balance{
			Base:     acc.OpeningBalanceBase,
			Original: acc.OpeningBalanceOriginal,
			Currency: acc.OpeningBalanceCurrency,
		}
	}

	var skipped []domain.AccountRef
	skippedSeen := make(map[domain.AccountRef]struct{})

	for _, entry := range entries {
		for _, line := range entry.Lines {
			acc, found := byRef[line.Account]
			if !found {
				if _, dup := skippedSeen[line.Account]; !dup {
					skippedSeen[line.Account] = struct{}{}
					skipped = append(skipped, line.Account)
				}
				continue
			}

			balance := balances[line.Account]
			balance.Base = balance.Base.Add(acc.Kind.SignedDelta(line.Debit, line.Credit))

			// The original-currency position only moves for lines posted in
			// the account's own opening currency.
			if line.CurrencyCode == acc.OpeningBalanceCurrency {
				debitOrig := decimal.Zero
				creditOrig := decimal.Zero
				if line.IsDebit() {
					debitOrig = line.OriginalAmount
				} else {
					creditOrig = line.OriginalAmount
				}
				balance.Original = balance.Original.Add(acc.Kind.SignedDelta(debitOrig, creditOrig))
			}
			balances[line.Account] = balance
		}
	}

	// Zero-original rule: a foreign-currency account whose original position
	// is flat must not show a residual base balance from FX drift.
	for ref, balance := range balances {
		if balance.Currency != "" && balance.Currency != baseCurrency && balance.Original.Abs().LessThan(zeroOriginalEpsilon) {
			balance.Base = decimal.Zero
			balances[ref] = balance
		}
	}

	return balances, skipped
}

// projectionCache is the read-through cache in front of the projector.
// Implementations store opaque strings; the service owns serialization.
type projectionCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// cachedBalance is the flat serialized form of one projected balance.
type cachedBalance struct {
	Kind      domain.AccountKind `json:"kind"`
	AccountID string             `json:"accountID"`
	Base      decimal.Decimal    `json:"base"`
	Original  decimal.Decimal    `json:"original"`
	Currency  string             `json:"currency"`
}

// projectionService wraps the pure projector with repository loading and an
// optional cache. The cache only ever holds what a full recomputation would
// produce; every journal write drops it.
type projectionService struct {
	accountRepo  portsrepo.AccountReader
	journalRepo  portsrepo.JournalReader
	cache        projectionCache // nil disables caching
	baseCurrency string
}

// NewProjectionService creates a new ProjectionService. cache may be nil.
func NewProjectionService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, cache projectionCache, baseCurrency string) portssvc.ProjectionSvcFacade {
	return &projectionService{
		accountRepo:  accountRepo,
		journalRepo:  journalRepo,
		cache:        cache,
		baseCurrency: baseCurrency,
	}
}

var _ portssvc.ProjectionSvcFacade = (*projectionService)(nil)

// ProjectAll computes every account's current balance over a consistent
// snapshot of the journal store.
func (s *projectionService) ProjectAll(ctx context.Context) (*portssvc.ProjectionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for projection: %w", err)
	}
	entries, err := s.journalRepo.FindAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for projection: %w", err)
	}

	balances, skipped := ProjectBalances(accounts, entries, s.baseCurrency)
	for _, ref := range skipped {
		logger.Warn("Projection skipped line with unresolved account", slog.String("account_ref", ref.String()))
	}

	result := &portssvc.ProjectionResult{Balances: balances, SkippedRefs: skipped}
	s.writeCache(ctx, result)
	return result, nil
}

// ProjectAccount computes a single account's current balance.
func (s *projectionService) ProjectAccount(ctx context.Context, ref domain.AccountRef) (*domain.Balance, error) {
	result, err := s.ProjectAll(ctx)
	if err != nil {
		return nil, err
	}

	balance, found := result.Balances[ref]
	if !found {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, ref)
	}
	return &balance, nil
}

// InvalidateProjection drops the cached projection. Journal writes and the
// closing engine call this after every successful mutation.
func (s *projectionService) InvalidateProjection(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, projectionCacheKey); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to invalidate projection cache", slog.String("error", err.Error()))
	}
}

func (s *projectionService) readCache(ctx context.Context) *portssvc.ProjectionResult {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, projectionCacheKey)
	if err != nil || raw == "" {
		return nil
	}

	var cached []cachedBalance
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to decode cached projection", slog.String("error", err.Error()))
		return nil
	}

	balances := make(map[domain.AccountRef]domain.Balance, len(cached))
	for _, cb := range cached {
		balances[domain.AccountRef{Kind: cb.Kind, AccountID: cb.AccountID}] = domain.Balance{
			Base:     cb.Base,
			Original: cb.Original,
			Currency: cb.Currency,
		}
	}
	return &portssvc.ProjectionResult{Balances: balances}
}

func (s *projectionService) writeCache(ctx context.Context, result *portssvc.ProjectionResult) {
	if s.cache == nil {
		return
	}

	cached := make([]cachedBalance, 0, len(result.Balances))
	for ref, balance := range result.Balances {
		cached = append(cached, cachedBalance{
			Kind:      ref.Kind,
			AccountID: ref.AccountID,
			Base:      balance.Base,
			Original:  balance.Original,
			Currency:  balance.Currency,
		})
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, projectionCacheKey, string(raw), projectionCacheTTL); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to cache projection", slog.String("error", err.Error()))
	}
}
