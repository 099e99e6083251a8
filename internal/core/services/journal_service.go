package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
	"github.com/RihlaSoft/agency_ledger_backend/internal/utils/pagination"
)

const defaultEntryPageSize = 20

// projectionInvalidator drops cached balance projections after journal
// writes. A nil invalidator is a no-op.
type projectionInvalidator interface {
	InvalidateProjection(ctx context.Context)
}

// journalService provides the journal store's command API: commit and
// edit-as-repost. All validation happens here; repositories may assume
// entries they receive are balanced.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	currencySvc portssvc.CurrencySvcFacade
	auditSvc    portssvc.AuditSvcFacade
	gate        *PostingGate
	invalidator projectionInvalidator
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	currencySvc portssvc.CurrencySvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	gate *PostingGate,
	invalidator projectionInvalidator,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		currencySvc: currencySvc,
		auditSvc:    auditSvc,
		gate:        gate,
		invalidator: invalidator,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLockedLines converts requested lines into locked journal lines:
// the currency table's current rate and the derived base amount are copied
// into each line permanently. Later rate changes never touch these lines.
func (s *journalService) buildLockedLines(ctx context.Context, entryID string, reqLines []dto.CreateLineRequest) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		if !lr.Kind.IsValid() {
			return nil, fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, lr.Kind)
		}
		if lr.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive for account %s", apperrors.ErrInvalidAmount, lr.AccountID)
		}

		currency := s.currencySvc.ResolveRate(ctx, lr.CurrencyCode)
		baseAmount := lr.Amount.Mul(currency.RateToBase)

		line := domain.JournalLine{
			LineID:         uuid.NewString(),
			EntryID:        entryID,
			Account:        domain.AccountRef{Kind: lr.Kind, AccountID: lr.AccountID},
			CurrencyCode:   lr.CurrencyCode,
			ExchangeRate:   currency.RateToBase,
			OriginalAmount: lr.Amount,
			CostCenterID:   lr.CostCenterID,
			ProgramID:      lr.ProgramID,
			ComponentID:    lr.ComponentID,
		}
		if lr.Side == dto.SideDebit {
			line.Debit = baseAmount
		} else {
			line.Credit = baseAmount
		}
		lines[i] = line
	}
	return lines, nil
}

// validateEntry enforces the double-entry invariants on locked lines: at
// least two lines, exactly one side per line, and exact base-currency
// balance. Amounts are computed, not measured, so there is no epsilon.
func (s *journalService) validateEntry(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			return fmt.Errorf("%w: line for account %s must have exactly one of debit or credit", apperrors.ErrInvalidAmount, line.Account)
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s", apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}

// resolveAccounts verifies every referenced account exists, is active, and
// matches the kind tagged on its ref.
func (s *journalService) resolveAccounts(ctx context.Context, lines []domain.JournalLine) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.Account.AccountID]; !ok {
			seen[line.Account.AccountID] = struct{}{}
			ids = append(ids, line.Account.AccountID)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, line := range lines {
		acc, found := accounts[line.Account.AccountID]
		if !found || acc.Kind != line.Account.Kind {
			return fmt.Errorf("%w: %s", apperrors.ErrMissingAccount, line.Account)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, line.Account)
		}
	}
	return nil
}

// CommitEntry validates, locks currency rates, assigns a reference number
// and appends the entry atomically. Nothing is written on any validation
// failure.
func (s *journalService) CommitEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.Enter(); err != nil {
		return nil, err
	}
	defer s.gate.Leave()

	if req.Description == "" {
		return nil, fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	}

	entryID := uuid.NewString()
	lines, err := s.buildLockedLines(ctx, entryID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.validateEntry(lines); err != nil {
		return nil, err
	}
	if err := s.resolveAccounts(ctx, lines); err != nil {
		return nil, err
	}

	refNo, err := s.journalRepo.NextRefNo(ctx)
	if err != nil {
		logger.Error("Failed to reserve reference number", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reserve reference number: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		RefNo:       refNo,
		EntryDate:   req.Date,
		Description: req.Description,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateProjection(ctx)
	}
	s.auditSvc.Record(ctx, domain.AuditEntryCommitted, entryID, entry, creatorUserID)

	logger.Info("Entry committed", slog.String("entry_id", entryID), slog.Int64("ref_no", refNo))
	return &entry, nil
}

// EditEntry replaces all of an entry's lines atomically. Each new line is
// treated as a fresh posting: rates and base amounts are re-resolved from
// the current currency table.
func (s *journalService) EditEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.gate.Enter(); err != nil {
		return nil, err
	}
	defer s.gate.Leave()

	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := s.buildLockedLines(ctx, entryID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.validateEntry(lines); err != nil {
		return nil, err
	}
	if err := s.resolveAccounts(ctx, lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		RefNo:       existing.RefNo, // Reference numbers are never reassigned
		EntryDate:   req.Date,
		Description: req.Description,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			CreatedBy:     existing.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.ReplaceEntryLines(ctx, entry); err != nil {
		logger.Error("Failed to replace entry lines", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to replace entry lines: %w", err)
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateProjection(ctx)
	}
	s.auditSvc.Record(ctx, domain.AuditEntryEdited, entryID, entry, userID)

	logger.Info("Entry edited", slog.String("entry_id", entryID), slog.Int64("ref_no", entry.RefNo))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a page of entries ordered by reference number.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}

	var afterRefNo int64
	if params.Cursor != "" {
		var err error
		if afterRefNo, err = pagination.DecodeRefNoCursor(params.Cursor); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
	}

	entries, err := s.journalRepo.ListEntries(ctx, limit, afterRefNo)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries: make([]dto.EntryResponse, len(entries)),
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	if len(entries) == limit {
		next := pagination.EncodeRefNoCursor(entries[len(entries)-1].RefNo)
		resp.NextCursor = &next
	}
	return resp, nil
}
