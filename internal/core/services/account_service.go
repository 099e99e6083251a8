package services

import (
	"context"
	"errors"
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
)

// retainedEarningsName is the display name of the pseudo-partner account
// that absorbs undistributed profit.
const retainedEarningsName = "Retained Earnings"

// accountService manages ledger accounts. Opening balances are only ever
// adjusted by posting a correcting entry; there is no direct balance edit.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	journalSvc   portssvc.JournalSvcFacade // Set after construction to break the cycle with the journal service
	baseCurrency string
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, baseCurrency string) *accountService {
	return &accountService{
		accountRepo:  accountRepo,
		baseCurrency: baseCurrency,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// SetJournalService wires the journal service in after both services exist.
// The journal service resolves accounts through this service, and the
// opening-balance correction posts through the journal service.
func (s *accountService) SetJournalService(journalSvc portssvc.JournalSvcFacade) {
	s.journalSvc = journalSvc
}

// CreateAccount opens a new ledger account with its opening position.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	currency := req.OpeningBalanceCurrency
	if currency == "" {
		currency = s.baseCurrency
	}
	original := req.OpeningBalanceOriginal
	if currency == s.baseCurrency {
		// Base-currency accounts keep original and base in lockstep.
		original = req.OpeningBalanceBase
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:              uuid.NewString(),
		Kind:                   req.Kind,
		Name:                   req.Name,
		OpeningBalanceBase:     req.OpeningBalanceBase,
		OpeningBalanceOriginal: original,
		OpeningBalanceCurrency: currency,
		IsActive:               true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("kind", string(account.Kind)))
	return &account, nil
}

// GetAccountByID retrieves an account by its identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the map; callers decide whether that is fatal.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts, optionally filtered by kind.
func (s *accountService) ListAccounts(ctx context.Context, kind *domain.AccountKind) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account inactive. Its history stays in the
// journal; new postings against it are rejected.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// EnsureRetainedEarnings returns the retained-earnings pseudo-partner,
// creating it on first use.
func (s *accountService) EnsureRetainedEarnings(ctx context.Context, userID string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindRetainedEarningsAccount(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find retained earnings account: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:              uuid.NewString(),
		Kind:                   domain.KindPartner,
		Name:                   retainedEarningsName,
		OpeningBalanceBase:     decimal.Zero,
		OpeningBalanceOriginal: decimal.Zero,
		OpeningBalanceCurrency: s.baseCurrency,
		IsActive:               true,
		IsRetained:             true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create retained earnings account: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Retained earnings account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// CorrectOpeningBalance adjusts an account's effective opening position by
// posting a two-line entry against retained earnings. The stored opening
// fields are untouched; the correction lives in the journal like any other
// event.
func (s *accountService) CorrectOpeningBalance(ctx context.Context, accountID string, req dto.CorrectOpeningBalanceRequest, userID string) (*domain.JournalEntry, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	delta := req.NewOpeningBase.Sub(account.OpeningBalanceBase)
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: opening balance is already %s", apperrors.ErrValidation, req.NewOpeningBase.String())
	}

	retained, err := s.EnsureRetainedEarnings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if retained.AccountID == accountID {
		return nil, fmt.Errorf("%w: cannot correct retained earnings against itself", apperrors.ErrValidation)
	}

	// A positive delta grows the account on its normal side; the retained
	// earnings line takes the opposite side to keep the entry balanced.
	accountSide := dto.SideDebit
	retainedSide := dto.SideCredit
	if account.Kind.IsDebitNormal() != delta.IsPositive() {
		accountSide = dto.SideCredit
		retainedSide = dto.SideDebit
	}

	entryReq := dto.CreateEntryRequest{
		Date:        time.Now().UTC(),
		Description: fmt.Sprintf("Opening balance correction: %s", req.Reason),
		Lines: []dto.CreateLineRequest{
			{
				Kind:         account.Kind,
				AccountID:    account.AccountID,
				Side:         accountSide,
				Amount:       delta.Abs(),
				CurrencyCode: s.baseCurrency,
			},
			{
				Kind:         retained.Kind,
				AccountID:    retained.AccountID,
				Side:         retainedSide,
				Amount:       delta.Abs(),
				CurrencyCode: s.baseCurrency,
			},
		},
	}

	entry, err := s.journalSvc.CommitEntry(ctx, entryReq, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to post opening balance correction: %w", err)
	}
	return entry, nil
}
