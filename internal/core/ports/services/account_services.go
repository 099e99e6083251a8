package services

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
)

// AccountSvcFacade manages ledger accounts. Balances are never edited
// directly: an opening-balance correction posts a correcting entry.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, kind *domain.AccountKind) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// CorrectOpeningBalance posts a two-line correcting entry moving the
	// difference between the account and retained earnings.
	CorrectOpeningBalance(ctx context.Context, accountID string, req dto.CorrectOpeningBalanceRequest, userID string) (*domain.JournalEntry, error)

	// EnsureRetainedEarnings returns the retained-earnings partner
	// pseudo-account, creating it if it does not exist yet.
	EnsureRetainedEarnings(ctx context.Context, userID string) (*domain.Account, error)
}
