package repositories

import (
	"context"
	"time"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts, optionally filtered by kind.
	ListAccounts(ctx context.Context, kind *domain.AccountKind) ([]domain.Account, error)

	// FindRetainedEarningsAccount retrieves the retained-earnings partner
	// pseudo-account, or apperrors.ErrNotFound if none exists yet.
	FindRetainedEarningsAccount(ctx context.Context) (*domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository capabilities.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
