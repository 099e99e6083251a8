package repositories

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
)

// ClosingRepository applies a finalized period closing.
type ClosingRepository interface {
	// ApplyClosing writes every account's next-period opening balance and
	// truncates the journal store, all within a single database
	// transaction. Any failure rolls the whole closing back.
	ApplyClosing(ctx context.Context, updates []domain.OpeningUpdate, userID string) error
}
