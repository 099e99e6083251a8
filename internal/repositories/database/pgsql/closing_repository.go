package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
)

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for period closings.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepository {
	return &PgxClosingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosingRepository = (*PgxClosingRepository)(nil)

// ApplyClosing writes every account's next-period opening balance and
// truncates the journal store in one transaction. The reference-number
// sequence is left alone so numbers are never reused across periods.
func (r *PgxClosingRepository) ApplyClosing(ctx context.Context, updates []domain.OpeningUpdate, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	updateQuery := `
		UPDATE accounts
		SET opening_balance_base = $2,
		    opening_balance_original = $3,
		    opening_balance_currency = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(updateQuery, u.AccountID, u.OpeningBase, u.OpeningOriginal, u.OpeningCurrency, now, userID)
	}
	results := tx.SendBatch(ctx, batch)
	for _, u := range updates {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return fmt.Errorf("failed to update opening balance of account %s: %w", u.AccountID, err)
		}
		if tag.RowsAffected() == 0 {
			results.Close()
			return fmt.Errorf("account %s: %w", u.AccountID, apperrors.ErrNotFound)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to apply opening balance updates: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines;`); err != nil {
		return fmt.Errorf("failed to truncate journal lines: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries;`); err != nil {
		return fmt.Errorf("failed to truncate journal entries: %w", err)
	}

	return r.Commit(ctx, tx)
}
