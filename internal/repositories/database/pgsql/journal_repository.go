package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
)

const entryColumns = `entry_id, ref_no, entry_date, description, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_kind, account_id, debit, credit, currency_code, exchange_rate, original_amount, cost_center_id, program_id, component_id`

const insertLineQuery = `
	INSERT INTO journal_lines (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for the journal store.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.RefNo,
		&e.EntryDate,
		&e.Description,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func scanLine(row pgx.Row) (*domain.JournalLine, error) {
	var l domain.JournalLine
	err := row.Scan(
		&l.LineID,
		&l.EntryID,
		&l.Account.Kind,
		&l.Account.AccountID,
		&l.Debit,
		&l.Credit,
		&l.CurrencyCode,
		&l.ExchangeRate,
		&l.OriginalAmount,
		&l.CostCenterID,
		&l.ProgramID,
		&l.ComponentID,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// NextRefNo reserves the next reference number. The sequence survives the
// period-closing truncation, so numbers are never reused.
func (r *PgxJournalRepository) NextRefNo(ctx context.Context) (int64, error) {
	var refNo int64
	if err := r.Pool.QueryRow(ctx, `SELECT nextval('journal_ref_no_seq');`).Scan(&refNo); err != nil {
		return 0, fmt.Errorf("failed to reserve reference number: %w", err)
	}
	return refNo, nil
}

func insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(insertLineQuery,
			line.LineID,
			line.EntryID,
			line.Account.Kind,
			line.Account.AccountID,
			line.Debit,
			line.Credit,
			line.CurrencyCode,
			line.ExchangeRate,
			line.OriginalAmount,
			line.CostCenterID,
			line.ProgramID,
			line.ComponentID,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert journal line: %w", err)
		}
	}
	return nil
}

// SaveEntry appends an entry with its lines atomically.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.RefNo,
		entry.EntryDate,
		entry.Description,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	if err := insertLinesTx(ctx, tx, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceEntryLines atomically swaps all of an entry's lines and updates its
// header fields.
func (r *PgxJournalRepository) ReplaceEntryLines(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		entry.EntryID,
		entry.EntryDate,
		entry.Description,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("journal entry %s: %w", entry.EntryID, apperrors.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entry.EntryID, err)
	}
	if err := insertLinesTx(ctx, tx, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry with all of its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query journal entry %s: %w", entryID, err)
	}

	lines, err := r.findLines(ctx, `WHERE entry_id = $1`, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entry.EntryID]
	return entry, nil
}

// ListEntries retrieves entries ordered by reference number, starting after
// afterRefNo, up to limit.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, afterRefNo int64) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE ref_no > $1
		ORDER BY ref_no
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, afterRefNo, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	lines, err := r.findLines(ctx, `WHERE entry_id = ANY($1)`, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

// FindAllEntries retrieves every entry of the current period with lines.
func (r *PgxJournalRepository) FindAllEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries ORDER BY ref_no;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}

	lines, err := r.findLines(ctx, ``)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

func collectEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	defer rows.Close()
	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return entries, nil
}

// findLines loads lines grouped by entry ID. whereClause may be empty to
// load the whole store.
func (r *PgxJournalRepository) findLines(ctx context.Context, whereClause string, args ...any) (map[string][]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines ` + whereClause + ` ORDER BY line_id;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[string][]domain.JournalLine)
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines[line.EntryID] = append(lines[line.EntryID], *line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return lines, nil
}
