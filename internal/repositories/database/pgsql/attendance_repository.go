package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
)

type PgxAttendanceRepository struct {
	BaseRepository
}

// newPgxAttendanceRepository creates a new repository for punch records.
func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceRepositoryFacade {
	return &PgxAttendanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

// SavePunches persists a batch of punch records. Duplicate punches from the
// device (same employee and timestamp) are ignored.
func (r *PgxAttendanceRepository) SavePunches(ctx context.Context, punches []domain.PunchLog) error {
	query := `
		INSERT INTO punch_logs (punch_id, employee_id, punched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, punched_at) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, p := range punches {
		batch.Queue(query, p.PunchID, p.EmployeeID, p.PunchedAt)
	}
	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()
	for range punches {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert punch record: %w", err)
		}
	}
	return nil
}

// ListPunchesByEmployee retrieves an employee's punches within [from, to].
func (r *PgxAttendanceRepository) ListPunchesByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.PunchLog, error) {
	query := `
		SELECT punch_id, employee_id, punched_at
		FROM punch_logs
		WHERE employee_id = $1 AND punched_at >= $2 AND punched_at <= $3
		ORDER BY punched_at;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query punch records: %w", err)
	}
	defer rows.Close()

	var punches []domain.PunchLog
	for rows.Next() {
		var p domain.PunchLog
		if err := rows.Scan(&p.PunchID, &p.EmployeeID, &p.PunchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan punch row: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating punch rows: %w", err)
	}
	return punches, nil
}
