package repositories

import (
	"context"
	"time"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
)

// PunchReader defines read operations for raw attendance punch records.
type PunchReader interface {
	// ListPunchesByEmployee retrieves an employee's punches within
	// [from, to], ordered by punch time.
	ListPunchesByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.PunchLog, error)
}

// PunchWriter defines write operations for raw attendance punch records.
type PunchWriter interface {
	// SavePunches persists a batch of punch records.
	SavePunches(ctx context.Context, punches []domain.PunchLog) error
}

// AttendanceRepositoryFacade combines all punch repository capabilities.
type AttendanceRepositoryFacade interface {
	PunchReader
	PunchWriter
}
