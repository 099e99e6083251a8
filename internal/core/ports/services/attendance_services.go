package services

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
)

// AttendanceSvcFacade ingests raw punches and computes shift-based
// late-arrival deductions. It shares no state with the ledger.
type AttendanceSvcFacade interface {
	// IngestPunches stores a batch of raw punch records.
	IngestPunches(ctx context.Context, req dto.IngestPunchesRequest) error

	// DeductionsFor computes per-day results and total deductions for an
	// employee over a date range.
	DeductionsFor(ctx context.Context, req dto.DeductionsRequest) (*domain.AttendanceStats, error)
}
