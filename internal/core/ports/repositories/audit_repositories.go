package repositories

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
)

// AuditRepository persists compliance audit records.
type AuditRepository interface {
	// SaveAuditRecord persists a single audit record.
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error
}
