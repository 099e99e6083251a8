package services

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
)

// AuditSvcFacade is the fire-and-forget compliance sink. Recording never
// blocks or fails the operation being recorded.
type AuditSvcFacade interface {
	Record(ctx context.Context, action domain.AuditAction, entityID string, details any, userID string)
}
