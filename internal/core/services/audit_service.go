package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
)

const auditWriteTimeout = 5 * time.Second

// auditService is the fire-and-forget compliance sink. Every commit, edit
// and closing is recorded; a failed write is logged and dropped, never
// surfaced to the operation being recorded.
type auditService struct {
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record persists an audit record asynchronously.
func (s *auditService) Record(ctx context.Context, action domain.AuditAction, entityID string, details any, userID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payload, err := json.Marshal(details)
	if err != nil {
		logger.Warn("Failed to encode audit details", slog.String("action", string(action)), slog.String("error", err.Error()))
		payload = []byte("{}")
	}

	record := domain.AuditRecord{
		RecordID:   uuid.NewString(),
		Action:     action,
		EntityID:   entityID,
		Details:    string(payload),
		RecordedAt: time.Now().UTC(),
		RecordedBy: userID,
	}

	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()
		if err := s.auditRepo.SaveAuditRecord(writeCtx, record); err != nil {
			logger.Warn("Failed to persist audit record",
				slog.String("action", string(action)),
				slog.String("record_id", record.RecordID),
				slog.String("error", err.Error()))
		}
	}()
}
