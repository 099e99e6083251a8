package domain

import "time"

// AuditAction identifies the ledger operation an audit record describes.
type AuditAction string

const (
	AuditEntryCommitted  AuditAction = "ENTRY_COMMITTED"
	AuditEntryEdited     AuditAction = "ENTRY_EDITED"
	AuditClosingStarted  AuditAction = "CLOSING_STARTED"
	AuditClosingFinished AuditAction = "CLOSING_FINALIZED"
)

// AuditRecord is a compliance trail row. Records are written fire-and-forget;
// they are not part of ledger correctness.
type AuditRecord struct {
	RecordID   string      `json:"recordID"`
	Action     AuditAction `json:"action"`
	EntityID   string      `json:"entityID"`
	Details    string      `json:"details"` // JSON payload
	RecordedAt time.Time   `json:"recordedAt"`
	RecordedBy string      `json:"recordedBy"`
}
