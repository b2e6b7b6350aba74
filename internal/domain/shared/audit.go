package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of a consequential operation.
// Entries are never updated or deleted.
type AuditLog struct {
	ID         uuid.UUID
	Actor      *uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Detail     string
	CreatedAt  time.Time
}

// NewAuditLog creates a new audit log entry
func NewAuditLog(actor *uuid.UUID, action, entityType string, entityID uuid.UUID, detail string) *AuditLog {
	return &AuditLog{
		ID:         uuid.New(),
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
}

// AuditLogRepository persists audit log entries
type AuditLogRepository interface {
	Append(ctx context.Context, entry *AuditLog) error
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]AuditLog, error)
}
