package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/domain/shared"
)

// AuditLogModel is the persistence model for the append-only audit log
type AuditLogModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	Actor      *uuid.UUID `gorm:"type:uuid;index"`
	Action     string     `gorm:"type:varchar(100);not null;index"`
	EntityType string     `gorm:"type:varchar(50);not null;index:idx_audit_logs_entity"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_audit_logs_entity,priority:2"`
	Detail     string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain AuditLog
func (m *AuditLogModel) ToDomain() *shared.AuditLog {
	return &shared.AuditLog{
		ID:         m.ID,
		Actor:      m.Actor,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Detail:     m.Detail,
		CreatedAt:  m.CreatedAt,
	}
}

// AuditLogModelFromDomain creates a new persistence model from a domain AuditLog
func AuditLogModelFromDomain(e *shared.AuditLog) *AuditLogModel {
	return &AuditLogModel{
		ID:         e.ID,
		Actor:      e.Actor,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Detail:     e.Detail,
		CreatedAt:  e.CreatedAt,
	}
}
