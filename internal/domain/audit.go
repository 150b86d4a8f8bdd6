package domain

import (
	"context"
	"time"

	"millstock/internal/core/id"
)

// AuditAction names what happened to a document.
type AuditAction string

const (
	AuditCreate  AuditAction = "create"
	AuditUpdate  AuditAction = "update"
	AuditDelete  AuditAction = "delete"
	AuditReverse AuditAction = "reverse"
)

// AuditEvent is one record in the mutation trail. Payload carries the
// stock changes a document produced, keyed by field name.
type AuditEvent struct {
	At         time.Time      `json:"at"`
	Actor      string         `json:"actor,omitempty"`
	Action     AuditAction    `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   id.ID          `json:"entity_id"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// AuditRecorder persists audit events. Recording failures must not
// fail the business operation; implementations log and continue.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent)
}

// NopAuditRecorder discards events. Used in tests.
type NopAuditRecorder struct{}

func (NopAuditRecorder) Record(context.Context, AuditEvent) {}
