// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
)

// AuditQueueName is the durable queue audit entries are published to.
const AuditQueueName = "audit.recorded"

// AuditEvent is published after an audit entry has been stored. It carries
// enough to let downstream consumers archive or alert without reading the
// primary database.
type AuditEvent struct {
	AuditID     uint64  `json:"audit_id"`
	Action      string  `json:"action"`
	EntityType  string  `json:"entity_type"`
	EntityID    *uint64 `json:"entity_id,omitempty"`
	UserID      *uint64 `json:"user_id,omitempty"`
	MairieID    *uint64 `json:"mairie_id,omitempty"`
	Description string  `json:"description,omitempty"`
	IPAddress   string  `json:"ip_address,omitempty"`
	Browser     string  `json:"browser,omitempty"`
	OS          string  `json:"os,omitempty"`
	RecordedAt  string  `json:"recorded_at"`
}

// NewAuditEvent builds the event for a stored audit row.
func NewAuditEvent(e *model.AuditLog, browser, os string) AuditEvent {
	ev := AuditEvent{
		AuditID:    e.ID,
		Action:     string(e.Action),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		UserID:     e.UserID,
		MairieID:   e.MairieID,
		Browser:    browser,
		OS:         os,
		RecordedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.Description != nil {
		ev.Description = *e.Description
	}
	if e.IPAddress != nil {
		ev.IPAddress = *e.IPAddress
	}
	return ev
}
