package models

import "time"

// AuditAction is what happened to a resource.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
	AuditSplit  AuditAction = "split"
)

// AuditResource names the kind of record an audit entry refers to.
type AuditResource string

const (
	ResourceSchedule AuditResource = "schedule"
	ResourceTask     AuditResource = "task"
	ResourceSettings AuditResource = "settings"
)

// ParseAuditResource accepts the resource names stored in audit_log.
func ParseAuditResource(s string) (AuditResource, bool) {
	switch r := AuditResource(s); r {
	case ResourceSchedule, ResourceTask, ResourceSettings:
		return r, true
	}
	return "", false
}

// AuditEntry is one change made by a user to their planner data.
type AuditEntry struct {
	ID         int           `json:"id"`
	UserID     int           `json:"user_id"`
	Action     AuditAction   `json:"action"`
	Resource   AuditResource `json:"resource_type"`
	ResourceID int           `json:"resource_id"`
	Details    string        `json:"details,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
