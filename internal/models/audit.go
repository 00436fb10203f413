package models

import "time"

// AuditEntry represents one audit log row.
type AuditEntry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Action       string    `json:"action"`        // create, update, delete
	ResourceType string    `json:"resource_type"` // recipe
	ResourceID   string    `json:"resource_id"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"

	ResourceRecipe = "recipe"
)
