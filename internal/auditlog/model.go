package auditlog

import (
	"time"
)

// AuditLog represents one entry in the audit_logs collection
type AuditLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id,omitempty"`
	Action    string    `json:"action"`
	Details   string    `json:"details"` // freeform JSON details
	IPAddress string    `json:"ip_address"`
	Status    string    `json:"status"` // success/failure
	CreatedAt time.Time `json:"created_at"`
}
