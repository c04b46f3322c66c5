package notification

import (
	"time"
)

// InAppNotification - per-user, in-app bell notifications
type InAppNotification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Category  string    `json:"category"` // event, system
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// DeviceToken - stores user device tokens for push notifications
type DeviceToken struct {
	UserID     string    `json:"user_id"`
	Token      string    `json:"device_token" binding:"required"`
	DeviceType string    `json:"device_type"` // android, ios, web
	CreatedAt  time.Time `json:"created_at"`
}

// ============================
// 🟡 Activity messages published to Kafka on event mutations
const (
	ActivityEventCreated = "event_created"
	ActivityEventUpdated = "event_updated"
	ActivityEventDeleted = "event_deleted"
	ActivityUserJoined   = "user_joined"
	ActivityUserLeft     = "user_left"
)

type ActivityMessage struct {
	Type       string    `json:"type"`
	EventID    string    `json:"event_id"`
	EventName  string    `json:"event_name"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	Recipients []string  `json:"recipients"` // participant user ids to notify
	OccurredAt time.Time `json:"occurred_at"`
}
