package store

import (
	"context"

	"github.com/matty-app/matty-backend/internal/apperr"
	"github.com/matty-app/matty-backend/internal/auditlog"
	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/notification"
	"github.com/matty-app/matty-backend/internal/user"
)

// Sentinels re-exported for store callers.
var (
	ErrNotFound   = apperr.ErrNotFound
	ErrEmailTaken = apperr.ErrEmailTaken
	ErrNotOwner   = apperr.ErrNotOwner
)

// DataStore is the remote store gateway: it maps domain records to and from
// document representations across the interests/events/users collections,
// resolves cross-collection references, and executes multi-document mutations
// as atomic batches.
//
// Every viewer-relative operation takes the authenticated viewer id
// explicitly; nothing is bound to a fixed account.
//
// Read policy is deliberately lenient: a reference that no longer resolves
// (deleted event, missing interest or user document) drops the dependent
// record from the result set instead of failing the read.
type DataStore interface {
	// Interests (read-only catalog)
	FetchAllInterests(ctx context.Context) ([]interest.Interest, error)
	FetchUserInterests(ctx context.Context, userID string) ([]interest.Interest, error)

	// Users
	CreateUser(ctx context.Context, u user.User, passwordHash string) (user.User, error)
	FetchUser(ctx context.Context, id string) (user.User, error)
	FetchUserByEmail(ctx context.Context, email string) (user.User, string, error)
	UpdateUserProfile(ctx context.Context, id, name, about string) error
	UpdateUserInterests(ctx context.Context, id string, interestIDs []string) error

	// Events
	FetchEvent(ctx context.Context, viewerID, eventID string) (event.Event, error)
	FetchUserEvents(ctx context.Context, viewerID string) ([]event.Event, error)
	FetchRelevantEvents(ctx context.Context, viewerID string) ([]event.Event, error)
	FetchEventsByInterest(ctx context.Context, viewerID, interestID string) ([]event.Event, error)
	AddEvent(ctx context.Context, viewerID string, e event.Event) (event.Event, error)
	JoinEvent(ctx context.Context, viewerID, eventID string) error
	LeaveEvent(ctx context.Context, viewerID, eventID string) error
	UpdateEvent(ctx context.Context, viewerID string, e event.Event) error
	DeleteEvent(ctx context.Context, viewerID, eventID string) error

	// Notifications
	CreateNotification(ctx context.Context, n notification.InAppNotification) error
	ListNotifications(ctx context.Context, userID string) ([]notification.InAppNotification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	RegisterDeviceToken(ctx context.Context, t notification.DeviceToken) error
	DeviceTokensForUsers(ctx context.Context, userIDs []string) ([]string, error)

	// Audit trail
	CreateAuditLog(ctx context.Context, entry auditlog.AuditLog) error
	ListAuditLogs(ctx context.Context, userID string, limit int) ([]auditlog.AuditLog, error)
}
