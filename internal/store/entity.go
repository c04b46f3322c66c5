package store

import (
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/genproto/googleapis/type/latlng"

	"github.com/matty-app/matty-backend/internal/event"
)

// Firestore collection names. Events and users cross-reference each other and
// interests by document reference.
const (
	colInterests     = "interests"
	colEvents        = "events"
	colUsers         = "users"
	colNotifications = "notifications"
	colDeviceTokens  = "device_tokens"
	colAuditLogs     = "audit_logs"
)

// ============================
// 🔷 Document representations
type interestDoc struct {
	Name  string `firestore:"name"`
	Emoji string `firestore:"emoji"`
}

type userDoc struct {
	Name         string                   `firestore:"name"`
	Email        string                   `firestore:"email"`
	About        string                   `firestore:"about"`
	PasswordHash string                   `firestore:"passwordHash"`
	Events       []*firestore.DocumentRef `firestore:"events"`
	Interests    []*firestore.DocumentRef `firestore:"interests"`
	CreatedAt    time.Time                `firestore:"createdAt"`
}

type eventDoc struct {
	Name            string                   `firestore:"name"`
	Description     string                   `firestore:"description"`
	Details         string                   `firestore:"details"`
	InterestRef     *firestore.DocumentRef   `firestore:"interestRef"`
	Coordinates     *latlng.LatLng           `firestore:"coordinates"`
	LocationName    string                   `firestore:"locationName"`
	LocationAddress string                   `firestore:"locationAddress"`
	StartDate       time.Time                `firestore:"startDate"`
	EndDate         time.Time                `firestore:"endDate"`
	Public          bool                     `firestore:"public"`
	WithApproval    bool                     `firestore:"withApproval"`
	CreatorRef      *firestore.DocumentRef   `firestore:"creatorRef"`
	CreatedAt       time.Time                `firestore:"createdAt"`
	Participants    []*firestore.DocumentRef `firestore:"participants"`
}

type notificationDoc struct {
	UserID    string    `firestore:"userId"`
	EventID   string    `firestore:"eventId"`
	Title     string    `firestore:"title"`
	Message   string    `firestore:"message"`
	Category  string    `firestore:"category"`
	IsRead    bool      `firestore:"isRead"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type deviceTokenDoc struct {
	UserID     string    `firestore:"userId"`
	Token      string    `firestore:"token"`
	DeviceType string    `firestore:"deviceType"`
	CreatedAt  time.Time `firestore:"createdAt"`
}

type auditLogDoc struct {
	UserID    string    `firestore:"userId"`
	EventID   string    `firestore:"eventId"`
	Action    string    `firestore:"action"`
	Details   string    `firestore:"details"`
	IPAddress string    `firestore:"ipAddress"`
	Status    string    `firestore:"status"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// ============================
// 🔄 Coordinate conversions (GeoPoint <-> domain)
func toGeoPoint(c *event.Coordinates) *latlng.LatLng {
	if c == nil {
		return nil
	}
	return &latlng.LatLng{Latitude: c.Latitude, Longitude: c.Longitude}
}

func fromGeoPoint(p *latlng.LatLng) *event.Coordinates {
	if p == nil {
		return nil
	}
	return &event.Coordinates{Latitude: p.Latitude, Longitude: p.Longitude}
}
