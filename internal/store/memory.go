package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matty-app/matty-backend/internal/auditlog"
	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/notification"
	"github.com/matty-app/matty-backend/internal/user"
)

// Memory is the development DataStore. It keeps everything in maps behind a
// single mutex and mirrors the reference semantics of the Firestore store:
// events and users cross-reference each other by id, and lookups resolve
// those ids on read.
type Memory struct {
	mu sync.Mutex

	interests     []memInterest // catalog keeps insertion order
	users         map[string]*memUser
	events        map[string]*memEvent
	notifications map[string]*notification.InAppNotification
	deviceTokens  map[string]notification.DeviceToken // keyed by token
	auditLogs     []auditlog.AuditLog
}

type memInterest struct {
	id   string
	name string
	em   string
}

type memUser struct {
	id           string
	name         string
	email        string
	about        string
	passwordHash string
	eventIDs     []string
	interestIDs  []string
}

type memEvent struct {
	id              string
	name            string
	description     string
	details         string
	interestID      string
	coordinates     *event.Coordinates
	locationName    string
	locationAddress string
	startDate       time.Time
	endDate         time.Time
	public          bool
	withApproval    bool
	creatorID       string
	createdAt       time.Time
	participantIDs  []string
}

func NewMemory() *Memory {
	return &Memory{
		users:         make(map[string]*memUser),
		events:        make(map[string]*memEvent),
		notifications: make(map[string]*notification.InAppNotification),
		deviceTokens:  make(map[string]notification.DeviceToken),
	}
}

var _ DataStore = (*Memory)(nil)

// ===========================
// 🔍 Interests
func (m *Memory) FetchAllInterests(ctx context.Context) ([]interest.Interest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allInterestsLocked(), nil
}

func (m *Memory) allInterestsLocked() []interest.Interest {
	interests := make([]interest.Interest, 0, len(m.interests))
	for _, in := range m.interests {
		interests = append(interests, interest.Interest{ID: in.id, Name: in.name, Emoji: in.em})
	}
	return interests
}

func (m *Memory) FetchUserInterests(ctx context.Context, userID string) ([]interest.Interest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return m.resolveInterestsLocked(u.interestIDs), nil
}

func (m *Memory) interestLocked(id string) *interest.Interest {
	for _, in := range m.interests {
		if in.id == id {
			return &interest.Interest{ID: in.id, Name: in.name, Emoji: in.em}
		}
	}
	return nil
}

func (m *Memory) resolveInterestsLocked(ids []string) []interest.Interest {
	interests := make([]interest.Interest, 0, len(ids))
	for _, id := range ids {
		if in := m.interestLocked(id); in != nil {
			interests = append(interests, *in)
		}
	}
	return interests
}

func (m *Memory) resolveUserLocked(id string) *user.User {
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	return &user.User{
		ID:        u.id,
		Name:      u.name,
		Email:     u.email,
		About:     u.about,
		Interests: m.resolveInterestsLocked(u.interestIDs),
	}
}

func (m *Memory) unwrapEventLocked(e *memEvent, viewerID string) *event.Event {
	in := m.interestLocked(e.interestID)
	if in == nil {
		return nil
	}
	creator := m.resolveUserLocked(e.creatorID)
	if creator == nil {
		return nil
	}
	participants := make([]user.User, 0, len(e.participantIDs))
	for _, id := range e.participantIDs {
		if p := m.resolveUserLocked(id); p != nil {
			participants = append(participants, *p)
		}
	}
	out := event.Event{
		ID:          e.id,
		Name:        e.name,
		Description: e.description,
		Details:     e.details,
		Interest:    *in,
		Location: event.Location{
			Name:        e.locationName,
			Address:     e.locationAddress,
			Coordinates: e.coordinates,
		},
		StartDate:    e.startDate,
		EndDate:      e.endDate,
		IsPublic:     e.public,
		WithApproval: e.withApproval,
		Creator:      *creator,
		CreatedAt:    e.createdAt,
		Participants: participants,
	}
	out.UserStatus = event.Status(out, viewerID)
	return &out
}

// ===========================
// 👤 Users
func (m *Memory) CreateUser(ctx context.Context, u user.User, passwordHash string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.email == u.Email {
			return user.User{}, ErrEmailTaken
		}
	}
	interestIDs := make([]string, 0, len(u.Interests))
	for _, in := range u.Interests {
		interestIDs = append(interestIDs, in.ID)
	}
	id := uuid.NewString()
	m.users[id] = &memUser{
		id:           id,
		name:         u.Name,
		email:        u.Email,
		about:        u.About,
		passwordHash: passwordHash,
		interestIDs:  interestIDs,
	}
	u.ID = id
	return u, nil
}

func (m *Memory) FetchUser(ctx context.Context, id string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.resolveUserLocked(id)
	if u == nil {
		return user.User{}, ErrNotFound
	}
	return *u, nil
}

func (m *Memory) FetchUserByEmail(ctx context.Context, email string) (user.User, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.email == email {
			return *m.resolveUserLocked(u.id), u.passwordHash, nil
		}
	}
	return user.User{}, "", ErrNotFound
}

func (m *Memory) UpdateUserProfile(ctx context.Context, id, name, about string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.name = name
	u.about = about
	return nil
}

func (m *Memory) UpdateUserInterests(ctx context.Context, id string, interestIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.interestIDs = append([]string(nil), interestIDs...)
	return nil
}

// ===========================
// 📆 Events
func (m *Memory) FetchEvent(ctx context.Context, viewerID, eventID string) (event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return event.Event{}, ErrNotFound
	}
	out := m.unwrapEventLocked(e, viewerID)
	if out == nil {
		return event.Event{}, ErrNotFound
	}
	return *out, nil
}

func (m *Memory) FetchUserEvents(ctx context.Context, viewerID string) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[viewerID]
	if !ok {
		return nil, ErrNotFound
	}
	events := make([]event.Event, 0, len(u.eventIDs))
	for _, id := range u.eventIDs {
		e, ok := m.events[id]
		if !ok {
			continue
		}
		if out := m.unwrapEventLocked(e, viewerID); out != nil {
			events = append(events, *out)
		}
	}
	return events, nil
}

func (m *Memory) FetchRelevantEvents(ctx context.Context, viewerID string) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[viewerID]
	if !ok {
		return nil, ErrNotFound
	}
	wanted := make(map[string]bool, len(u.interestIDs))
	for _, id := range u.interestIDs {
		wanted[id] = true
	}
	var events []event.Event
	for _, e := range m.sortedEventsLocked() {
		if !wanted[e.interestID] {
			continue
		}
		out := m.unwrapEventLocked(e, viewerID)
		if out == nil || out.UserStatus != event.StatusNone {
			continue
		}
		events = append(events, *out)
	}
	return events, nil
}

func (m *Memory) FetchEventsByInterest(ctx context.Context, viewerID, interestID string) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []event.Event
	for _, e := range m.sortedEventsLocked() {
		if e.interestID != interestID {
			continue
		}
		if out := m.unwrapEventLocked(e, viewerID); out != nil {
			events = append(events, *out)
		}
	}
	return events, nil
}

// sortedEventsLocked gives map iteration a stable order for tests and seeds.
func (m *Memory) sortedEventsLocked() []*memEvent {
	events := make([]*memEvent, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].createdAt.Before(events[j].createdAt) })
	return events
}

func (m *Memory) AddEvent(ctx context.Context, viewerID string, e event.Event) (event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[viewerID]
	if !ok {
		return event.Event{}, ErrNotFound
	}
	id := uuid.NewString()
	createdAt := time.Now()
	m.events[id] = &memEvent{
		id:              id,
		name:            e.Name,
		description:     e.Description,
		details:         e.Details,
		interestID:      e.Interest.ID,
		coordinates:     e.Location.Coordinates,
		locationName:    e.Location.Name,
		locationAddress: e.Location.Address,
		startDate:       e.StartDate,
		endDate:         e.EndDate,
		public:          e.IsPublic,
		withApproval:    e.WithApproval,
		creatorID:       viewerID,
		createdAt:       createdAt,
		participantIDs:  []string{viewerID},
	}
	u.eventIDs = append(u.eventIDs, id)
	e.ID = id
	e.CreatedAt = createdAt
	e.UserStatus = event.StatusOwner
	return e, nil
}

func (m *Memory) JoinEvent(ctx context.Context, viewerID, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[viewerID]
	if !ok {
		return ErrNotFound
	}
	e, ok := m.events[eventID]
	if !ok {
		return ErrNotFound
	}
	if !containsID(e.participantIDs, viewerID) {
		e.participantIDs = append(e.participantIDs, viewerID)
	}
	if !containsID(u.eventIDs, eventID) {
		u.eventIDs = append(u.eventIDs, eventID)
	}
	return nil
}

func (m *Memory) LeaveEvent(ctx context.Context, viewerID, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[viewerID]
	if !ok {
		return ErrNotFound
	}
	e, ok := m.events[eventID]
	if !ok {
		return ErrNotFound
	}
	e.participantIDs = removeID(e.participantIDs, viewerID)
	u.eventIDs = removeID(u.eventIDs, eventID)
	return nil
}

func (m *Memory) UpdateEvent(ctx context.Context, viewerID string, e event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.events[e.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.creatorID != viewerID {
		return ErrNotOwner
	}
	existing.name = e.Name
	existing.description = e.Description
	existing.details = e.Details
	existing.interestID = e.Interest.ID
	existing.coordinates = e.Location.Coordinates
	existing.locationName = e.Location.Name
	existing.locationAddress = e.Location.Address
	existing.startDate = e.StartDate
	existing.endDate = e.EndDate
	existing.public = e.IsPublic
	existing.withApproval = e.WithApproval
	return nil
}

func (m *Memory) DeleteEvent(ctx context.Context, viewerID, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return ErrNotFound
	}
	if e.creatorID != viewerID {
		return ErrNotOwner
	}
	delete(m.events, eventID)
	if creator, ok := m.users[e.creatorID]; ok {
		creator.eventIDs = removeID(creator.eventIDs, eventID)
	}
	return nil
}

// ===========================
// 🔔 Notifications
func (m *Memory) CreateNotification(ctx context.Context, n notification.InAppNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	m.notifications[n.ID] = &n
	return nil
}

func (m *Memory) ListNotifications(ctx context.Context, userID string) ([]notification.InAppNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notification.InAppNotification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[notificationID]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (m *Memory) RegisterDeviceToken(ctx context.Context, t notification.DeviceToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.CreatedAt = time.Now()
	m.deviceTokens[t.Token] = t
	return nil
}

func (m *Memory) DeviceTokensForUsers(ctx context.Context, userIDs []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	var tokens []string
	for _, t := range m.deviceTokens {
		if wanted[t.UserID] {
			tokens = append(tokens, t.Token)
		}
	}
	sort.Strings(tokens)
	return tokens, nil
}

// ===========================
// 📝 Audit trail
func (m *Memory) CreateAuditLog(ctx context.Context, entry auditlog.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	m.auditLogs = append(m.auditLogs, entry)
	return nil
}

func (m *Memory) ListAuditLogs(ctx context.Context, userID string, limit int) ([]auditlog.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	var logs []auditlog.AuditLog
	for i := len(m.auditLogs) - 1; i >= 0 && len(logs) < limit; i-- {
		if m.auditLogs[i].UserID == userID {
			logs = append(logs, m.auditLogs[i])
		}
	}
	return logs, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
