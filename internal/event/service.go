package event

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/matty-app/matty-backend/internal/apperr"
	"github.com/matty-app/matty-backend/internal/auditlog"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/notification"
	"github.com/matty-app/matty-backend/internal/user"
)

var (
	ErrUnknownInterest  = errors.New("unknown interest")
	ErrAlreadyJoined    = errors.New("viewer already participates")
	ErrNotParticipant   = errors.New("viewer is not a participant")
	ErrOwnerCannotLeave = errors.New("owner cannot leave own event")
	ErrBadConfirmToken  = errors.New("invalid or expired confirmation token")
)

const deleteTokenTTL = 5 * time.Minute

// Store is the slice of the data store the event service needs.
type Store interface {
	FetchUser(ctx context.Context, id string) (user.User, error)
	FetchEvent(ctx context.Context, viewerID, eventID string) (Event, error)
	AddEvent(ctx context.Context, viewerID string, e Event) (Event, error)
	UpdateEvent(ctx context.Context, viewerID string, e Event) error
	DeleteEvent(ctx context.Context, viewerID, eventID string) error
	JoinEvent(ctx context.Context, viewerID, eventID string) error
	LeaveEvent(ctx context.Context, viewerID, eventID string) error
}

// InterestResolver resolves catalog entries for incoming requests.
type InterestResolver interface {
	ByID(ctx context.Context, id string) (*interest.Interest, error)
}

// Publisher pushes activity messages toward the notification pipeline.
type Publisher interface {
	Publish(ctx context.Context, msg notification.ActivityMessage) error
}

// Service owns the event lifecycle: create and edit through the scheduling
// form, membership changes, and the two-phase delete.
type Service struct {
	store     Store
	interests InterestResolver
	audit     auditlog.Service
	publisher Publisher
	redis     *redis.Client
}

func NewService(store Store, interests InterestResolver, audit auditlog.Service, publisher Publisher, redisClient *redis.Client) *Service {
	return &Service{
		store:     store,
		interests: interests,
		audit:     audit,
		publisher: publisher,
		redis:     redisClient,
	}
}

// ===========================
// 🔍 Get Event
func (s *Service) Get(ctx context.Context, viewerID, eventID string) (Event, error) {
	return s.store.FetchEvent(ctx, viewerID, eventID)
}

// buildForm maps an incoming request onto the scheduling form.
func (s *Service) buildForm(ctx context.Context, req EventRequest, existing *Event, now time.Time) (*Form, error) {
	var f *Form
	if existing != nil {
		f = EditForm(*existing, now)
	} else {
		f = NewForm(now)
	}

	in, err := s.interests.ByID(ctx, req.InterestID)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, ErrUnknownInterest
	}

	f.Name = req.Name
	f.Description = req.Description
	f.Details = req.Details
	f.Interest = in
	f.Location = Location{
		Name:    req.LocationName,
		Address: req.Address,
	}
	if req.Latitude != nil && req.Longitude != nil {
		f.Location.Coordinates = &Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	f.Now = req.Now
	if req.IsPublic != nil {
		f.IsPublic = *req.IsPublic
	}
	if req.WithApproval != nil {
		f.WithApproval = *req.WithApproval
	}
	if req.StartDate != "" {
		start, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}
		f.StartDate = start
	}
	if req.EndDate != "" {
		end, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
		f.EndDate = end
	}
	return f, nil
}

// ===========================
// 🎯 Create Event
func (s *Service) Create(ctx context.Context, viewerID string, req EventRequest, ip string) (Event, error) {
	viewer, err := s.store.FetchUser(ctx, viewerID)
	if err != nil {
		return Event{}, err
	}

	now := time.Now()
	f, err := s.buildForm(ctx, req, nil, now)
	if err != nil {
		return Event{}, err
	}
	e, err := f.Finalize(viewer, now)
	if err != nil {
		return Event{}, err
	}

	created, err := s.store.AddEvent(ctx, viewerID, e)
	if err != nil {
		s.audit.LogAction(ctx, viewerID, "", "CREATE_EVENT", nil, ip, "failure")
		return Event{}, err
	}

	s.audit.LogAction(ctx, viewerID, created.ID, "CREATE_EVENT", map[string]interface{}{
		"name":     created.Name,
		"interest": created.Interest.ID,
	}, ip, "success")
	s.publish(ctx, notification.ActivityMessage{
		Type:      notification.ActivityEventCreated,
		EventID:   created.ID,
		EventName: created.Name,
		ActorID:   viewerID,
		ActorName: viewer.Name,
	})
	return created, nil
}

// ===========================
// 🛠 Update Event
func (s *Service) Update(ctx context.Context, viewerID, eventID string, req EventRequest, ip string) (Event, error) {
	existing, err := s.store.FetchEvent(ctx, viewerID, eventID)
	if err != nil {
		return Event{}, err
	}

	now := time.Now()
	f, err := s.buildForm(ctx, req, &existing, now)
	if err != nil {
		return Event{}, err
	}
	updated, err := f.Finalize(existing.Creator, now)
	if err != nil {
		return Event{}, err
	}

	if err := s.store.UpdateEvent(ctx, viewerID, updated); err != nil {
		s.audit.LogAction(ctx, viewerID, eventID, "UPDATE_EVENT", nil, ip, "failure")
		return Event{}, err
	}

	s.audit.LogAction(ctx, viewerID, eventID, "UPDATE_EVENT", map[string]interface{}{
		"name": updated.Name,
	}, ip, "success")
	s.publish(ctx, notification.ActivityMessage{
		Type:       notification.ActivityEventUpdated,
		EventID:    eventID,
		EventName:  updated.Name,
		ActorID:    viewerID,
		ActorName:  existing.Creator.Name,
		Recipients: participantIDs(existing, viewerID),
	})
	return s.store.FetchEvent(ctx, viewerID, eventID)
}

// ===========================
// ➕ Join Event - only a bystander can join
func (s *Service) Join(ctx context.Context, viewerID, eventID string, ip string) error {
	e, err := s.store.FetchEvent(ctx, viewerID, eventID)
	if err != nil {
		return err
	}
	if e.UserStatus != StatusNone {
		return ErrAlreadyJoined
	}

	if err := s.store.JoinEvent(ctx, viewerID, eventID); err != nil {
		s.audit.LogAction(ctx, viewerID, eventID, "JOIN_EVENT", nil, ip, "failure")
		return err
	}

	viewer, _ := s.store.FetchUser(ctx, viewerID)
	s.audit.LogAction(ctx, viewerID, eventID, "JOIN_EVENT", nil, ip, "success")
	s.publish(ctx, notification.ActivityMessage{
		Type:       notification.ActivityUserJoined,
		EventID:    eventID,
		EventName:  e.Name,
		ActorID:    viewerID,
		ActorName:  viewer.Name,
		Recipients: []string{e.Creator.ID},
	})
	return nil
}

// ===========================
// ➖ Leave Event - participants only, the owner stays put
func (s *Service) Leave(ctx context.Context, viewerID, eventID string, ip string) error {
	e, err := s.store.FetchEvent(ctx, viewerID, eventID)
	if err != nil {
		return err
	}
	switch e.UserStatus {
	case StatusOwner:
		return ErrOwnerCannotLeave
	case StatusNone:
		return ErrNotParticipant
	}

	if err := s.store.LeaveEvent(ctx, viewerID, eventID); err != nil {
		s.audit.LogAction(ctx, viewerID, eventID, "LEAVE_EVENT", nil, ip, "failure")
		return err
	}

	viewer, _ := s.store.FetchUser(ctx, viewerID)
	s.audit.LogAction(ctx, viewerID, eventID, "LEAVE_EVENT", nil, ip, "success")
	s.publish(ctx, notification.ActivityMessage{
		Type:       notification.ActivityUserLeft,
		EventID:    eventID,
		EventName:  e.Name,
		ActorID:    viewerID,
		ActorName:  viewer.Name,
		Recipients: []string{e.Creator.ID},
	})
	return nil
}

// ===========================
// ❌ Two-phase delete. RequestDelete hands out a short-lived confirmation
// token; ConfirmDelete checks it and performs the actual removal.
func deleteTokenKey(viewerID, eventID string) string {
	return fmt.Sprintf("event:delete:%s:%s", viewerID, eventID)
}

func (s *Service) RequestDelete(ctx context.Context, viewerID, eventID string) (DeleteRequestResponse, error) {
	e, err := s.store.FetchEvent(ctx, viewerID, eventID)
	if err != nil {
		return DeleteRequestResponse{}, err
	}
	if e.UserStatus != StatusOwner {
		return DeleteRequestResponse{}, apperr.ErrNotOwner
	}

	token := uuid.NewString()
	if s.redis != nil {
		if err := s.redis.Set(ctx, deleteTokenKey(viewerID, eventID), token, deleteTokenTTL).Err(); err != nil {
			return DeleteRequestResponse{}, err
		}
	}
	return DeleteRequestResponse{
		ConfirmToken: token,
		ExpiresIn:    int(deleteTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ConfirmDelete(ctx context.Context, viewerID, eventID, token string, ip string) error {
	if s.redis != nil {
		key := deleteTokenKey(viewerID, eventID)
		stored, err := s.redis.Get(ctx, key).Result()
		if err != nil || stored != token {
			return ErrBadConfirmToken
		}
		s.redis.Del(ctx, key)
	}

	e, err := s.store.FetchEvent(ctx, viewerID, eventID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteEvent(ctx, viewerID, eventID); err != nil {
		s.audit.LogAction(ctx, viewerID, eventID, "DELETE_EVENT", nil, ip, "failure")
		return err
	}

	viewer, _ := s.store.FetchUser(ctx, viewerID)
	s.audit.LogAction(ctx, viewerID, eventID, "DELETE_EVENT", map[string]interface{}{
		"name": e.Name,
	}, ip, "success")
	s.publish(ctx, notification.ActivityMessage{
		Type:       notification.ActivityEventDeleted,
		EventID:    eventID,
		EventName:  e.Name,
		ActorID:    viewerID,
		ActorName:  viewer.Name,
		Recipients: participantIDs(e, viewerID),
	})
	return nil
}

func (s *Service) publish(ctx context.Context, msg notification.ActivityMessage) {
	if s.publisher == nil {
		return
	}
	msg.OccurredAt = time.Now()
	if err := s.publisher.Publish(ctx, msg); err != nil {
		log.Printf("⚠️ publishing %s activity failed: %v", msg.Type, err)
	}
}

// participantIDs collects the participant ids except the acting viewer.
func participantIDs(e Event, excludeID string) []string {
	ids := make([]string, 0, len(e.Participants))
	for _, p := range e.Participants {
		if p.ID != excludeID {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
