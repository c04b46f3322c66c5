package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matty-app/matty-backend/internal/auditlog"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/notification"
	"github.com/matty-app/matty-backend/internal/user"
)

type fakeEventStore struct {
	users  map[string]user.User
	events map[string]*Event

	joinErr error
}

func (f *fakeEventStore) FetchUser(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, errors.New("not found")
	}
	return u, nil
}

func (f *fakeEventStore) FetchEvent(ctx context.Context, viewerID, eventID string) (Event, error) {
	e, ok := f.events[eventID]
	if !ok {
		return Event{}, errors.New("not found")
	}
	out := *e
	out.UserStatus = Status(out, viewerID)
	return out, nil
}

func (f *fakeEventStore) AddEvent(ctx context.Context, viewerID string, e Event) (Event, error) {
	e.ID = "new-event"
	stored := e
	f.events[e.ID] = &stored
	return e, nil
}

func (f *fakeEventStore) UpdateEvent(ctx context.Context, viewerID string, e Event) error {
	stored := f.events[e.ID]
	participants := stored.Participants
	*stored = e
	stored.Participants = participants
	return nil
}

func (f *fakeEventStore) DeleteEvent(ctx context.Context, viewerID, eventID string) error {
	delete(f.events, eventID)
	return nil
}

func (f *fakeEventStore) JoinEvent(ctx context.Context, viewerID, eventID string) error {
	if f.joinErr != nil {
		return f.joinErr
	}
	e := f.events[eventID]
	e.Participants = append(e.Participants, f.users[viewerID])
	return nil
}

func (f *fakeEventStore) LeaveEvent(ctx context.Context, viewerID, eventID string) error {
	e := f.events[eventID]
	kept := e.Participants[:0]
	for _, p := range e.Participants {
		if p.ID != viewerID {
			kept = append(kept, p)
		}
	}
	e.Participants = kept
	return nil
}

type fakeResolver struct{}

func (fakeResolver) ByID(ctx context.Context, id string) (*interest.Interest, error) {
	if id == "hiking" {
		return &interest.Interest{ID: "hiking", Name: "Hiking"}, nil
	}
	return nil, nil
}

type fakePublisher struct{ msgs []notification.ActivityMessage }

func (f *fakePublisher) Publish(ctx context.Context, msg notification.ActivityMessage) error {
	f.msgs = append(f.msgs, msg)
	return nil
}

func eventFixture() (*Service, *fakeEventStore, *fakePublisher) {
	owner := user.User{ID: "owner", Name: "Owner"}
	member := user.User{ID: "member", Name: "Member"}
	stranger := user.User{ID: "stranger", Name: "Stranger"}

	st := &fakeEventStore{
		users: map[string]user.User{"owner": owner, "member": member, "stranger": stranger},
		events: map[string]*Event{
			"e1": {
				ID:           "e1",
				Name:         "Morning hike",
				Interest:     interest.Interest{ID: "hiking"},
				StartDate:    time.Now().Add(time.Hour),
				EndDate:      time.Now().Add(2 * time.Hour),
				Creator:      owner,
				Participants: []user.User{owner, member},
			},
		},
	}
	pub := &fakePublisher{}
	svc := NewService(st, fakeResolver{}, &auditSpy{}, pub, nil)
	return svc, st, pub
}

// auditSpy satisfies the audit interface without recording.
type auditSpy struct{}

func (auditSpy) LogAction(ctx context.Context, userID, eventID, action string, details map[string]interface{}, ip, status string) error {
	return nil
}

func (auditSpy) GetAuditLogs(ctx context.Context, userID string, limit int) ([]auditlog.AuditLog, error) {
	return nil, nil
}

func TestJoinGuards(t *testing.T) {
	svc, _, pub := eventFixture()
	ctx := context.Background()

	if err := svc.Join(ctx, "owner", "e1", ""); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("owner join err = %v, want ErrAlreadyJoined", err)
	}
	if err := svc.Join(ctx, "member", "e1", ""); !errors.Is(err, ErrAlreadyJoined) {
		t.Errorf("member join err = %v, want ErrAlreadyJoined", err)
	}
	if err := svc.Join(ctx, "stranger", "e1", ""); err != nil {
		t.Fatalf("stranger join: %v", err)
	}

	if len(pub.msgs) != 1 || pub.msgs[0].Type != notification.ActivityUserJoined {
		t.Fatalf("published = %v, want one user_joined", pub.msgs)
	}
	if len(pub.msgs[0].Recipients) != 1 || pub.msgs[0].Recipients[0] != "owner" {
		t.Errorf("recipients = %v, want the owner", pub.msgs[0].Recipients)
	}
}

func TestLeaveGuards(t *testing.T) {
	svc, _, pub := eventFixture()
	ctx := context.Background()

	if err := svc.Leave(ctx, "owner", "e1", ""); !errors.Is(err, ErrOwnerCannotLeave) {
		t.Errorf("owner leave err = %v, want ErrOwnerCannotLeave", err)
	}
	if err := svc.Leave(ctx, "stranger", "e1", ""); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("stranger leave err = %v, want ErrNotParticipant", err)
	}
	if err := svc.Leave(ctx, "member", "e1", ""); err != nil {
		t.Fatalf("member leave: %v", err)
	}
	if len(pub.msgs) != 1 || pub.msgs[0].Type != notification.ActivityUserLeft {
		t.Fatalf("published = %v, want one user_left", pub.msgs)
	}
}

func TestCreateRejectsUnknownInterest(t *testing.T) {
	svc, _, _ := eventFixture()

	_, err := svc.Create(context.Background(), "owner", EventRequest{
		Name:       "Mystery meetup",
		InterestID: "bogus",
		Now:        true,
	}, "")
	if !errors.Is(err, ErrUnknownInterest) {
		t.Fatalf("err = %v, want ErrUnknownInterest", err)
	}
}

func TestCreatePublishesAndStores(t *testing.T) {
	svc, st, pub := eventFixture()

	created, err := svc.Create(context.Background(), "owner", EventRequest{
		Name:       "Evening hike",
		InterestID: "hiking",
		Now:        true,
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created event should have an id")
	}
	if _, ok := st.events[created.ID]; !ok {
		t.Fatal("event not stored")
	}
	if len(pub.msgs) != 1 || pub.msgs[0].Type != notification.ActivityEventCreated {
		t.Fatalf("published = %v, want one event_created", pub.msgs)
	}
}

func TestDeleteFlowRequiresOwnership(t *testing.T) {
	svc, st, pub := eventFixture()
	ctx := context.Background()

	if _, err := svc.RequestDelete(ctx, "member", "e1"); err == nil {
		t.Fatal("non-owner delete request should fail")
	}

	resp, err := svc.RequestDelete(ctx, "owner", "e1")
	if err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if resp.ConfirmToken == "" || resp.ExpiresIn <= 0 {
		t.Fatalf("resp = %+v", resp)
	}

	if err := svc.ConfirmDelete(ctx, "owner", "e1", resp.ConfirmToken, ""); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if _, ok := st.events["e1"]; ok {
		t.Fatal("event should be deleted")
	}
	last := pub.msgs[len(pub.msgs)-1]
	if last.Type != notification.ActivityEventDeleted {
		t.Errorf("last published = %q, want event_deleted", last.Type)
	}
	if len(last.Recipients) != 1 || last.Recipients[0] != "member" {
		t.Errorf("recipients = %v, want the remaining participant", last.Recipients)
	}
}
