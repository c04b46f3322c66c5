package store

import (
	"context"
	"testing"
	"time"

	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/notification"
	"github.com/matty-app/matty-backend/internal/user"
)

func notificationFor(userID string) notification.InAppNotification {
	return notification.InAppNotification{
		UserID:   userID,
		Title:    "New participant",
		Message:  "Someone joined your event",
		Category: "event",
	}
}

func seededMemory(t *testing.T) (*Memory, string, string) {
	t.Helper()
	m := NewMemory()
	m.interests = []memInterest{
		{id: "hiking", name: "Hiking", em: "🥾"},
		{id: "coding", name: "Coding", em: "💻"},
	}

	ctx := context.Background()
	owner, err := m.CreateUser(ctx, user.User{Name: "Owner", Email: "owner@example.com"}, "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	other, err := m.CreateUser(ctx, user.User{Name: "Other", Email: "other@example.com"}, "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := m.UpdateUserInterests(ctx, other.ID, []string{"hiking"}); err != nil {
		t.Fatalf("UpdateUserInterests: %v", err)
	}
	return m, owner.ID, other.ID
}

func draftEvent() event.Event {
	now := time.Now()
	return event.Event{
		Name:      "Morning hike",
		Interest:  interest.Interest{ID: "hiking"},
		StartDate: now.Add(24 * time.Hour),
		EndDate:   now.Add(26 * time.Hour),
		IsPublic:  true,
	}
}

func TestAddEventOwnership(t *testing.T) {
	m, ownerID, _ := seededMemory(t)
	ctx := context.Background()

	created, err := m.AddEvent(ctx, ownerID, draftEvent())
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if created.ID == "" {
		t.Fatal("AddEvent should assign an id")
	}

	events, err := m.FetchUserEvents(ctx, ownerID)
	if err != nil {
		t.Fatalf("FetchUserEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("owner events = %d, want 1", len(events))
	}
	e := events[0]
	if e.UserStatus != event.StatusOwner {
		t.Errorf("status = %q, want owner", e.UserStatus)
	}
	if len(e.Participants) != 1 || e.Participants[0].ID != ownerID {
		t.Errorf("participants = %v, want just the creator", e.Participants)
	}
	if e.Interest.Name != "Hiking" {
		t.Errorf("interest not resolved: %+v", e.Interest)
	}
}

func TestJoinLeaveRoundTrip(t *testing.T) {
	m, ownerID, otherID := seededMemory(t)
	ctx := context.Background()

	created, err := m.AddEvent(ctx, ownerID, draftEvent())
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	if err := m.JoinEvent(ctx, otherID, created.ID); err != nil {
		t.Fatalf("JoinEvent: %v", err)
	}
	// Joining twice must not duplicate membership.
	if err := m.JoinEvent(ctx, otherID, created.ID); err != nil {
		t.Fatalf("JoinEvent (repeat): %v", err)
	}

	e, err := m.FetchEvent(ctx, otherID, created.ID)
	if err != nil {
		t.Fatalf("FetchEvent: %v", err)
	}
	if e.UserStatus != event.StatusParticipant {
		t.Errorf("status = %q, want participant", e.UserStatus)
	}
	if len(e.Participants) != 2 {
		t.Errorf("participants = %d, want 2", len(e.Participants))
	}

	if err := m.LeaveEvent(ctx, otherID, created.ID); err != nil {
		t.Fatalf("LeaveEvent: %v", err)
	}
	e, err = m.FetchEvent(ctx, otherID, created.ID)
	if err != nil {
		t.Fatalf("FetchEvent: %v", err)
	}
	if e.UserStatus != event.StatusNone {
		t.Errorf("status after leave = %q, want none", e.UserStatus)
	}
	mine, _ := m.FetchUserEvents(ctx, otherID)
	if len(mine) != 0 {
		t.Errorf("other's events after leave = %d, want 0", len(mine))
	}
}

func TestRelevantEventsExcludeOwnAndJoined(t *testing.T) {
	m, ownerID, otherID := seededMemory(t)
	ctx := context.Background()

	created, err := m.AddEvent(ctx, ownerID, draftEvent())
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	// Other follows hiking, so the event is relevant until they join it.
	relevant, err := m.FetchRelevantEvents(ctx, otherID)
	if err != nil {
		t.Fatalf("FetchRelevantEvents: %v", err)
	}
	if len(relevant) != 1 || relevant[0].ID != created.ID {
		t.Fatalf("relevant = %v, want the hiking event", relevant)
	}

	if err := m.JoinEvent(ctx, otherID, created.ID); err != nil {
		t.Fatalf("JoinEvent: %v", err)
	}
	relevant, err = m.FetchRelevantEvents(ctx, otherID)
	if err != nil {
		t.Fatalf("FetchRelevantEvents: %v", err)
	}
	if len(relevant) != 0 {
		t.Errorf("relevant after join = %d, want 0", len(relevant))
	}

	// The owner never sees their own event as relevant.
	relevant, err = m.FetchRelevantEvents(ctx, ownerID)
	if err != nil {
		t.Fatalf("FetchRelevantEvents: %v", err)
	}
	if len(relevant) != 0 {
		t.Errorf("owner relevant = %d, want 0", len(relevant))
	}
}

func TestDeleteEventRemovesBackReference(t *testing.T) {
	m, ownerID, otherID := seededMemory(t)
	ctx := context.Background()

	created, err := m.AddEvent(ctx, ownerID, draftEvent())
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	if err := m.DeleteEvent(ctx, otherID, created.ID); err != ErrNotOwner {
		t.Fatalf("DeleteEvent by non-owner: err = %v, want ErrNotOwner", err)
	}
	if err := m.DeleteEvent(ctx, ownerID, created.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	if _, err := m.FetchEvent(ctx, ownerID, created.ID); err != ErrNotFound {
		t.Errorf("FetchEvent after delete: err = %v, want ErrNotFound", err)
	}
	mine, _ := m.FetchUserEvents(ctx, ownerID)
	if len(mine) != 0 {
		t.Errorf("owner events after delete = %d, want 0", len(mine))
	}
}

func TestUpdateEventOwnerOnly(t *testing.T) {
	m, ownerID, otherID := seededMemory(t)
	ctx := context.Background()

	created, err := m.AddEvent(ctx, ownerID, draftEvent())
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	created.Name = "Renamed"
	if err := m.UpdateEvent(ctx, otherID, created); err != ErrNotOwner {
		t.Fatalf("UpdateEvent by non-owner: err = %v, want ErrNotOwner", err)
	}
	if err := m.UpdateEvent(ctx, ownerID, created); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	e, _ := m.FetchEvent(ctx, ownerID, created.ID)
	if e.Name != "Renamed" {
		t.Errorf("Name = %q, want Renamed", e.Name)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	m, _, _ := seededMemory(t)
	_, err := m.CreateUser(context.Background(), user.User{Name: "Dup", Email: "owner@example.com"}, "hash")
	if err != ErrEmailTaken {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestNotificationsLifecycle(t *testing.T) {
	m, ownerID, otherID := seededMemory(t)
	ctx := context.Background()

	if err := m.CreateNotification(ctx, notificationFor(ownerID)); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	list, err := m.ListNotifications(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(list) != 1 || list[0].IsRead {
		t.Fatalf("list = %v, want one unread", list)
	}

	// A different user cannot mark someone else's notification.
	if err := m.MarkNotificationRead(ctx, otherID, list[0].ID); err != ErrNotFound {
		t.Fatalf("cross-user mark: err = %v, want ErrNotFound", err)
	}
	if err := m.MarkNotificationRead(ctx, ownerID, list[0].ID); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}

	list, _ = m.ListNotifications(ctx, ownerID)
	if !list[0].IsRead {
		t.Error("notification should be read")
	}
}
