package notification

import (
	"context"
	"testing"
)

type fakeNotificationStore struct {
	created []InAppNotification
	tokens  map[string][]string
}

func (f *fakeNotificationStore) CreateNotification(ctx context.Context, n InAppNotification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationStore) ListNotifications(ctx context.Context, userID string) ([]InAppNotification, error) {
	var out []InAppNotification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	return nil
}

func (f *fakeNotificationStore) RegisterDeviceToken(ctx context.Context, t DeviceToken) error {
	if f.tokens == nil {
		f.tokens = make(map[string][]string)
	}
	f.tokens[t.UserID] = append(f.tokens[t.UserID], t.Token)
	return nil
}

func (f *fakeNotificationStore) DeviceTokensForUsers(ctx context.Context, userIDs []string) ([]string, error) {
	var out []string
	for _, id := range userIDs {
		out = append(out, f.tokens[id]...)
	}
	return out, nil
}

type fakePush struct {
	sent [][]string
}

func (p *fakePush) Send(ctx context.Context, recipients []string, title, body string) error {
	p.sent = append(p.sent, recipients)
	return nil
}

func TestHandleActivityFansOut(t *testing.T) {
	st := &fakeNotificationStore{tokens: map[string][]string{
		"u1": {"token-1"},
		"u2": {"token-2a", "token-2b"},
	}}
	push := &fakePush{}
	svc := NewService(st, push)

	err := svc.HandleActivity(context.Background(), ActivityMessage{
		Type:       ActivityUserJoined,
		EventID:    "e1",
		EventName:  "Morning hike",
		ActorName:  "Petr",
		Recipients: []string{"u1", "u2"},
	})
	if err != nil {
		t.Fatalf("HandleActivity: %v", err)
	}

	if len(st.created) != 2 {
		t.Fatalf("in-app notifications = %d, want 2", len(st.created))
	}
	for _, n := range st.created {
		if n.EventID != "e1" || n.Category != "event" {
			t.Errorf("notification = %+v", n)
		}
	}

	if len(push.sent) != 1 || len(push.sent[0]) != 3 {
		t.Errorf("push = %v, want one multicast to 3 tokens", push.sent)
	}
}

func TestHandleActivityUnknownType(t *testing.T) {
	svc := NewService(&fakeNotificationStore{}, nil)
	err := svc.HandleActivity(context.Background(), ActivityMessage{Type: "bogus"})
	if err == nil {
		t.Fatal("unknown activity type should error")
	}
}

func TestDirectPublisherDelivers(t *testing.T) {
	st := &fakeNotificationStore{}
	svc := NewService(st, nil)
	pub := NewDirectPublisher(svc)

	err := pub.Publish(context.Background(), ActivityMessage{
		Type:       ActivityEventDeleted,
		EventID:    "e1",
		EventName:  "Cancelled thing",
		ActorName:  "Dev",
		Recipients: []string{"u1"},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(st.created) != 1 {
		t.Fatalf("in-app notifications = %d, want 1", len(st.created))
	}
}
