package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/internal/interest"
	"github.com/matty-app/matty-backend/internal/user"
)

type fakeStore struct {
	mine     map[string][]event.Event
	relevant map[string][]event.Event
	loads    int
}

func (f *fakeStore) FetchUserEvents(ctx context.Context, viewerID string) ([]event.Event, error) {
	f.loads++
	return append([]event.Event(nil), f.mine[viewerID]...), nil
}

func (f *fakeStore) FetchRelevantEvents(ctx context.Context, viewerID string) ([]event.Event, error) {
	return append([]event.Event(nil), f.relevant[viewerID]...), nil
}

func (f *fakeStore) FetchEventsByInterest(ctx context.Context, viewerID, interestID string) ([]event.Event, error) {
	var out []event.Event
	for _, e := range f.relevant[viewerID] {
		if e.Interest.ID == interestID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeMembership struct {
	store   *fakeStore
	failErr error
}

func (m *fakeMembership) Join(ctx context.Context, viewerID, eventID, ip string) error {
	if m.failErr != nil {
		return m.failErr
	}
	for i, e := range m.store.relevant[viewerID] {
		if e.ID == eventID {
			e.UserStatus = event.StatusParticipant
			e.Participants = append(e.Participants, user.User{ID: viewerID})
			m.store.mine[viewerID] = append(m.store.mine[viewerID], e)
			m.store.relevant[viewerID] = append(m.store.relevant[viewerID][:i], m.store.relevant[viewerID][i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (m *fakeMembership) Leave(ctx context.Context, viewerID, eventID, ip string) error {
	if m.failErr != nil {
		return m.failErr
	}
	for i, e := range m.store.mine[viewerID] {
		if e.ID == eventID {
			e.UserStatus = event.StatusNone
			m.store.relevant[viewerID] = append(m.store.relevant[viewerID], e)
			m.store.mine[viewerID] = append(m.store.mine[viewerID][:i], m.store.mine[viewerID][i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

type fakeSearcher struct{}

func (fakeSearcher) Search(ctx context.Context, query string) ([]interest.Interest, error) {
	return interest.Filter([]interest.Interest{
		{ID: "hiking", Name: "Hiking"},
		{ID: "coding", Name: "Coding"},
	}, query), nil
}

func newFixture() (*Service, *fakeStore, *fakeMembership) {
	now := time.Now()
	st := &fakeStore{
		mine: map[string][]event.Event{
			"viewer": {
				{ID: "mine-1", StartDate: now.Add(time.Hour), EndDate: now.Add(2 * time.Hour), UserStatus: event.StatusOwner},
			},
		},
		relevant: map[string][]event.Event{
			"viewer": {
				{ID: "rel-1", Interest: interest.Interest{ID: "hiking"}, StartDate: now.Add(3 * time.Hour), EndDate: now.Add(4 * time.Hour), UserStatus: event.StatusNone},
			},
		},
	}
	membership := &fakeMembership{store: st}
	return NewService(st, membership, fakeSearcher{}), st, membership
}

func TestLoadUsesCache(t *testing.T) {
	svc, st, _ := newFixture()
	ctx := context.Background()

	if _, err := svc.Load(ctx, "viewer", false); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := svc.Load(ctx, "viewer", false); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.loads != 1 {
		t.Errorf("store loads = %d, want 1 (second read cached)", st.loads)
	}

	if _, err := svc.Load(ctx, "viewer", true); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.loads != 2 {
		t.Errorf("store loads = %d, want 2 after refresh", st.loads)
	}
}

func TestJoinMovesEventIntoMyEvents(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	if _, err := svc.Load(ctx, "viewer", false); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap, err := svc.Join(ctx, "viewer", "rel-1", "127.0.0.1")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	if len(snap.MyEvents) != 2 {
		t.Fatalf("my events = %d, want 2", len(snap.MyEvents))
	}
	if len(snap.RelevantEvents) != 0 {
		t.Errorf("relevant events = %d, want 0", len(snap.RelevantEvents))
	}
	for _, e := range snap.MyEvents {
		if e.ID == "rel-1" && e.UserStatus != event.StatusParticipant {
			t.Errorf("joined event status = %q, want participant", e.UserStatus)
		}
	}
}

func TestJoinRollsBackOnStoreFailure(t *testing.T) {
	svc, _, membership := newFixture()
	ctx := context.Background()

	if _, err := svc.Load(ctx, "viewer", false); err != nil {
		t.Fatalf("Load: %v", err)
	}

	membership.failErr = errors.New("write failed")
	snap, err := svc.Join(ctx, "viewer", "rel-1", "127.0.0.1")
	if err == nil {
		t.Fatal("Join should surface the store failure")
	}

	// The returned snapshot reflects the store, not the optimistic state.
	if len(snap.MyEvents) != 1 || len(snap.RelevantEvents) != 1 {
		t.Errorf("snapshot = %d mine / %d relevant, want rollback to 1/1",
			len(snap.MyEvents), len(snap.RelevantEvents))
	}
}

func TestLeaveRoundTrip(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	if _, err := svc.Load(ctx, "viewer", false); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := svc.Join(ctx, "viewer", "rel-1", ""); err != nil {
		t.Fatalf("Join: %v", err)
	}

	snap, err := svc.Leave(ctx, "viewer", "rel-1", "")
	if err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if len(snap.MyEvents) != 1 || len(snap.RelevantEvents) != 1 {
		t.Errorf("after round trip: %d mine / %d relevant, want 1/1",
			len(snap.MyEvents), len(snap.RelevantEvents))
	}
}

func TestSearchInterests(t *testing.T) {
	svc, _, _ := newFixture()

	got, err := svc.SearchInterests(context.Background(), "hik")
	if err != nil {
		t.Fatalf("SearchInterests: %v", err)
	}
	if len(got) != 1 || got[0].ID != "hiking" {
		t.Errorf("SearchInterests = %v, want just hiking", got)
	}
}
