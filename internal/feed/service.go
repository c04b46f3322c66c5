package feed

import (
	"context"
	"sync"
	"time"

	"github.com/matty-app/matty-backend/internal/event"
	"github.com/matty-app/matty-backend/internal/interest"
)

// Store is the slice of the data store the feed service needs.
type Store interface {
	FetchUserEvents(ctx context.Context, viewerID string) ([]event.Event, error)
	FetchRelevantEvents(ctx context.Context, viewerID string) ([]event.Event, error)
	FetchEventsByInterest(ctx context.Context, viewerID, interestID string) ([]event.Event, error)
}

// Membership is the part of the event service the feed mutates through.
type Membership interface {
	Join(ctx context.Context, viewerID, eventID, ip string) error
	Leave(ctx context.Context, viewerID, eventID, ip string) error
}

// InterestSearcher filters the catalog for the discovery search box.
type InterestSearcher interface {
	Search(ctx context.Context, query string) ([]interest.Interest, error)
}

// Service assembles per-viewer feed snapshots and keeps a short-lived cache
// of them. Join and leave are applied to the cached snapshot optimistically
// and rolled back when the store write fails.
type Service struct {
	store      Store
	membership Membership
	interests  InterestSearcher

	mu       sync.Mutex
	cache    map[string]*Snapshot
	cacheTTL time.Duration
}

func NewService(store Store, membership Membership, interests InterestSearcher) *Service {
	return &Service{
		store:      store,
		membership: membership,
		interests:  interests,
		cache:      make(map[string]*Snapshot),
		cacheTTL:   30 * time.Second,
	}
}

// ===========================
// 📰 Load Feed
func (s *Service) Load(ctx context.Context, viewerID string, refresh bool) (Snapshot, error) {
	if !refresh {
		s.mu.Lock()
		cached, ok := s.cache[viewerID]
		if ok && time.Since(cached.LoadedAt) < s.cacheTTL {
			snap := *cached
			s.mu.Unlock()
			return snap, nil
		}
		s.mu.Unlock()
	}

	mine, err := s.store.FetchUserEvents(ctx, viewerID)
	if err != nil {
		return Snapshot{}, err
	}
	relevant, err := s.store.FetchRelevantEvents(ctx, viewerID)
	if err != nil {
		return Snapshot{}, err
	}

	now := time.Now()
	snap := Snapshot{
		MyEvents:       Arrange(mine, now),
		RelevantEvents: Arrange(relevant, now),
		LoadedAt:       now,
	}

	s.mu.Lock()
	s.cache[viewerID] = &snap
	s.mu.Unlock()
	return snap, nil
}

// ===========================
// ➕ Join from feed - the cached snapshot moves the event into my-events
// before the store write; a failed write puts it back.
func (s *Service) Join(ctx context.Context, viewerID, eventID, ip string) (Snapshot, error) {
	s.applyJoin(viewerID, eventID)
	if err := s.membership.Join(ctx, viewerID, eventID, ip); err != nil {
		s.invalidate(viewerID)
		snap, loadErr := s.Load(ctx, viewerID, true)
		if loadErr != nil {
			return Snapshot{}, err
		}
		return snap, err
	}
	return s.Load(ctx, viewerID, true)
}

// ===========================
// ➖ Leave from feed
func (s *Service) Leave(ctx context.Context, viewerID, eventID, ip string) (Snapshot, error) {
	s.applyLeave(viewerID, eventID)
	if err := s.membership.Leave(ctx, viewerID, eventID, ip); err != nil {
		s.invalidate(viewerID)
		snap, loadErr := s.Load(ctx, viewerID, true)
		if loadErr != nil {
			return Snapshot{}, err
		}
		return snap, err
	}
	return s.Load(ctx, viewerID, true)
}

func (s *Service) applyJoin(viewerID, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.cache[viewerID]
	if !ok {
		return
	}
	for i, e := range snap.RelevantEvents {
		if e.ID == eventID {
			e.UserStatus = event.StatusParticipant
			snap.RelevantEvents = append(snap.RelevantEvents[:i], snap.RelevantEvents[i+1:]...)
			snap.MyEvents = Arrange(append(snap.MyEvents, e), time.Now())
			return
		}
	}
}

func (s *Service) applyLeave(viewerID, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.cache[viewerID]
	if !ok {
		return
	}
	for i, e := range snap.MyEvents {
		if e.ID == eventID {
			e.UserStatus = event.StatusNone
			snap.MyEvents = append(snap.MyEvents[:i], snap.MyEvents[i+1:]...)
			snap.RelevantEvents = Arrange(append(snap.RelevantEvents, e), time.Now())
			return
		}
	}
}

func (s *Service) invalidate(viewerID string) {
	s.mu.Lock()
	delete(s.cache, viewerID)
	s.mu.Unlock()
}

// ===========================
// 🔎 Discovery searches
func (s *Service) EventsByInterest(ctx context.Context, viewerID, interestID string) ([]event.Event, error) {
	events, err := s.store.FetchEventsByInterest(ctx, viewerID, interestID)
	if err != nil {
		return nil, err
	}
	return Arrange(events, time.Now()), nil
}

func (s *Service) SearchInterests(ctx context.Context, query string) ([]interest.Interest, error) {
	return s.interests.Search(ctx, query)
}
