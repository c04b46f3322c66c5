package interest

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	catalogCacheKey = "interests:catalog"
	catalogCacheTTL = 10 * time.Minute
)

// Store is the slice of the data store the interest service needs.
type Store interface {
	FetchAllInterests(ctx context.Context) ([]Interest, error)
}

// Service serves the read-only interest catalog, caching it in Redis since
// the catalog changes rarely and backs every feed and profile screen.
type Service struct {
	store Store
	cache *redis.Client
}

func NewService(store Store, cache *redis.Client) *Service {
	return &Service{store: store, cache: cache}
}

// ===========================
// 🔍 Catalog - Redis first, store on miss
func (s *Service) Catalog(ctx context.Context) ([]Interest, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, catalogCacheKey).Bytes()
		if err == nil {
			var interests []Interest
			if err := json.Unmarshal(raw, &interests); err == nil {
				return interests, nil
			}
		}
	}

	interests, err := s.store.FetchAllInterests(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(interests); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey, raw, catalogCacheTTL).Err(); err != nil {
				log.Printf("⚠️ caching interest catalog failed: %v", err)
			}
		}
	}
	return interests, nil
}

// Search filters the catalog by a case-insensitive name substring. An empty
// query returns the full catalog.
func (s *Service) Search(ctx context.Context, query string) ([]Interest, error) {
	interests, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(interests, query), nil
}

// ByID resolves one catalog entry, nil when the id is unknown.
func (s *Service) ByID(ctx context.Context, id string) (*Interest, error) {
	interests, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, in := range interests {
		if in.ID == id {
			return &in, nil
		}
	}
	return nil, nil
}
