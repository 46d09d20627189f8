package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/learnhub/internal/domain"
	"github.com/patrickmn/go-cache"
)

const cacheKey = "view"

// CachedSource memoizes another source for ttl. Load errors are not cached.
type CachedSource struct {
	src   Source
	cache *cache.Cache
	mu    sync.Mutex
}

// NewCachedSource wraps src. A ttl <= 0 returns src unchanged.
func NewCachedSource(src Source, ttl time.Duration) Source {
	if ttl <= 0 {
		return src
	}
	return &CachedSource{src: src, cache: cache.New(ttl, 2*ttl)}
}

func (s *CachedSource) Name() string { return s.src.Name() }

// Load returns the cached view, reloading once it has expired.
func (s *CachedSource) Load(ctx context.Context) (domain.CatalogView, error) {
	if v, ok := s.cache.Get(cacheKey); ok {
		return v.(domain.CatalogView), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.cache.Get(cacheKey); ok {
		return v.(domain.CatalogView), nil
	}
	view, err := s.src.Load(ctx)
	if err != nil {
		return domain.CatalogView{}, err
	}
	s.cache.Set(cacheKey, view, cache.DefaultExpiration)
	return view, nil
}

// Invalidate drops the cached view so the next Load reads the source.
func (s *CachedSource) Invalidate() {
	s.cache.Delete(cacheKey)
}
