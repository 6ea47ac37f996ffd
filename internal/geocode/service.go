package geocode

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pkordes/trip-planner/backend/internal/cache"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// cacheKeyPrefix is prepended to the place name to form the cache key.
const cacheKeyPrefix = "coords-"

// Searcher is the upstream lookup used on a cache miss. *Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string) (domain.Coordinates, bool, error)
}

// Service resolves place names through the cache, then the upstream geocoder.
type Service struct {
	cache  *cache.Cache
	search Searcher
	log    *slog.Logger
	group  singleflight.Group

	// joined, when set, is called once a caller is attached to the
	// in-flight lookup for its key.
	joined func(key string)
}

// NewService constructs a Service. A nil logger means slog.Default().
func NewService(c *cache.Cache, s Searcher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{cache: c, search: s, log: log}
}

type lookup struct {
	coords domain.Coordinates
	found  bool
}

// Resolve returns the coordinates of place. A cached result is returned
// without any network access. Upstream and cache failures are logged and
// reported as not found; they are never returned to the caller.
// Concurrent calls for the same place share a single upstream request. The
// shared request is detached from any one caller's cancellation; each caller
// stops waiting when its own ctx is done.
func (s *Service) Resolve(ctx context.Context, place string) (domain.Coordinates, bool) {
	if strings.TrimSpace(place) == "" {
		return domain.Coordinates{}, false
	}
	key := cacheKeyPrefix + place

	var cached domain.Coordinates
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.WarnContext(ctx, "geocode cache read failed", "place", place, "error", err)
	}
	if hit {
		return cached, true
	}

	ch := s.group.DoChan(key, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), key, place), nil
	})
	if s.joined != nil {
		s.joined(key)
	}

	select {
	case res := <-ch:
		l := res.Val.(lookup)
		return l.coords, l.found
	case <-ctx.Done():
		s.log.DebugContext(ctx, "geocode lookup abandoned", "place", place, "error", ctx.Err())
		return domain.Coordinates{}, false
	}
}

// QuickResolve is the package-level QuickResolve exposed on the service so
// callers can depend on one interface for both lookup paths.
func (s *Service) QuickResolve(place string) (domain.Coordinates, bool) {
	return QuickResolve(place)
}

func (s *Service) fetch(ctx context.Context, key, place string) lookup {
	start := time.Now()
	coords, found, err := s.search.Search(ctx, place)
	if err != nil {
		s.log.ErrorContext(ctx, "geocode lookup failed",
			"place", place,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return lookup{}
	}
	s.log.DebugContext(ctx, "geocode lookup",
		"place", place,
		"found", found,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if !found {
		return lookup{}
	}

	if err := s.cache.Set(ctx, key, coords); err != nil {
		s.log.WarnContext(ctx, "geocode cache write failed", "place", place, "error", err)
	}
	return lookup{coords: coords, found: true}
}
