package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/itinerarycache"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/planner"
)

// FallbackSource supplies the precomputed fallback itinerary; satisfied by
// *fallback.Provider.
type FallbackSource interface {
	Current() (domain.Itinerary, bool)
}

// Result is the orchestrator's answer for one trip request. Every path
// produces a well-formed Result; upstream errors never escape as errors.
type Result struct {
	Source Source
	Reason Reason

	// Itinerary is nil only when Unavailable is set.
	Itinerary domain.Itinerary

	// Unavailable means the fallback was needed but its startup load had
	// failed, so the caller gets the explicit marker document instead.
	Unavailable bool
}

// Service sequences cache lookup, the bounded upstream call, and fallback
// substitution for each trip request. Requests are handled independently;
// the cache and fallback provider are the only shared state.
type Service struct {
	cache    itinerarycache.Cache
	planner  planner.Client
	fallback FallbackSource
	logger   *slog.Logger

	policy   Policy
	cacheTTL time.Duration

	group singleflight.Group
}

func NewService(
	cache itinerarycache.Cache,
	plannerClient planner.Client,
	fallbackSrc FallbackSource,
	cacheTTL time.Duration,
	policy Policy,
	logger *slog.Logger,
) *Service {
	return &Service{
		cache:    cache,
		planner:  plannerClient,
		fallback: fallbackSrc,
		logger:   logger,
		policy:   policy,
		cacheTTL: cacheTTL,
	}
}

// Plan handles one inbound trip request: cache hit short-circuits the
// upstream call entirely; on a miss, one bounded upstream attempt is made
// and any timeout or failure is translated into the fallback document.
func (s *Service) Plan(ctx context.Context, req domain.TripRequest) Result {
	key := Fingerprint(req)

	it, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		// Advisory store: treat a failing lookup as a miss.
		s.logger.Warn("cache lookup failed", "key", key, "err", err)
	}
	if ok {
		s.logger.Info("cache hit, returning cached itinerary", "key", key)
		return Result{Source: SourceCache, Itinerary: it}
	}
	s.logger.Info("cache miss, proceeding with upstream request", "key", key)

	if !s.policy.CoalesceRequests {
		return s.generate(ctx, req, key)
	}

	// Followers receive the leader's Result; generate never returns an
	// error, so the singleflight error is always nil.
	v, _, shared := s.group.Do(string(key), func() (any, error) {
		return s.generate(ctx, req, key), nil
	})
	if shared {
		s.logger.Debug("coalesced with in-flight request", "key", key)
	}
	return v.(Result)
}

func (s *Service) generate(ctx context.Context, req domain.TripRequest, key itinerarycache.Key) Result {
	it, err := s.planner.Generate(ctx, req)
	switch {
	case err == nil:
		if s.policy.CacheOnSuccess {
			if err := s.cache.Put(ctx, key, it, s.cacheTTL); err != nil {
				s.logger.Warn("cache write failed", "key", key, "err", err)
			}
		}
		if s.policy.ServeFreshOnSuccess {
			return Result{Source: SourceUpstream, Itinerary: it}
		}
		// Observed behavior of the source service: the fresh result is
		// discarded and the fallback served even on success.
		return s.fallbackResult("")

	case errors.Is(err, planner.ErrDeadlineExceeded):
		s.logger.Warn("upstream request timed out, returning fallback", "key", key)
		return s.fallbackResult(ReasonTimeout)

	default:
		s.logger.Error("upstream request failed, returning fallback", "key", key, "err", err)
		return s.fallbackResult(ReasonUpstreamError)
	}
}

func (s *Service) fallbackResult(reason Reason) Result {
	doc, ok := s.fallback.Current()
	if !ok {
		return Result{Source: SourceFallback, Reason: reason, Unavailable: true}
	}
	return Result{Source: SourceFallback, Reason: reason, Itinerary: doc}
}
