package itinerarycache

import (
	"context"
	"time"

	"github.com/himtrails/trip-proxy-api/internal/domain"
)

// Key is the canonical fingerprint of a trip request. Two semantically
// identical requests always map to the same key; the key has no identity
// beyond its use as a map key.
type Key string

// Cache maps request fingerprints to previously produced itineraries.
// An entry expires ttl after insertion; an expired entry reads as absent
// (lazy expiry — immediate eviction is permitted but not required).
//
// The cache is advisory: a miss, an eviction, or a storage error never
// fails a request, it only routes it to the upstream path.
type Cache interface {
	Get(ctx context.Context, key Key) (domain.Itinerary, bool, error)
	Put(ctx context.Context, key Key, it domain.Itinerary, ttl time.Duration) error
}
