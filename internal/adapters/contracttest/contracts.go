package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	docstoreport "github.com/himtrails/trip-proxy-api/internal/ports/out/docstore"
	cacheport "github.com/himtrails/trip-proxy-api/internal/ports/out/itinerarycache"
)

type CleanupFunc = func()

type CacheFactory func(t *testing.T) (cacheport.Cache, CleanupFunc)
type DocStoreFactory func(t *testing.T) (docstoreport.Store, CleanupFunc)

// SampleItinerary builds a small two-day document for contract tests.
func SampleItinerary() domain.Itinerary {
	return domain.Itinerary{
		"day_1": domain.Day{
			"place_1": domain.Place{
				Name:             "Hadimba Temple",
				Description:      "Cedar-forest temple in Manali",
				Coordinates:      domain.Coordinates{Latitude: 32.2396, Longitude: 77.1887},
				TravelTimeToNext: 25,
			},
			"place_2": domain.Place{
				Name:             "Mall Road",
				Description:      "Main market street",
				Coordinates:      domain.Coordinates{Latitude: 32.2432, Longitude: 77.1892},
				TravelTimeToNext: 0,
			},
		},
		"day_2": domain.Day{
			"place_1": domain.Place{
				Name:             "Solang Valley",
				Description:      "Adventure sports valley",
				Coordinates:      domain.Coordinates{Latitude: 32.3163, Longitude: 77.1569},
				TravelTimeToNext: 0,
			},
		},
	}
}

// RunItineraryCache verifies Get/Put semantics shared by all cache
// implementations. TTL boundary behavior needs a controllable clock and is
// covered by adapter-specific tests.
func RunItineraryCache(t *testing.T, newCache CacheFactory) {
	t.Helper()
	ctx := context.Background()

	c, cleanup := newCache(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	key := cacheport.Key("fp-1")

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get on empty cache: ok=%v err=%v", ok, err)
	}

	doc := SampleItinerary()
	if err := c.Put(ctx, key, doc, time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if got["day_1"]["place_1"].Name != "Hadimba Temple" || len(got) != 2 {
		t.Fatalf("unexpected itinerary: %+v", got)
	}

	// Overwrite semantics.
	doc2 := domain.Itinerary{"day_1": domain.Day{"place_1": domain.Place{Name: "Rohtang Pass"}}}
	if err := c.Put(ctx, key, doc2, time.Hour); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = c.Get(ctx, key)
	if err != nil || !ok || got["day_1"]["place_1"].Name != "Rohtang Pass" {
		t.Fatalf("expected overwritten entry, got ok=%v err=%v doc=%+v", ok, err, got)
	}

	// Snapshot isolation: mutating a returned document must not leak back.
	got["day_1"]["place_1"] = domain.Place{Name: "mutated"}
	again, _, _ := c.Get(ctx, key)
	if again["day_1"]["place_1"].Name != "Rohtang Pass" {
		t.Fatalf("cached entry aliased by reader: %+v", again)
	}
}

// RunDocStore verifies Load/Save semantics shared by the file and postgres
// document stores.
func RunDocStore(t *testing.T, newStore DocStoreFactory) {
	t.Helper()
	ctx := context.Background()

	s, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	if _, err := s.Load(ctx); !errors.Is(err, docstoreport.ErrNotFound) {
		t.Fatalf("Load on empty store: err=%v, want ErrNotFound", err)
	}

	doc := SampleItinerary()
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got["day_2"]["place_1"].Name != "Solang Valley" {
		t.Fatalf("unexpected document: %+v", got)
	}
	if got["day_1"]["place_1"].Coordinates.Latitude != 32.2396 {
		t.Fatalf("coordinates not preserved: %+v", got["day_1"]["place_1"])
	}

	// Save replaces the whole document.
	doc2 := domain.Itinerary{"day_1": domain.Day{"place_1": domain.Place{Name: "Kasol"}}}
	if err := s.Save(ctx, doc2); err != nil {
		t.Fatalf("Save replace: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil || len(got) != 1 || got["day_1"]["place_1"].Name != "Kasol" {
		t.Fatalf("expected replaced document, got err=%v doc=%+v", err, got)
	}
}
