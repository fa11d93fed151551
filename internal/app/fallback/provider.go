package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/docstore"
)

// ErrPlaceNotFound reports that no place entry with the given name exists
// anywhere in the fallback document.
var ErrPlaceNotFound = errors.New("fallback: place not found")

// Provider owns the precomputed fallback itinerary: loaded once from the
// document store at startup, served to every request that cannot get a live
// answer, and edited through the administrative endpoints.
//
// Replace and the mutation methods hold the write lock across the whole
// persist-then-swap cycle, so concurrent edits cannot lose updates and
// readers never observe a partially updated document.
type Provider struct {
	store  docstore.Store
	logger *slog.Logger

	mu        sync.RWMutex
	doc       domain.Itinerary
	available bool
}

func NewProvider(store docstore.Store, logger *slog.Logger) *Provider {
	return &Provider{store: store, logger: logger}
}

// Load seeds the in-memory document from the store. A load failure is not
// fatal: the provider stays in the unavailable state and serves the explicit
// marker instead, so the request path never dereferences a missing value.
func (p *Provider) Load(ctx context.Context) {
	doc, err := p.store.Load(ctx)
	if err != nil {
		p.logger.Error("loading fallback data failed", "err", err)
		p.mu.Lock()
		p.doc = nil
		p.available = false
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	p.doc = doc
	p.available = true
	p.mu.Unlock()
	p.logger.Info("fallback data loaded", "days", len(doc))
}

// Current returns a snapshot of the fallback document. ok is false when the
// startup load failed and no document is held.
func (p *Provider) Current() (domain.Itinerary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.available {
		return nil, false
	}
	return p.doc.Clone(), true
}

// Replace persists doc and swaps it in atomically with respect to readers.
// The in-memory document is untouched when persistence fails.
func (p *Provider) Replace(ctx context.Context, doc domain.Itinerary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.replaceLocked(ctx, doc)
}

// InsertPlace appends a place entry under the given day key, creating the
// day if absent. The entry is stored at the next sequential place index.
// It returns a snapshot of the updated document.
func (p *Provider) InsertPlace(ctx context.Context, day string, place domain.Place) (domain.Itinerary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.doc.Clone()
	if doc == nil {
		doc = domain.Itinerary{}
	}
	d := doc[day]
	if d == nil {
		d = domain.Day{}
		doc[day] = d
	}
	d[domain.PlaceKey(len(d)+1)] = place

	if err := p.replaceLocked(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

// DeletePlace removes every place entry with the given name and renumbers
// each affected day's remaining entries contiguously from place_1. It
// returns a snapshot of the updated document, or ErrPlaceNotFound when no
// entry matched.
func (p *Provider) DeletePlace(ctx context.Context, name string) (domain.Itinerary, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := p.doc.Clone()
	deleted := false
	for dayKey, day := range doc {
		changed := false
		for placeKey, place := range day {
			if place.Name == name {
				delete(day, placeKey)
				changed = true
			}
		}
		if changed {
			doc[dayKey] = renumber(day)
			deleted = true
		}
	}
	if !deleted {
		return nil, ErrPlaceNotFound
	}

	if err := p.replaceLocked(ctx, doc); err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

func (p *Provider) replaceLocked(ctx context.Context, doc domain.Itinerary) error {
	if err := p.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("persist fallback document: %w", err)
	}
	p.doc = doc
	p.available = true
	return nil
}

// renumber reassigns a day's place keys sequentially, preserving the
// original visit order.
func renumber(day domain.Day) domain.Day {
	out := make(domain.Day, len(day))
	for i, key := range domain.SortedPlaceKeys(day) {
		out[domain.PlaceKey(i+1)] = day[key]
	}
	return out
}
