package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/docstore"
)

// Store is a JSON-file implementation of docstore.Store. The file holds the
// day-keyed itinerary document and is both the startup seed for the fallback
// provider and the target of the administrative mutation endpoints.
//
// File writes are serialized with a mutex so concurrent administrative
// edits cannot interleave a read-modify-write cycle at this layer.
type Store struct {
	path string

	mu sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(ctx context.Context) (domain.Itinerary, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var doc domain.Itinerary
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *Store) Save(ctx context.Context, doc domain.Itinerary) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
