package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/docstore"
)

// Store is a Postgres implementation of docstore.Store. The fallback
// itinerary is a single JSONB row; Save upserts it atomically, so readers
// never observe a partially written document.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Load(ctx context.Context) (domain.Itinerary, error) {
	if s.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	row := s.pool.QueryRow(ctx, `
		SELECT doc
		FROM fallback_documents
		WHERE id = 1
	`)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("load fallback document: %w", err)
	}
	var doc domain.Itinerary
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse fallback document: %w", err)
	}
	return doc, nil
}

func (s *Store) Save(ctx context.Context, doc domain.Itinerary) error {
	if s.pool == nil {
		return errors.New("nil postgres pool")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode fallback document: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO fallback_documents (id, doc, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id)
		DO UPDATE SET
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at
	`, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save fallback document: %w", err)
	}
	return nil
}
