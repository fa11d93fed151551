package docstore

import (
	"context"
	"errors"

	"github.com/himtrails/trip-proxy-api/internal/domain"
)

// ErrNotFound reports that no document has been stored yet.
var ErrNotFound = errors.New("docstore: document not found")

// Store persists the fallback itinerary document. Save replaces the whole
// document; there are no partial writes at this interface.
type Store interface {
	Load(ctx context.Context) (domain.Itinerary, error)
	Save(ctx context.Context, doc domain.Itinerary) error
}
