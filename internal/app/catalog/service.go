package catalog

import (
	"context"
	"encoding/json"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/placesrepo"
)

// DocumentSource supplies the current fallback document; satisfied by
// *fallback.Provider.
type DocumentSource interface {
	Current() (domain.Itinerary, bool)
}

// Service derives the set of known places not yet present in the fallback
// itinerary. Pure read; it never mutates either input.
type Service struct {
	places placesrepo.Repository
	doc    DocumentSource
}

func NewService(places placesrepo.Repository, doc DocumentSource) *Service {
	return &Service{places: places, doc: doc}
}

// RemainingPlaces returns catalog entries whose place_name does not appear
// in the current fallback document, passed through verbatim. An unavailable
// fallback document subtracts nothing.
func (s *Service) RemainingPlaces(ctx context.Context) ([]json.RawMessage, error) {
	known, err := s.places.ListKnown(ctx)
	if err != nil {
		return nil, err
	}

	var used map[string]struct{}
	if doc, ok := s.doc.Current(); ok {
		used = doc.PlaceNames()
	}

	out := make([]json.RawMessage, 0, len(known))
	for _, kp := range known {
		if _, taken := used[kp.Name]; taken {
			continue
		}
		out = append(out, kp.Raw)
	}
	return out, nil
}
