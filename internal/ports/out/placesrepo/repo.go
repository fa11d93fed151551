package placesrepo

import (
	"context"
	"encoding/json"
)

// KnownPlace is one entry of the static place catalog. Raw preserves the
// catalog entry verbatim so the HTTP layer can pass it through unchanged;
// Name is the extracted "place_name" used for set-difference filtering.
type KnownPlace struct {
	Name string
	Raw  json.RawMessage
}

// Repository lists the static catalog of known places.
type Repository interface {
	ListKnown(ctx context.Context) ([]KnownPlace, error)
}
