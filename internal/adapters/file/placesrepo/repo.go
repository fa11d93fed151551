package placesrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/himtrails/trip-proxy-api/internal/ports/out/placesrepo"
)

// Repo reads the static known-places catalog from a JSON array file.
// Entries are kept as raw JSON so unknown catalog fields survive the trip
// back to the client unchanged.
type Repo struct {
	path string
}

func NewRepo(path string) *Repo {
	return &Repo{path: path}
}

func (r *Repo) ListKnown(ctx context.Context) ([]placesrepo.KnownPlace, error) {
	_ = ctx
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}

	out := make([]placesrepo.KnownPlace, 0, len(entries))
	for i, e := range entries {
		var head struct {
			PlaceName string `json:"place_name"`
		}
		if err := json.Unmarshal(e, &head); err != nil {
			return nil, fmt.Errorf("parse %s entry %d: %w", r.path, i, err)
		}
		out = append(out, placesrepo.KnownPlace{Name: head.PlaceName, Raw: e})
	}
	return out, nil
}
