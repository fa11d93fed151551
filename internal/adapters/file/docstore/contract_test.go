package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/himtrails/trip-proxy-api/internal/adapters/contracttest"
	docstoreport "github.com/himtrails/trip-proxy-api/internal/ports/out/docstore"
)

func TestContract_FileDocStore(t *testing.T) {
	contracttest.RunDocStore(t, func(t *testing.T) (docstoreport.Store, func()) {
		t.Helper()
		return NewStore(filepath.Join(t.TempDir(), "tempData.json")), nil
	})
}

func TestStore_LoadRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tempData.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := NewStore(path).Load(context.Background()); err == nil {
		t.Fatalf("expected parse error for corrupt file")
	}
}

func TestStore_SaveRoundTripsThroughDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tempData.json")
	s := NewStore(path)
	ctx := context.Background()

	if err := s.Save(ctx, contracttest.SampleItinerary()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A second store over the same path sees the persisted document.
	got, err := NewStore(path).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got["day_1"]["place_2"].Name != "Mall Road" {
		t.Fatalf("unexpected document: %+v", got)
	}
}
