package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/planner"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRequest() domain.TripRequest {
	return domain.TripRequest{
		State:        "Himachal",
		CheckInDate:  time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
		Preferences:  []string{"nature", "adventure"},
	}
}

func TestClient_GenerateDecodesBareDocument(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(domain.Itinerary{
			"day_1": domain.Day{"place_1": domain.Place{Name: "Solang Valley"}},
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 5*time.Second, discardLogger())
	it, err := c.Generate(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if it["day_1"]["place_1"].Name != "Solang Valley" {
		t.Fatalf("unexpected itinerary: %+v", it)
	}

	// The forwarded payload keeps the source service's field names.
	if gotBody["state"] != "Himachal" || gotBody["check_in_date"] != "2025-06-18" {
		t.Fatalf("unexpected upstream payload: %+v", gotBody)
	}
}

func TestClient_GenerateDecodesEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"data": domain.Itinerary{
				"day_1": domain.Day{"place_1": domain.Place{Name: "Kasol"}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 5*time.Second, discardLogger())
	it, err := c.Generate(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if it["day_1"]["place_1"].Name != "Kasol" {
		t.Fatalf("unexpected itinerary: %+v", it)
	}
}

func TestClient_GenerateRejectsNonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "backend down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 5*time.Second, discardLogger())
	_, err := c.Generate(context.Background(), sampleRequest())
	if err == nil {
		t.Fatalf("expected error for 503")
	}
	if errors.Is(err, planner.ErrDeadlineExceeded) {
		t.Fatalf("status failure misreported as deadline: %v", err)
	}
}

func TestClient_GenerateRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 5*time.Second, discardLogger())
	if _, err := c.Generate(context.Background(), sampleRequest()); err == nil {
		t.Fatalf("expected decode error")
	}
}

// A never-resolving upstream must be answered within the budget and the
// in-flight request must be cancelled, not abandoned.
func TestClient_GenerateEnforcesBudgetAndCancels(t *testing.T) {
	t.Parallel()

	cancelled := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection; otherwise
		// the request context is never cancelled on client teardown.
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
			cancelled <- struct{}{}
		case <-time.After(30 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 100*time.Millisecond, discardLogger())

	started := time.Now()
	_, err := c.Generate(context.Background(), sampleRequest())
	elapsed := time.Since(started)

	if !errors.Is(err, planner.ErrDeadlineExceeded) {
		t.Fatalf("err=%v, want ErrDeadlineExceeded", err)
	}
	if elapsed > time.Second {
		t.Fatalf("budget not enforced, took %v", elapsed)
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatalf("in-flight request was not cancelled")
	}
	select {
	case <-cancelled:
		t.Fatalf("cancellation observed more than once")
	case <-time.After(50 * time.Millisecond):
	}
}
