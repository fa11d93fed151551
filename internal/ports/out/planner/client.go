package planner

import (
	"context"
	"errors"

	"github.com/himtrails/trip-proxy-api/internal/domain"
)

// ErrDeadlineExceeded reports that the bounded call's wall-clock budget
// elapsed before the upstream produced an itinerary. By the time a client
// returns this error the in-flight request has been cancelled, not merely
// abandoned.
var ErrDeadlineExceeded = errors.New("planner: deadline exceeded")

// Client issues one itinerary-generation call against the upstream service.
// Outcomes are: a usable itinerary, ErrDeadlineExceeded, or any other error
// for network/status/decode failures. Implementations make exactly one
// attempt per call; retry policy belongs to the caller (and the
// orchestrator does not retry).
type Client interface {
	Generate(ctx context.Context, req domain.TripRequest) (domain.Itinerary, error)
}
