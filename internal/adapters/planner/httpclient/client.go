package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/planner"
)

// Client calls the external trip-generation endpoint with a hard wall-clock
// budget. The budget is enforced through the request context, so when it
// elapses the underlying connection is torn down rather than left to
// complete in the background.
type Client struct {
	url    string
	budget time.Duration
	hc     *http.Client
	logger *slog.Logger
}

func NewClient(url string, budget time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		budget: budget,
		hc:     &http.Client{},
		logger: logger,
	}
}

// wireRequest mirrors the source service's field names exactly.
type wireRequest struct {
	State        string             `json:"state"`
	CheckInDate  openapi_types.Date `json:"check_in_date"`
	CheckOutDate openapi_types.Date `json:"check_out_date"`
	Preferences  []string           `json:"preferences"`
}

func (c *Client) Generate(ctx context.Context, req domain.TripRequest) (domain.Itinerary, error) {
	callID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, c.budget)
	defer cancel()

	body, err := json.Marshal(wireRequest{
		State:        req.State,
		CheckInDate:  openapi_types.Date{Time: req.CheckInDate},
		CheckOutDate: openapi_types.Date{Time: req.CheckOutDate},
		Preferences:  req.Preferences,
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: encode request: %w", callID, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("call %s: build request: %w", callID, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("issuing upstream trip request", "call_id", callID, "budget", c.budget)
	started := time.Now()

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Warn("upstream call exceeded budget, cancelled",
				"call_id", callID, "budget", c.budget)
			return nil, fmt.Errorf("call %s: %w", callID, planner.ErrDeadlineExceeded)
		}
		return nil, fmt.Errorf("call %s: upstream request: %w", callID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("call %s: upstream status %d", callID, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Warn("upstream response cut off at budget, cancelled",
				"call_id", callID, "budget", c.budget)
			return nil, fmt.Errorf("call %s: %w", callID, planner.ErrDeadlineExceeded)
		}
		return nil, fmt.Errorf("call %s: read response: %w", callID, err)
	}

	it, err := decodeItinerary(raw)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", callID, err)
	}

	c.logger.Info("upstream trip request succeeded",
		"call_id", callID, "elapsed", time.Since(started), "days", len(it))
	return it, nil
}

// decodeItinerary accepts either a bare day-keyed document or the
// {"message", "data"} envelope some deployments of the generator return.
func decodeItinerary(raw []byte) (domain.Itinerary, error) {
	var envelope struct {
		Data domain.Itinerary `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data, nil
	}

	var doc domain.Itinerary
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("malformed itinerary response: %w", err)
	}
	if len(doc) == 0 {
		return nil, errors.New("empty itinerary response")
	}
	return doc, nil
}
