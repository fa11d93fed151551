package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/himtrails/trip-proxy-api/internal/app/catalog"
	"github.com/himtrails/trip-proxy-api/internal/app/fallback"
	"github.com/himtrails/trip-proxy-api/internal/app/itinerary"
	"github.com/himtrails/trip-proxy-api/internal/domain"
)

// Response messages kept byte-for-byte compatible with the source service.
const (
	msgFallback        = "Request timed out. Returning fallback data."
	msgCached          = "Returning cached itinerary."
	msgFresh           = "Itinerary generated successfully."
	msgInserted        = "Entry inserted successfully"
	msgDeleted         = "Entry deleted successfully"
	msgEntryNotFound   = "Entry not found"
	msgNameRequired    = "Name is required to delete an entry"
	msgRemainingPlaces = "Remaining places retrieved"
	msgUnavailable     = "Fallback data not available"
)

// Server is the HTTP adapter over the app services.
type Server struct {
	Itineraries *itinerary.Service
	Fallback    *fallback.Provider
	Catalog     *catalog.Service
	Logger      *slog.Logger
}

func NewServer(itins *itinerary.Service, fb *fallback.Provider, cat *catalog.Service, logger *slog.Logger) *Server {
	return &Server{
		Itineraries: itins,
		Fallback:    fb,
		Catalog:     cat,
		Logger:      logger,
	}
}

var validate = validator.New()

type tripRequestBody struct {
	State        string             `json:"state" validate:"required"`
	CheckInDate  openapi_types.Date `json:"check_in_date" validate:"required"`
	CheckOutDate openapi_types.Date `json:"check_out_date" validate:"required"`
	Preferences  []string           `json:"preferences"`
}

type apiResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type tripResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (s *Server) handleTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidationError(w, r, http.StatusBadRequest, "MALFORMED_BODY", "request body must be valid JSON", nil)
		return
	}
	if err := validate.Struct(body); err != nil {
		writeValidationError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"state, check_in_date and check_out_date are required", nil)
		return
	}
	if body.CheckOutDate.Time.Before(body.CheckInDate.Time) {
		writeValidationError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"check_out_date must be on or after check_in_date", nil)
		return
	}

	result := s.Itineraries.Plan(r.Context(), domain.TripRequest{
		State:        body.State,
		CheckInDate:  body.CheckInDate.Time,
		CheckOutDate: body.CheckOutDate.Time,
		Preferences:  body.Preferences,
	})

	status := http.StatusOK
	if result.Reason == itinerary.ReasonUpstreamError {
		status = http.StatusInternalServerError
	}

	var message string
	switch result.Source {
	case itinerary.SourceCache:
		message = msgCached
	case itinerary.SourceUpstream:
		message = msgFresh
	default:
		message = msgFallback
	}

	var data any = result.Itinerary
	if result.Unavailable {
		data = map[string]string{"error": msgUnavailable}
	}

	writeJSON(w, status, tripResponse{Message: message, Data: data})
}

type insertPlaceBody struct {
	Day   string       `json:"day" validate:"required"`
	Place domain.Place `json:"place"`
}

func (s *Server) handleInsertPlace(w http.ResponseWriter, r *http.Request) {
	var body insertPlaceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "Request body must be valid JSON"})
		return
	}
	if err := validate.Struct(body); err != nil || body.Place.Name == "" {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "Day and a named place are required to insert an entry"})
		return
	}

	doc, err := s.Fallback.InsertPlace(r.Context(), body.Day, body.Place)
	if err != nil {
		s.Logger.Error("inserting entry failed", "day", body.Day, "err", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Message: "Error inserting entry"})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Message: msgInserted, Data: doc})
}

type deletePlaceBody struct {
	Name string `json:"name"`
}

func (s *Server) handleDeletePlace(w http.ResponseWriter, r *http.Request) {
	var body deletePlaceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "Request body must be valid JSON"})
		return
	}
	if body.Name == "" {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: msgNameRequired})
		return
	}

	doc, err := s.Fallback.DeletePlace(r.Context(), body.Name)
	if err != nil {
		if errors.Is(err, fallback.ErrPlaceNotFound) {
			writeJSON(w, http.StatusNotFound, apiResponse{Message: msgEntryNotFound})
			return
		}
		s.Logger.Error("deleting entry failed", "name", body.Name, "err", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Message: "Error deleting entry"})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Message: msgDeleted, Data: doc})
}

func (s *Server) handleRemainingPlaces(w http.ResponseWriter, r *http.Request) {
	remaining, err := s.Catalog.RemainingPlaces(r.Context())
	if err != nil {
		s.Logger.Error("finding remaining places failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Message: "Error finding remaining places"})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Message: msgRemainingPlaces, Data: remaining})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
