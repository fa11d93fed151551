package domain

import "time"

// TripRequest carries the caller-supplied itinerary parameters.
// The tuple of its fields (after normalization) is the sole determinant
// of the request's cache identity.
type TripRequest struct {
	State        string
	CheckInDate  time.Time // date-only semantics at the edges
	CheckOutDate time.Time // date-only semantics at the edges
	Preferences  []string
}
