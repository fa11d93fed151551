package domain

import (
	"sort"
	"strconv"
	"strings"
)

// Itinerary is a day-keyed itinerary document ("day_1", "day_2", ...).
// The JSON tags on Place define the durable file layout; the read and
// write paths of the document store must agree on this shape exactly.
type Itinerary map[string]Day

// Day is a keyed collection of place entries ("place_1", "place_2", ...).
type Day map[string]Place

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Place struct {
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Coordinates      Coordinates `json:"coordinates"`
	TravelTimeToNext int         `json:"travel_time_to_next"`
}

// Clone returns a deep copy of the itinerary. Place is a value type, so
// copying the two map levels is sufficient.
func (i Itinerary) Clone() Itinerary {
	if i == nil {
		return nil
	}
	out := make(Itinerary, len(i))
	for dayKey, day := range i {
		d := make(Day, len(day))
		for placeKey, place := range day {
			d[placeKey] = place
		}
		out[dayKey] = d
	}
	return out
}

// PlaceNames returns the set of place names present anywhere in the document.
func (i Itinerary) PlaceNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, day := range i {
		for _, place := range day {
			names[place.Name] = struct{}{}
		}
	}
	return names
}

// PlaceKey formats the key for the n-th place entry of a day (1-based).
func PlaceKey(n int) string {
	return "place_" + strconv.Itoa(n)
}

// SortedPlaceKeys returns a day's place keys ordered by their numeric
// suffix, so renumbering preserves the original visit order. Keys without
// a numeric suffix sort last, lexicographically.
func SortedPlaceKeys(day Day) []string {
	keys := make([]string, 0, len(day))
	for k := range day {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		na, oka := placeIndex(keys[a])
		nb, okb := placeIndex(keys[b])
		switch {
		case oka && okb:
			return na < nb
		case oka:
			return true
		case okb:
			return false
		default:
			return keys[a] < keys[b]
		}
	})
	return keys
}

func placeIndex(key string) (int, bool) {
	suffix, ok := strings.CutPrefix(key, "place_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}
