package itinerary

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/himtrails/trip-proxy-api/internal/domain"
	"github.com/himtrails/trip-proxy-api/internal/ports/out/itinerarycache"
)

// Fingerprint derives the cache key for a trip request. The canonical form
// uses a fixed field order, date-only formatting, a whitespace-normalized
// state, and trimmed, sorted preferences, so semantically identical
// requests always hash to the same key regardless of field or preference
// order. Pure function; no error conditions.
func Fingerprint(req domain.TripRequest) itinerarycache.Key {
	canonical := fmt.Sprintf("state=%s|check_in=%s|check_out=%s|prefs=%s",
		domain.NormalizeRegion(req.State),
		req.CheckInDate.Format("2006-01-02"),
		req.CheckOutDate.Format("2006-01-02"),
		strings.Join(domain.NormalizePreferences(req.Preferences), ","),
	)
	sum := sha256.Sum256([]byte(canonical))
	return itinerarycache.Key(hex.EncodeToString(sum[:]))
}
