package clock

import "time"

// Clock provides time to the application. Using an interface lets the
// cache TTL tests drive time deterministically.
type Clock interface {
	Now() time.Time
}
