package itinerary

// Source identifies which path produced a result's itinerary.
type Source string

const (
	SourceCache    Source = "cache"
	SourceUpstream Source = "upstream"
	SourceFallback Source = "fallback"
)

// Reason records why a fallback result was substituted. It is empty for
// cache and upstream results, and for the observed-behavior path that
// discards a successful upstream response in favor of the fallback.
type Reason string

const (
	ReasonTimeout       Reason = "timeout"
	ReasonUpstreamError Reason = "upstream_error"
)

// Policy configures the orchestrator's disputed behaviors. The zero value
// reproduces the source service exactly: successful upstream responses are
// discarded in favor of the fallback, nothing is written to the cache, and
// concurrent identical requests each call upstream independently.
type Policy struct {
	// ServeFreshOnSuccess returns the freshly generated itinerary to the
	// caller instead of the fallback when the upstream call succeeds.
	ServeFreshOnSuccess bool

	// CacheOnSuccess writes successful upstream responses into the cache.
	CacheOnSuccess bool

	// CoalesceRequests collapses concurrent requests with the same
	// fingerprint into a single upstream call.
	CoalesceRequests bool
}
