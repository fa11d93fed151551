package domain

import (
	"sort"
	"strings"
)

// NormalizeRegion trims leading/trailing whitespace and collapses internal
// whitespace runs. It is used for destination-state normalization.
func NormalizeRegion(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePreferences trims each tag, drops empties, and sorts the result
// so that preference order never influences request identity.
func NormalizePreferences(prefs []string) []string {
	out := make([]string, 0, len(prefs))
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
