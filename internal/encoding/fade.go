package encoding

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultFadeSeconds is the length of each fade.
const DefaultFadeSeconds = 2.0

// FadeOutApplies reports whether a fade-out fits: the total duration must be
// known and longer than a fade-in plus a fade-out.
func FadeOutApplies(total float64, known bool, seconds float64) bool {
	if seconds <= 0 {
		seconds = DefaultFadeSeconds
	}
	return known && total > 2*seconds
}

// FilterChain returns the -vf value for the requested fades, or "" when no
// filter applies.
func FilterChain(fadeIn, fadeOut bool, total float64, known bool, seconds float64) string {
	if seconds <= 0 {
		seconds = DefaultFadeSeconds
	}
	d := strconv.FormatFloat(seconds, 'f', -1, 64)
	var filters []string
	if fadeIn {
		filters = append(filters, "fade=t=in:st=0:d="+d)
	}
	if fadeOut && FadeOutApplies(total, known, seconds) {
		filters = append(filters, fmt.Sprintf("fade=t=out:st=%.2f:d=%s", total-seconds, d))
	}
	return strings.Join(filters, ",")
}
