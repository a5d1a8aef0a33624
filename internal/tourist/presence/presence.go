// Package presence classifies tourists as online or offline from activity
// recency. Time is always an explicit input, never read from a global clock
// inside the classification, so results are reproducible.
package presence

import "time"

// DefaultThreshold is how recent the last activity must be for a tourist to
// count as online.
const DefaultThreshold = 30 * time.Minute

// IsOnline reports whether lastActiveAt is within threshold of now. A
// lastActiveAt in the future (clock skew between reporting devices) yields a
// negative difference and therefore online, not an error.
func IsOnline(now, lastActiveAt time.Time, threshold time.Duration) bool {
	return now.Sub(lastActiveAt) < threshold
}
