package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOnlineThresholdBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsOnline(now, now.Add(-31*time.Minute), DefaultThreshold))
	assert.True(t, IsOnline(now, now.Add(-29*time.Minute), DefaultThreshold))

	// Exactly at the threshold is offline: the contract is strictly less than.
	assert.False(t, IsOnline(now, now.Add(-30*time.Minute), DefaultThreshold))
}

func TestIsOnlineToleratesClockSkew(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	// A device clock ahead of the server reports activity in the future.
	assert.True(t, IsOnline(now, now.Add(5*time.Minute), DefaultThreshold))
}

// Shrinking the gap between now and lastActiveAt never flips online to
// offline.
func TestIsOnlineMonotonicInGap(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	previousOnline := false
	for gap := 60 * time.Minute; gap >= -10*time.Minute; gap -= time.Minute {
		online := IsOnline(now, now.Add(-gap), DefaultThreshold)
		if previousOnline {
			assert.True(t, online, "gap=%s turned online back to offline", gap)
		}
		previousOnline = online
	}
}
