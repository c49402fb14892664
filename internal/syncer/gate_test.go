package syncer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldRun(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	interval := 15 * time.Minute

	tests := []struct {
		name            string
		force           bool
		lastRefreshedAt time.Time
		expected        bool
	}{
		{"force overrides recent refresh", true, now.Add(-time.Minute), true},
		{"force overrides zero timestamp", true, time.Time{}, true},
		{"never refreshed is always due", false, time.Time{}, true},
		{"interval elapsed", false, now.Add(-16 * time.Minute), true},
		{"interval exactly elapsed", false, now.Add(-interval), true},
		{"interval not elapsed", false, now.Add(-time.Minute), false},
		{"refreshed just now", false, now, false},
		{"refreshed in the future", false, now.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldRun(tt.force, tt.lastRefreshedAt, interval, now))
		})
	}
}

func TestShouldRun_ZeroInterval(t *testing.T) {
	now := time.Now()
	// With a zero minimum interval every pass is due.
	assert.True(t, ShouldRun(false, now.Add(-time.Nanosecond), 0, now))
	assert.True(t, ShouldRun(false, now, 0, now))
}
