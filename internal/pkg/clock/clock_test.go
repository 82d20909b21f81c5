package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_ReturnsUTC(t *testing.T) {
	now := NewRealClock().Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	clk := NewMockClock(start)

	t.Run("normalizes to UTC", func(t *testing.T) {
		assert.Equal(t, time.UTC, clk.Now().Location())
		assert.True(t, clk.Now().Equal(start))
	})

	t.Run("advance", func(t *testing.T) {
		clk.Advance(2 * time.Hour)
		assert.True(t, clk.Now().Equal(start.Add(2*time.Hour)))
	})

	t.Run("set", func(t *testing.T) {
		target := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		clk.Set(target)
		assert.Equal(t, target, clk.Now())
	})
}
