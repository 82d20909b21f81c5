package testutil

import (
	"time"

	"github.com/light-bringer/catalog-pricing-service/internal/pkg/clock"
)

// FixedTime is the instant most tests run at.
var FixedTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// NewMockClock creates a mock clock at FixedTime.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(FixedTime)
}
