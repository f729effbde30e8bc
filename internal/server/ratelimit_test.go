package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiterSlidingWindow(t *testing.T) {
	current := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	limiter := newLoginLimiter(5*time.Minute, 3)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"))
	}
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Other keys have their own budget.
	assert.True(t, limiter.Allow("10.0.0.2"))

	// The rejected attempt was not recorded; once the window slides
	// past the original attempts the key recovers.
	current = current.Add(5*time.Minute + time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"))
}

func TestLoginLimiterPartialExpiry(t *testing.T) {
	current := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	limiter := newLoginLimiter(5*time.Minute, 2)
	limiter.now = func() time.Time { return current }

	assert.True(t, limiter.Allow("k"))

	current = current.Add(4 * time.Minute)
	assert.True(t, limiter.Allow("k"))
	assert.False(t, limiter.Allow("k"))

	// First attempt ages out, the second is still inside the window.
	current = current.Add(90 * time.Second)
	assert.True(t, limiter.Allow("k"))
	assert.False(t, limiter.Allow("k"))
}
