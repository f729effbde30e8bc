package server

import (
	"sync"
	"time"
)

// loginLimiter is an in-memory sliding-window limiter keyed by client
// IP. Good enough for a single-process deployment; state is lost on
// restart.
type loginLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	attempts map[string][]time.Time

	now func() time.Time
}

func newLoginLimiter(window time.Duration, max int) *loginLimiter {
	return &loginLimiter{
		window:   window,
		max:      max,
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Allow records an attempt for key and reports whether it is within the
// window budget. A rejected attempt is not recorded.
func (l *loginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := make([]time.Time, 0, l.max)
	for _, t := range l.attempts[key] {
		if now.Sub(t) < l.window {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.attempts[key] = recent
		return false
	}

	l.attempts[key] = append(recent, now)
	return true
}
