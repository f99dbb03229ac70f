package service

import (
	"sync"

	"golang.org/x/time/rate"
)

const (
	// DefaultLoginRatePerMinute is the default number of login attempts
	// allowed per username per minute
	DefaultLoginRatePerMinute = 10
	// DefaultLoginBurst is the default burst size
	DefaultLoginBurst = 5
)

// loginLimiter throttles login attempts per username with a token bucket.
// Entries live for the process lifetime; a single-operator deployment never
// accumulates enough usernames to need expiry.
type loginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLoginLimiter(attemptsPerMinute, burst int) *loginLimiter {
	return &loginLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(attemptsPerMinute) / 60.0),
		burst:    burst,
	}
}

// Allow reports whether another attempt for username may proceed now.
func (l *loginLimiter) Allow(username string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[username]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[username] = limiter
	}
	return limiter.Allow()
}
