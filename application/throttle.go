package application

import (
	"sync"

	"croulette/models"

	"golang.org/x/time/rate"
)

// ScopeThrottle rate limits commands per guild or chat
type ScopeThrottle struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[models.Scope]*rate.Limiter
}

// NewScopeThrottle allows perSecond commands per scope with the given burst
func NewScopeThrottle(perSecond float64, burst int) *ScopeThrottle {
	return &ScopeThrottle{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[models.Scope]*rate.Limiter),
	}
}

// Allow reports whether scope may run a command now
func (t *ScopeThrottle) Allow(scope models.Scope) bool {
	t.mu.Lock()
	limiter, ok := t.limiters[scope]
	if !ok {
		limiter = rate.NewLimiter(t.limit, t.burst)
		t.limiters[scope] = limiter
	}
	t.mu.Unlock()

	return limiter.Allow()
}
