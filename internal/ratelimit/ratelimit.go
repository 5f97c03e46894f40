package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// PerSession enforces a minimum interval between detail fetches for the
// same session. A request inside the window is skipped, never queued.
type PerSession struct {
	mu       sync.Mutex
	window   time.Duration
	limiters map[string]*rate.Limiter
}

func NewPerSession(window time.Duration) *PerSession {
	return &PerSession{
		window:   window,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the session may issue a fetch now. The first call
// for a session always passes.
func (p *PerSession) Allow(sessionID string) bool {
	p.mu.Lock()
	limiter, ok := p.limiters[sessionID]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(p.window), 1)
		p.limiters[sessionID] = limiter
	}
	p.mu.Unlock()
	return limiter.Allow()
}
