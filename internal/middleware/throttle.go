package middleware

import (
	"net/http"
	"sync"
	"time"
)

// Throttle caps how many requests pass within a rolling window. The store is
// single-user, so the budget is global rather than per client; it sits in
// front of the generate endpoint to keep a misbehaving UI from hammering the
// model API.
type Throttle struct {
	mu     sync.Mutex
	stamps []time.Time
	limit  int
	window time.Duration
}

func NewThrottle(limit int, window time.Duration) *Throttle {
	return &Throttle{limit: limit, window: window}
}

func (t *Throttle) allow(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.stamps[:0]
	for _, s := range t.stamps {
		if now.Sub(s) < t.window {
			kept = append(kept, s)
		}
	}
	t.stamps = kept

	if len(t.stamps) >= t.limit {
		return false
	}
	t.stamps = append(t.stamps, now)
	return true
}

func (t *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.allow(time.Now()) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
