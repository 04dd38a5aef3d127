package validate

import (
	"sync"
	"time"
)

// unknownClient buckets requests whose origin could not be derived.
// All unidentified clients share one bucket, which caps throughput
// behind proxies that hide the real IP.
const unknownClient = "unknown"

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter enforces a fixed-capacity window per client identifier.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	clients map[string]*window
}

// NewRateLimiter creates a limiter allowing limit requests per span
// for each client.
func NewRateLimiter(limit int, span time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  span,
		now:     time.Now,
		clients: make(map[string]*window),
	}
}

// Allow reports whether the client may proceed, counting the request
// against its window. A rejected request has no side effects.
func (l *RateLimiter) Allow(clientID string) bool {
	if clientID == "" {
		clientID = unknownClient
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[clientID]
	if !ok || now.After(w.resetAt) {
		l.clients[clientID] = &window{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}
