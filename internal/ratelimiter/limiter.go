package ratelimiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientLimiters holds one token bucket per client key (usually the client IP).
// Buckets are created lazily on first use and evicted by Sweep once they have
// been idle for longer than idleTTL.
type ClientLimiters struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates ClientLimiters allowing ratePerSec steady-state requests per
// client with the given burst. ratePerSec <= 0 disables limiting entirely.
func New(ratePerSec, burst int, idleTTL time.Duration) *ClientLimiters {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiters{
		clients: make(map[string]*client),
		limit:   rate.Limit(ratePerSec),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Enabled reports whether requests are actually being limited.
func (cl *ClientLimiters) Enabled() bool {
	return cl.limit > 0
}

// Allow takes one token from key's bucket. When none is available it returns
// false and how long the client should wait before the next token.
func (cl *ClientLimiters) Allow(key string) (bool, time.Duration) {
	if !cl.Enabled() {
		return true, 0
	}

	cl.mu.Lock()
	now := cl.now()
	c, ok := cl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.clients[key] = c
	}
	c.lastSeen = now
	cl.mu.Unlock()

	res := c.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if delay := res.DelayFrom(now); delay > 0 {
		// Give the token back; the request is rejected, not queued.
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Sweep drops buckets idle for longer than idleTTL and returns how many
// were removed.
func (cl *ClientLimiters) Sweep() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cutoff := cl.now().Add(-cl.idleTTL)
	removed := 0
	for key, c := range cl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(cl.clients, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (cl *ClientLimiters) Len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.clients)
}

// Run sweeps idle buckets every interval until ctx is cancelled.
func (cl *ClientLimiters) Run(ctx context.Context, interval time.Duration) {
	if !cl.Enabled() || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cl.Sweep()
		}
	}
}
