// Package middleware provides HTTP middleware for the caseflow API.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxTrackedClients bounds the per-IP table so an address scan cannot grow
// it without limit.
const maxTrackedClients = 100_000

// limiterSweepInterval and limiterIdleAge control eviction of idle clients.
const (
	limiterSweepInterval = 5 * time.Minute
	limiterIdleAge       = 10 * time.Minute
)

// clientBucket tracks the token balance for one client IP. Tokens are
// fractional so sub-second refill intervals accumulate instead of rounding
// to zero.
type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter applies a per-IP token bucket. All clients share the same
// rate and burst.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	rate    float64
	burst   float64
}

// NewRateLimiter creates a limiter allowing ratePerSec sustained requests
// with the given burst headroom per client IP. A background sweep evicts
// idle clients until ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		rate:    float64(ratePerSec),
		burst:   float64(burst),
	}
	go rl.sweep(ctx)

	return rl
}

func (rl *RateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(limiterSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.clients {
				if now.Sub(b.lastSeen) > limiterIdleAge {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// take refills the bucket for elapsed time and spends one token if available.
// Caller holds rl.mu.
func (rl *RateLimiter) take(b *clientBucket, now time.Time) bool {
	b.tokens += now.Sub(b.lastSeen).Seconds() * rl.rate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--

	return true
}

// Handler returns gin middleware enforcing the limit per client IP.
// c.ClientIP() cannot be spoofed via X-Forwarded-For here: the router calls
// SetTrustedProxies(nil).
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rl.mu.Lock()
		b, ok := rl.clients[ip]
		if !ok {
			if len(rl.clients) >= maxTrackedClients {
				rl.mu.Unlock()
				respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")

				return
			}

			b = &clientBucket{tokens: rl.burst, lastSeen: now}
			rl.clients[ip] = b
		}

		allowed := rl.take(b, now)
		rl.mu.Unlock()

		if !allowed {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
