package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/ctxkeys"
	"github.com/Rahik-516/Noor-Web/internal/model"
)

const cleanupInterval = 5 * time.Minute

// RateLimiter admits at most limit calls per key in any sliding window
type RateLimiter struct {
	limit  int
	window time.Duration
	clock  clock.Clock

	mu       sync.Mutex
	requests map[string][]time.Time // ascending admission times per key
	swept    time.Time
}

func NewRateLimiter(limit int, window time.Duration, clk clock.Clock) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		clock:    clk,
		requests: make(map[string][]time.Time),
		swept:    clk.Now(),
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	cutoff := now.Add(-rl.window)

	if now.Sub(rl.swept) >= cleanupInterval {
		rl.sweep(cutoff)
		rl.swept = now
	}

	recent := rl.requests[key]
	expired := 0
	for expired < len(recent) && !recent[expired].After(cutoff) {
		expired++
	}
	recent = recent[expired:]

	if len(recent) >= rl.limit {
		rl.requests[key] = recent
		return false
	}
	rl.requests[key] = append(recent, now)
	return true
}

// sweep forgets keys idle for a whole window
func (rl *RateLimiter) sweep(cutoff time.Time) {
	for key, times := range rl.requests {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.requests, key)
		}
	}
}

// RateLimitPerUser limits an endpoint to limit calls per minute per caller.
// Anonymous callers share a budget per client IP.
func RateLimitPerUser(limit int, clk clock.Clock) func(http.HandlerFunc) http.HandlerFunc {
	limiter := NewRateLimiter(limit, time.Minute, clk)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := ctxkeys.UserID(r.Context())
			if key == "" {
				key = "ip:" + clientIP(r)
			}

			if !limiter.Allow(key) {
				slog.Warn("rate limit exceeded", "key", key, "path", r.URL.Path)
				writeError(w, http.StatusTooManyRequests, model.ErrorCodeTooManyRequests, "too many requests, please try again later")
				return
			}
			next(w, r)
		}
	}
}

// clientIP prefers the proxy headers set by the load balancer
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
