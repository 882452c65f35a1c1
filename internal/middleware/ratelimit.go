package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// limiterStore counts requests per key within a sliding window.
type limiterStore interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimiter tracks request counts per IP address in memory. Used when
// no Redis connection is configured; counts reset on restart.
type RateLimiter struct {
	mu       sync.RWMutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
}

// NewRateLimiter creates a new in-memory rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}

	// Cleanup goroutine to prevent memory leak
	go rl.cleanupLoop()

	return rl
}

// Allow checks if a request for key should be allowed
func (rl *RateLimiter) Allow(_ context.Context, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	// Drop requests outside the window
	validRequests := []time.Time{}
	for _, reqTime := range rl.requests[key] {
		if reqTime.After(cutoff) {
			validRequests = append(validRequests, reqTime)
		}
	}

	if len(validRequests) >= rl.limit {
		rl.requests[key] = validRequests
		return false
	}

	validRequests = append(validRequests, now)
	rl.requests[key] = validRequests

	return true
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window * 2)

	for key, requests := range rl.requests {
		allOld := true
		for _, reqTime := range requests {
			if reqTime.After(cutoff) {
				allOld = false
				break
			}
		}
		if allOld {
			delete(rl.requests, key)
		}
	}
}

// redisRateLimiter counts requests in Redis so limits survive restarts
// and apply across instances. Fails open when Redis is unreachable.
type redisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func newRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *redisRateLimiter {
	return &redisRateLimiter{client: client, limit: limit, window: window}
}

func (rl *redisRateLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := "ratelimit:" + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		slog.Warn("rate limit redis error, allowing request", "error", err)
		return true
	}
	if count == 1 {
		rl.client.Expire(ctx, redisKey, rl.window)
	}

	return count <= int64(rl.limit)
}

// RateLimit creates rate limiting middleware for an endpoint. The name
// scopes counters so login and register limits are tracked separately.
// Uses Redis when provided, in-memory otherwise.
func RateLimit(rdb *redis.Client, name string, limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	var store limiterStore
	if rdb != nil {
		store = newRedisRateLimiter(rdb, limit, window)
	} else {
		store = NewRateLimiter(limit, window)
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			if !store.Allow(r.Context(), name+":"+ip) {
				slog.Warn("rate limit exceeded",
					"ip", ip,
					"path", r.URL.Path,
				)
				http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next(w, r)
		}
	}
}

// RateLimitLogin limits login attempts to 5 per 15 minutes per IP
func RateLimitLogin(rdb *redis.Client) func(http.HandlerFunc) http.HandlerFunc {
	return RateLimit(rdb, "login", 5, 15*time.Minute)
}

// RateLimitRegister limits registrations to 3 per hour per IP
func RateLimitRegister(rdb *redis.Client) func(http.HandlerFunc) http.HandlerFunc {
	return RateLimit(rdb, "register", 3, time.Hour)
}

// getClientIP extracts the real client IP from request
func getClientIP(r *http.Request) string {
	// X-Forwarded-For set by proxy/load balancer
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
