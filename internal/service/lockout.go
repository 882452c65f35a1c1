package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockoutThreshold = 5
	lockoutWindow    = time.Hour
)

// LockoutGuard tracks failed login attempts per username and IP in
// Redis. Disabled (never locks) when no Redis connection is
// configured, and fails open on Redis errors so an outage cannot lock
// everyone out.
type LockoutGuard struct {
	client *redis.Client
}

func NewLockoutGuard(client *redis.Client) *LockoutGuard {
	return &LockoutGuard{client: client}
}

func failedLoginKey(username, ip string) string {
	return fmt.Sprintf("failed_login:%s:%s", username, ip)
}

// Locked reports whether the username/IP pair has exceeded the failed
// attempt threshold within the window.
func (g *LockoutGuard) Locked(ctx context.Context, username, ip string) bool {
	if g.client == nil {
		return false
	}

	attempts, err := g.client.Get(ctx, failedLoginKey(username, ip)).Int()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("lockout check failed, allowing attempt", "error", err)
		}
		return false
	}

	return attempts >= lockoutThreshold
}

// RecordFailure increments the failed attempt counter and refreshes
// its expiry.
func (g *LockoutGuard) RecordFailure(ctx context.Context, username, ip string) {
	if g.client == nil {
		return
	}

	key := failedLoginKey(username, ip)
	attempts, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("lockout record failed", "error", err)
		return
	}
	g.client.Expire(ctx, key, lockoutWindow)

	if attempts >= lockoutThreshold {
		slog.Warn("account locked after repeated failures",
			"username", username,
			"ip", ip,
			"attempts", attempts,
		)
	}
}

// ClearFailures resets the counter after a successful login.
func (g *LockoutGuard) ClearFailures(ctx context.Context, username, ip string) {
	if g.client == nil {
		return
	}

	if err := g.client.Del(ctx, failedLoginKey(username, ip)).Err(); err != nil {
		slog.Warn("lockout clear failed", "error", err)
	}
}
