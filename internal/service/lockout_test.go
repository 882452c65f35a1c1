package service

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestLockoutDisabledWithoutRedis(t *testing.T) {
	guard := NewLockoutGuard(nil)
	ctx := context.Background()

	if guard.Locked(ctx, "alice", "10.0.0.1") {
		t.Error("expected unlocked when redis is not configured")
	}

	// No-ops, must not panic
	guard.RecordFailure(ctx, "alice", "10.0.0.1")
	guard.ClearFailures(ctx, "alice", "10.0.0.1")

	if guard.Locked(ctx, "alice", "10.0.0.1") {
		t.Error("expected unlocked after no-op failures")
	}
}

func TestLockoutFailsOpenOnRedisError(t *testing.T) {
	// Nothing listens on this port; every call errors
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	guard := NewLockoutGuard(client)
	ctx := context.Background()

	guard.RecordFailure(ctx, "alice", "10.0.0.1")
	if guard.Locked(ctx, "alice", "10.0.0.1") {
		t.Error("expected fail-open when redis is unreachable")
	}
}
