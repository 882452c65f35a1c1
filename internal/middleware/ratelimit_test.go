package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !rl.Allow(ctx, "10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow(ctx, "10.0.0.1") {
		t.Error("request over limit should be denied")
	}

	// Other keys are unaffected
	if !rl.Allow(ctx, "10.0.0.2") {
		t.Error("different key should be allowed")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	if !rl.Allow(ctx, "10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow(ctx, "10.0.0.1") {
		t.Fatal("second request should be denied")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.Allow(ctx, "10.0.0.1") {
		t.Error("request after window should be allowed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limited := RateLimit(nil, "test", 2, time.Minute)

	calls := 0
	h := limited(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h(w, req)

		if i < 2 && w.Code == http.StatusTooManyRequests {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
		if i == 2 && w.Code != http.StatusTooManyRequests {
			t.Errorf("request 3 should get 429, got %d", w.Code)
		}
	}

	if calls != 2 {
		t.Errorf("handler ran %d times, want 2", calls)
	}
}

func TestRateLimitSeparateNamesSeparateCounters(t *testing.T) {
	login := RateLimit(nil, "login", 1, time.Minute)
	register := RateLimit(nil, "register", 1, time.Minute)

	pass := func(w http.ResponseWriter, r *http.Request) {}

	req := func() *http.Request {
		r := httptest.NewRequest("POST", "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		return r
	}

	w := httptest.NewRecorder()
	login(pass)(w, req())
	if w.Code == http.StatusTooManyRequests {
		t.Fatal("first login should pass")
	}

	// Register has its own counter for the same IP
	w = httptest.NewRecorder()
	register(pass)(w, req())
	if w.Code == http.StatusTooManyRequests {
		t.Error("register should not share the login counter")
	}
}
