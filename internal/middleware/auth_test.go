package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jacketapp/jacketapp/internal/ctxkeys"
	"github.com/jacketapp/jacketapp/internal/model"
)

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	h := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for anonymous request")
	})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/dashboard", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected /login, got %q", loc)
	}
}

func TestRequireAuthJSONForAPIPath(t *testing.T) {
	h := RequireAuth(func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/weather", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not logged in") {
		t.Error("expected JSON error body")
	}
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	ran := false
	h := RequireAuth(func(w http.ResponseWriter, r *http.Request) { ran = true })

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: 1}))

	h(httptest.NewRecorder(), req)
	if !ran {
		t.Error("expected handler to run")
	}
}

func TestRequireGuestRedirectsAuthenticated(t *testing.T) {
	h := RequireGuest(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for authenticated request")
	})

	req := httptest.NewRequest("GET", "/login", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: 1}))

	w := httptest.NewRecorder()
	h(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("expected /dashboard, got %q", loc)
	}
}
