package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "alice")
	user, err := env.users.ByID(1)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}

	h := NewProfileHandler(env.users)

	req := requestWithUser(postForm("/profile", url.Values{
		"phone":                   {"608-555-0111"},
		"zipcode":                 {"53703"},
		"latitude":                {"43.0731"},
		"longitude":               {"-89.4012"},
		"preferred_time":          {"18:15"},
		"temperature_sensitivity": {"Cold"},
		"notification_threshold":  {"40"},
		"trigger_condition":       {"Snow"},
	}), user)

	w := httptest.NewRecorder()
	h.UpdateProfile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Profile updated") {
		t.Error("expected success notice")
	}

	updated, err := env.users.ByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if updated.PhoneNumber != "+16085550111" {
		t.Errorf("phone = %q", updated.PhoneNumber)
	}
	if updated.PreferredTime != "18:15" {
		t.Errorf("preferred_time = %q", updated.PreferredTime)
	}
	if updated.Latitude == nil || *updated.Latitude != 43.0731 {
		t.Errorf("latitude = %v", updated.Latitude)
	}
	if updated.NotificationThreshold == nil || *updated.NotificationThreshold != 40 {
		t.Errorf("threshold = %v", updated.NotificationThreshold)
	}

	// Job reschedules to the new preferred time
	if got := env.jobs.scheduled[user.ID]; got != [2]int{18, 15} {
		t.Errorf("job time = %v, want [18 15]", got)
	}
}

func TestUpdateProfileLoneLatitudeRejected(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "alice")
	user, err := env.users.ByID(1)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}

	h := NewProfileHandler(env.users)

	req := requestWithUser(postForm("/profile", url.Values{
		"phone":                   {"608-555-0100"},
		"zipcode":                 {"53717"},
		"latitude":                {"43.0731"},
		"preferred_time":          {"07:30"},
		"temperature_sensitivity": {"Normal"},
	}), user)

	w := httptest.NewRecorder()
	h.UpdateProfile(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with error, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "provided together") {
		t.Error("expected lone-coordinate error")
	}

	// The stored profile is untouched
	unchanged, _ := env.users.ByID(user.ID)
	if unchanged.Latitude != nil {
		t.Error("latitude must not be persisted on validation failure")
	}
}

func TestProfilePageShowsStoredValues(t *testing.T) {
	env := newTestEnv(t)
	registerTestUser(t, env, "alice")
	user, err := env.users.ByID(1)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}

	h := NewProfileHandler(env.users)
	req := requestWithUser(httptest.NewRequest("GET", "/profile", nil), user)
	w := httptest.NewRecorder()
	h.ProfilePage(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"+16085550100", "53717", "07:30"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}
