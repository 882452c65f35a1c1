package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jacketapp/jacketapp/internal/recommend"
	"github.com/jacketapp/jacketapp/internal/weather"
)

func TestCurrentWeatherJSON(t *testing.T) {
	srv := weatherServer(t, owmSnow)
	gateway := weather.NewGateway("test-key", srv.URL, "53717")
	h := NewWeatherHandler(gateway, recommend.NewGenerator("", ""))

	req := requestWithUser(httptest.NewRequest("GET", "/weather", nil), testUser())
	w := httptest.NewRecorder()
	h.CurrentWeather(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var resp weatherResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.TemperatureF != 28 {
		t.Errorf("temperature_f = %d, want 28", resp.TemperatureF)
	}
	if resp.TemperatureC != -2 {
		t.Errorf("temperature_c = %d, want -2", resp.TemperatureC)
	}
	if resp.Condition != "Snow" {
		t.Errorf("condition = %q, want Snow", resp.Condition)
	}
	if resp.WindSpeed != 12 {
		t.Errorf("wind_speed = %d, want 12", resp.WindSpeed)
	}
	if resp.Humidity != 80 {
		t.Errorf("humidity = %d, want 80", resp.Humidity)
	}
	if resp.JacketRecommendation == "" {
		t.Error("expected a jacket recommendation")
	}
	if resp.IconURL != "https://openweathermap.org/img/wn/13d@2x.png" {
		t.Errorf("icon_url = %q", resp.IconURL)
	}
}

func TestCurrentWeatherUnavailable(t *testing.T) {
	srv := weatherServer(t, owmSnow)
	srv.Close()
	gateway := weather.NewGateway("test-key", srv.URL, "53717")
	h := NewWeatherHandler(gateway, recommend.NewGenerator("", ""))

	req := requestWithUser(httptest.NewRequest("GET", "/weather", nil), testUser())
	w := httptest.NewRecorder()
	h.CurrentWeather(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected error message in response")
	}
}
