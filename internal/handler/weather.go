package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jacketapp/jacketapp/internal/recommend"
	"github.com/jacketapp/jacketapp/internal/weather"
)

type weatherHandler struct {
	gateway     *weather.Gateway
	recommender *recommend.Generator
}

func NewWeatherHandler(gateway *weather.Gateway, recommender *recommend.Generator) *weatherHandler {
	return &weatherHandler{gateway: gateway, recommender: recommender}
}

type weatherResponse struct {
	TemperatureF         int    `json:"temperature_f"`
	TemperatureC         int    `json:"temperature_c"`
	Condition            string `json:"condition"`
	WindSpeed            int    `json:"wind_speed"`
	Humidity             int    `json:"humidity"`
	JacketRecommendation string `json:"jacket_recommendation"`
	IconURL              string `json:"icon_url"`
}

// CurrentWeather returns the authenticated user's current conditions as
// JSON for the dashboard's client-side refresh.
func (h *weatherHandler) CurrentWeather(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	reading, err := h.gateway.Current(r.Context(), userLocation(user))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, weather.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]string{"error": "unable to fetch weather data"})
		return
	}

	rec := h.recommender.Recommend(r.Context(), reading.TempF, reading.WindMph,
		reading.Condition, user.TemperatureSensitivity)

	writeJSON(w, http.StatusOK, weatherResponse{
		TemperatureF:         roundF(reading.TempF),
		TemperatureC:         roundF(reading.TempC),
		Condition:            reading.Condition,
		WindSpeed:            roundF(reading.WindMph),
		Humidity:             reading.Humidity,
		JacketRecommendation: rec,
		IconURL:              reading.IconURL(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}
