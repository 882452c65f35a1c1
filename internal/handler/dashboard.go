package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/jacketapp/jacketapp/internal/model"
	"github.com/jacketapp/jacketapp/internal/recommend"
	"github.com/jacketapp/jacketapp/internal/service"
	"github.com/jacketapp/jacketapp/internal/ui"
	"github.com/jacketapp/jacketapp/internal/validation"
	"github.com/jacketapp/jacketapp/internal/weather"
)

type dashboardHandler struct {
	userService *service.UserService
	gateway     *weather.Gateway
	recommender *recommend.Generator
}

func NewDashboardHandler(userService *service.UserService, gateway *weather.Gateway, recommender *recommend.Generator) *dashboardHandler {
	return &dashboardHandler{
		userService: userService,
		gateway:     gateway,
		recommender: recommender,
	}
}

// DashboardPage shows current weather with a clothing recommendation.
// A failed weather fetch degrades to a notice instead of an error page.
func (h *dashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	form := map[string]string{
		"weather_ok":     "false",
		"phone":          user.PhoneNumber,
		"preferred_time": validation.DisplayTimeOfDay(user.PreferredTime),
	}

	if next, ok := h.userService.NextRun(user.ID); ok {
		form["next_run"] = next.Format("Mon Jan 2 at 3:04 PM")
	}

	reading, err := h.gateway.Current(r.Context(), userLocation(user))
	if err == nil {
		rec := h.recommender.Recommend(r.Context(), reading.TempF, reading.WindMph,
			reading.Condition, user.TemperatureSensitivity)

		form["weather_ok"] = "true"
		form["temperature_f"] = strconv.Itoa(roundF(reading.TempF))
		form["temperature_c"] = strconv.Itoa(roundF(reading.TempC))
		form["condition"] = reading.Condition
		form["wind_speed"] = strconv.Itoa(roundF(reading.WindMph))
		form["humidity"] = strconv.Itoa(reading.Humidity)
		form["icon_url"] = reading.IconURL()
		form["recommendation"] = rec
	}

	ui.Render(w, r, "dashboard", ui.PageData{
		Title: "Dashboard",
		Form:  form,
	})
}

func userLocation(user *model.User) weather.Location {
	loc := weather.Location{Zipcode: user.Zipcode}
	if user.HasCoordinates() {
		loc.Latitude = user.Latitude
		loc.Longitude = user.Longitude
	}
	return loc
}

func roundF(v float64) int {
	return int(math.Round(v))
}
