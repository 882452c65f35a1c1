package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jacketapp/jacketapp/internal/model"
	"github.com/jacketapp/jacketapp/internal/repository"
	"github.com/jacketapp/jacketapp/internal/service"
	"github.com/jacketapp/jacketapp/internal/ui"
	"github.com/jacketapp/jacketapp/internal/validation"
)

type profileHandler struct {
	userService *service.UserService
}

func NewProfileHandler(userService *service.UserService) *profileHandler {
	return &profileHandler{userService: userService}
}

func (h *profileHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	ui.Render(w, r, "profile", ui.PageData{
		Title: "Profile",
		Form:  profileForm(user),
	})
}

func (h *profileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	in := service.ProfileInput{
		Phone:            r.FormValue("phone"),
		Zipcode:          r.FormValue("zipcode"),
		PreferredTime:    r.FormValue("preferred_time"),
		Sensitivity:      r.FormValue("temperature_sensitivity"),
		Threshold:        r.FormValue("notification_threshold"),
		TriggerCondition: r.FormValue("trigger_condition"),
	}

	lat, lon, err := parseCoordinates(r.FormValue("latitude"), r.FormValue("longitude"))
	if err != nil {
		ui.Render(w, r, "profile", ui.PageData{
			Title: "Profile",
			Error: err.Error(),
			Form:  submittedProfileForm(r),
		})
		return
	}
	in.Latitude = lat
	in.Longitude = lon

	updated, err := h.userService.UpdateProfile(user.ID, in)
	if err != nil {
		ui.Render(w, r, "profile", ui.PageData{
			Title: "Profile",
			Error: profileErrorMessage(err),
			Form:  submittedProfileForm(r),
		})
		return
	}

	ui.Render(w, r, "profile", ui.PageData{
		Title:  "Profile",
		Notice: "Profile updated",
		User:   updated,
		Form:   profileForm(updated),
	})
}

// parseCoordinates requires both values or neither; a lone latitude
// cannot locate anything.
func parseCoordinates(latRaw, lonRaw string) (*float64, *float64, error) {
	latRaw = strings.TrimSpace(latRaw)
	lonRaw = strings.TrimSpace(lonRaw)

	if latRaw == "" && lonRaw == "" {
		return nil, nil, nil
	}
	if latRaw == "" || lonRaw == "" {
		return nil, nil, errors.New("latitude and longitude must be provided together")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, nil, errors.New("latitude must be a number between -90 and 90")
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, nil, errors.New("longitude must be a number between -180 and 180")
	}

	return &lat, &lon, nil
}

func profileForm(user *model.User) map[string]string {
	form := map[string]string{
		"phone":                   user.PhoneNumber,
		"zipcode":                 user.Zipcode,
		"preferred_time":          user.PreferredTime,
		"temperature_sensitivity": user.TemperatureSensitivity,
		"trigger_condition":       user.TriggerCondition,
	}
	if user.Latitude != nil {
		form["latitude"] = strconv.FormatFloat(*user.Latitude, 'f', -1, 64)
	}
	if user.Longitude != nil {
		form["longitude"] = strconv.FormatFloat(*user.Longitude, 'f', -1, 64)
	}
	if user.NotificationThreshold != nil {
		form["notification_threshold"] = strconv.Itoa(*user.NotificationThreshold)
	}
	return form
}

func submittedProfileForm(r *http.Request) map[string]string {
	return map[string]string{
		"phone":                   r.FormValue("phone"),
		"zipcode":                 r.FormValue("zipcode"),
		"latitude":                r.FormValue("latitude"),
		"longitude":               r.FormValue("longitude"),
		"preferred_time":          r.FormValue("preferred_time"),
		"temperature_sensitivity": r.FormValue("temperature_sensitivity"),
		"notification_threshold":  r.FormValue("notification_threshold"),
		"trigger_condition":       r.FormValue("trigger_condition"),
	}
}

func profileErrorMessage(err error) string {
	switch {
	case errors.Is(err, validation.ErrInvalidPhone):
		return "Please provide a valid US phone number"
	case errors.Is(err, validation.ErrInvalidZipcode):
		return "Please provide a valid US zipcode"
	case errors.Is(err, validation.ErrInvalidTimeOfDay):
		return "Please provide a valid notification time"
	case errors.Is(err, service.ErrInvalidSensitivity),
		errors.Is(err, service.ErrInvalidThreshold):
		return err.Error()
	case errors.Is(err, repository.ErrDuplicatePhone):
		return "That phone number is already registered"
	default:
		slog.Error("profile update failed", "error", err)
		return "Could not update profile. Please try again."
	}
}
