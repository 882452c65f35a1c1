package notify

import (
	"context"
	"log/slog"
	"math"

	"github.com/jacketapp/jacketapp/internal/metrics"
	"github.com/jacketapp/jacketapp/internal/model"
	"github.com/jacketapp/jacketapp/internal/repository"
	"github.com/jacketapp/jacketapp/internal/sms"
	"github.com/jacketapp/jacketapp/internal/weather"
)

// WeatherGateway fetches current conditions for a location.
type WeatherGateway interface {
	Current(ctx context.Context, loc weather.Location) (*weather.Reading, error)
}

// Recommender produces a clothing suggestion; it must always succeed.
type Recommender interface {
	Recommend(ctx context.Context, tempF, windMph float64, condition, sensitivity string) string
}

// Sender delivers the composed message; false means the send did not happen.
type Sender interface {
	Send(phone, body string) bool
}

// Pipeline runs the scheduled notification workflow for one user:
// fresh user load, weather fetch, trigger-policy gate, recommendation,
// message composition, SMS dispatch. Every failure is contained here so
// one user's bad run cannot affect another's.
type Pipeline struct {
	users   repository.UserRepository
	gateway WeatherGateway
	rec     Recommender
	sender  Sender
	appName string
}

func NewPipeline(users repository.UserRepository, gateway WeatherGateway, rec Recommender, sender Sender, appName string) *Pipeline {
	return &Pipeline{
		users:   users,
		gateway: gateway,
		rec:     rec,
		sender:  sender,
		appName: appName,
	}
}

// Run executes one scheduled fire for the user. The user record is loaded
// fresh from the store, not from a snapshot captured at schedule time.
func (p *Pipeline) Run(ctx context.Context, userID int64) {
	user, err := p.users.ByID(userID)
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		slog.Error("notification run aborted, user load failed", "user_id", userID, "error", err)
		return
	}

	reading, err := p.gateway.Current(ctx, resolveLocation(user))
	if err != nil {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		slog.Error("notification run aborted, weather unavailable", "user_id", userID, "error", err)
		return
	}

	if !ShouldNotify(user, reading) {
		metrics.NotificationsSent.WithLabelValues("skipped").Inc()
		slog.Debug("notification skipped by trigger policy",
			"user_id", userID, "temp_f", reading.TempF, "condition", reading.Condition)
		return
	}

	recommendation := p.rec.Recommend(ctx, reading.TempF, reading.WindMph, reading.Condition, user.TemperatureSensitivity)
	body := sms.GenerateMessage(p.appName, reading, recommendation)

	if !p.sender.Send(user.PhoneNumber, body) {
		metrics.NotificationsSent.WithLabelValues("failed").Inc()
		slog.Error("notification dispatch failed", "user_id", userID)
		return
	}

	metrics.NotificationsSent.WithLabelValues("sent").Inc()
	slog.Info("notification sent", "user_id", userID, "temp_f", int(math.Round(reading.TempF)), "condition", reading.Condition)
}

// ShouldNotify applies the user's notification-trigger policy: send when
// the temperature is below the threshold or the condition matches the
// trigger condition. A user with neither configured always gets the
// daily message.
func ShouldNotify(user *model.User, reading *weather.Reading) bool {
	if user.NotificationThreshold == nil && user.TriggerCondition == "" {
		return true
	}
	if user.NotificationThreshold != nil && reading.TempF < float64(*user.NotificationThreshold) {
		return true
	}
	if user.TriggerCondition != "" && reading.Condition == user.TriggerCondition {
		return true
	}
	return false
}

// resolveLocation prefers explicit coordinates, falls back to zipcode.
// A user with neither gets the gateway's default location.
func resolveLocation(user *model.User) weather.Location {
	if user.HasCoordinates() {
		return weather.Location{Latitude: user.Latitude, Longitude: user.Longitude}
	}
	return weather.Location{Zipcode: user.Zipcode}
}
