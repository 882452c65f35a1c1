package sms

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/jacketapp/jacketapp/internal/metrics"
	"github.com/jacketapp/jacketapp/internal/validation"
	"github.com/jacketapp/jacketapp/internal/weather"
)

// messageCreator is the slice of the Twilio REST client the dispatcher
// needs; tests substitute a fake.
type messageCreator interface {
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

type Dispatcher struct {
	api        messageCreator
	fromNumber string
	enabled    bool
}

// NewDispatcher builds the SMS dispatcher. Missing credentials disable it:
// sends become logged no-ops returning false rather than errors.
func NewDispatcher(accountSID, authToken, fromNumber string) *Dispatcher {
	enabled := accountSID != "" && authToken != "" && fromNumber != ""
	if !enabled {
		slog.Info("sms dispatcher disabled (missing Twilio credentials)")
		return &Dispatcher{enabled: false}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &Dispatcher{
		api:        client.Api,
		fromNumber: fromNumber,
		enabled:    true,
	}
}

// NewDispatcherWithAPI is used by tests to substitute a fake Twilio API.
func NewDispatcherWithAPI(api messageCreator, fromNumber string) *Dispatcher {
	return &Dispatcher{api: api, fromNumber: fromNumber, enabled: true}
}

func (d *Dispatcher) Enabled() bool {
	return d.enabled
}

// Send normalizes the destination number and delivers the message body.
// It never propagates provider failures: any problem is logged and reported
// as false so a failed send cannot interrupt the notification pipeline.
func (d *Dispatcher) Send(phone, body string) bool {
	if !d.enabled {
		slog.Warn("sms send skipped, dispatcher disabled", "to", phone)
		return false
	}

	to, err := validation.NormalizePhone(phone)
	if err != nil {
		slog.Error("sms send rejected, invalid destination number", "to", phone, "error", err)
		return false
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(d.fromNumber)
	params.SetBody(body)

	resp, err := d.api.CreateMessage(params)
	if err != nil {
		metrics.APIRequests.WithLabelValues("twilio", "error").Inc()
		slog.Error("sms send failed", "to", to, "error", err)
		return false
	}

	metrics.APIRequests.WithLabelValues("twilio", "success").Inc()
	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	slog.Info("sms sent", "to", to, "sid", sid)
	return true
}

// GenerateMessage composes the daily notification body: greeting,
// temperature in both scales (rounded), condition and the clothing
// recommendation.
func GenerateMessage(appName string, reading *weather.Reading, recommendation string) string {
	return fmt.Sprintf("Good morning from %s! It's %d°F (%d°C) with %s. %s",
		appName,
		int(math.Round(reading.TempF)),
		int(math.Round(reading.TempC)),
		reading.Condition,
		recommendation)
}
