package sms

import (
	"errors"
	"strings"
	"testing"

	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/jacketapp/jacketapp/internal/weather"
)

type fakeAPI struct {
	lastTo   string
	lastBody string
	err      error
	calls    int
}

func (f *fakeAPI) CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error) {
	f.calls++
	if params.To != nil {
		f.lastTo = *params.To
	}
	if params.Body != nil {
		f.lastBody = *params.Body
	}
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioapi.ApiV2010Message{Sid: &sid}, nil
}

func TestSendNormalizesDestination(t *testing.T) {
	api := &fakeAPI{}
	d := NewDispatcherWithAPI(api, "+15550001111")

	if !d.Send("608-770-2909", "hello") {
		t.Fatal("Send returned false, want true")
	}
	if api.lastTo != "+16087702909" {
		t.Errorf("sent to %q, want +16087702909", api.lastTo)
	}
}

func TestSendRejectsBadNumber(t *testing.T) {
	api := &fakeAPI{}
	d := NewDispatcherWithAPI(api, "+15550001111")

	if d.Send("12345", "hello") {
		t.Error("Send returned true for invalid number")
	}
	if api.calls != 0 {
		t.Errorf("provider called %d times for invalid number, want 0", api.calls)
	}
}

func TestSendReportsProviderFailure(t *testing.T) {
	api := &fakeAPI{err: errors.New("upstream 500")}
	d := NewDispatcherWithAPI(api, "+15550001111")

	if d.Send("6087702909", "hello") {
		t.Error("Send returned true on provider failure")
	}
}

func TestSendDisabledWithoutCredentials(t *testing.T) {
	d := NewDispatcher("", "", "")

	if d.Enabled() {
		t.Error("dispatcher enabled without credentials")
	}
	if d.Send("6087702909", "hello") {
		t.Error("Send returned true while disabled")
	}
}

func TestGenerateMessage(t *testing.T) {
	reading := &weather.Reading{
		TempF:     28.4,
		TempC:     (28.4 - 32) * 5 / 9,
		Condition: "Snow",
	}

	msg := GenerateMessage("JacketApp", reading, "Bundle up with a heavy, warm jacket today.")

	for _, want := range []string{"28°F", "-2°C", "Snow", "heavy, warm jacket"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
