package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jacketapp/jacketapp/internal/metrics"
)

// ErrUnavailable is the single failure surfaced to callers. Timeouts,
// non-2xx responses and malformed bodies all collapse into it; raw
// transport errors never cross the gateway boundary.
var ErrUnavailable = errors.New("unable to fetch weather data")

// Location is a discriminated choice: coordinates win over zipcode.
type Location struct {
	Zipcode   string
	Latitude  *float64
	Longitude *float64
}

// Reading is a normalized current-conditions snapshot. Temperatures are
// fetched in imperial units; Celsius is derived locally via (f-32)*5/9
// rather than a second provider call.
type Reading struct {
	TempF     float64
	TempC     float64
	WindMph   float64
	Humidity  int
	Condition string
	Icon      string
}

// IconURL returns the provider's asset URL for the reading's icon code.
func (r Reading) IconURL() string {
	if r.Icon == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", r.Icon)
}

type Gateway struct {
	apiKey         string
	baseURL        string
	defaultZipcode string
	client         *http.Client
}

func NewGateway(apiKey, baseURL, defaultZipcode string) *Gateway {
	return &Gateway{
		apiKey:         apiKey,
		baseURL:        baseURL,
		defaultZipcode: defaultZipcode,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// response mirrors the provider's JSON shape for the fields we consume.
type response struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
}

// Current fetches the current weather for a location. A location with
// neither coordinates nor a zipcode falls back to the configured default
// zipcode instead of failing.
func (g *Gateway) Current(ctx context.Context, loc Location) (*Reading, error) {
	q := url.Values{}
	q.Set("appid", g.apiKey)
	q.Set("units", "imperial")

	switch {
	case loc.Latitude != nil && loc.Longitude != nil:
		q.Set("lat", fmt.Sprintf("%f", *loc.Latitude))
		q.Set("lon", fmt.Sprintf("%f", *loc.Longitude))
	case loc.Zipcode != "":
		q.Set("zip", loc.Zipcode+",us")
	default:
		q.Set("zip", g.defaultZipcode+",us")
	}

	reading, err := g.fetch(ctx, q)
	if err != nil {
		metrics.APIRequests.WithLabelValues("weather", "error").Inc()
		slog.Error("weather provider call failed", "error", err)
		return nil, ErrUnavailable
	}

	metrics.APIRequests.WithLabelValues("weather", "success").Inc()
	return reading, nil
}

func (g *Gateway) fetch(ctx context.Context, q url.Values) (*Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if len(body.Weather) == 0 {
		return nil, errors.New("response missing weather conditions")
	}

	return &Reading{
		TempF:     body.Main.Temp,
		TempC:     (body.Main.Temp - 32) * 5 / 9,
		WindMph:   body.Wind.Speed,
		Humidity:  body.Main.Humidity,
		Condition: body.Weather[0].Main,
		Icon:      body.Weather[0].Icon,
	}, nil
}
