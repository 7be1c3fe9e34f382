// Package weather looks up current ambient conditions from the OpenWeather
// API. Readings are fetched fresh on demand and never persisted.
package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"
)

// ErrUnavailable wraps any failure to obtain a reading. Callers recover
// locally with a default temperature instead of surfacing this to the user.
var ErrUnavailable = errors.New("weather service unavailable")

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultCity    = "Hanoi,VN"
	defaultTimeout = 5 * time.Second
)

// Reading is a single ambient temperature observation in degrees Celsius.
type Reading struct {
	Temp        float64
	Description string
}

// Config holds the OpenWeather client settings.
type Config struct {
	// APIKey is the OpenWeather API key. Required.
	APIKey string
	// City is the query location, e.g. "Hanoi,VN".
	City string
	// Timeout bounds the whole lookup including connection setup.
	Timeout time.Duration
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
}

// Client fetches current conditions over HTTP with a bounded timeout.
type Client struct {
	http    *http.Client
	baseURL string
	city    string
	apiKey  string
}

// NewClient creates a weather client. Zero-value config fields fall back to
// Hanoi, a 5 second timeout, and the public OpenWeather endpoint.
func NewClient(cfg Config) *Client {
	if cfg.City == "" {
		cfg.City = defaultCity
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		city:    cfg.City,
		apiKey:  cfg.APIKey,
	}
}

// currentResponse mirrors the subset of the OpenWeather payload we read.
type currentResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Current fetches the current temperature and description for the configured
// city in metric units.
func (c *Client) Current(ctx context.Context) (Reading, error) {
	if c.apiKey == "" {
		return Reading{}, errors.Wrap(ErrUnavailable, "missing API key")
	}

	q := url.Values{}
	q.Set("q", c.city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Reading{}, errors.Wrap(err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Reading{}, errors.Wrapf(ErrUnavailable, "fetch weather: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Reading{}, errors.Wrapf(ErrUnavailable, "fetch weather: status %d", resp.StatusCode)
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Reading{}, errors.Wrapf(ErrUnavailable, "decode weather: %v", err)
	}

	r := Reading{Temp: body.Main.Temp}
	if len(body.Weather) > 0 {
		r.Description = body.Weather[0].Description
	}
	return r, nil
}
