// Package weatherapi fetches current conditions from WeatherAPI.com and
// resolves locations through ip-api.com.
package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/daybook-app/daybook/pkg/core"
)

const (
	defaultBaseURL   = "https://api.weatherapi.com/v1"
	defaultDetectURL = "http://ip-api.com/json/"
)

// Client implements core.WeatherClient against WeatherAPI.com.
type Client struct {
	baseURL   string
	detectURL string
	http      *http.Client
	now       func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the WeatherAPI endpoint, used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithDetectURL overrides the IP geolocation endpoint, used in tests.
func WithDetectURL(u string) Option {
	return func(c *Client) { c.detectURL = u }
}

// WithClock overrides the time source for context calculations.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a weather client with a 10 second request timeout.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		detectURL: defaultDetectURL,
		http:      &http.Client{Timeout: 10 * time.Second},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiResponse struct {
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		TempF     float64 `json:"temp_f"`
		IsDay     int     `json:"is_day"`
		Condition struct {
			Text string `json:"text"`
			Code int    `json:"code"`
		} `json:"condition"`
		WindMPH    float64 `json:"wind_mph"`
		WindKPH    float64 `json:"wind_kph"`
		WindDir    string  `json:"wind_dir"`
		PressureMB float64 `json:"pressure_mb"`
		Humidity   float64 `json:"humidity"`
		FeelsC     float64 `json:"feelslike_c"`
		FeelsF     float64 `json:"feelslike_f"`
		VisKM      float64 `json:"vis_km"`
		UV         float64 `json:"uv"`
	} `json:"current"`
}

// Current fetches current conditions for a location.
func (c *Client) Current(ctx context.Context, apiKey, location string) (core.WeatherData, error) {
	if apiKey == "" {
		return core.WeatherData{}, errors.New("weather API key not configured")
	}

	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=no",
		c.baseURL, url.QueryEscape(apiKey), url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return core.WeatherData{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return core.WeatherData{}, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return core.WeatherData{}, fmt.Errorf("weather API error (%d): %s", resp.StatusCode, body)
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return core.WeatherData{}, fmt.Errorf("failed to parse weather response: %w", err)
	}

	return core.WeatherData{
		Location:            out.Location.Name + ", " + out.Location.Country,
		TempCelsius:         out.Current.TempC,
		TempFahrenheit:      out.Current.TempF,
		FeelsLikeCelsius:    out.Current.FeelsC,
		FeelsLikeFahrenheit: out.Current.FeelsF,
		Condition:           mapConditionCode(out.Current.Condition.Code),
		ConditionText:       out.Current.Condition.Text,
		Humidity:            out.Current.Humidity,
		WindKPH:             out.Current.WindKPH,
		WindMPH:             out.Current.WindMPH,
		WindDirection:       out.Current.WindDir,
		Pressure:            out.Current.PressureMB,
		UVIndex:             out.Current.UV,
		Visibility:          out.Current.VisKM,
		IsDay:               out.Current.IsDay == 1,
		Timestamp:           c.now().UTC().Format(time.RFC3339),
	}, nil
}

type ipResponse struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Status  string `json:"status"`
}

// DetectLocation resolves "City, Country" from the caller's IP address.
func (c *Client) DetectLocation(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.detectURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build location request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to detect location: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("failed to detect location from IP")
	}

	var out ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to parse location response: %w", err)
	}
	if out.Status != "success" {
		return "", errors.New("location detection failed")
	}

	switch {
	case out.City != "" && out.Country != "":
		return out.City + ", " + out.Country, nil
	case out.City != "":
		return out.City, nil
	default:
		return "", errors.New("could not determine location")
	}
}

// WeatherAPI.com condition codes collapsed to the normalized set.
func mapConditionCode(code int) string {
	switch code {
	case 1000:
		return core.ConditionClear
	case 1003:
		return core.ConditionPartlyCloudy
	case 1006, 1009:
		return core.ConditionCloudy
	case 1030, 1135, 1147:
		return core.ConditionFog
	case 1063, 1150, 1153, 1168, 1171:
		return core.ConditionDrizzle
	case 1066, 1069, 1072, 1114, 1117, 1210, 1213, 1216, 1219, 1222, 1225, 1237, 1255, 1258, 1261, 1264:
		return core.ConditionSnow
	case 1087, 1273, 1276, 1279, 1282:
		return core.ConditionThunderstorm
	case 1180, 1183, 1186, 1189, 1192, 1195, 1198, 1201, 1204, 1207, 1240, 1243, 1246, 1249, 1252:
		return core.ConditionRain
	default:
		return core.ConditionUnknown
	}
}

var _ core.WeatherClient = (*Client)(nil)
