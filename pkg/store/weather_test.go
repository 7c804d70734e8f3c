package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/pkg/core"
)

// fakeWeatherProvider scripts detection and fetch results.
type fakeWeatherProvider struct {
	detected    string
	context     *core.JournalContext
	fetchCalls  int
	detectCalls int
}

func (f *fakeWeatherProvider) Detect(context.Context) string {
	f.detectCalls++
	return f.detected
}

func (f *fakeWeatherProvider) Context(context.Context, string, string) *core.JournalContext {
	f.fetchCalls++
	if f.context == nil {
		return nil
	}
	out := *f.context
	return &out
}

// staticSettings serves a fixed settings value.
type staticSettings struct{ settings core.Settings }

func (s *staticSettings) Current() core.Settings { return s.settings }

func weatherSettings(enabled bool, location, apiKey string, autoDetect bool) *staticSettings {
	settings := core.DefaultSettings()
	settings.Weather.Enabled = enabled
	settings.Weather.Location = location
	settings.Weather.APIKey = apiKey
	settings.Weather.AutoDetectLocation = autoDetect
	return &staticSettings{settings: settings}
}

func sunny() *core.JournalContext {
	return &core.JournalContext{
		Weather: &core.WeatherData{
			Location:      "Lisbon, Portugal",
			TempCelsius:   21,
			Condition:     core.ConditionClear,
			ConditionText: "Sunny",
		},
		DayOfWeek: "Wednesday",
		TimeOfDay: "morning",
		MoonPhase: "Full Moon",
	}
}

func TestRefreshFetchesAndCaches(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny()}
	s := NewWeather(svc, weatherSettings(true, "Lisbon", "key", false), nil)

	clock := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.Refresh(context.Background())
	require.NotNil(t, s.Current())
	assert.Equal(t, "Lisbon, Portugal", s.Current().Location)
	assert.Equal(t, 1, svc.fetchCalls)

	// Within the TTL the cache answers; no second network call.
	clock = clock.Add(WeatherTTL - time.Minute)
	s.Refresh(context.Background())
	assert.Equal(t, 1, svc.fetchCalls)

	// Past the TTL a refresh fetches again.
	clock = clock.Add(2 * time.Minute)
	s.Refresh(context.Background())
	assert.Equal(t, 2, svc.fetchCalls)
}

func TestRefreshNewKeyBypassesTTL(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny()}
	settings := weatherSettings(true, "Lisbon", "key", false)
	s := NewWeather(svc, settings, nil)

	s.Refresh(context.Background())
	assert.Equal(t, 1, svc.fetchCalls)

	// Changing the location changes the cache key.
	settings.settings.Weather.Location = "Porto"
	s.Refresh(context.Background())
	assert.Equal(t, 2, svc.fetchCalls)
}

func TestForceRefreshAlwaysFetches(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny()}
	s := NewWeather(svc, weatherSettings(true, "Lisbon", "key", false), nil)

	s.Refresh(context.Background())
	s.ForceRefresh(context.Background())
	assert.Equal(t, 2, svc.fetchCalls)
}

func TestRefreshDisabledClearsState(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny()}
	settings := weatherSettings(true, "Lisbon", "key", false)
	s := NewWeather(svc, settings, nil)

	s.Refresh(context.Background())
	require.NotNil(t, s.Current())

	settings.settings.Weather.Enabled = false
	s.Refresh(context.Background())
	assert.Nil(t, s.Current())
	assert.Nil(t, s.Context())
	assert.Empty(t, s.Err())
}

func TestRefreshWithoutLocation(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny()}
	s := NewWeather(svc, weatherSettings(true, "", "key", false), nil)

	s.Refresh(context.Background())
	assert.Equal(t, "no location configured", s.Err())
	assert.Zero(t, svc.fetchCalls)
}

func TestRefreshWithoutAPIKey(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny()}
	s := NewWeather(svc, weatherSettings(true, "Lisbon", "", false), nil)

	s.Refresh(context.Background())
	assert.Equal(t, "weather API key not configured", s.Err())
	assert.Zero(t, svc.fetchCalls)
}

func TestRefreshFetchFailureKeepsPriorData(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny()}
	s := NewWeather(svc, weatherSettings(true, "Lisbon", "key", false), nil)

	s.Refresh(context.Background())
	require.NotNil(t, s.Current())

	svc.context = nil
	s.ForceRefresh(context.Background())
	assert.Equal(t, "failed to fetch weather data", s.Err())
	assert.NotNil(t, s.Current(), "stale data beats no data")
}

func TestRefreshAutoDetectCachesLocation(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny(), detected: "Porto, Portugal"}
	s := NewWeather(svc, weatherSettings(true, "", "key", true), nil)

	s.Refresh(context.Background())
	assert.Equal(t, 1, svc.detectCalls)
	assert.Equal(t, "Porto, Portugal", s.DetectedLocation())
	require.NotNil(t, s.Current())

	// Later refreshes reuse the cached detection.
	s.ForceRefresh(context.Background())
	assert.Equal(t, 1, svc.detectCalls)
}

func TestInitializeDetectsThenRefreshes(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny(), detected: "Porto, Portugal"}
	s := NewWeather(svc, weatherSettings(true, "", "key", true), nil)

	s.Initialize(context.Background())
	assert.Equal(t, 1, svc.detectCalls)
	assert.Equal(t, 1, svc.fetchCalls)
	assert.NotNil(t, s.Context())
}

func TestInitializeDisabledDoesNothing(t *testing.T) {
	svc := &fakeWeatherProvider{context: sunny()}
	s := NewWeather(svc, weatherSettings(false, "Lisbon", "key", false), nil)

	s.Initialize(context.Background())
	assert.Zero(t, svc.fetchCalls)
	assert.Zero(t, svc.detectCalls)
}
