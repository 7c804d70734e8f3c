package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/daybook-app/daybook/pkg/core"
)

// WeatherTTL is how long a successful fetch satisfies refresh requests
// for the same (apiKey, location) pair.
const WeatherTTL = 10 * time.Minute

// Weather error states surfaced to consumers.
const (
	weatherErrNoLocation = "no location configured"
	weatherErrNoAPIKey   = "weather API key not configured"
	weatherErrFetch      = "failed to fetch weather data"
)

// WeatherProvider is the sentinel-returning surface the weather store
// fetches through.
type WeatherProvider interface {
	Detect(ctx context.Context) string
	Context(ctx context.Context, apiKey, location string) *core.JournalContext
}

// SettingsSource supplies the current settings record.
type SettingsSource interface {
	Current() core.Settings
}

// Weather owns the cached weather/journal context. The single-slot cache
// is keyed by (apiKey, location) and valid for WeatherTTL; it is never
// persisted.
type Weather struct {
	mu       sync.Mutex
	svc      WeatherProvider
	settings SettingsSource
	log      *slog.Logger

	weather  *core.WeatherData
	context  *core.JournalContext
	loading  bool
	errMsg   string
	detected string

	lastKey   string
	lastFetch time.Time
	now       func() time.Time
}

// NewWeather creates a weather store with an empty cache.
func NewWeather(svc WeatherProvider, settings SettingsSource, log *slog.Logger) *Weather {
	return &Weather{svc: svc, settings: settings, log: log, now: time.Now}
}

// Refresh fetches weather based on current settings. Disabled weather
// clears state; an unchanged cache key within the TTL window skips the
// network entirely; a failed fetch sets an error but leaves prior weather
// data in place.
func (s *Weather) Refresh(ctx context.Context) {
	cfg := s.settings.Current().Weather

	if !cfg.Enabled {
		s.mu.Lock()
		s.weather = nil
		s.context = nil
		s.errMsg = ""
		s.mu.Unlock()
		return
	}

	location := cfg.Location
	if cfg.AutoDetectLocation && location == "" {
		s.mu.Lock()
		cached := s.detected
		s.mu.Unlock()
		if cached != "" {
			location = cached
		} else {
			s.setLoading(true)
			detected := s.svc.Detect(ctx)
			s.setLoading(false)
			if detected != "" {
				s.mu.Lock()
				s.detected = detected
				s.mu.Unlock()
				location = detected
			}
		}
	}

	if location == "" {
		s.setError(weatherErrNoLocation)
		return
	}
	if cfg.APIKey == "" {
		s.setError(weatherErrNoAPIKey)
		return
	}

	key := cfg.APIKey + ":" + location
	s.mu.Lock()
	if key == s.lastKey && s.now().Sub(s.lastFetch) < WeatherTTL {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	jc := s.svc.Context(ctx, cfg.APIKey, location)

	s.mu.Lock()
	s.loading = false
	if jc != nil {
		s.context = jc
		s.weather = jc.Weather
		s.lastKey = key
		s.lastFetch = s.now()
	} else {
		s.errMsg = weatherErrFetch
	}
	s.mu.Unlock()
}

// ForceRefresh clears the cache key and timestamp, then refreshes.
func (s *Weather) ForceRefresh(ctx context.Context) {
	s.mu.Lock()
	s.lastKey = ""
	s.lastFetch = time.Time{}
	s.mu.Unlock()
	s.Refresh(ctx)
}

// Initialize performs one-time location detection (when configured)
// followed by a refresh; intended for process start.
func (s *Weather) Initialize(ctx context.Context) {
	cfg := s.settings.Current().Weather
	if !cfg.Enabled {
		return
	}
	if cfg.AutoDetectLocation && cfg.Location == "" {
		if detected := s.svc.Detect(ctx); detected != "" {
			s.mu.Lock()
			s.detected = detected
			s.mu.Unlock()
		} else if s.log != nil {
			s.log.Warn("location detection failed during weather init")
		}
	}
	s.Refresh(ctx)
}

// Current returns the latest weather snapshot, nil if none.
func (s *Weather) Current() *core.WeatherData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.weather == nil {
		return nil
	}
	out := *s.weather
	return &out
}

// Context returns the latest journal context, nil if none.
func (s *Weather) Context() *core.JournalContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.context == nil {
		return nil
	}
	out := *s.context
	return &out
}

// Loading reports whether a detection or fetch is in flight.
func (s *Weather) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the current error state, "" when healthy.
func (s *Weather) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// DetectedLocation returns the cached auto-detected location, if any.
func (s *Weather) DetectedLocation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detected
}

func (s *Weather) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Weather) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}
