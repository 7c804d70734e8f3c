package service

import (
	"context"
	"log/slog"

	"github.com/daybook-app/daybook/pkg/core"
)

// Weather adapts a core.WeatherClient to sentinel semantics.
type Weather struct {
	client core.WeatherClient
	log    *slog.Logger
}

// NewWeather creates the weather adapter.
func NewWeather(client core.WeatherClient, log *slog.Logger) *Weather {
	return &Weather{client: client, log: log}
}

// Current fetches current conditions, returning nil on failure.
func (s *Weather) Current(ctx context.Context, apiKey, location string) *core.WeatherData {
	w, err := s.client.Current(ctx, apiKey, location)
	if err != nil {
		if s.log != nil {
			s.log.Error("failed to fetch weather", slog.String("location", location), slog.Any("error", err))
		}
		return nil
	}
	return &w
}

// Detect resolves a location from the caller's IP, returning "" on failure.
func (s *Weather) Detect(ctx context.Context) string {
	location, err := s.client.DetectLocation(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Error("failed to detect location", slog.Any("error", err))
		}
		return ""
	}
	return location
}

// Context fetches the full journal context, returning nil on failure.
func (s *Weather) Context(ctx context.Context, apiKey, location string) *core.JournalContext {
	c, err := s.client.Context(ctx, apiKey, location)
	if err != nil {
		if s.log != nil {
			s.log.Error("failed to fetch journal context", slog.String("location", location), slog.Any("error", err))
		}
		return nil
	}
	return &c
}
