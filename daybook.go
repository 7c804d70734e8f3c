// Package daybook is the public entry point for the journaling engine:
// date-indexed notes with optimistic persistence, settings with default
// merging, cached weather context, local-model chat, and entry
// publishing.
package daybook

import (
	"log/slog"

	"github.com/daybook-app/daybook/internal/platform"
	"github.com/daybook-app/daybook/pkg/core"
)

// --- Types ---

// App is the assembled application: stores, services, and the event
// broker.
type App = platform.App

// --- Configuration ---

// Option defines a functional option for configuring the application.
type Option = platform.Option

// WithLogger sets the logger shared by all stores and adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithNotesRepository injects a custom notes storage adapter.
func WithNotesRepository(repo core.NotesRepository) Option {
	return platform.WithNotesRepository(repo)
}

// WithRecordStore injects a custom record store for settings and chat
// history.
func WithRecordStore(rs core.RecordStore) Option {
	return platform.WithRecordStore(rs)
}

// WithAIClient injects the language-model client.
func WithAIClient(c core.AIClient) Option {
	return platform.WithAIClient(c)
}

// WithWeatherClient injects the weather client.
func WithWeatherClient(c core.WeatherClient) Option {
	return platform.WithWeatherClient(c)
}

// WithPublisher injects the publishing client.
func WithPublisher(p core.Publisher) Option {
	return platform.WithPublisher(p)
}

// WithRecognizer injects a speech recognition engine.
func WithRecognizer(r core.Recognizer) Option {
	return platform.WithRecognizer(r)
}

// WithColorScheme injects the OS color-scheme source used to resolve the
// "system" theme.
func WithColorScheme(s core.ColorScheme) Option {
	return platform.WithColorScheme(s)
}

// WithSettingsWatch enables reloading settings when the record file is
// rewritten by another process.
func WithSettingsWatch(enabled bool) Option {
	return platform.WithSettingsWatch(enabled)
}

// WithEventBuffer sets the per-subscriber event channel size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// --- Factory ---

// New builds an application rooted at the given data directory.
func New(dataDir string, opts ...Option) (*App, error) {
	return platform.New(dataDir, opts...)
}
