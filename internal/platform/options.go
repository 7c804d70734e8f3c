package platform

import (
	"log/slog"

	"github.com/daybook-app/daybook/pkg/core"
)

// options holds the internal configuration for the application factory.
type options struct {
	logger     *slog.Logger
	repository core.NotesRepository
	records    core.RecordStore
	ai         core.AIClient
	weather    core.WeatherClient
	publisher  core.Publisher
	recognizer core.Recognizer
	scheme     core.ColorScheme
	watch      bool
	buffer     int
}

// Option defines a functional option for configuring the application.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		scheme: core.FixedScheme(core.ThemeLight),
		buffer: 16,
	}
}

// WithLogger sets the logger shared by all stores and adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNotesRepository injects a custom notes storage adapter (e.g. mock,
// remote). If provided, the default SQLite adapter is skipped.
func WithNotesRepository(repo core.NotesRepository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithRecordStore injects a custom record store for settings and chat
// history. If provided, the default on-disk store is skipped.
func WithRecordStore(rs core.RecordStore) Option {
	return func(o *options) {
		o.records = rs
	}
}

// WithAIClient injects the language-model client. Defaults to the Ollama
// HTTP client.
func WithAIClient(c core.AIClient) Option {
	return func(o *options) {
		o.ai = c
	}
}

// WithWeatherClient injects the weather client. Defaults to the
// WeatherAPI.com client.
func WithWeatherClient(c core.WeatherClient) Option {
	return func(o *options) {
		o.weather = c
	}
}

// WithPublisher injects the publishing client. Defaults to the
// NatLangChain HTTP client.
func WithPublisher(p core.Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithRecognizer injects a speech recognition engine. Without one,
// dictation is unavailable.
func WithRecognizer(r core.Recognizer) Option {
	return func(o *options) {
		o.recognizer = r
	}
}

// WithColorScheme injects the OS color-scheme source used to resolve the
// "system" theme. Defaults to a fixed light scheme.
func WithColorScheme(s core.ColorScheme) Option {
	return func(o *options) {
		o.scheme = s
	}
}

// WithSettingsWatch enables the filesystem watcher that reloads settings
// when the record file is rewritten by another process.
func WithSettingsWatch(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}

// WithEventBuffer sets the per-subscriber event channel size.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.buffer = size
		}
	}
}
