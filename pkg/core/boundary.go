package core

import "context"

// NotesRepository is the external storage boundary for notes. Adhering to
// this interface keeps the core independent of the underlying storage
// mechanism (SQLite, remote service, in-memory fake).
type NotesRepository interface {
	// Initialize ensures the underlying storage is ready (schema migration).
	Initialize(ctx context.Context) error

	// NotesForDate returns all non-deleted notes for a date key, in
	// creation order.
	NotesForDate(ctx context.Context, date string) ([]Note, error)

	// Create persists a new note and returns it as stored.
	Create(ctx context.Context, n Note) (Note, error)

	// Update rewrites an existing note's title, content, and UpdatedAt.
	Update(ctx context.Context, n Note) (Note, error)

	// SoftDelete marks a note deleted at the given timestamp. The record
	// is retained; purging is the storage layer's concern.
	SoftDelete(ctx context.Context, id, deletedAt string) error

	// Health verifies the storage is reachable.
	Health(ctx context.Context) error

	Close() error
}

// RecordStore is a persisted key/record store used for settings and chat
// history. Load decodes into v; a missing key returns ErrNotFound.
type RecordStore interface {
	Load(ctx context.Context, key string, v any) error
	Save(ctx context.Context, key string, v any) error
}

// AIClient talks to a local language-model server.
type AIClient interface {
	// Status probes the server and reports the first available model.
	// Connection failures are reported in the returned status, not as an
	// error; errors are reserved for malformed requests.
	Status(ctx context.Context, baseURL string) (AIStatus, error)

	// Chat sends a message history and returns the assistant's reply.
	Chat(ctx context.Context, baseURL, model string, messages []ChatMessage, temperature float64, maxTokens int) (ChatMessage, error)
}

// WeatherClient fetches weather and journal context for a location.
type WeatherClient interface {
	Current(ctx context.Context, apiKey, location string) (WeatherData, error)
	DetectLocation(ctx context.Context) (string, error)
	Context(ctx context.Context, apiKey, location string) (JournalContext, error)
}

// Publisher talks to the content-publishing API.
type Publisher interface {
	Validate(ctx context.Context, apiURL string, e Entry) (ValidationResult, error)
	Publish(ctx context.Context, apiURL string, e Entry) (PublishResult, error)
	Stats(ctx context.Context, apiURL, authorID string) (ChainStats, error)
	CheckConnection(ctx context.Context, apiURL string) (bool, error)
}

// ColorScheme exposes the OS color-scheme preference. Preference reports
// the resolved theme (light or dark, never system); Notify registers a
// callback for preference changes and returns a cancel function.
type ColorScheme interface {
	Preference() Theme
	Notify(fn func(Theme)) (cancel func())
}

// FixedScheme is a ColorScheme that never changes, useful as a default
// and in tests.
type FixedScheme Theme

func (s FixedScheme) Preference() Theme              { return Theme(s) }
func (s FixedScheme) Notify(func(Theme)) (cancel func()) { return func() {} }
