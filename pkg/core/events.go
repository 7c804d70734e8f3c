package core

// EventType classifies a store change event.
type EventType string

const (
	EventLoad     EventType = "LOAD"
	EventCreate   EventType = "CREATE"
	EventModify   EventType = "MODIFY"
	EventDelete   EventType = "DELETE"
	EventRevert   EventType = "REVERT"
	EventNavigate EventType = "NAVIGATE"
	EventSettings EventType = "SETTINGS"
)

// Event describes a change in a store. Consumers subscribe through the
// store broker; derived views must recompute on every event rather than
// caching independently.
type Event struct {
	Type      EventType
	ID        string
	Date      string // date key for note events, empty otherwise
	Timestamp int64  // Unix timestamp
}

// Key is the value subscription patterns are matched against.
func (e Event) Key() string {
	if e.Date != "" {
		return e.Date
	}
	return e.ID
}
