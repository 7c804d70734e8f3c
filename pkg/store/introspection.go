package store

import (
	"github.com/aretw0/introspection"
)

// NotesState exposes internal state for observability.
type NotesState struct {
	CurrentDate string `json:"current_date"`
	DaysIndexed int    `json:"days_indexed"`
	NotesLoaded int    `json:"notes_loaded"`
	Loading     bool   `json:"loading"`
	HasSelected bool   `json:"has_selected"`
}

// State implements introspection.Introspectable.
func (s *Notes) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, notes := range s.index {
		total += len(notes)
	}
	return NotesState{
		CurrentDate: s.current,
		DaysIndexed: len(s.index),
		NotesLoaded: total,
		Loading:     s.loading,
		HasSelected: s.selected != "",
	}
}

// ComponentType implements introspection.Component.
func (s *Notes) ComponentType() string {
	return "notes-store"
}

// BrokerState exposes internal state for observability.
type BrokerState struct {
	Subscribers int  `json:"subscribers"`
	BufferSize  int  `json:"buffer_size"`
	Closed      bool `json:"closed"`
}

// State implements introspection.Introspectable.
func (b *Broker) State() any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BrokerState{
		Subscribers: len(b.subs),
		BufferSize:  b.buffer,
		Closed:      b.closed,
	}
}

// ComponentType implements introspection.Component.
func (b *Broker) ComponentType() string {
	return "event-broker"
}

var _ introspection.Introspectable = (*Notes)(nil)
var _ introspection.Component = (*Notes)(nil)
var _ introspection.Introspectable = (*Broker)(nil)
var _ introspection.Component = (*Broker)(nil)
