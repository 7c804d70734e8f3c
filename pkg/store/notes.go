package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/daybook-app/daybook/pkg/core"
)

// ErrPersist marks a mutation whose optimistic local change was reverted
// because the persistence layer rejected it. The store state is back to
// its pre-operation snapshot when this error is returned.
var ErrPersist = errors.New("persistence failed, change reverted")

// NotesPersistence is the sentinel-returning persistence surface the notes
// store confirms its optimistic mutations against.
type NotesPersistence interface {
	NotesForDate(ctx context.Context, date string) (notes []core.Note, ok bool)
	Create(ctx context.Context, n core.Note) *core.Note
	Update(ctx context.Context, n core.Note) *core.Note
	Delete(ctx context.Context, id, deletedAt string) bool
}

// Notes is the single source of truth for the date-indexed note
// collection, the viewed date, and the selection. Mutations apply
// optimistically under the lock, then confirm against persistence;
// failures restore the exact pre-operation snapshot.
type Notes struct {
	mu  sync.RWMutex
	svc NotesPersistence
	log *slog.Logger
	bus *Broker

	index    map[string][]core.Note // date key -> notes in insertion order
	current  string
	selected string
	loading  bool
	loadSeq  uint64
}

// NewNotes creates a notes store viewing today.
func NewNotes(svc NotesPersistence, bus *Broker, log *slog.Logger) *Notes {
	return &Notes{
		svc:     svc,
		log:     log,
		bus:     bus,
		index:   make(map[string][]core.Note),
		current: core.Today(),
	}
}

// LoadNotesForDate fetches all non-deleted notes for a date and replaces
// that date's index entry. Fetch failure leaves previous state untouched.
// A completion that has been superseded by a newer load is discarded, so
// a slow response for a stale date cannot overwrite newer state.
func (s *Notes) LoadNotesForDate(ctx context.Context, date string) {
	s.mu.Lock()
	s.loading = true
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	notes, ok := s.svc.NotesForDate(ctx, date)

	s.mu.Lock()
	if seq != s.loadSeq {
		// A newer load owns the loading flag now.
		s.mu.Unlock()
		if s.log != nil {
			s.log.Debug("discarding stale notes load", slog.String("date", date))
		}
		return
	}
	s.loading = false
	if ok {
		s.index[date] = notes
	}
	s.mu.Unlock()

	if ok {
		s.publish(core.EventLoad, "", date)
	}
}

// AddNote appends a note to its date's entry, selects it, and persists.
// On persistence failure the insertion is reverted and the selection falls
// back to the restored list's lead item, if any.
func (s *Notes) AddNote(ctx context.Context, n core.Note) error {
	if len(n.Content) > core.NoteMaxLength {
		return core.ErrContentTooLong
	}

	s.mu.Lock()
	prev, existed := s.index[n.Date]
	snapshot := cloneNotes(prev)
	s.index[n.Date] = append(cloneNotes(prev), n)
	s.selected = n.ID
	s.mu.Unlock()
	s.publish(core.EventCreate, n.ID, n.Date)

	if created := s.svc.Create(ctx, n); created == nil {
		s.mu.Lock()
		if existed {
			s.index[n.Date] = snapshot
		} else {
			delete(s.index, n.Date)
		}
		if len(snapshot) > 0 {
			s.selected = snapshot[0].ID
		} else {
			s.selected = ""
		}
		s.mu.Unlock()
		s.publish(core.EventRevert, n.ID, n.Date)
		return fmt.Errorf("add note %s: %w", n.ID, ErrPersist)
	}
	return nil
}

// UpdateNote replaces the matching-id entry in its date's list, preserving
// position, and persists. On failure the list is restored to its pre-update
// snapshot.
func (s *Notes) UpdateNote(ctx context.Context, updated core.Note) error {
	if len(updated.Content) > core.NoteMaxLength {
		return core.ErrContentTooLong
	}

	s.mu.Lock()
	list, ok := s.index[updated.Date]
	pos := indexOf(list, updated.ID)
	if !ok || pos < 0 {
		s.mu.Unlock()
		return fmt.Errorf("update note %s: %w", updated.ID, core.ErrNotFound)
	}
	snapshot := cloneNotes(list)
	next := cloneNotes(list)
	next[pos] = updated
	s.index[updated.Date] = next
	s.mu.Unlock()
	s.publish(core.EventModify, updated.ID, updated.Date)

	if persisted := s.svc.Update(ctx, updated); persisted == nil {
		s.mu.Lock()
		s.index[updated.Date] = snapshot
		s.mu.Unlock()
		s.publish(core.EventRevert, updated.ID, updated.Date)
		return fmt.Errorf("update note %s: %w", updated.ID, ErrPersist)
	}
	return nil
}

// DeleteNote filters the id out of the date's list, clears the selection
// if it pointed at the deleted note, and soft-deletes in persistence. On
// failure both the list and the selection are restored.
func (s *Notes) DeleteNote(ctx context.Context, id, date string) error {
	s.mu.Lock()
	prev, existed := s.index[date]
	snapshot := cloneNotes(prev)
	prevSelected := s.selected
	filtered := make([]core.Note, 0, len(prev))
	for _, n := range prev {
		if n.ID != id {
			filtered = append(filtered, n)
		}
	}
	s.index[date] = filtered
	if s.selected == id {
		s.selected = ""
	}
	s.mu.Unlock()
	s.publish(core.EventDelete, id, date)

	if ok := s.svc.Delete(ctx, id, core.Timestamp()); !ok {
		s.mu.Lock()
		if existed {
			s.index[date] = snapshot
		} else {
			delete(s.index, date)
		}
		s.selected = prevSelected
		s.mu.Unlock()
		s.publish(core.EventRevert, id, date)
		return fmt.Errorf("delete note %s: %w", id, ErrPersist)
	}
	return nil
}

// NavigateToDate changes the viewed date and clears the selection.
func (s *Notes) NavigateToDate(date string) {
	s.mu.Lock()
	s.current = date
	s.selected = ""
	s.mu.Unlock()
	s.publish(core.EventNavigate, "", date)
}

// NavigatePreviousDay moves the viewed date back one calendar day.
func (s *Notes) NavigatePreviousDay() { s.shiftDay(-1) }

// NavigateNextDay moves the viewed date forward one calendar day.
func (s *Notes) NavigateNextDay() { s.shiftDay(1) }

func (s *Notes) shiftDay(days int) {
	s.mu.Lock()
	next, err := core.AddDays(s.current, days)
	if err == nil {
		s.current = next
	}
	s.selected = ""
	date := s.current
	s.mu.Unlock()
	s.publish(core.EventNavigate, "", date)
}

// NavigateToToday jumps the viewed date to today and clears the selection.
func (s *Notes) NavigateToToday() {
	s.NavigateToDate(core.Today())
}

// SelectNote marks a note as selected. Selection is by id only; it goes
// stale harmlessly if the note leaves the current date's list.
func (s *Notes) SelectNote(id string) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
}

// CurrentDate returns the viewed date key.
func (s *Notes) CurrentDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// CurrentNotes is the derived view of notes for the viewed date. It is
// recomputed on every call; the returned slice is a copy.
func (s *Notes) CurrentNotes() []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.index[s.current])
}

// SelectedNote is the derived view of the selection, resolved within the
// viewed date's notes. Nil if unset or absent.
func (s *Notes) SelectedNote() *core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == "" {
		return nil
	}
	for _, n := range s.index[s.current] {
		if n.ID == s.selected {
			out := n
			return &out
		}
	}
	return nil
}

// Loading reports whether a fetch is in flight.
func (s *Notes) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Notes) publish(t core.EventType, id, date string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(core.Event{Type: t, ID: id, Date: date, Timestamp: time.Now().Unix()})
}

func cloneNotes(notes []core.Note) []core.Note {
	out := make([]core.Note, len(notes))
	copy(out, notes)
	return out
}

func indexOf(notes []core.Note, id string) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
