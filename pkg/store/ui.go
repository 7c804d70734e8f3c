package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultToastDuration applies when a toast is shown with no duration.
const DefaultToastDuration = 5 * time.Second

// ToastType classifies a toast message.
type ToastType string

const (
	ToastError   ToastType = "error"
	ToastWarning ToastType = "warning"
	ToastSuccess ToastType = "success"
	ToastInfo    ToastType = "info"
)

// Toast is a transient notification.
type Toast struct {
	ID       string
	Type     ToastType
	Message  string
	Duration time.Duration
}

// UI owns panel visibility flags, the search state, and the toast queue
// with its auto-dismiss timers.
type UI struct {
	mu sync.Mutex

	settingsOpen bool
	calendarOpen bool
	showFirstRun bool

	searchQuery   string
	searchFocused bool

	toasts []Toast
	timers map[string]*time.Timer
}

// NewUI creates an empty UI store.
func NewUI() *UI {
	return &UI{timers: make(map[string]*time.Timer)}
}

// ShowToast enqueues a toast and arms its auto-dismiss timer. A zero
// duration uses the default; a negative duration disables auto-dismiss.
// Returns the toast id.
func (s *UI) ShowToast(t Toast) string {
	t.ID = uuid.NewString()
	if t.Duration == 0 {
		t.Duration = DefaultToastDuration
	}
	s.mu.Lock()
	s.toasts = append(s.toasts, t)
	if t.Duration > 0 {
		id := t.ID
		s.timers[id] = time.AfterFunc(t.Duration, func() {
			s.DismissToast(id)
		})
	}
	s.mu.Unlock()
	return t.ID
}

// DismissToast removes a toast and stops its timer.
func (s *UI) DismissToast(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
}

// Toasts returns a copy of the queue.
func (s *UI) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// ToggleSettings flips the settings panel.
func (s *UI) ToggleSettings() {
	s.mu.Lock()
	s.settingsOpen = !s.settingsOpen
	s.mu.Unlock()
}

// ToggleCalendar flips the calendar picker.
func (s *UI) ToggleCalendar() {
	s.mu.Lock()
	s.calendarOpen = !s.calendarOpen
	s.mu.Unlock()
}

// CloseAllPanels closes settings and calendar.
func (s *UI) CloseAllPanels() {
	s.mu.Lock()
	s.settingsOpen = false
	s.calendarOpen = false
	s.mu.Unlock()
}

// SettingsOpen reports settings panel visibility.
func (s *UI) SettingsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settingsOpen
}

// CalendarOpen reports calendar picker visibility.
func (s *UI) CalendarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calendarOpen
}

// SetShowFirstRun toggles the first-run flag.
func (s *UI) SetShowFirstRun(v bool) {
	s.mu.Lock()
	s.showFirstRun = v
	s.mu.Unlock()
}

// ShowFirstRun reports the first-run flag.
func (s *UI) ShowFirstRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showFirstRun
}

// SetSearchQuery records the notes search query.
func (s *UI) SetSearchQuery(q string) {
	s.mu.Lock()
	s.searchQuery = q
	s.mu.Unlock()
}

// ClearSearch empties the search query.
func (s *UI) ClearSearch() { s.SetSearchQuery("") }

// SearchQuery returns the current search query.
func (s *UI) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// FocusSearch marks the search box focused.
func (s *UI) FocusSearch() {
	s.mu.Lock()
	s.searchFocused = true
	s.mu.Unlock()
}

// BlurSearch marks the search box unfocused.
func (s *UI) BlurSearch() {
	s.mu.Lock()
	s.searchFocused = false
	s.mu.Unlock()
}

// SearchFocused reports search box focus.
func (s *UI) SearchFocused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchFocused
}

// Close stops all pending toast timers.
func (s *UI) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
