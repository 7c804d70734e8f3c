package core

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Note constraints.
const (
	NoteMaxLength      = 5000
	NoteTitleMaxLength = 50
)

// Note is a single journal entry. Notes are grouped by their calendar-day
// key (Date); the ID is immutable after creation.
type Note struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"` // RFC 3339
	UpdatedAt string `json:"updatedAt"` // RFC 3339
	DeletedAt string `json:"deletedAt,omitempty"`
}

// NewNote creates a note with a fresh ID and timestamps.
// An empty date defaults to today.
func NewNote(content, date string) Note {
	if date == "" {
		date = Today()
	}
	now := Timestamp()
	return Note{
		ID:        uuid.NewString(),
		Date:      date,
		Title:     ExtractTitle(content),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ExtractTitle derives a title from the first line of content,
// capped at NoteTitleMaxLength characters.
func ExtractTitle(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	firstLine := strings.TrimSpace(strings.SplitN(content, "\n", 2)[0])
	if utf8.RuneCountInString(firstLine) <= NoteTitleMaxLength {
		return firstLine
	}
	// The cap counts characters, not bytes; slicing runes keeps
	// multi-byte text valid.
	return string([]rune(firstLine)[:NoteTitleMaxLength-3]) + "..."
}

// WithContent returns a copy of the note with new content, a re-derived
// title, and an advanced UpdatedAt timestamp.
func (n Note) WithContent(content string) Note {
	n.Content = content
	n.Title = ExtractTitle(content)
	n.UpdatedAt = Timestamp()
	return n
}

// Preview returns display text for note lists.
func (n Note) Preview() string {
	if n.Title != "" {
		return n.Title
	}
	if strings.TrimSpace(n.Content) == "" {
		return "Empty note"
	}
	return ExtractTitle(n.Content)
}

// Deleted reports whether the note carries a soft-delete marker.
func (n Note) Deleted() bool {
	return n.DeletedAt != ""
}

// SortByCreated returns a copy ordered by creation time, newest first.
// RFC 3339 UTC timestamps compare correctly as strings.
func SortByCreated(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// SortByUpdated returns a copy ordered by last update, most recent first.
func SortByUpdated(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out
}
