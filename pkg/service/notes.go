// Package service wraps the external collaborators in a never-fails layer:
// every operation catches failures, logs a diagnostic, and returns a
// sentinel value (nil, false, empty sequence) instead of an error. Stores
// build their revert decisions on these sentinels.
package service

import (
	"context"
	"log/slog"

	"github.com/daybook-app/daybook/pkg/core"
)

// Notes adapts a core.NotesRepository to sentinel semantics.
type Notes struct {
	repo core.NotesRepository
	log  *slog.Logger
}

// NewNotes creates the notes adapter. A nil logger disables diagnostics.
func NewNotes(repo core.NotesRepository, log *slog.Logger) *Notes {
	return &Notes{repo: repo, log: log}
}

// NotesForDate fetches all non-deleted notes for a date. On failure it
// returns an empty sequence and ok=false so callers can leave prior state
// untouched.
func (s *Notes) NotesForDate(ctx context.Context, date string) (notes []core.Note, ok bool) {
	notes, err := s.repo.NotesForDate(ctx, date)
	if err != nil {
		s.logError("failed to fetch notes for date", err, slog.String("date", date))
		return nil, false
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, true
}

// Create persists a new note, returning nil on failure.
func (s *Notes) Create(ctx context.Context, n core.Note) *core.Note {
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logError("failed to save note", err, slog.String("noteId", n.ID))
		return nil
	}
	return &created
}

// Update rewrites an existing note, returning nil on failure.
func (s *Notes) Update(ctx context.Context, n core.Note) *core.Note {
	updated, err := s.repo.Update(ctx, n)
	if err != nil {
		s.logError("failed to update note", err, slog.String("noteId", n.ID))
		return nil
	}
	return &updated
}

// Delete soft-deletes a note at the given timestamp.
func (s *Notes) Delete(ctx context.Context, id, deletedAt string) bool {
	if err := s.repo.SoftDelete(ctx, id, deletedAt); err != nil {
		s.logError("failed to delete note", err, slog.String("noteId", id), slog.String("deletedAt", deletedAt))
		return false
	}
	return true
}

// Health reports whether the storage is reachable.
func (s *Notes) Health(ctx context.Context) bool {
	if err := s.repo.Health(ctx); err != nil {
		s.logError("storage health check failed", err)
		return false
	}
	return true
}

func (s *Notes) logError(msg string, err error, attrs ...any) {
	if s.log == nil {
		return
	}
	s.log.Error(msg, append(attrs, slog.Any("error", err))...)
}
