// Package sqlite persists notes in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/glebarez/go-sqlite"

	"github.com/daybook-app/daybook/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	title TEXT,
	content TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	deleted_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_notes_date ON notes(date);
CREATE INDEX IF NOT EXISTS idx_notes_deleted ON notes(deleted_at);
`

// Repository implements core.NotesRepository on a SQLite file.
type Repository struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string, log *slog.Logger) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	r := &Repository{db: db, log: log}
	if err := r.Initialize(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Initialize creates the notes table and indexes if missing.
func (r *Repository) Initialize(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// NotesForDate returns all live notes for a date key, oldest first so the
// in-memory order matches insertion order.
func (r *Repository) NotesForDate(ctx context.Context, date string) ([]core.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, title, content, created_at, updated_at, deleted_at
		 FROM notes WHERE date = ? AND deleted_at IS NULL
		 ORDER BY created_at ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes for %s: %w", date, err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read note rows: %w", err)
	}
	return notes, nil
}

// Create inserts a new note row and returns it as stored.
func (r *Repository) Create(ctx context.Context, n core.Note) (core.Note, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, date, title, content, created_at, updated_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL)`,
		n.ID, n.Date, nullable(n.Title), n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to create note %s: %w", n.ID, err)
	}
	return n, nil
}

// Update rewrites title, content, and updated_at for an existing note.
func (r *Repository) Update(ctx context.Context, n core.Note) (core.Note, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		nullable(n.Title), n.Content, n.UpdatedAt, n.ID)
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to update note %s: %w", n.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to check update of note %s: %w", n.ID, err)
	}
	if affected == 0 {
		return core.Note{}, fmt.Errorf("note %s: %w", n.ID, core.ErrNotFound)
	}
	return n, nil
}

// SoftDelete marks a note deleted by stamping deleted_at. The row stays
// behind for recovery tooling.
func (r *Repository) SoftDelete(ctx context.Context, id, deletedAt string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		deletedAt, id)
	if err != nil {
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of note %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("note %s: %w", id, core.ErrNotFound)
	}
	return nil
}

// Health verifies the database still answers queries.
func (r *Repository) Health(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (core.Note, error) {
	var n core.Note
	var title, deletedAt sql.NullString
	err := row.Scan(&n.ID, &n.Date, &title, &n.Content, &n.CreatedAt, &n.UpdatedAt, &deletedAt)
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to scan note row: %w", err)
	}
	n.Title = title.String
	n.DeletedAt = deletedAt.String
	return n, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ core.NotesRepository = (*Repository)(nil)
