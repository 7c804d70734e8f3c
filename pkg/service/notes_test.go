package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/pkg/core"
)

// flakyRepo fails every operation when broken is set.
type flakyRepo struct {
	broken bool
	notes  map[string][]core.Note
}

var errDown = errors.New("storage down")

func newFlakyRepo() *flakyRepo {
	return &flakyRepo{notes: make(map[string][]core.Note)}
}

func (r *flakyRepo) Initialize(context.Context) error { return nil }

func (r *flakyRepo) NotesForDate(_ context.Context, date string) ([]core.Note, error) {
	if r.broken {
		return nil, errDown
	}
	return r.notes[date], nil
}

func (r *flakyRepo) Create(_ context.Context, n core.Note) (core.Note, error) {
	if r.broken {
		return core.Note{}, errDown
	}
	r.notes[n.Date] = append(r.notes[n.Date], n)
	return n, nil
}

func (r *flakyRepo) Update(_ context.Context, n core.Note) (core.Note, error) {
	if r.broken {
		return core.Note{}, errDown
	}
	return n, nil
}

func (r *flakyRepo) SoftDelete(context.Context, string, string) error {
	if r.broken {
		return errDown
	}
	return nil
}

func (r *flakyRepo) Health(context.Context) error {
	if r.broken {
		return errDown
	}
	return nil
}

func (r *flakyRepo) Close() error { return nil }

func TestNotesForDateSentinel(t *testing.T) {
	repo := newFlakyRepo()
	svc := NewNotes(repo, nil)
	ctx := context.Background()

	// An empty day yields an empty, non-nil list with ok=true.
	notes, ok := svc.NotesForDate(ctx, "2026-03-01")
	assert.True(t, ok)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)

	repo.broken = true
	_, ok = svc.NotesForDate(ctx, "2026-03-01")
	assert.False(t, ok)
}

func TestCreateSentinel(t *testing.T) {
	repo := newFlakyRepo()
	svc := NewNotes(repo, nil)
	ctx := context.Background()

	n := core.NewNote("hello", "2026-03-01")
	created := svc.Create(ctx, n)
	require.NotNil(t, created)
	assert.Equal(t, n.ID, created.ID)

	repo.broken = true
	assert.Nil(t, svc.Create(ctx, core.NewNote("fail", "2026-03-01")))
}

func TestUpdateSentinel(t *testing.T) {
	repo := newFlakyRepo()
	svc := NewNotes(repo, nil)

	n := core.NewNote("hello", "2026-03-01")
	require.NotNil(t, svc.Update(context.Background(), n))

	repo.broken = true
	assert.Nil(t, svc.Update(context.Background(), n))
}

func TestDeleteSentinel(t *testing.T) {
	repo := newFlakyRepo()
	svc := NewNotes(repo, nil)

	assert.True(t, svc.Delete(context.Background(), "id", core.Timestamp()))
	repo.broken = true
	assert.False(t, svc.Delete(context.Background(), "id", core.Timestamp()))
}

func TestHealthSentinel(t *testing.T) {
	repo := newFlakyRepo()
	svc := NewNotes(repo, nil)

	assert.True(t, svc.Health(context.Background()))
	repo.broken = true
	assert.False(t, svc.Health(context.Background()))
}
