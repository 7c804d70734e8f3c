package diskstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/pkg/core"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir(), nil)

	require.NoError(t, s.Save(context.Background(), "settings", record{Name: "daybook", Count: 3}))

	var got record
	require.NoError(t, s.Load(context.Background(), "settings", &got))
	assert.Equal(t, record{Name: "daybook", Count: 3}, got)
}

func TestLoadMissingKey(t *testing.T) {
	s := New(t.TempDir(), nil)

	var got record
	err := s.Load(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSaveReplaces(t *testing.T) {
	s := New(t.TempDir(), nil)

	require.NoError(t, s.Save(context.Background(), "settings", record{Count: 1}))
	require.NoError(t, s.Save(context.Background(), "settings", record{Count: 2}))

	var got record
	require.NoError(t, s.Load(context.Background(), "settings", &got))
	assert.Equal(t, 2, got.Count)
}

func TestLoadCorruptRecord(t *testing.T) {
	s := New(t.TempDir(), nil)
	require.NoError(t, s.dv.Write("settings.json", []byte("{not json")))

	var got record
	err := s.Load(context.Background(), "settings", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}
