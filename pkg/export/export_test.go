package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/pkg/core"
)

func sampleNotes() []core.Note {
	morning := core.NewNote("Morning walk along the river.", "2026-03-01")
	evening := core.NewNote("Evening reading session.", "2026-03-01")
	later := core.NewNote("Started a new sketchbook.", "2026-03-02")
	return []core.Note{morning, evening, later}
}

func TestRenderMarkdownGroupsByDateDescending(t *testing.T) {
	out, err := Render(sampleNotes(), Options{Format: FormatMarkdown})
	require.NoError(t, err)

	first := strings.Index(out, "## March 2, 2026")
	second := strings.Index(out, "## March 1, 2026")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second, "newest day should come first")
	assert.Contains(t, out, "Morning walk along the river.")

	// Within a day, creation order is preserved.
	assert.Less(t,
		strings.Index(out, "Morning walk"),
		strings.Index(out, "Evening reading"))
}

func TestRenderMarkdownFrontmatter(t *testing.T) {
	notes := sampleNotes()[:1]
	out, err := Render(notes, Options{Format: FormatMarkdown, Frontmatter: true})
	require.NoError(t, err)

	assert.Contains(t, out, "---\n")
	assert.Contains(t, out, "id: "+notes[0].ID)
	assert.Contains(t, out, "date: \"2026-03-01\"")
}

func TestRenderText(t *testing.T) {
	out, err := Render(sampleNotes(), Options{Format: FormatText})
	require.NoError(t, err)
	assert.Contains(t, out, "March 1, 2026")
	assert.Contains(t, out, "Started a new sketchbook.")
	assert.NotContains(t, out, "##")
}

func TestRenderJSONEmpty(t *testing.T) {
	out, err := Render(nil, Options{Format: FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleNotes(), Options{Format: "pdf"})
	assert.Error(t, err)
}

func TestFilterDates(t *testing.T) {
	kept, err := FilterDates(sampleNotes(), "2026-03-01")
	require.NoError(t, err)
	require.Len(t, kept, 2)

	all, err := FilterDates(sampleNotes(), "2026-*")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := FilterDates(sampleNotes(), "2025-*")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFilterDatesInvalidPattern(t *testing.T) {
	_, err := FilterDates(sampleNotes(), "[")
	assert.Error(t, err)
}

func TestBackupRoundTrip(t *testing.T) {
	b := NewBackup(sampleNotes())
	assert.Equal(t, BackupVersion, b.Version)
	assert.NotEmpty(t, b.ExportedAt)

	data, err := EncodeBackup(b)
	require.NoError(t, err)

	got, err := DecodeBackup(data)
	require.NoError(t, err)
	assert.Equal(t, b.Notes, got.Notes)
}

func TestDecodeBackupUnknownVersion(t *testing.T) {
	_, err := DecodeBackup([]byte(`{"version":"9.9","exportedAt":"x","notes":[]}`))
	assert.Error(t, err)
}
