// Package export renders notes as shareable documents and backup
// archives.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/daybook-app/daybook/pkg/core"
)

// Format selects the output rendering.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
)

// BackupVersion tags backup envelopes so future readers can migrate.
const BackupVersion = "1.0"

// Options controls rendering.
type Options struct {
	Format Format

	// Frontmatter prepends a YAML metadata block to each markdown note.
	Frontmatter bool

	// DatePattern filters notes by date key with a glob, e.g. "2026-03-*".
	// Empty means all dates.
	DatePattern string
}

// Backup is the envelope written by full exports and read by restores.
type Backup struct {
	Version    string      `json:"version"`
	ExportedAt string      `json:"exportedAt"`
	Notes      []core.Note `json:"notes"`
}

type frontmatter struct {
	ID      string `yaml:"id"`
	Date    string `yaml:"date"`
	Title   string `yaml:"title,omitempty"`
	Created string `yaml:"created"`
	Updated string `yaml:"updated"`
}

// Render produces the export document for the given notes.
func Render(notes []core.Note, opts Options) (string, error) {
	filtered, err := FilterDates(notes, opts.DatePattern)
	if err != nil {
		return "", err
	}

	switch opts.Format {
	case FormatJSON:
		return renderJSON(filtered)
	case FormatText:
		return renderText(filtered), nil
	case FormatMarkdown, "":
		return renderMarkdown(filtered, opts.Frontmatter)
	default:
		return "", fmt.Errorf("unknown export format %q", opts.Format)
	}
}

// FilterDates keeps notes whose date key matches the glob pattern. An
// empty pattern keeps everything.
func FilterDates(notes []core.Note, pattern string) ([]core.Note, error) {
	if pattern == "" {
		return notes, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid date pattern %q", pattern)
	}
	var kept []core.Note
	for _, n := range notes {
		ok, err := doublestar.Match(pattern, n.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date pattern %q: %w", pattern, err)
		}
		if ok {
			kept = append(kept, n)
		}
	}
	return kept, nil
}

// groupByDate splits notes into per-day buckets, newest day first. Order
// within a day is preserved.
func groupByDate(notes []core.Note) (dates []string, byDate map[string][]core.Note) {
	byDate = make(map[string][]core.Note)
	for _, n := range notes {
		if _, seen := byDate[n.Date]; !seen {
			dates = append(dates, n.Date)
		}
		byDate[n.Date] = append(byDate[n.Date], n)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, byDate
}

func renderMarkdown(notes []core.Note, withFrontmatter bool) (string, error) {
	var b strings.Builder
	b.WriteString("# Journal\n")

	dates, byDate := groupByDate(notes)
	for _, date := range dates {
		fmt.Fprintf(&b, "\n## %s\n", core.FormatDateDisplay(date))
		for _, n := range byDate[date] {
			b.WriteString("\n")
			if withFrontmatter {
				fm, err := yaml.Marshal(frontmatter{
					ID:      n.ID,
					Date:    n.Date,
					Title:   n.Title,
					Created: n.CreatedAt,
					Updated: n.UpdatedAt,
				})
				if err != nil {
					return "", fmt.Errorf("failed to render frontmatter for %s: %w", n.ID, err)
				}
				b.WriteString("---\n")
				b.Write(fm)
				b.WriteString("---\n\n")
			}
			b.WriteString(strings.TrimRight(n.Content, "\n"))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func renderText(notes []core.Note) string {
	var b strings.Builder
	dates, byDate := groupByDate(notes)
	for i, date := range dates {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(core.FormatDateDisplay(date) + "\n")
		b.WriteString(strings.Repeat("=", len(core.FormatDateDisplay(date))) + "\n")
		for _, n := range byDate[date] {
			b.WriteString("\n" + strings.TrimRight(n.Content, "\n") + "\n")
		}
	}
	return b.String()
}

func renderJSON(notes []core.Note) (string, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode notes: %w", err)
	}
	return string(data), nil
}

// NewBackup wraps notes in a versioned envelope stamped with the current
// time.
func NewBackup(notes []core.Note) Backup {
	if notes == nil {
		notes = []core.Note{}
	}
	return Backup{
		Version:    BackupVersion,
		ExportedAt: core.Timestamp(),
		Notes:      notes,
	}
}

// EncodeBackup renders a backup envelope as indented JSON.
func EncodeBackup(b Backup) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// DecodeBackup parses a backup envelope, rejecting unknown versions.
func DecodeBackup(data []byte) (Backup, error) {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("failed to parse backup: %w", err)
	}
	if b.Version != BackupVersion {
		return Backup{}, fmt.Errorf("unsupported backup version %q", b.Version)
	}
	return b, nil
}
