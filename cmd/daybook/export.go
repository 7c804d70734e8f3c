package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook"
	"github.com/daybook-app/daybook/pkg/core"
	"github.com/daybook-app/daybook/pkg/export"
)

var (
	exportFormat      string
	exportFrom        string
	exportTo          string
	exportPattern     string
	exportFrontmatter bool
	exportOut         string
	exportBackup      bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes as markdown, text, or JSON",
	Long: `Render notes from a date range as a shareable document, or write a
versioned backup archive with --backup.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		notes, err := collectNotes(ctx, app)
		if err != nil {
			fatal("Failed to collect notes", err)
		}

		var out string
		if exportBackup {
			data, err := export.EncodeBackup(export.NewBackup(notes))
			if err != nil {
				fatal("Failed to encode backup", err)
			}
			out = string(data)
		} else {
			out, err = export.Render(notes, export.Options{
				Format:      export.Format(exportFormat),
				Frontmatter: exportFrontmatter,
				DatePattern: exportPattern,
			})
			if err != nil {
				fatal("Failed to render export", err)
			}
		}

		if exportOut == "" {
			fmt.Print(out)
			return
		}
		if err := os.WriteFile(exportOut, []byte(out), 0o644); err != nil {
			fatal("Failed to write export file", err)
		}
		fmt.Printf("Wrote %s\n", exportOut)
	},
}

// collectNotes walks the date range day by day through the persistence
// layer.
func collectNotes(ctx context.Context, app *daybook.App) ([]core.Note, error) {
	from := exportFrom
	to := exportTo
	if from == "" {
		from = core.Today()
	}
	if to == "" {
		to = core.Today()
	}
	if from > to {
		return nil, fmt.Errorf("range start %s is after end %s", from, to)
	}

	var notes []core.Note
	for date := from; date <= to; {
		dayNotes, ok := app.NotesService.NotesForDate(ctx, date)
		if !ok {
			return nil, fmt.Errorf("failed to read notes for %s", date)
		}
		notes = append(notes, dayNotes...)

		next, err := core.AddDays(date, 1)
		if err != nil {
			return nil, err
		}
		date = next
	}
	return notes, nil
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "markdown", "Output format: markdown, text, or json")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Range start date key, defaults to today")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Range end date key, defaults to today")
	exportCmd.Flags().StringVar(&exportPattern, "dates", "", "Glob filter on date keys, e.g. \"2026-03-*\"")
	exportCmd.Flags().BoolVar(&exportFrontmatter, "frontmatter", false, "Prepend YAML metadata to each markdown note")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportBackup, "backup", false, "Write a versioned backup archive (JSON)")
	rootCmd.AddCommand(exportCmd)
}
