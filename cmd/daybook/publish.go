package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook"
	"github.com/daybook-app/daybook/pkg/core"
)

var (
	publishDate   string
	publishIntent string
	publishAudit  bool
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish <note-id>",
	Short: "Publish a note to the configured chain node",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("Error: a note ID is required")
			cmd.Usage()
			os.Exit(1)
		}

		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		settings := app.Settings.Current().Publishing
		if !settings.Enabled || settings.APIURL == "" {
			fmt.Println("Publishing is not configured; set it up with the settings command")
			os.Exit(1)
		}

		date := publishDate
		if date == "" {
			date = core.Today()
		}
		notes, ok := app.NotesService.NotesForDate(ctx, date)
		if !ok {
			fatal("Failed to read notes", fmt.Errorf("date %s", date))
		}

		var note *core.Note
		for i := range notes {
			if notes[i].ID == args[0] {
				note = &notes[i]
				break
			}
		}
		if note == nil {
			fatal("Note not found", fmt.Errorf("id %s on %s", args[0], date))
		}

		intent := publishIntent
		if intent == "" {
			intent = "share a journal entry"
		}
		entry := core.Entry{
			Author:       settings.AuthorID,
			Content:      note.Content,
			Intent:       intent,
			Title:        note.Title,
			Monetization: settings.DefaultMonetization,
			Price:        settings.DefaultPrice,
			Visibility:   settings.DefaultVisibility,
			CreatedAt:    note.CreatedAt,
		}
		if settings.IncludeWeatherContext {
			if w := app.Weather.Current(); w != nil {
				entry.Context = &core.EntryContext{
					Weather:   w.ConditionText,
					Location:  w.Location,
					Date:      note.Date,
					TimeOfDay: contextTimeOfDay(app),
				}
			}
		}

		if publishAudit || settings.AutoAuditBeforePublish {
			result := app.PublishService.Validate(ctx, settings.APIURL, entry)
			if result == nil {
				fatal("Validation failed", fmt.Errorf("no response from %s", settings.APIURL))
			}
			if !result.Valid {
				fmt.Println("Entry failed validation:")
				for _, w := range result.Warnings {
					fmt.Println("  -", w)
				}
				for _, s := range result.Suggestions {
					fmt.Println("  suggestion:", s)
				}
				os.Exit(1)
			}
		}

		result := app.PublishService.PublishEntry(ctx, settings.APIURL, entry)
		if !result.Success {
			fatal("Publish rejected", fmt.Errorf("%s", result.Error))
		}
		fmt.Printf("Published entry %s (block %s)\n", result.EntryID, result.BlockHash)
	},
}

// statsCmd reports the author's publishing stats.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show publishing stats for the configured author",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		settings := app.Settings.Current().Publishing
		if settings.APIURL == "" {
			fmt.Println("Publishing is not configured")
			os.Exit(1)
		}
		if !app.PublishService.CheckConnection(ctx, settings.APIURL) {
			fmt.Println("Chain node unreachable:", settings.APIURL)
			os.Exit(1)
		}

		stats := app.PublishService.Stats(ctx, settings.APIURL, settings.AuthorID)
		if stats == nil {
			fatal("Failed to fetch stats", fmt.Errorf("author %s", settings.AuthorID))
		}
		fmt.Printf("Entries published: %d\n", stats.TotalEntries)
	},
}

func contextTimeOfDay(app *daybook.App) string {
	if jc := app.Weather.Context(); jc != nil {
		return jc.TimeOfDay
	}
	return ""
}

func init() {
	publishCmd.Flags().StringVar(&publishDate, "date", "", "Date key the note belongs to, defaults to today")
	publishCmd.Flags().StringVar(&publishIntent, "intent", "", "Declared intent for the entry")
	publishCmd.Flags().BoolVar(&publishAudit, "audit", false, "Validate before publishing even if auto-audit is off")
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(statsCmd)
}
