package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/core"
)

var addDate string

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a journal note",
	Long:  `Create a note for a day. Without arguments, content is read from stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		content := strings.Join(args, " ")
		if content == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read content", err)
			}
			content = strings.TrimSpace(string(data))
		}
		if content == "" {
			fmt.Println("Error: note content is empty")
			os.Exit(1)
		}

		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		note := core.NewNote(content, addDate)
		if addDate != "" {
			app.Notes.NavigateToDate(addDate)
			app.Notes.LoadNotesForDate(ctx, addDate)
		}
		if err := app.Notes.AddNote(ctx, note); err != nil {
			fatal("Failed to add note", err)
		}
		fmt.Printf("Added note %s to %s\n", note.ID, core.FormatDateDisplay(note.Date))
	},
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Date key (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(addCmd)
}
