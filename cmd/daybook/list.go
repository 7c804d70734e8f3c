package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/core"
)

var listDate string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes for a day",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		if listDate != "" {
			app.Notes.NavigateToDate(listDate)
			app.Notes.LoadNotesForDate(ctx, listDate)
		}

		date := app.Notes.CurrentDate()
		notes := app.Notes.CurrentNotes()
		fmt.Printf("%s (%s)\n", core.FormatDateDisplay(date), core.RelativeDay(date))
		if len(notes) == 0 {
			fmt.Println("  no notes")
			return
		}
		for _, n := range notes {
			fmt.Printf("  %s  %s\n", n.ID, n.Preview())
		}
	},
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "Date key (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(listCmd)
}
