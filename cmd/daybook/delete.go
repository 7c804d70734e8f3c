package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteDate string

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <note-id>",
	Short: "Delete a note",
	Long:  `Soft-delete a note. The record is kept in the database but hidden from listings.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println("Error: a note ID is required")
			cmd.Usage()
			os.Exit(1)
		}

		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		date := deleteDate
		if date == "" {
			date = app.Notes.CurrentDate()
		} else {
			app.Notes.NavigateToDate(date)
			app.Notes.LoadNotesForDate(ctx, date)
		}

		if err := app.Notes.DeleteNote(ctx, args[0], date); err != nil {
			fatal("Failed to delete note", err)
		}
		fmt.Printf("Deleted note %s\n", args[0])
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteDate, "date", "", "Date key the note belongs to, defaults to today")
	rootCmd.AddCommand(deleteCmd)
}
