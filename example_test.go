package daybook_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/daybook-app/daybook"
	"github.com/daybook-app/daybook/pkg/core"
)

// offlineWeather keeps the example hermetic; the default client would
// call the geolocation service during Start.
type offlineWeather struct{}

func (offlineWeather) Current(context.Context, string, string) (core.WeatherData, error) {
	return core.WeatherData{}, errors.New("offline")
}

func (offlineWeather) DetectLocation(context.Context) (string, error) {
	return "", errors.New("offline")
}

func (offlineWeather) Context(context.Context, string, string) (core.JournalContext, error) {
	return core.JournalContext{}, errors.New("offline")
}

// Example_basic demonstrates how to open an application, add a note for
// today, and read the day's notes back.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "daybook-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	app, err := daybook.New(tmpDir, daybook.WithWeatherClient(offlineWeather{}))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatal(err)
	}

	// 1. Add a note for the currently displayed day
	note := core.NewNote("My first journal entry.", app.Notes.CurrentDate())
	if err := app.Notes.AddNote(ctx, note); err != nil {
		log.Fatal(err)
	}

	// 2. Read the day back
	notes := app.Notes.CurrentNotes()
	fmt.Printf("Notes today: %d\n", len(notes))
	fmt.Printf("Preview: %s\n", notes[0].Preview())
	// Output:
	// Notes today: 1
	// Preview: My first journal entry.
}
