package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/core"
)

var weatherForce bool

// weatherCmd represents the weather command
var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Show the current journal context",
	Long:  `Fetch weather and ambient context for the configured location.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		if weatherForce {
			app.Weather.ForceRefresh(ctx)
		} else {
			app.Weather.Refresh(ctx)
		}

		if msg := app.Weather.Err(); msg != "" {
			fmt.Println("Weather unavailable:", msg)
		}

		jc := app.Weather.Context()
		if jc == nil {
			fmt.Println("No journal context available")
			return
		}

		fmt.Printf("%s %s", jc.DayOfWeek, jc.TimeOfDay)
		if jc.MoonPhase != "" {
			fmt.Printf(", %s", jc.MoonPhase)
		}
		fmt.Println()

		if w := app.Weather.Current(); w != nil {
			unit := app.Settings.Current().Weather.TemperatureUnit
			fmt.Printf("%s: %s, %s\n", w.Location, core.FormatTemperature(*w, unit), w.ConditionText)
		}
	},
}

func init() {
	weatherCmd.Flags().BoolVar(&weatherForce, "force", false, "Bypass the cache and fetch fresh data")
	rootCmd.AddCommand(weatherCmd)
}
