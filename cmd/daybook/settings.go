package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/pkg/core"
)

var (
	settingsTheme    string
	settingsLocation string
	settingsUnit     string
	settingsAPIKey   string
	settingsModel    string
	settingsServer   string
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		current := app.Settings.Current()
		var patch core.SettingsPatch

		if settingsTheme != "" {
			section := current.App
			section.Theme = core.Theme(settingsTheme)
			patch.App = &section
		}
		if settingsLocation != "" || settingsUnit != "" || settingsAPIKey != "" {
			section := current.Weather
			if settingsLocation != "" {
				section.Location = settingsLocation
				section.AutoDetectLocation = false
			}
			if settingsUnit != "" {
				section.TemperatureUnit = settingsUnit
			}
			if settingsAPIKey != "" {
				section.APIKey = settingsAPIKey
			}
			patch.Weather = &section
		}
		if settingsModel != "" || settingsServer != "" {
			section := current.AI
			if settingsModel != "" {
				section.Model = settingsModel
			}
			if settingsServer != "" {
				section.ServerURL = settingsServer
			}
			patch.AI = &section
		}

		if patch != (core.SettingsPatch{}) {
			if err := app.Settings.Update(ctx, patch); err != nil {
				fatal("Failed to update settings", err)
			}
			fmt.Println("Settings updated")
		}

		data, err := json.MarshalIndent(app.Settings.Current(), "", "  ")
		if err != nil {
			fatal("Failed to render settings", err)
		}
		fmt.Println(string(data))
	},
}

// settingsResetCmd restores every section to its default value.
var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		if err := app.Settings.Reset(ctx); err != nil {
			fatal("Failed to reset settings", err)
		}
		fmt.Println("Settings reset to defaults")
	},
}

func init() {
	settingsCmd.Flags().StringVar(&settingsTheme, "theme", "", "UI theme: light, dark, or system")
	settingsCmd.Flags().StringVar(&settingsLocation, "location", "", "Weather location, e.g. \"Lisbon, Portugal\"")
	settingsCmd.Flags().StringVar(&settingsUnit, "unit", "", "Temperature unit: celsius or fahrenheit")
	settingsCmd.Flags().StringVar(&settingsAPIKey, "weather-key", "", "WeatherAPI.com key")
	settingsCmd.Flags().StringVar(&settingsModel, "model", "", "Language model name, e.g. llama3.2:3b")
	settingsCmd.Flags().StringVar(&settingsServer, "server", "", "Language-model server URL")
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}
