package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/daybook-app/daybook"
)

var (
	verbose bool
	dataDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "A daily journal with local AI, weather context, and publishing",
	Long: `Daybook keeps date-indexed journal notes in a local SQLite database.
It can chat with a local Ollama model, attach weather context to entries,
and publish selected entries to a NatLangChain node.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		dataDir = viper.GetString("data-dir")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("data-dir", defaultDataDir(), "Directory holding the journal database and settings")

	viper.SetEnvPrefix("DAYBOOK")
	viper.AutomaticEnv()
	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	// Optional .daybook.yaml in the working directory or home.
	viper.SetConfigName(".daybook")
	viper.AddConfigPath("./")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: could not read config file: %v\n", err)
		}
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".daybook"
	}
	return filepath.Join(home, ".daybook")
}

// openApp builds and starts the application for a command invocation.
// Callers must Close the returned app.
func openApp(ctx context.Context) *daybook.App {
	app, err := daybook.New(dataDir, daybook.WithLogger(slog.Default()))
	if err != nil {
		fatal("Failed to open journal", err)
	}
	if err := app.Start(ctx); err != nil {
		app.Close()
		fatal("Failed to start journal", err)
	}
	return app
}
