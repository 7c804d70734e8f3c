package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of daybook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("daybook version %s\n", daybook.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
