package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the local language model",
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")
		if text == "" {
			fmt.Println("Error: a message is required")
			cmd.Usage()
			os.Exit(1)
		}

		ctx := context.Background()
		app := openApp(ctx)
		defer app.Close()

		status := app.Chat.CheckStatus(ctx)
		if !status.Connected {
			fmt.Println("Language-model server unavailable:", status.Error)
			os.Exit(1)
		}

		if err := app.Chat.Send(ctx, text); err != nil {
			fatal("Chat failed", err)
		}

		messages := app.Chat.Messages()
		if len(messages) > 0 {
			fmt.Println(messages[len(messages)-1].Content)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
