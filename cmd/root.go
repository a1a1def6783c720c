package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the mailbox assistant
var rootCmd = &cobra.Command{
	Use:   "mailbox-assistant",
	Short: "Chat with your Microsoft 365 mailbox through a function-calling model",
	Long: `mailbox-assistant is a conversational CLI for a Microsoft 365 mailbox.

You describe what you want in plain language; the assistant translates it
into Microsoft Graph operations (list and send email, manage drafts,
calendar events, mailbox settings and forwarding rules) via an
OpenAI-compatible function-calling model endpoint.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mailbox-assistant version %s\n" .Version}}`)

	// If no subcommand is provided, run the chat command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "chat")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newVersionCmd())
}
