// Package cmd implements the command-line interface for mailbox-assistant.
//
// This package provides the following commands:
//   - chat: Start an interactive mailbox conversation (default)
//   - version: Display version information
//
// The chat command is the default command when no subcommand is specified.
package cmd
