// Package logging provides shared slog attribute helpers so log entries
// use consistent key names across the codebase, plus PII-safe helpers for
// logging mailbox addresses.
package logging
