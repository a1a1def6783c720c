// Package model implements chat.Completer on top of an OpenAI-compatible
// chat-completions endpoint, translating between conversation turns and
// the wire message format, including tool call round-trips.
package model
