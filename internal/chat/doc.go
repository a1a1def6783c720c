// Package chat holds the conversation model and the orchestration loop
// that bridges the model endpoint and the tool registry.
//
// A Conversation is an append-only sequence of turns. RunTurn drives one
// user exchange: model request, tool dispatch, results fed back, repeated
// until the model answers in plain text or the bounded iteration budget
// runs out. Tool-level failures (bad arguments, unknown tools, mailbox
// errors) are recovered inside the loop by handing the failure back to
// the model; model endpoint failures and budget exhaustion end the
// exchange while preserving the conversation recorded so far.
package chat
