// Package config loads runtime configuration from environment variables
// and an optional config file.
//
// Required settings:
//   - OPENAI_API_KEY: API key for the OpenAI chat-completions endpoint
//   - TENANT_ID, CLIENT_ID, CLIENT_SECRET: Microsoft Graph client-credentials
//   - MAILBOX_USER_ID: the mailbox the app-only token operates on
//
// Optional settings have sensible defaults (model, Graph scope and base URL,
// system prompt, iteration bound, metrics toggle).
package config
