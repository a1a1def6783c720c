// Package graph provides a client for the Microsoft Graph mailbox API.
//
// The client covers the mailbox operations the assistant exposes as tools:
//   - Message listing and sending
//   - Draft creation, listing and sending
//   - Calendar event listing and creation
//   - Mailbox settings (time zone, automatic replies)
//   - Inbox forwarding rules
//
// Authentication uses the OAuth2 client-credentials flow against the
// Microsoft identity platform; tokens are acquired lazily and refreshed
// transparently. Credentials are injected through Config, never read from
// the environment by this package.
//
// Every operation validates its own required parameters before issuing a
// request, and normalizes non-success responses into *Error with a Kind
// (authentication, not-found, remote) so callers never inspect raw
// transport responses.
package graph
