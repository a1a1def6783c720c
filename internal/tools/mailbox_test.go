package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TSGCFO/functions-openai/internal/graph"
)

// fakeMailbox records the last call made through the MailboxAPI surface.
type fakeMailbox struct {
	lastUser   string
	lastTop    int
	lastFilter string
	lastMsg    *graph.OutgoingMessage
	lastEvent  graph.EventInput
}

func (f *fakeMailbox) ListMessages(ctx context.Context, userID string, top int, filter string) ([]graph.MessageSummary, error) {
	f.lastUser, f.lastTop, f.lastFilter = userID, top, filter
	return []graph.MessageSummary{{ID: "m1", Subject: "Hello"}}, nil
}

func (f *fakeMailbox) SendMessage(ctx context.Context, userID string, msg *graph.OutgoingMessage) error {
	f.lastUser, f.lastMsg = userID, msg
	return nil
}

func (f *fakeMailbox) CreateDraft(ctx context.Context, userID string, msg *graph.OutgoingMessage) (*graph.Draft, error) {
	f.lastUser, f.lastMsg = userID, msg
	return &graph.Draft{ID: "draft-1", Subject: msg.Subject}, nil
}

func (f *fakeMailbox) SendDraft(ctx context.Context, userID, messageID string) error {
	f.lastUser = userID
	return nil
}

func (f *fakeMailbox) ListDrafts(ctx context.Context, userID string, top int) ([]graph.MessageSummary, error) {
	f.lastUser, f.lastTop = userID, top
	return nil, nil
}

func (f *fakeMailbox) ListEvents(ctx context.Context, userID string, top int) ([]graph.Event, error) {
	f.lastUser, f.lastTop = userID, top
	return nil, nil
}

func (f *fakeMailbox) CreateEvent(ctx context.Context, userID string, input graph.EventInput) (*graph.Event, error) {
	f.lastUser, f.lastEvent = userID, input
	return &graph.Event{ID: "ev-1", Subject: input.Subject}, nil
}

func (f *fakeMailbox) GetMailboxSettings(ctx context.Context, userID string) (*graph.MailboxSettings, error) {
	f.lastUser = userID
	return &graph.MailboxSettings{TimeZone: "UTC"}, nil
}

func (f *fakeMailbox) UpdateMailboxSettings(ctx context.Context, userID string, input graph.SettingsInput) (*graph.MailboxSettings, error) {
	f.lastUser = userID
	return &graph.MailboxSettings{TimeZone: input.TimeZone}, nil
}

func (f *fakeMailbox) CreateForwardingRule(ctx context.Context, userID string, forwardTo, senderContains []string) (*graph.MessageRule, error) {
	f.lastUser = userID
	return &graph.MessageRule{ID: "rule-1", IsEnabled: true}, nil
}

func TestMailboxRegistry_ExposesAllTools(t *testing.T) {
	r := NewMailboxRegistry(&fakeMailbox{}, "alice@example.com")

	want := []string{
		"listEmails", "sendEmail", "createDraft", "sendDraft", "listDrafts",
		"listCalendarEvents", "createCalendarEvent",
		"getMailboxSettings", "updateMailboxSettings", "createForwardingRule",
	}

	defs := r.Definitions()
	require.Len(t, defs, len(want))
	for i, name := range want {
		assert.Equal(t, name, defs[i].Name)
	}
}

func TestMailboxRegistry_DefaultsUserID(t *testing.T) {
	fake := &fakeMailbox{}
	r := NewMailboxRegistry(fake, "alice@example.com")

	_, err := r.Dispatch(context.Background(), "listEmails", map[string]any{"top": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", fake.lastUser)
	assert.Equal(t, 3, fake.lastTop)

	_, err = r.Dispatch(context.Background(), "listEmails", map[string]any{"userId": "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", fake.lastUser)
}

func TestMailboxRegistry_SendEmail(t *testing.T) {
	fake := &fakeMailbox{}
	r := NewMailboxRegistry(fake, "alice@example.com")

	payload, err := r.Dispatch(context.Background(), "sendEmail", map[string]any{
		"to":      []any{"bob@example.com"},
		"subject": "Status",
		"body":    "All good.",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "sent"}, payload)

	require.NotNil(t, fake.lastMsg)
	assert.Equal(t, []string{"bob@example.com"}, fake.lastMsg.To)
	assert.True(t, fake.lastMsg.SaveToSentItems)

	// Missing required arguments never reach the mailbox.
	fake.lastMsg = nil
	_, err = r.Dispatch(context.Background(), "sendEmail", map[string]any{"subject": "no recipients"})
	require.Error(t, err)
	assert.Nil(t, fake.lastMsg)
}

func TestMailboxRegistry_CreateCalendarEvent(t *testing.T) {
	fake := &fakeMailbox{}
	r := NewMailboxRegistry(fake, "alice@example.com")

	_, err := r.Dispatch(context.Background(), "createCalendarEvent", map[string]any{
		"subject":   "Standup",
		"start":     "2026-09-01T10:00:00",
		"end":       "2026-09-01T10:15:00",
		"attendees": []any{"bob@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Standup", fake.lastEvent.Subject)
	assert.Equal(t, []string{"bob@example.com"}, fake.lastEvent.Attendees)
}
