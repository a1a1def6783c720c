package tools

import (
	"context"

	"github.com/TSGCFO/functions-openai/internal/graph"
)

// MailboxAPI is the slice of the Graph client the mailbox tools need.
type MailboxAPI interface {
	ListMessages(ctx context.Context, userID string, top int, filter string) ([]graph.MessageSummary, error)
	SendMessage(ctx context.Context, userID string, msg *graph.OutgoingMessage) error
	CreateDraft(ctx context.Context, userID string, msg *graph.OutgoingMessage) (*graph.Draft, error)
	SendDraft(ctx context.Context, userID, messageID string) error
	ListDrafts(ctx context.Context, userID string, top int) ([]graph.MessageSummary, error)
	ListEvents(ctx context.Context, userID string, top int) ([]graph.Event, error)
	CreateEvent(ctx context.Context, userID string, input graph.EventInput) (*graph.Event, error)
	GetMailboxSettings(ctx context.Context, userID string) (*graph.MailboxSettings, error)
	UpdateMailboxSettings(ctx context.Context, userID string, input graph.SettingsInput) (*graph.MailboxSettings, error)
	CreateForwardingRule(ctx context.Context, userID string, forwardTo, senderContains []string) (*graph.MessageRule, error)
}

var userIDProp = &Property{
	Type:        "string",
	Description: "Mailbox user ID or userPrincipalName. Defaults to the configured mailbox.",
}

// NewMailboxRegistry builds the tool registry exposing mailbox, calendar
// and settings operations. defaultUser is the mailbox used when a call
// omits userId.
func NewMailboxRegistry(api MailboxAPI, defaultUser string) *Registry {
	r := NewRegistry()
	resolveUser := func(args map[string]any) string {
		if id := stringArg(args, "userId"); id != "" {
			return id
		}
		return defaultUser
	}

	r.Register(Definition{
		Name:        "listEmails",
		Description: "List recent emails in the mailbox, newest first.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId": userIDProp,
				"top":    {Type: "integer", Description: "Maximum number of emails to return. Defaults to 10."},
				"filter": {Type: "string", Description: "OData $filter expression, e.g. \"isRead eq false\"."},
			},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return api.ListMessages(ctx, resolveUser(args), intArg(args, "top"), stringArg(args, "filter"))
	})

	r.Register(Definition{
		Name:        "sendEmail",
		Description: "Send an email immediately.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId":  userIDProp,
				"to":      {Type: "array", Description: "Recipient email addresses.", Items: &Property{Type: "string"}},
				"subject": {Type: "string", Description: "Email subject."},
				"body":    {Type: "string", Description: "Email body."},
				"bodyType": {
					Type:        "string",
					Description: "Body content type.",
					Enum:        []string{"Text", "HTML"},
				},
			},
			Required: []string{"to", "subject", "body"},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		err := api.SendMessage(ctx, resolveUser(args), &graph.OutgoingMessage{
			To:              stringSliceArg(args, "to"),
			Subject:         stringArg(args, "subject"),
			Body:            stringArg(args, "body"),
			BodyType:        stringArg(args, "bodyType"),
			SaveToSentItems: true,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"status": "sent"}, nil
	})

	r.Register(Definition{
		Name:        "createDraft",
		Description: "Create a draft email without sending it.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId":  userIDProp,
				"to":      {Type: "array", Description: "Recipient email addresses.", Items: &Property{Type: "string"}},
				"subject": {Type: "string", Description: "Email subject."},
				"body":    {Type: "string", Description: "Email body."},
			},
			Required: []string{"to", "subject"},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return api.CreateDraft(ctx, resolveUser(args), &graph.OutgoingMessage{
			To:      stringSliceArg(args, "to"),
			Subject: stringArg(args, "subject"),
			Body:    stringArg(args, "body"),
		})
	})

	r.Register(Definition{
		Name:        "sendDraft",
		Description: "Send a previously created draft email.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId":    userIDProp,
				"messageId": {Type: "string", Description: "ID of the draft message to send."},
			},
			Required: []string{"messageId"},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		if err := api.SendDraft(ctx, resolveUser(args), stringArg(args, "messageId")); err != nil {
			return nil, err
		}
		return map[string]any{"status": "sent"}, nil
	})

	r.Register(Definition{
		Name:        "listDrafts",
		Description: "List draft emails in the mailbox.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId": userIDProp,
				"top":    {Type: "integer", Description: "Maximum number of drafts to return. Defaults to 10."},
			},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return api.ListDrafts(ctx, resolveUser(args), intArg(args, "top"))
	})

	r.Register(Definition{
		Name:        "listCalendarEvents",
		Description: "List upcoming calendar events, earliest first.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId": userIDProp,
				"top":    {Type: "integer", Description: "Maximum number of events to return. Defaults to 10."},
			},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return api.ListEvents(ctx, resolveUser(args), intArg(args, "top"))
	})

	r.Register(Definition{
		Name:        "createCalendarEvent",
		Description: "Create a calendar event.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId":    userIDProp,
				"subject":   {Type: "string", Description: "Event subject."},
				"start":     {Type: "string", Description: "Start time without offset, e.g. \"2026-09-01T10:00:00\"."},
				"end":       {Type: "string", Description: "End time without offset."},
				"timeZone":  {Type: "string", Description: "Time zone name. Defaults to Eastern Standard Time."},
				"body":      {Type: "string", Description: "Event description."},
				"attendees": {Type: "array", Description: "Attendee email addresses.", Items: &Property{Type: "string"}},
			},
			Required: []string{"subject", "start", "end"},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return api.CreateEvent(ctx, resolveUser(args), graph.EventInput{
			Subject:   stringArg(args, "subject"),
			Start:     stringArg(args, "start"),
			End:       stringArg(args, "end"),
			TimeZone:  stringArg(args, "timeZone"),
			Body:      stringArg(args, "body"),
			Attendees: stringSliceArg(args, "attendees"),
		})
	})

	r.Register(Definition{
		Name:        "getMailboxSettings",
		Description: "Read mailbox settings such as time zone and automatic replies.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId": userIDProp,
			},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return api.GetMailboxSettings(ctx, resolveUser(args))
	})

	r.Register(Definition{
		Name:        "updateMailboxSettings",
		Description: "Update mailbox settings. Only the provided fields change.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId":   userIDProp,
				"timeZone": {Type: "string", Description: "Mailbox time zone, e.g. \"Eastern Standard Time\"."},
				"autoReplyStatus": {
					Type:        "string",
					Description: "Automatic replies status.",
					Enum:        []string{"disabled", "alwaysEnabled", "scheduled"},
				},
				"autoReplyMessage": {Type: "string", Description: "Automatic reply message for external senders."},
			},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return api.UpdateMailboxSettings(ctx, resolveUser(args), graph.SettingsInput{
			TimeZone:         stringArg(args, "timeZone"),
			AutoReplyStatus:  stringArg(args, "autoReplyStatus"),
			AutoReplyMessage: stringArg(args, "autoReplyMessage"),
		})
	})

	r.Register(Definition{
		Name:        "createForwardingRule",
		Description: "Create an inbox rule that forwards matching emails.",
		Schema: &Schema{
			Type: "object",
			Properties: map[string]*Property{
				"userId":    userIDProp,
				"forwardTo": {Type: "array", Description: "Addresses to forward matching emails to.", Items: &Property{Type: "string"}},
				"senderContains": {
					Type:        "array",
					Description: "Only forward emails whose sender address contains one of these substrings.",
					Items:       &Property{Type: "string"},
				},
			},
			Required: []string{"forwardTo"},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		return api.CreateForwardingRule(ctx, resolveUser(args),
			stringSliceArg(args, "forwardTo"), stringSliceArg(args, "senderContains"))
	})

	return r
}

// Argument accessors. Validation has already run, so a missing or
// mistyped optional argument degrades to the zero value.

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

func intArg(args map[string]any, name string) int {
	f, _ := args[name].(float64)
	return int(f)
}

func stringSliceArg(args map[string]any, name string) []string {
	items, ok := args[name].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
