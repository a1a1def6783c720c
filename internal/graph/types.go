package graph

import "fmt"

// ErrorKind classifies Graph API failures so callers can react without
// parsing message text.
type ErrorKind string

const (
	// KindAuthentication covers 401/403 responses and token acquisition failures.
	KindAuthentication ErrorKind = "AuthenticationError"

	// KindNotFound covers 404 responses.
	KindNotFound ErrorKind = "NotFound"

	// KindRemote covers every other non-success response from the service.
	KindRemote ErrorKind = "RemoteServiceError"
)

// Error represents a failed Microsoft Graph operation.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Op is the operation that failed (e.g., "listMessages").
	Op string

	// StatusCode is the HTTP status returned by the service, if any.
	StatusCode int

	// Code and Message come from the Graph error envelope.
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("graph %s: %s: %s (%s)", e.Op, e.Kind, e.Message, e.Code)
	}
	return fmt.Sprintf("graph %s: %s: %s", e.Op, e.Kind, e.Message)
}

// MessageSummary is the trimmed view of a mailbox message returned by
// list operations. Raw Graph responses never leave this package.
type MessageSummary struct {
	ID               string `json:"id,omitempty"`
	Subject          string `json:"subject"`
	From             string `json:"from,omitempty"`
	ReceivedDateTime string `json:"receivedDateTime,omitempty"`
	BodyPreview      string `json:"bodyPreview,omitempty"`
	IsDraft          bool   `json:"isDraft,omitempty"`
}

// OutgoingMessage describes an email to be sent or saved as a draft.
type OutgoingMessage struct {
	To              []string
	Subject         string
	Body            string
	BodyType        string // "Text" or "HTML"; defaults to "Text"
	SaveToSentItems bool
}

// Draft identifies a created draft message.
type Draft struct {
	ID      string `json:"id"`
	Subject string `json:"subject,omitempty"`
}

// DateTimeZone is a Graph date/time with an explicit time zone.
type DateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Event is a calendar event.
type Event struct {
	ID       string       `json:"id,omitempty"`
	Subject  string       `json:"subject"`
	Start    DateTimeZone `json:"start"`
	End      DateTimeZone `json:"end"`
	Location string       `json:"location,omitempty"`
}

// EventInput describes a calendar event to create.
type EventInput struct {
	Subject   string
	Start     string // date/time without offset, e.g. "2026-09-01T10:00:00"
	End       string
	TimeZone  string // defaults to "Eastern Standard Time"
	Body      string
	Attendees []string
}

// AutomaticRepliesSetting holds the out-of-office configuration.
type AutomaticRepliesSetting struct {
	Status               string `json:"status,omitempty"`
	ExternalReplyMessage string `json:"externalReplyMessage,omitempty"`
}

// MailboxSettings is the subset of mailbox settings the assistant manages.
type MailboxSettings struct {
	TimeZone         string                   `json:"timeZone,omitempty"`
	AutomaticReplies *AutomaticRepliesSetting `json:"automaticRepliesSetting,omitempty"`
}

// SettingsInput describes a partial mailbox settings update.
// Empty fields are left untouched.
type SettingsInput struct {
	TimeZone         string
	AutoReplyStatus  string // "disabled", "alwaysEnabled" or "scheduled"
	AutoReplyMessage string
}

// MessageRule is an inbox rule, such as a forwarding rule.
type MessageRule struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsEnabled   bool   `json:"isEnabled"`
}

// Wire shapes for the Graph REST API. These stay internal; public types
// above are the normalized view handed to callers.

type graphRecipient struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
}

type graphEmailAddress struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

type graphItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphMessage struct {
	ID               string           `json:"id"`
	Subject          string           `json:"subject"`
	From             *graphRecipient  `json:"from,omitempty"`
	ReceivedDateTime string           `json:"receivedDateTime,omitempty"`
	BodyPreview      string           `json:"bodyPreview,omitempty"`
	IsDraft          bool             `json:"isDraft,omitempty"`
	Body             *graphItemBody   `json:"body,omitempty"`
	ToRecipients     []graphRecipient `json:"toRecipients,omitempty"`
}

type graphEvent struct {
	ID       string        `json:"id"`
	Subject  string        `json:"subject"`
	Start    DateTimeZone  `json:"start"`
	End      DateTimeZone  `json:"end"`
	Location *struct {
		DisplayName string `json:"displayName"`
	} `json:"location,omitempty"`
}

type graphErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func toRecipients(addresses []string) []graphRecipient {
	recipients := make([]graphRecipient, 0, len(addresses))
	for _, addr := range addresses {
		recipients = append(recipients, graphRecipient{
			EmailAddress: graphEmailAddress{Address: addr},
		})
	}
	return recipients
}

func toMessageSummary(m graphMessage) MessageSummary {
	summary := MessageSummary{
		ID:               m.ID,
		Subject:          m.Subject,
		ReceivedDateTime: m.ReceivedDateTime,
		BodyPreview:      m.BodyPreview,
		IsDraft:          m.IsDraft,
	}
	if m.From != nil {
		summary.From = m.From.EmailAddress.Address
	}
	return summary
}

func toEvent(e graphEvent) Event {
	event := Event{
		ID:      e.ID,
		Subject: e.Subject,
		Start:   e.Start,
		End:     e.End,
	}
	if e.Location != nil {
		event.Location = e.Location.DisplayName
	}
	return event
}
