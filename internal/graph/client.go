package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// Config holds the settings needed to construct a Client.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string

	// Scope defaults to "https://graph.microsoft.com/.default".
	Scope string

	// BaseURL defaults to the Graph v1.0 endpoint. Overridable for tests.
	BaseURL string

	// TokenURL defaults to the Microsoft identity platform token endpoint
	// for TenantID. Overridable for tests.
	TokenURL string
}

// Client wraps authenticated calls to the Microsoft Graph mailbox API.
// Tokens are acquired lazily through the OAuth2 client-credentials flow
// and refreshed transparently by the underlying token source.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Graph client using the client-credentials flow.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.TenantID == "" {
		return nil, fmt.Errorf("tenantID is required")
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("clientID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("clientSecret is required")
	}

	scope := cfg.Scope
	if scope == "" {
		scope = "https://graph.microsoft.com/.default"
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{scope},
	}

	return &Client{
		httpClient: cc.Client(ctx),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

// do performs an authenticated request against the Graph API and decodes
// the response into out when out is non-nil. Non-success responses are
// normalized into *Error.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Token acquisition failures surface here as transport errors.
		return &Error{Kind: KindAuthentication, Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", op, err)
	}

	if resp.StatusCode >= 400 {
		return newError(op, resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", op, err)
		}
	}
	return nil
}

// newError maps a non-success Graph response to a typed Error.
func newError(op string, status int, body []byte) *Error {
	kind := KindRemote
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindAuthentication
	case http.StatusNotFound:
		kind = KindNotFound
	}

	e := &Error{Kind: kind, Op: op, StatusCode: status}

	var envelope graphErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		e.Code = envelope.Error.Code
		e.Message = envelope.Error.Message
	} else {
		e.Message = fmt.Sprintf("unexpected status %d", status)
	}
	return e
}

// ListMessages lists recent messages in the user's mailbox, newest first.
// filter is an optional OData $filter expression (e.g. "isRead eq false").
func (c *Client) ListMessages(ctx context.Context, userID string, top int, filter string) ([]MessageSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	if top <= 0 {
		top = 10
	}

	query := url.Values{}
	query.Set("$top", strconv.Itoa(top))
	query.Set("$select", "subject,from,receivedDateTime,bodyPreview")
	query.Set("$orderby", "receivedDateTime desc")
	if filter != "" {
		query.Set("$filter", filter)
	}

	var result struct {
		Value []graphMessage `json:"value"`
	}
	path := fmt.Sprintf("/users/%s/messages", url.PathEscape(userID))
	if err := c.do(ctx, "listMessages", http.MethodGet, path, query, nil, &result); err != nil {
		return nil, err
	}

	summaries := make([]MessageSummary, 0, len(result.Value))
	for _, m := range result.Value {
		summaries = append(summaries, toMessageSummary(m))
	}
	return summaries, nil
}

// SendMessage sends an email from the user's mailbox.
func (c *Client) SendMessage(ctx context.Context, userID string, msg *OutgoingMessage) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if msg.Body == "" {
		return fmt.Errorf("body is required")
	}

	payload := map[string]any{
		"message": graphMessage{
			Subject:      msg.Subject,
			Body:         &graphItemBody{ContentType: bodyType(msg.BodyType), Content: msg.Body},
			ToRecipients: toRecipients(msg.To),
		},
		"saveToSentItems": msg.SaveToSentItems,
	}

	path := fmt.Sprintf("/users/%s/sendMail", url.PathEscape(userID))
	return c.do(ctx, "sendMessage", http.MethodPost, path, nil, payload, nil)
}

// CreateDraft creates a draft message in the user's mailbox.
func (c *Client) CreateDraft(ctx context.Context, userID string, msg *OutgoingMessage) (*Draft, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}

	payload := graphMessage{
		Subject:      msg.Subject,
		Body:         &graphItemBody{ContentType: bodyType(msg.BodyType), Content: msg.Body},
		ToRecipients: toRecipients(msg.To),
	}

	var created graphMessage
	path := fmt.Sprintf("/users/%s/messages", url.PathEscape(userID))
	if err := c.do(ctx, "createDraft", http.MethodPost, path, nil, payload, &created); err != nil {
		return nil, err
	}
	return &Draft{ID: created.ID, Subject: created.Subject}, nil
}

// SendDraft sends a previously created draft message.
func (c *Client) SendDraft(ctx context.Context, userID, messageID string) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	if messageID == "" {
		return fmt.Errorf("messageID is required")
	}

	path := fmt.Sprintf("/users/%s/messages/%s/send", url.PathEscape(userID), url.PathEscape(messageID))
	return c.do(ctx, "sendDraft", http.MethodPost, path, nil, nil, nil)
}

// ListDrafts lists messages in the user's drafts folder.
func (c *Client) ListDrafts(ctx context.Context, userID string, top int) ([]MessageSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	if top <= 0 {
		top = 10
	}

	query := url.Values{}
	query.Set("$top", strconv.Itoa(top))

	var result struct {
		Value []graphMessage `json:"value"`
	}
	path := fmt.Sprintf("/users/%s/mailFolders/drafts/messages", url.PathEscape(userID))
	if err := c.do(ctx, "listDrafts", http.MethodGet, path, query, nil, &result); err != nil {
		return nil, err
	}

	summaries := make([]MessageSummary, 0, len(result.Value))
	for _, m := range result.Value {
		summaries = append(summaries, toMessageSummary(m))
	}
	return summaries, nil
}

// ListEvents lists upcoming calendar events, earliest first.
func (c *Client) ListEvents(ctx context.Context, userID string, top int) ([]Event, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	if top <= 0 {
		top = 10
	}

	query := url.Values{}
	query.Set("$top", strconv.Itoa(top))
	query.Set("$select", "subject,start,end,location")
	query.Set("$orderby", "start/dateTime asc")

	var result struct {
		Value []graphEvent `json:"value"`
	}
	path := fmt.Sprintf("/users/%s/events", url.PathEscape(userID))
	if err := c.do(ctx, "listEvents", http.MethodGet, path, query, nil, &result); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(result.Value))
	for _, e := range result.Value {
		events = append(events, toEvent(e))
	}
	return events, nil
}

// CreateEvent creates a calendar event in the user's default calendar.
func (c *Client) CreateEvent(ctx context.Context, userID string, input EventInput) (*Event, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	if input.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if input.Start == "" || input.End == "" {
		return nil, fmt.Errorf("start and end times are required")
	}

	timeZone := input.TimeZone
	if timeZone == "" {
		timeZone = "Eastern Standard Time"
	}

	attendees := make([]map[string]any, 0, len(input.Attendees))
	for _, addr := range input.Attendees {
		attendees = append(attendees, map[string]any{
			"emailAddress": graphEmailAddress{Address: addr},
			"type":         "required",
		})
	}

	payload := map[string]any{
		"subject": input.Subject,
		"start":   DateTimeZone{DateTime: input.Start, TimeZone: timeZone},
		"end":     DateTimeZone{DateTime: input.End, TimeZone: timeZone},
		"body":    graphItemBody{ContentType: "Text", Content: input.Body},
	}
	if len(attendees) > 0 {
		payload["attendees"] = attendees
	}

	var created graphEvent
	path := fmt.Sprintf("/users/%s/events", url.PathEscape(userID))
	if err := c.do(ctx, "createEvent", http.MethodPost, path, nil, payload, &created); err != nil {
		return nil, err
	}
	event := toEvent(created)
	return &event, nil
}

// GetMailboxSettings reads the user's mailbox settings.
func (c *Client) GetMailboxSettings(ctx context.Context, userID string) (*MailboxSettings, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}

	var settings MailboxSettings
	path := fmt.Sprintf("/users/%s/mailboxSettings", url.PathEscape(userID))
	if err := c.do(ctx, "getMailboxSettings", http.MethodGet, path, nil, nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateMailboxSettings applies a partial update to the user's mailbox
// settings. Empty input fields are left untouched.
func (c *Client) UpdateMailboxSettings(ctx context.Context, userID string, input SettingsInput) (*MailboxSettings, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}

	payload := map[string]any{}
	if input.TimeZone != "" {
		payload["timeZone"] = input.TimeZone
	}
	if input.AutoReplyStatus != "" || input.AutoReplyMessage != "" {
		payload["automaticRepliesSetting"] = AutomaticRepliesSetting{
			Status:               input.AutoReplyStatus,
			ExternalReplyMessage: input.AutoReplyMessage,
		}
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("at least one setting to update is required")
	}

	var settings MailboxSettings
	path := fmt.Sprintf("/users/%s/mailboxSettings", url.PathEscape(userID))
	if err := c.do(ctx, "updateMailboxSettings", http.MethodPatch, path, nil, payload, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// CreateForwardingRule creates an inbox rule that forwards matching
// messages. senderContains optionally restricts the rule to senders whose
// address contains one of the given substrings.
func (c *Client) CreateForwardingRule(ctx context.Context, userID string, forwardTo, senderContains []string) (*MessageRule, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	if len(forwardTo) == 0 {
		return nil, fmt.Errorf("at least one forwarding address is required")
	}

	payload := map[string]any{
		"displayName": "Mailbox assistant forwarding rule",
		"sequence":    1,
		"isEnabled":   true,
		"actions": map[string]any{
			"forwardTo": toRecipients(forwardTo),
		},
	}
	if len(senderContains) > 0 {
		payload["conditions"] = map[string]any{
			"senderContains": senderContains,
		}
	}

	var rule MessageRule
	path := fmt.Sprintf("/users/%s/mailFolders/inbox/messageRules", url.PathEscape(userID))
	if err := c.do(ctx, "createForwardingRule", http.MethodPost, path, nil, payload, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// bodyType normalizes the content type for a message body.
func bodyType(t string) string {
	if strings.EqualFold(t, "HTML") {
		return "HTML"
	}
	return "Text"
}
