package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultSystemPrompt is the instruction text sent to the model as the
// system message. It is configuration data, not code, and can be replaced
// via ASSISTANT_SYSTEM_PROMPT.
const DefaultSystemPrompt = `You are an assistant that manages an Outlook mailbox through Microsoft Graph.

You can list and send emails, manage drafts, list and create calendar events,
read and update mailbox settings, and create forwarding rules, using the tools
provided. Use the tools whenever the user asks about their mailbox; never invent
mailbox contents. When a tool returns an error, explain it in plain language or
retry with corrected arguments.`

// Config holds all runtime configuration for the assistant.
// Credentials are resolved once at startup and injected into the
// Graph and OpenAI clients; nothing is read from the environment later.
type Config struct {
	// OpenAI model endpoint
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string
	SystemPrompt  string

	// Microsoft Graph client-credentials flow
	TenantID     string
	ClientID     string
	ClientSecret string
	GraphScope   string
	GraphBaseURL string

	// MailboxUserID is the mailbox the app-only token operates on.
	// Client-credentials tokens are not tied to a signed-in user, so a
	// target mailbox is always required.
	MailboxUserID string

	// Orchestration
	MaxIterations int

	// Observability
	MetricsEnabled bool
}

// settings maps viper keys to the environment variables they are bound to.
var settings = map[string]string{
	"openai_api_key":  "OPENAI_API_KEY",
	"openai_base_url": "OPENAI_BASE_URL",
	"model":           "OPENAI_MODEL",
	"system_prompt":   "ASSISTANT_SYSTEM_PROMPT",
	"tenant_id":       "TENANT_ID",
	"client_id":       "CLIENT_ID",
	"client_secret":   "CLIENT_SECRET",
	"graph_scope":     "GRAPH_SCOPE",
	"graph_api_base":  "GRAPH_API_BASE",
	"mailbox_user_id": "MAILBOX_USER_ID",
	"max_iterations":  "ASSISTANT_MAX_ITERATIONS",
	"metrics_enabled": "METRICS_ENABLED",
}

// Load reads configuration from the environment and, if path is non-empty,
// from a config file. Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("model", "gpt-4o")
	v.SetDefault("system_prompt", DefaultSystemPrompt)
	v.SetDefault("graph_scope", "https://graph.microsoft.com/.default")
	v.SetDefault("graph_api_base", "https://graph.microsoft.com/v1.0")
	v.SetDefault("max_iterations", 10)
	v.SetDefault("metrics_enabled", false)

	for key, env := range settings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		OpenAIAPIKey:   v.GetString("openai_api_key"),
		OpenAIBaseURL:  v.GetString("openai_base_url"),
		Model:          v.GetString("model"),
		SystemPrompt:   v.GetString("system_prompt"),
		TenantID:       v.GetString("tenant_id"),
		ClientID:       v.GetString("client_id"),
		ClientSecret:   v.GetString("client_secret"),
		GraphScope:     v.GetString("graph_scope"),
		GraphBaseURL:   v.GetString("graph_api_base"),
		MailboxUserID:  v.GetString("mailbox_user_id"),
		MaxIterations:  v.GetInt("max_iterations"),
		MetricsEnabled: v.GetBool("metrics_enabled"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required settings are present.
func (c *Config) Validate() error {
	var missing []string

	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.TenantID == "" {
		missing = append(missing, "TENANT_ID")
	}
	if c.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "CLIENT_SECRET")
	}
	if c.MailboxUserID == "" {
		missing = append(missing, "MAILBOX_USER_ID")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}

	return nil
}
