package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TENANT_ID", "tenant")
	t.Setenv("CLIENT_ID", "client")
	t.Setenv("CLIENT_SECRET", "secret")
	t.Setenv("MAILBOX_USER_ID", "alice@example.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "https://graph.microsoft.com/.default", cfg.GraphScope)
	assert.Equal(t, "https://graph.microsoft.com/v1.0", cfg.GraphBaseURL)
	assert.Equal(t, 10, cfg.MaxIterations)
	assert.Equal(t, DefaultSystemPrompt, cfg.SystemPrompt)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("ASSISTANT_MAX_ITERATIONS", "5")
	t.Setenv("ASSISTANT_SYSTEM_PROMPT", "Be terse.")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, "Be terse.", cfg.SystemPrompt)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("TENANT_ID", "")
	t.Setenv("CLIENT_ID", "")
	t.Setenv("CLIENT_SECRET", "")
	t.Setenv("MAILBOX_USER_ID", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.Contains(t, err.Error(), "TENANT_ID")
	assert.Contains(t, err.Error(), "MAILBOX_USER_ID")
}

func TestLoad_ConfigFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: gpt-4-turbo\nmax_iterations: 7\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4-turbo", cfg.Model)
	assert.Equal(t, 7, cfg.MaxIterations)
}

func TestLoad_ConfigFileNotFound(t *testing.T) {
	setRequiredEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate_MaxIterations(t *testing.T) {
	cfg := &Config{
		OpenAIAPIKey:  "k",
		TenantID:      "t",
		ClientID:      "c",
		ClientSecret:  "s",
		MailboxUserID: "u",
		MaxIterations: 0,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max iterations")
}
