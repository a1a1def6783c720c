package model

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TSGCFO/functions-openai/internal/chat"
	"github.com/TSGCFO/functions-openai/internal/tools"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Model: "gpt-4o"})
	require.Error(t, err)

	_, err = New(Config{APIKey: "sk-test"})
	require.Error(t, err)

	client, err := New(Config{APIKey: "sk-test", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestToMessages_SystemPromptFirst(t *testing.T) {
	client, err := New(Config{APIKey: "sk-test", Model: "gpt-4o", SystemPrompt: "Be helpful."})
	require.NoError(t, err)

	messages := client.toMessages([]chat.Turn{
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, ToolCalls: []chat.ToolCall{
			{ID: "c1", Name: "listEmails", Arguments: `{"top":5}`},
		}},
		{Role: chat.RoleTool, ToolCallID: "c1", ToolName: "listEmails", Content: `{"success":true}`},
	})

	require.Len(t, messages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, messages[0].Role)
	assert.Equal(t, "Be helpful.", messages[0].Content)

	require.Len(t, messages[2].ToolCalls, 1)
	assert.Equal(t, "listEmails", messages[2].ToolCalls[0].Function.Name)
	assert.Equal(t, openai.ToolTypeFunction, messages[2].ToolCalls[0].Type)

	assert.Equal(t, "c1", messages[3].ToolCallID)
	assert.Equal(t, "listEmails", messages[3].Name)
}

func TestFromMessage_ToolCalls(t *testing.T) {
	turn := fromMessage(openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{
			{ID: "c1", Type: openai.ToolTypeFunction, Function: openai.FunctionCall{
				Name:      "sendEmail",
				Arguments: `{"subject":"hi"}`,
			}},
		},
	})

	assert.Equal(t, chat.RoleAssistant, turn.Role)
	require.Len(t, turn.ToolCalls, 1)
	assert.Equal(t, "sendEmail", turn.ToolCalls[0].Name)
	assert.Equal(t, `{"subject":"hi"}`, turn.ToolCalls[0].Arguments)
}

func TestComplete_SendsToolCatalog(t *testing.T) {
	var received openai.ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"done"}}]}`)
	}))
	defer server.Close()

	client, err := New(Config{
		APIKey:  "sk-test",
		BaseURL: server.URL,
		Model:   "gpt-4o",
	})
	require.NoError(t, err)

	defs := []tools.Definition{{
		Name:        "listEmails",
		Description: "List recent emails.",
		Schema: &tools.Schema{
			Type:       "object",
			Properties: map[string]*tools.Property{"top": {Type: "integer"}},
		},
	}}

	turn, err := client.Complete(context.Background(),
		[]chat.Turn{{Role: chat.RoleUser, Content: "mail?"}}, defs)
	require.NoError(t, err)
	assert.Equal(t, "done", turn.Content)

	assert.Equal(t, "gpt-4o", received.Model)
	require.Len(t, received.Tools, 1)
	assert.Equal(t, "listEmails", received.Tools[0].Function.Name)
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	client, err := New(Config{APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-4o"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(),
		[]chat.Turn{{Role: chat.RoleUser, Content: "hi"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
