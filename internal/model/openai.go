package model

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/TSGCFO/functions-openai/internal/chat"
	"github.com/TSGCFO/functions-openai/internal/tools"
)

// Config holds the settings for the model endpoint client.
type Config struct {
	APIKey string

	// BaseURL overrides the endpoint, for compatible servers and tests.
	BaseURL string

	// Model is the model name, e.g. "gpt-4o".
	Model string

	// SystemPrompt is prepended to every request as the system turn.
	SystemPrompt string
}

// Client is a chat.Completer backed by an OpenAI-compatible
// chat-completions endpoint with function calling.
type Client struct {
	api          *openai.Client
	model        string
	systemPrompt string
}

// New creates a model endpoint client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:          openai.NewClientWithConfig(clientConfig),
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
	}, nil
}

// Complete sends the conversation and tool catalog to the endpoint and
// returns the model's next turn.
func (c *Client) Complete(ctx context.Context, turns []chat.Turn, defs []tools.Definition) (chat.Turn, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: c.toMessages(turns),
		Tools:    toTools(defs),
	})
	if err != nil {
		return chat.Turn{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return chat.Turn{}, fmt.Errorf("chat completion returned no choices")
	}
	return fromMessage(resp.Choices[0].Message), nil
}

// toMessages converts conversation turns to wire messages, with the
// system prompt always first.
func (c *Client) toMessages(turns []chat.Turn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	if c.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: c.systemPrompt,
		})
	}
	for _, turn := range turns {
		messages = append(messages, toMessage(turn))
	}
	return messages
}

func toMessage(turn chat.Turn) openai.ChatCompletionMessage {
	msg := openai.ChatCompletionMessage{
		Role:    string(turn.Role),
		Content: turn.Content,
	}
	if turn.Role == chat.RoleTool {
		msg.ToolCallID = turn.ToolCallID
		msg.Name = turn.ToolName
	}
	for _, call := range turn.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
			ID:   call.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	return msg
}

func fromMessage(msg openai.ChatCompletionMessage) chat.Turn {
	turn := chat.Turn{
		Role:    chat.RoleAssistant,
		Content: msg.Content,
	}
	for _, call := range msg.ToolCalls {
		turn.ToolCalls = append(turn.ToolCalls, chat.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return turn
}

func toTools(defs []tools.Definition) []openai.Tool {
	if len(defs) == 0 {
		return nil
	}
	out := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Schema,
			},
		})
	}
	return out
}
