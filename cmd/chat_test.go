package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TSGCFO/functions-openai/internal/chat"
	"github.com/TSGCFO/functions-openai/internal/tools"
)

type cannedCompleter struct {
	content string
}

func (c *cannedCompleter) Complete(ctx context.Context, turns []chat.Turn, defs []tools.Definition) (chat.Turn, error) {
	return chat.Turn{Role: chat.RoleAssistant, Content: c.content}, nil
}

func TestRunREPL_AnswerAndExit(t *testing.T) {
	orchestrator := chat.New(&cannedCompleter{content: "No new mail."}, tools.NewRegistry(), chat.Config{})

	in := strings.NewReader("any new mail?\nexit\n")
	var out strings.Builder

	err := runREPL(context.Background(), orchestrator, in, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Assistant: No new mail.")
}

func TestRunREPL_SkipsBlankLinesAndHandlesEOF(t *testing.T) {
	orchestrator := chat.New(&cannedCompleter{content: "ok"}, tools.NewRegistry(), chat.Config{})

	in := strings.NewReader("\n   \n")
	var out strings.Builder

	err := runREPL(context.Background(), orchestrator, in, &out)
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Assistant:")
}

func TestNewChatCmd_Flags(t *testing.T) {
	cmd := newChatCmd()
	assert.NotNil(t, cmd.Flags().Lookup("debug"))
	assert.NotNil(t, cmd.Flags().Lookup("config"))
	assert.NotNil(t, cmd.Flags().Lookup("model"))
	assert.NotNil(t, cmd.Flags().Lookup("max-iterations"))
}
