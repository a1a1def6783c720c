package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_AppendOnly(t *testing.T) {
	conv := NewConversation()
	assert.Equal(t, 0, conv.Len())

	_, ok := conv.Last()
	assert.False(t, ok)

	conv.Append(Turn{Role: RoleUser, Content: "hello"})
	conv.Append(
		Turn{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "c1", Name: "lookup"}}},
		Turn{Role: RoleTool, ToolCallID: "c1", ToolName: "lookup", Content: `{"success":true}`},
	)

	require.Equal(t, 3, conv.Len())

	last, ok := conv.Last()
	require.True(t, ok)
	assert.Equal(t, RoleTool, last.Role)
}

func TestConversation_TurnsReturnsCopy(t *testing.T) {
	conv := NewConversation()
	conv.Append(Turn{Role: RoleUser, Content: "original"})

	turns := conv.Turns()
	turns[0].Content = "mutated"

	fresh := conv.Turns()
	assert.Equal(t, "original", fresh[0].Content)
}
