package chat

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	// ID correlates the call with its result turn.
	ID string

	// Name is the registered tool name.
	Name string

	// Arguments is the raw JSON argument object as produced by the model.
	Arguments string
}

// Turn is one entry in a conversation.
type Turn struct {
	Role    Role
	Content string

	// ToolCalls is set on assistant turns that request tool invocations.
	ToolCalls []ToolCall

	// ToolCallID and ToolName are set on tool turns and identify which
	// call the content answers.
	ToolCallID string
	ToolName   string
}

// Conversation is an append-only sequence of turns. Earlier turns are
// never mutated; failed exchanges keep everything up to the failure.
type Conversation struct {
	turns []Turn
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds turns to the end of the conversation.
func (c *Conversation) Append(turns ...Turn) {
	c.turns = append(c.turns, turns...)
}

// Turns returns a copy of the conversation's turns.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	return len(c.turns)
}

// Last returns the most recent turn, or false when the conversation is
// empty.
func (c *Conversation) Last() (Turn, bool) {
	if len(c.turns) == 0 {
		return Turn{}, false
	}
	return c.turns[len(c.turns)-1], true
}
