package chat

import (
	"context"

	"github.com/TSGCFO/functions-openai/internal/tools"
)

// Completer produces the model's next turn given the conversation so far
// and the tools available to it. Implementations return either a final
// assistant answer or an assistant turn carrying tool calls.
type Completer interface {
	Complete(ctx context.Context, turns []Turn, defs []tools.Definition) (Turn, error)
}
