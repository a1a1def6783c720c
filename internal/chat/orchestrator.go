package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/TSGCFO/functions-openai/internal/instrumentation"
	"github.com/TSGCFO/functions-openai/internal/logging"
	"github.com/TSGCFO/functions-openai/internal/tools"
)

// DefaultMaxIterations bounds model calls per user exchange.
const DefaultMaxIterations = 10

// loopState tracks where an exchange is in its model/tool cycle.
type loopState int

const (
	stateAwaitingModel loopState = iota
	stateAwaitingToolDispatch
	stateAnswered
	stateFailed
)

func (s loopState) String() string {
	switch s {
	case stateAwaitingModel:
		return "awaiting_model"
	case stateAwaitingToolDispatch:
		return "awaiting_tool_dispatch"
	case stateAnswered:
		return "answered"
	case stateFailed:
		return "failed"
	}
	return "unknown"
}

// Config holds orchestrator settings.
type Config struct {
	// MaxIterations bounds model calls per exchange. Zero means
	// DefaultMaxIterations.
	MaxIterations int

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
}

// Orchestrator runs the model/tool loop over a conversation: it sends the
// conversation to the model, dispatches any requested tool calls, feeds
// the results back, and repeats until the model answers in plain text or
// the iteration budget runs out.
type Orchestrator struct {
	completer Completer
	registry  *tools.Registry
	maxIter   int
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
	session   string
}

// Session returns the correlation ID attached to this orchestrator's logs.
func (o *Orchestrator) Session() string {
	return o.session
}

// New creates an orchestrator.
func New(completer Completer, registry *tools.Registry, cfg Config) *Orchestrator {
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	session := uuid.NewString()
	return &Orchestrator{
		completer: completer,
		registry:  registry,
		maxIter:   maxIter,
		logger:    logging.WithSession(logger, session),
		metrics:   cfg.Metrics,
		session:   session,
	}
}

// RunTurn appends the user's message to the conversation and drives the
// loop until the model produces a final answer. On failure the
// conversation keeps every turn recorded before the failure, and the
// next RunTurn continues from there.
func (o *Orchestrator) RunTurn(ctx context.Context, conv *Conversation, userMessage string) (string, error) {
	conv.Append(Turn{Role: RoleUser, Content: userMessage})

	state := stateAwaitingModel
	for iteration := 1; iteration <= o.maxIter; iteration++ {
		o.logger.DebugContext(ctx, "requesting completion",
			slog.Int(logging.KeyIteration, iteration),
			slog.String(logging.KeyState, state.String()))

		start := time.Now()
		turn, err := o.completer.Complete(ctx, conv.Turns(), o.registry.Definitions())
		if err != nil {
			state = stateFailed
			o.metrics.RecordModelRequest(ctx, logging.StatusError, time.Since(start))
			o.logger.ErrorContext(ctx, "model request failed",
				slog.Int(logging.KeyIteration, iteration),
				slog.String(logging.KeyState, state.String()),
				logging.Err(err))
			return "", &ModelEndpointError{Err: err}
		}
		o.metrics.RecordModelRequest(ctx, logging.StatusSuccess, time.Since(start))

		conv.Append(turn)

		if len(turn.ToolCalls) == 0 {
			state = stateAnswered
			o.logger.InfoContext(ctx, "exchange answered",
				slog.Int(logging.KeyIteration, iteration),
				slog.String(logging.KeyState, state.String()))
			return turn.Content, nil
		}

		state = stateAwaitingToolDispatch
		for _, call := range turn.ToolCalls {
			conv.Append(o.dispatch(ctx, call))
		}
		state = stateAwaitingModel
	}

	o.logger.ErrorContext(ctx, "iteration budget exhausted",
		slog.Int(logging.KeyIteration, o.maxIter),
		slog.String(logging.KeyState, stateFailed.String()))
	return "", fmt.Errorf("%w (limit %d)", ErrMaxIterations, o.maxIter)
}

// dispatch runs one tool call and produces its tool turn. Validation
// failures, unknown tools and mailbox errors all become failure
// envelopes fed back to the model; only the envelope shape is uniform.
func (o *Orchestrator) dispatch(ctx context.Context, call ToolCall) Turn {
	logger := logging.WithTool(o.logger, call.Name)
	start := time.Now()

	result := o.invoke(ctx, call)

	status := logging.StatusSuccess
	if !result.Success {
		status = logging.StatusError
	}
	o.metrics.RecordToolDispatch(ctx, call.Name, status, time.Since(start))
	logger.InfoContext(ctx, "tool dispatched",
		logging.Status(status),
		slog.Duration(logging.KeyDuration, time.Since(start)))

	return Turn{
		Role:       RoleTool,
		Content:    result.Encode(),
		ToolCallID: call.ID,
		ToolName:   call.Name,
	}
}

func (o *Orchestrator) invoke(ctx context.Context, call ToolCall) tools.Result {
	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return tools.Fail(fmt.Errorf("arguments are not a valid JSON object: %w", err))
		}
	}

	// Unknown tools, schema violations and mailbox errors all flow back
	// to the model as failure envelopes; the loop itself never stops for
	// a tool-level failure.
	payload, err := o.registry.Dispatch(ctx, call.Name, args)
	if err != nil {
		return tools.Fail(err)
	}
	return tools.OK(payload)
}
