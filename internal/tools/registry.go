package tools

import (
	"context"
	"errors"
	"fmt"
)

// Handler executes a tool call with validated arguments and returns the
// payload to hand back to the model.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Definition describes a tool exposed to the model.
type Definition struct {
	Name        string
	Description string
	Schema      *Schema
}

// ErrUnknownTool is the sentinel every UnknownToolError unwraps to.
var ErrUnknownTool = errors.New("unknown tool")

// UnknownToolError is returned when the model requests a tool that was
// never registered.
type UnknownToolError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// Unwrap makes errors.Is(err, ErrUnknownTool) work.
func (e *UnknownToolError) Unwrap() error {
	return ErrUnknownTool
}

type entry struct {
	def     Definition
	handler Handler
}

// Registry holds the tools available to the assistant. Registration order
// is preserved so the model always sees a stable tool list.
type Registry struct {
	names   []string
	entries map[string]entry
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool to the registry. Registering the same name twice
// replaces the handler but keeps the original position.
func (r *Registry) Register(def Definition, handler Handler) {
	if _, ok := r.entries[def.Name]; !ok {
		r.names = append(r.names, def.Name)
	}
	r.entries[def.Name] = entry{def: def, handler: handler}
}

// Resolve returns a tool's definition and handler by name.
func (r *Registry) Resolve(name string) (Definition, Handler, error) {
	e, ok := r.entries[name]
	if !ok {
		return Definition{}, nil, &UnknownToolError{Name: name}
	}
	return e.def, e.handler, nil
}

// Definitions returns all tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.names))
	for _, name := range r.names {
		defs = append(defs, r.entries[name].def)
	}
	return defs
}

// Dispatch validates args against the tool's schema and invokes its
// handler. An unknown name or a schema violation is reported without
// touching the handler.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	if e.def.Schema != nil {
		if err := e.def.Schema.Validate(args); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Tool = name
			}
			return nil, err
		}
	}
	return e.handler(ctx, args)
}
