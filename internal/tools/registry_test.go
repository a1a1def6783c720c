package tools

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DefinitionsPreserveOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		r.Register(Definition{Name: name}, func(ctx context.Context, args map[string]any) (any, error) {
			return nil, nil
		})
	}

	defs := r.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "zeta", defs[0].Name)
	assert.Equal(t, "alpha", defs[1].Name)
	assert.Equal(t, "mid", defs[2].Name)
}

func TestRegistry_DispatchUnknownTool(t *testing.T) {
	r := NewRegistry()
	_, err := r.Dispatch(context.Background(), "nope", nil)
	require.Error(t, err)

	var unknown *UnknownToolError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Name)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "known", Description: "a tool"}, func(ctx context.Context, args map[string]any) (any, error) {
		return "ok", nil
	})

	def, handler, err := r.Resolve("known")
	require.NoError(t, err)
	assert.Equal(t, "a tool", def.Description)
	require.NotNil(t, handler)

	payload, err := handler(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", payload)

	_, _, err = r.Resolve("absent")
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestRegistry_DispatchValidatesBeforeHandler(t *testing.T) {
	called := false
	r := NewRegistry()
	r.Register(Definition{
		Name: "strict",
		Schema: &Schema{
			Type:       "object",
			Properties: map[string]*Property{"id": {Type: "string"}},
			Required:   []string{"id"},
		},
	}, func(ctx context.Context, args map[string]any) (any, error) {
		called = true
		return args["id"], nil
	})

	_, err := r.Dispatch(context.Background(), "strict", map[string]any{})
	require.Error(t, err)
	assert.False(t, called, "handler must not run on invalid arguments")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "strict", verr.Tool)

	payload, err := r.Dispatch(context.Background(), "strict", map[string]any{"id": "x"})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "x", payload)
}

func TestRegistry_DispatchPassesHandlerError(t *testing.T) {
	boom := errors.New("mailbox unavailable")
	r := NewRegistry()
	r.Register(Definition{Name: "failing"}, func(ctx context.Context, args map[string]any) (any, error) {
		return nil, fmt.Errorf("op failed: %w", boom)
	})

	_, err := r.Dispatch(context.Background(), "failing", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestResultEncode(t *testing.T) {
	ok := OK(map[string]any{"count": 2}).Encode()
	assert.JSONEq(t, `{"success":true,"payload":{"count":2}}`, ok)

	fail := Fail(errors.New("bad input")).Encode()
	assert.JSONEq(t, `{"success":false,"error":"bad input"}`, fail)
}
