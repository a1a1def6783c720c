// Package tools defines the assistant's tool registry: the catalog of
// mailbox operations the model may call, the JSON Schema subset used to
// validate call arguments before any handler runs, and the uniform
// success/failure envelope returned to the model.
//
// Unknown tool names and schema violations never reach a handler; they
// come back as typed errors the orchestrator turns into failure envelopes
// so the model can correct itself.
package tools
