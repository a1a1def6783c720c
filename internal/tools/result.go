package tools

import "encoding/json"

// Result is the uniform envelope a tool invocation produces for the
// model. Success carries a payload; failure carries a message the model
// can act on.
type Result struct {
	Success bool   `json:"success"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a successful payload.
func OK(payload any) Result {
	return Result{Success: true, Payload: payload}
}

// Fail wraps a failure message.
func Fail(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Encode renders the result as the JSON content of a tool turn. Encoding
// cannot fail for the payloads tools produce; a marshal error degrades to
// a plain failure envelope.
func (r Result) Encode() string {
	data, err := json.Marshal(r)
	if err != nil {
		return `{"success":false,"error":"failed to encode tool result"}`
	}
	return string(data)
}
