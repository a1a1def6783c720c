package tools

import (
	"fmt"
	"sort"
	"strings"
)

// Schema is the JSON Schema subset used to describe tool parameters:
// an object with typed properties and a required list. It serializes to
// standard JSON Schema for the model endpoint.
type Schema struct {
	Type       string               `json:"type"`
	Properties map[string]*Property `json:"properties,omitempty"`
	Required   []string             `json:"required,omitempty"`
}

// Property describes a single parameter.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Items       *Property `json:"items,omitempty"`
}

// ValidationError reports arguments that do not satisfy a tool's schema.
type ValidationError struct {
	Tool    string
	Reasons []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Reasons, "; "))
}

// Validate checks args against the schema. All violations are collected
// so the model sees every problem at once.
func (s *Schema) Validate(args map[string]any) error {
	var reasons []string

	for _, name := range s.Required {
		if _, ok := args[name]; !ok {
			reasons = append(reasons, fmt.Sprintf("missing required parameter %q", name))
		}
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop, ok := s.Properties[name]
		if !ok {
			reasons = append(reasons, fmt.Sprintf("unexpected parameter %q", name))
			continue
		}
		if reason := checkType(name, prop, args[name]); reason != "" {
			reasons = append(reasons, reason)
		}
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// checkType verifies one value against its declared property type.
// JSON numbers always decode as float64, so "integer" additionally
// requires a whole value.
func checkType(name string, prop *Property, value any) string {
	switch prop.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("parameter %q must be a string", name)
		}
		if len(prop.Enum) > 0 && !containsString(prop.Enum, s) {
			return fmt.Sprintf("parameter %q must be one of [%s]", name, strings.Join(prop.Enum, ", "))
		}
	case "number":
		if _, ok := value.(float64); !ok {
			return fmt.Sprintf("parameter %q must be a number", name)
		}
	case "integer":
		f, ok := value.(float64)
		if !ok || f != float64(int64(f)) {
			return fmt.Sprintf("parameter %q must be an integer", name)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("parameter %q must be a boolean", name)
		}
	case "object":
		if _, ok := value.(map[string]any); !ok {
			return fmt.Sprintf("parameter %q must be an object", name)
		}
	case "array":
		items, ok := value.([]any)
		if !ok {
			return fmt.Sprintf("parameter %q must be an array", name)
		}
		if prop.Items != nil {
			for i, item := range items {
				if reason := checkType(fmt.Sprintf("%s[%d]", name, i), prop.Items, item); reason != "" {
					return reason
				}
			}
		}
	}
	return ""
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
