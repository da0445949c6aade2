// Package types defines the shared data model for function-call
// extraction and validation: the call shape the extractor produces, the
// tool declaration shape the validator consumes, and the verdict every
// check returns.
package types

// FunctionCall is a structured tool invocation recovered from model
// output. Arguments values carry whatever encoding/json produced for
// them (string, json.Number, bool, []any, map[string]any, nil).
type FunctionCall struct {
	Name      string         `json:"name" yaml:"name"`
	Arguments map[string]any `json:"arguments" yaml:"arguments"`
}

// Property describes a single declared argument of a tool.
type Property struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// Parameter is the parameter block of a tool declaration.
type Parameter struct {
	Type       string              `json:"type,omitempty" yaml:"type,omitempty"`
	Properties map[string]Property `json:"properties" yaml:"properties"`
}

// ToolDefinition is the declared signature of a tool. Validation reads
// Name and Parameter.Properties; the rest is carried for the registry
// and the CLI.
type ToolDefinition struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Parameter   Parameter `json:"parameter" yaml:"parameter"`
}

// Verdict is the outcome of a validation or comparison. Reason is
// populated on success too, so callers can log or assert exact wording.
type Verdict struct {
	OK     bool
	Reason string
}

// Valid builds a passing verdict.
func Valid(reason string) Verdict {
	return Verdict{OK: true, Reason: reason}
}

// Invalid builds a failing verdict.
func Invalid(reason string) Verdict {
	return Verdict{OK: false, Reason: reason}
}
