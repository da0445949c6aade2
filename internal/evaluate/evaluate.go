// Package evaluate checks extracted function calls against tool
// declarations and against ground-truth calls. Every check is a total
// function returning a verdict; nothing here returns an error.
package evaluate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/June01/ToolUniverse/pkg/types"
)

// Reason strings asserted by calibration data; keep wording stable.
const (
	ReasonValid        = "Function call is valid."
	ReasonNameMismatch = "Function name does not match."
	ReasonCallsMatch   = "Function calls match."
	ReasonNamesDiffer  = "Function names do not match."
	ReasonToolNotFound = "Tool not found."
)

// The six declarable parameter types.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

var supportedTypes = map[string]bool{
	TypeString:  true,
	TypeInteger: true,
	TypeNumber:  true,
	TypeBoolean: true,
	TypeArray:   true,
	TypeObject:  true,
}

// TypeMismatch records one argument whose runtime kind disagrees with
// its declaration.
type TypeMismatch struct {
	Argument string
	Expected string
	Actual   string
}

func (m TypeMismatch) String() string {
	return fmt.Sprintf("(%s: expected %s, got %s)", m.Argument, m.Expected, m.Actual)
}

// ToolSource looks up a tool declaration by name. The registry
// implements it; tests stub it.
type ToolSource interface {
	GetToolByName(name string) (types.ToolDefinition, bool)
}

// EvaluateCall validates a call against a declared signature. Checks
// run in order and short-circuit: name match, required-argument
// presence (all missing names listed), unknown-argument rejection (all
// invalid names listed), then per-argument type conformance. Type
// mismatches aggregate across all arguments before failing; an
// unsupported declared type is a schema authoring error and fails
// immediately.
func EvaluateCall(def types.ToolDefinition, call types.FunctionCall) types.Verdict {
	if def.Name != call.Name {
		return types.Invalid(ReasonNameMismatch)
	}

	properties := def.Parameter.Properties

	var missing []string
	for name, prop := range properties {
		if !prop.Required {
			continue
		}
		if _, ok := call.Arguments[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return types.Invalid(fmt.Sprintf("Missing required parameters: %v", missing))
	}

	var invalid []string
	for name := range call.Arguments {
		if _, ok := properties[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return types.Invalid(fmt.Sprintf("Invalid parameters provided: %v", invalid))
	}

	var mismatches []TypeMismatch
	for _, name := range sortedKeys(call.Arguments) {
		expected := properties[name].Type
		if !supportedTypes[expected] {
			return types.Invalid(fmt.Sprintf("Unsupported parameter type: %s", expected))
		}
		value := call.Arguments[name]
		if !conforms(expected, value) {
			mismatches = append(mismatches, TypeMismatch{
				Argument: name,
				Expected: expected,
				Actual:   runtimeKind(value),
			})
		}
	}
	if len(mismatches) > 0 {
		return types.Invalid(fmt.Sprintf("Type mismatches: %v", mismatches))
	}

	return types.Valid(ReasonValid)
}

// EvaluateFromRegistry resolves the call's tool by name before
// delegating to EvaluateCall.
func EvaluateFromRegistry(src ToolSource, call types.FunctionCall) types.Verdict {
	def, ok := src.GetToolByName(call.Name)
	if !ok {
		return types.Invalid(ReasonToolNotFound)
	}
	return EvaluateCall(def, call)
}

// conforms reports whether a runtime value satisfies a declared type.
// "number" accepts integers; the other five map one-to-one.
func conforms(declared string, value any) bool {
	kind := runtimeKind(value)
	if declared == TypeNumber {
		return kind == TypeNumber || kind == TypeInteger
	}
	return kind == declared
}

// runtimeKind classifies a decoded argument value into the declarable
// type names. json.Number values count as integer when they parse as
// one, so a tool declaring "integer" rejects "1.5" but accepts "1".
func runtimeKind(value any) string {
	switch v := value.(type) {
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return TypeInteger
		}
		return TypeNumber
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInteger
	case float32, float64:
		return TypeNumber
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	case nil:
		return "null"
	}
	// Hand-built calls may carry concrete slice or map types.
	switch reflect.TypeOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Map:
		return TypeObject
	}
	return fmt.Sprintf("%T", value)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
