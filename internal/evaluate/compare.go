package evaluate

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/June01/ToolUniverse/pkg/types"
)

// ValueMismatch records one argument whose predicted value disagrees
// with the reference value.
type ValueMismatch struct {
	Argument  string
	Predicted any
	Reference any
}

func (m ValueMismatch) String() string {
	return fmt.Sprintf("(%s: %v != %v)", m.Argument, m.Predicted, m.Reference)
}

// CompareCalls checks a predicted call against a reference call. With
// compareArguments the key sets must match exactly (both directions of
// the symmetric difference are reported); with compareValues every key
// present in predicted is compared by normalized deep equality and all
// mismatches are reported together.
//
// The value pass iterates predicted's keys only, so when
// compareArguments is disabled a reference-only key goes unreported.
// That asymmetry is inherited behavior and deliberately kept.
func CompareCalls(pred, ref types.FunctionCall, compareArguments, compareValues bool) types.Verdict {
	if pred.Name != ref.Name {
		return types.Invalid(ReasonNamesDiffer)
	}

	if compareArguments {
		missingInPred, missingInRef := keySetDiff(pred.Arguments, ref.Arguments)
		if len(missingInPred) > 0 || len(missingInRef) > 0 {
			return types.Invalid(fmt.Sprintf(
				"Argument keys do not match. Missing in predicted: %v, Missing in ground truth: %v",
				missingInPred, missingInRef))
		}
	}

	if compareValues {
		var mismatches []ValueMismatch
		for _, key := range sortedKeys(pred.Arguments) {
			refVal, ok := ref.Arguments[key]
			if !ok {
				// Predicted-only key: nothing to match against.
				mismatches = append(mismatches, ValueMismatch{key, pred.Arguments[key], nil})
				continue
			}
			if !equalValues(pred.Arguments[key], refVal) {
				mismatches = append(mismatches, ValueMismatch{key, pred.Arguments[key], refVal})
			}
		}
		if len(mismatches) > 0 {
			return types.Invalid(fmt.Sprintf("Argument values do not match: %v", mismatches))
		}
	}

	return types.Valid(ReasonCallsMatch)
}

// keySetDiff partitions the symmetric difference of two argument maps:
// keys only in b (missing from predicted) and keys only in a (missing
// from the reference). Results are sorted for stable reasons.
func keySetDiff(a, b map[string]any) (onlyInB, onlyInA []string) {
	for k := range b {
		if _, ok := a[k]; !ok {
			onlyInB = append(onlyInB, k)
		}
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			onlyInA = append(onlyInA, k)
		}
	}
	sort.Strings(onlyInB)
	sort.Strings(onlyInA)
	return onlyInB, onlyInA
}

// equalValues compares two argument values. Numbers compare
// numerically regardless of concrete representation (json.Number, int,
// float64), so a call decoded from text matches a hand-built reference.
// Sequences and mappings recurse; everything else uses DeepEqual.
func equalValues(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}

	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValues(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bVal, ok := bv[k]
			if !ok || !equalValues(v, bVal) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}

// asFloat widens any numeric representation to float64. Booleans are
// not numbers here.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
