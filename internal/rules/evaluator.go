// Package rules evaluates condition expression trees against a field store.
//
// Evaluation is pure and deterministic: the same expression and field store
// always produce the same boolean. The evaluator never returns an error and
// never panics on malformed input. A leaf that cannot be decided (missing
// field, unknown operator, type-incompatible comparison) evaluates to false
// (fail closed) so that unanswered or misdefined dependencies never unlock a
// section prematurely. Callers that want visibility into degraded leaves can
// supply a DiagnosticFunc.
package rules

import (
	"fmt"

	"github.com/Anujchouhan001/GovernmentScheme/internal/models"
)

// DiagnosticFunc receives a description of a leaf that failed closed for a
// structural reason (not an ordinary false comparison). Used by callers to
// log malformed rule definitions without interrupting evaluation.
type DiagnosticFunc func(cond *models.Condition, reason string)

// Evaluate evaluates the condition against the field store.
// A nil condition is vacuously true (sections without an unlock condition
// are always unlocked).
func Evaluate(cond *models.Condition, fields *models.FieldStore) bool {
	return EvaluateWithDiagnostics(cond, fields, nil)
}

// EvaluateWithDiagnostics is Evaluate with an optional sink for degraded
// leaves. diag may be nil.
func EvaluateWithDiagnostics(cond *models.Condition, fields *models.FieldStore, diag DiagnosticFunc) bool {
	if cond == nil {
		return true
	}
	if cond.All != nil {
		// Empty All is vacuously true. Short-circuit is safe because
		// expressions are side-effect-free.
		for i := range cond.All {
			if !EvaluateWithDiagnostics(&cond.All[i], fields, diag) {
				return false
			}
		}
		return true
	}
	if cond.Any != nil {
		// Empty Any is false: nothing can satisfy it
		for i := range cond.Any {
			if EvaluateWithDiagnostics(&cond.Any[i], fields, diag) {
				return true
			}
		}
		return false
	}
	return evaluateLeaf(cond, fields, diag)
}

// evaluateLeaf compares a single field against the condition value.
//
// A missing field is false for EVERY operator, including not_equals and
// not_in. This is a deliberate fail-closed policy, not an oversight: a
// section gated on "occupation not_equals Farmer" must stay locked until
// occupation has actually been answered.
func evaluateLeaf(cond *models.Condition, fields *models.FieldStore, diag DiagnosticFunc) bool {
	value, ok := fields.Get(cond.Field)
	if !ok {
		return false
	}

	switch cond.Operator {
	case models.OpEquals:
		return valueEquals(value, cond.Value)
	case models.OpNotEquals:
		return !valueEquals(value, cond.Value)
	case models.OpGreaterThan, models.OpGreaterOrEq, models.OpLessThan, models.OpLessOrEq:
		left, leftOK := numericValue(value)
		right, rightOK := numericOperand(cond.Value)
		if !leftOK || !rightOK {
			report(diag, cond, "numeric comparison on non-numeric operand")
			return false
		}
		switch cond.Operator {
		case models.OpGreaterThan:
			return left > right
		case models.OpGreaterOrEq:
			return left >= right
		case models.OpLessThan:
			return left < right
		default:
			return left <= right
		}
	case models.OpIn, models.OpNotIn:
		list, ok := operandList(cond.Value)
		if !ok {
			report(diag, cond, fmt.Sprintf("operator %s requires a list value", cond.Operator))
			return false
		}
		found := false
		for _, item := range list {
			if valueEquals(value, item) {
				found = true
				break
			}
		}
		if cond.Operator == models.OpIn {
			return found
		}
		return !found
	default:
		report(diag, cond, fmt.Sprintf("unknown operator %q", cond.Operator))
		return false
	}
}

func report(diag DiagnosticFunc, cond *models.Condition, reason string) {
	if diag != nil {
		diag(cond, reason)
	}
}

// valueEquals compares a typed field value with an untyped condition operand.
// Numbers compare numerically (so YAML int 18 matches a stored 18.0),
// booleans compare as booleans, everything else compares as strings.
func valueEquals(v models.FieldValue, operand interface{}) bool {
	switch v.Kind {
	case models.KindNumber:
		n, ok := numericOperand(operand)
		return ok && v.Number == n
	case models.KindBool:
		b, ok := operand.(bool)
		return ok && v.Bool == b
	case models.KindText:
		s, ok := operand.(string)
		return ok && v.Text == s
	}
	return false
}

// numericValue extracts a float64 from a field value, failing for non-numbers
func numericValue(v models.FieldValue) (float64, bool) {
	if v.Kind != models.KindNumber {
		return 0, false
	}
	return v.Number, true
}

// numericOperand coerces the numeric types YAML and JSON decoding produce
func numericOperand(operand interface{}) (float64, bool) {
	switch n := operand.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// operandList coerces a condition value into a slice of operands
func operandList(operand interface{}) ([]interface{}, bool) {
	switch l := operand.(type) {
	case []interface{}:
		return l, true
	case []string:
		out := make([]interface{}, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
