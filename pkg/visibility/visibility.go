package visibility

import "github.com/goliatone/go-formwizard/pkg/schema"

// Lookup exposes stored values by field name. *store.Values satisfies it.
type Lookup interface {
	Get(name string) (any, bool)
}

// Map adapts a plain map into a Lookup.
type Map map[string]any

// Get returns the value stored under name.
func (m Map) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

// Evaluator decides whether a field is live given the current values.
// Inactive fields are skipped by validation and left out of submissions.
type Evaluator interface {
	IsActive(field schema.Field, values Lookup) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(field schema.Field, values Lookup) bool

// IsActive delegates to the underlying function.
func (fn EvaluatorFunc) IsActive(field schema.Field, values Lookup) bool {
	return fn(field, values)
}

// DependencyEvaluator resolves activity from a field's dependsOn descriptor.
type DependencyEvaluator struct{}

// IsActive implements Evaluator.
func (DependencyEvaluator) IsActive(field schema.Field, values Lookup) bool {
	return IsActive(field, values)
}

// IsActive reports whether field is live. A field without dependsOn is always
// active; otherwise the referenced value must be present and strictly equal
// to the declared one, so "true" never matches true and "1" never matches 1.
func IsActive(field schema.Field, values Lookup) bool {
	if field == nil {
		return false
	}
	dep := field.Base().DependsOn
	if dep == nil {
		return true
	}
	if values == nil {
		return false
	}
	current, ok := values.Get(dep.FieldName)
	if !ok {
		return false
	}
	return StrictEqual(current, dep.FieldValue)
}

// ActiveFields filters fields down to the active ones, keeping their order.
// A nil evaluator uses DependencyEvaluator.
func ActiveFields(eval Evaluator, fields []schema.Field, values Lookup) []schema.Field {
	if eval == nil {
		eval = DependencyEvaluator{}
	}
	out := make([]schema.Field, 0, len(fields))
	for _, field := range fields {
		if eval.IsActive(field, values) {
			out = append(out, field)
		}
	}
	return out
}

// StrictEqual compares two stored scalars by dynamic type and value.
// Non-scalar operands never compare equal.
func StrictEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	default:
		return false
	}
}
