// Package validation checks one field's value against its declared rules.
// Validation is pure: it never touches the value or error stores, and the
// same (field, value) pair always yields the same message.
package validation

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// RequiredMessage is reported for an empty required text field.
const RequiredMessage = "This field is required"

var (
	emailPattern = regexp.MustCompile(`^[^\n\r\x{2028}\x{2029}]+@[^\n\r\x{2028}\x{2029}]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Lookup exposes stored values by field name.
type Lookup interface {
	Get(name string) (any, bool)
}

// UnreachableError is the panic value raised when a field kind or rule type
// outside the closed schema set reaches the engine. It signals a schema and
// engine mismatch and must not be recovered as a validation outcome.
type UnreachableError struct {
	What  string
	Value any
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("validation: unreachable %s %#v", e.What, e.Value)
}

// Validate returns the message for the first failed check, or "" when the
// value passes. Only text fields are checked: a required text field whose
// string form is empty fails before any rule runs, then rules run in order
// and the first failure wins. Checkbox and radio fields always pass, even
// when marked required.
func Validate(field schema.Field, value any) string {
	switch f := field.(type) {
	case schema.TextField:
		return validateText(f, value)
	case schema.CheckboxField, schema.RadioField:
		return ""
	default:
		panic(&UnreachableError{What: "field kind", Value: field})
	}
}

// ValidateAll validates every field against values, keyed by field name.
// Passing fields map to "".
func ValidateAll(fields []schema.Field, values Lookup) map[string]string {
	results := make(map[string]string, len(fields))
	for _, field := range fields {
		name := field.Base().Name
		var value any
		if values != nil {
			value, _ = values.Get(name)
		}
		message := Validate(field, value)
		if prev, seen := results[name]; seen && prev != "" {
			continue
		}
		results[name] = message
	}
	return results
}

// Failed reports whether any result carries a message.
func Failed(results map[string]string) bool {
	for _, message := range results {
		if message != "" {
			return true
		}
	}
	return false
}

// Matches reports whether text satisfies rule.
func Matches(rule schema.Rule, text string) bool {
	switch rule.Type {
	case schema.RuleEmail:
		return emailPattern.MatchString(text)
	case schema.RulePhone:
		return phonePattern.MatchString(text)
	default:
		panic(&UnreachableError{What: "rule type", Value: rule.Type})
	}
}

func validateText(field schema.TextField, value any) string {
	text := Stringify(value)
	if field.Required && len(text) == 0 {
		return RequiredMessage
	}
	for _, rule := range field.Rules {
		if !Matches(rule, text) {
			return rule.Error
		}
	}
	return ""
}

// Stringify renders a stored value the way rules see it: nil is empty,
// numbers drop trailing zeros and booleans read "true" or "false".
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
