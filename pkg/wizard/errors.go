package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrContract marks caller contract violations. They are developer errors:
// a correctly driven session never produces one.
var ErrContract = errors.New("wizard: contract violation")

var (
	ErrSubmitted      = fmt.Errorf("%w: session already submitted", ErrContract)
	ErrUnknownField   = fmt.Errorf("%w: unknown field", ErrContract)
	ErrInvalidValue   = fmt.Errorf("%w: invalid value", ErrContract)
	ErrNoNextStep     = fmt.Errorf("%w: no next step", ErrContract)
	ErrNoPreviousStep = fmt.Errorf("%w: no previous step", ErrContract)
	ErrNotFinalStep   = fmt.Errorf("%w: submit outside the final step", ErrContract)
	ErrUnknownEvent   = fmt.Errorf("%w: unknown event", ErrContract)
)

// ErrNilApplication is returned by New when no application is supplied.
var ErrNilApplication = errors.New("wizard: application is nil")

// ErrStepInvalid reports a step that failed validation. It is the expected,
// recoverable outcome of Next or Submit; the per-field messages live in the
// session's error store.
var ErrStepInvalid = errors.New("wizard: step has invalid fields")

// StepError carries the failing fields of a blocked Next or Submit.
type StepError struct {
	StepIndex int
	StepID    string
	Fields    map[string]string
}

func (e *StepError) Error() string {
	names := e.FieldNames()
	return fmt.Sprintf("%s: step %q (%s)", ErrStepInvalid, e.StepID, strings.Join(names, ", "))
}

// Unwrap exposes ErrStepInvalid to errors.Is.
func (e *StepError) Unwrap() error {
	return ErrStepInvalid
}

// FieldNames lists the failing field names in sorted order.
func (e *StepError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
