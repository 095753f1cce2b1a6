package schema

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDocument    = errors.New("schema: invalid document")
	ErrUnknownCategory    = errors.New("schema: unknown application category")
	ErrNoSteps            = errors.New("schema: application has no steps")
	ErrMissingID          = errors.New("schema: id is required")
	ErrDuplicateStepID    = errors.New("schema: duplicate step id")
	ErrDuplicateFieldID   = errors.New("schema: duplicate field id")
	ErrDuplicateFieldName = errors.New("schema: field name already used by another field")
	ErrDanglingDependency = errors.New("schema: dependsOn references an unknown field")
	ErrMalformedField     = errors.New("schema: malformed field")
	ErrUnknownKind        = errors.New("schema: unknown field kind")
	ErrUnknownTextType    = errors.New("schema: unknown text field type")
	ErrUnknownRule        = errors.New("schema: unknown rule type")
	ErrUnsupportedValue   = errors.New("schema: unsupported value type")
)

// LoadError pins a load failure to a location inside the document, e.g.
// "steps[2].fields[4].dependsOn".
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (at %s)", e.Err.Error(), e.Path)
}

func (e *LoadError) Unwrap() error { return e.Err }

func loadErr(path string, err error) error {
	return &LoadError{Path: path, Err: err}
}

func loadErrf(path string, sentinel error, format string, args ...any) error {
	return &LoadError{Path: path, Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}
