package wizard

import "github.com/goliatone/go-formwizard/pkg/schema"

// View is a read-only snapshot of a session handed to renderers and
// observers. It is rebuilt after every operation and shares no mutable state
// with the session.
type View struct {
	ApplicationID string
	Category      schema.Category
	Title         string
	StepIndex     int
	StepCount     int
	Step          StepView
	Fields        []FieldView
	CanBack       bool
	CanNext       bool
	CanSubmit     bool
	Submitted     bool
}

// StepView describes the current step.
type StepView struct {
	ID          string
	Title       string
	Description string
}

// FieldView is one active field of the current step with its stored value
// and error message. Radio members report whether they hold the group value.
type FieldView struct {
	Field    schema.Field
	Value    any
	Error    string
	Selected bool
}

// Name returns the field's store key.
func (f FieldView) Name() string {
	if f.Field == nil {
		return ""
	}
	return f.Field.Base().Name
}

// Kind returns the field variant.
func (f FieldView) Kind() schema.Kind {
	if f.Field == nil {
		return ""
	}
	return f.Field.Kind()
}

// HasErrors reports whether any visible field carries a message.
func (v View) HasErrors() bool {
	for _, field := range v.Fields {
		if field.Error != "" {
			return true
		}
	}
	return false
}

// Errors returns the visible messages keyed by field name.
func (v View) Errors() map[string]string {
	out := make(map[string]string)
	for _, field := range v.Fields {
		if field.Error != "" {
			out[field.Name()] = field.Error
		}
	}
	return out
}

// Groups clusters the visible fields by name in first-seen order, so a radio
// group shows up as one entry holding all its active members.
func (v View) Groups() [][]FieldView {
	index := make(map[string]int)
	var groups [][]FieldView
	for _, field := range v.Fields {
		name := field.Name()
		if i, ok := index[name]; ok {
			groups[i] = append(groups[i], field)
			continue
		}
		index[name] = len(groups)
		groups = append(groups, []FieldView{field})
	}
	return groups
}
