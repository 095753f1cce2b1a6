package schema

// Category is the closed set of application families the engine serves.
type Category string

const (
	CategoryWorkersCompensation Category = "workers-compensation"
	CategoryCyberInsurance      Category = "cyber-insurance"
	CategoryFarmInsurance       Category = "farm-insurance"
)

// Valid reports whether the category belongs to the known set.
func (c Category) Valid() bool {
	switch c {
	case CategoryWorkersCompensation, CategoryCyberInsurance, CategoryFarmInsurance:
		return true
	default:
		return false
	}
}

// Kind tags the Field variants.
type Kind string

const (
	KindText     Kind = "text"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
)

// TextType is the input subtype of a TextField.
type TextType string

const (
	TextTypeText     TextType = "text"
	TextTypeTextarea TextType = "textarea"
	TextTypeNumber   TextType = "number"
)

// RuleType identifies a declarative field rule.
type RuleType string

const (
	RuleEmail RuleType = "email"
	RulePhone RuleType = "phone"
)

// Rule is a regex-shaped constraint with the message shown when it fails.
type Rule struct {
	Type  RuleType `json:"type"`
	Error string   `json:"error"`
}

// Dependency makes a field active only while the field called FieldName
// holds FieldValue. FieldValue is normalized (see NormalizeValue).
type Dependency struct {
	FieldName  string `json:"fieldName"`
	FieldValue any    `json:"fieldValue"`
}

// Common carries the attributes shared by every field variant.
type Common struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Description string      `json:"description,omitempty"`
	Required    bool        `json:"required,omitempty"`
	Disabled    bool        `json:"disabled,omitempty"`
	DependsOn   *Dependency `json:"dependsOn,omitempty"`
}

// Base returns the shared attributes.
func (c Common) Base() Common { return c }

// Field is the sealed union of TextField, CheckboxField and RadioField.
// Switch on the concrete type; any other implementation is unreachable.
type Field interface {
	Base() Common
	Kind() Kind
	sealed()
}

// TextField is a free-form input. Default is nil, a string or a float64.
type TextField struct {
	Common
	Type        TextType `json:"type"`
	Placeholder string   `json:"placeholder,omitempty"`
	Default     any      `json:"value,omitempty"`
	Rules       []Rule   `json:"rules,omitempty"`
}

func (TextField) Kind() Kind { return KindText }

func (TextField) sealed() {}

// CheckboxField is a boolean toggle.
type CheckboxField struct {
	Common
	Default *bool `json:"value,omitempty"`
}

func (CheckboxField) Kind() Kind { return KindCheckbox }

func (CheckboxField) sealed() {}

// RadioField is one option of the radio group identified by its Name.
type RadioField struct {
	Common
	Value   string `json:"value"`
	Checked bool   `json:"checked,omitempty"`
}

func (RadioField) Kind() Kind { return KindRadio }

func (RadioField) sealed() {}

// Step is an ordered group of fields validated together.
type Step struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// Application is the immutable root of a loaded schema. Build one with Load,
// Parse, LoadFile or LoadFS.
type Application struct {
	id       string
	category Category
	title    string
	steps    []Step
	byName   map[string][]Field
}

func (a *Application) ID() string         { return a.id }
func (a *Application) Category() Category { return a.category }
func (a *Application) Title() string      { return a.title }
func (a *Application) StepCount() int     { return len(a.steps) }

// Steps returns a copy of the ordered steps.
func (a *Application) Steps() []Step {
	out := make([]Step, len(a.steps))
	for i, step := range a.steps {
		out[i] = copyStep(step)
	}
	return out
}

// Step returns the step at idx.
func (a *Application) Step(idx int) (Step, bool) {
	if idx < 0 || idx >= len(a.steps) {
		return Step{}, false
	}
	return copyStep(a.steps[idx]), true
}

// Fields lists every field in declaration order, steps first.
func (a *Application) Fields() []Field {
	var out []Field
	for _, step := range a.steps {
		for _, field := range step.Fields {
			out = append(out, copyField(field))
		}
	}
	return out
}

// FieldsByName returns the fields sharing name, in declaration order. Only
// radio groups return more than one field.
func (a *Application) FieldsByName(name string) []Field {
	members := a.byName[name]
	if members == nil {
		return nil
	}
	out := make([]Field, len(members))
	for i, field := range members {
		out[i] = copyField(field)
	}
	return out
}

// HasField reports whether any field is called name.
func (a *Application) HasField(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// RadioGroups maps each radio name to its members in declaration order.
func (a *Application) RadioGroups() map[string][]RadioField {
	groups := make(map[string][]RadioField)
	for _, field := range a.Fields() {
		if radio, ok := field.(RadioField); ok {
			groups[radio.Name] = append(groups[radio.Name], radio)
		}
	}
	return groups
}

func copyStep(step Step) Step {
	fields := make([]Field, len(step.Fields))
	for i, field := range step.Fields {
		fields[i] = copyField(field)
	}
	step.Fields = fields
	return step
}

// copyField detaches the pointer and slice members of field so callers
// cannot reach the application's own storage. Dependency values are scalars.
func copyField(field Field) Field {
	switch f := field.(type) {
	case TextField:
		f.Common = copyCommon(f.Common)
		if f.Rules != nil {
			f.Rules = append([]Rule(nil), f.Rules...)
		}
		return f
	case CheckboxField:
		f.Common = copyCommon(f.Common)
		if f.Default != nil {
			value := *f.Default
			f.Default = &value
		}
		return f
	case RadioField:
		f.Common = copyCommon(f.Common)
		return f
	default:
		return field
	}
}

func copyCommon(c Common) Common {
	if c.DependsOn != nil {
		dep := *c.DependsOn
		c.DependsOn = &dep
	}
	return c
}
