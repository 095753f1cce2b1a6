// Package store holds the per-session value and error maps keyed by field
// name. Neither store validates; the wizard decides what goes in.
package store

import (
	"sort"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Values maps field names to their current value (string, float64 or bool).
type Values struct {
	values map[string]any
}

// NewValues returns an empty store.
func NewValues() *Values {
	return &Values{values: make(map[string]any)}
}

// Initialize seeds a store from the application defaults, walking steps and
// fields in declaration order: text fields take their default or "",
// checkboxes their default or false, and each radio group the value of its
// first checked member. Groups with no checked member stay unset.
func Initialize(app *schema.Application) *Values {
	s := NewValues()
	if app == nil {
		return s
	}

	for _, field := range app.Fields() {
		switch f := field.(type) {
		case schema.TextField:
			if f.Default == nil {
				s.values[f.Name] = ""
			} else {
				s.values[f.Name] = f.Default
			}
		case schema.CheckboxField:
			s.values[f.Name] = f.Default != nil && *f.Default
		case schema.RadioField:
			if _, selected := s.values[f.Name]; !selected && f.Checked {
				s.values[f.Name] = f.Value
			}
		}
	}
	return s
}

// Get returns the value stored under name.
func (s *Values) Get(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

// Set stores value under name without any validation.
func (s *Values) Set(name string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[name] = value
}

// Len reports the number of stored names.
func (s *Values) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Names lists the stored names in sorted order.
func (s *Values) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the stored values.
func (s *Values) Snapshot() map[string]any {
	out := make(map[string]any, s.Len())
	if s == nil {
		return out
	}
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
