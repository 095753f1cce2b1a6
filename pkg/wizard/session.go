// Package wizard drives a user through a schema application step by step.
//
// A Session owns the value store, the error store and the current step index.
// It is single-threaded: each operation computes its results first and then
// applies them, so a failed Next never leaves a half-advanced session behind.
package wizard

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/store"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/visibility"
)

// Session is one walk through an application. It is not safe for concurrent
// use; renderers must run each event to completion before the next.
type Session struct {
	app       *schema.Application
	values    *store.Values
	errors    *store.Errors
	index     int
	submitted bool
	result    *Submission

	evaluator visibility.Evaluator
	logger    *slog.Logger
	observers []Observer
	hooks     Hooks
}

// New starts a session on the first step with values seeded from the
// application defaults.
func New(app *schema.Application, opts ...Option) (*Session, error) {
	if app == nil {
		return nil, ErrNilApplication
	}
	s := &Session{
		app:       app,
		values:    store.Initialize(app),
		errors:    store.NewErrors(),
		evaluator: visibility.DependencyEvaluator{},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = s.logger.With("application", app.ID())
	s.enter(DirectionStart)
	return s, nil
}

// Application returns the schema the session walks.
func (s *Session) Application() *schema.Application { return s.app }

// StepIndex returns the zero-based current step.
func (s *Session) StepIndex() int { return s.index }

// Submitted reports whether the session reached its terminal state.
func (s *Session) Submitted() bool { return s.submitted }

// Value returns the stored value for name.
func (s *Session) Value(name string) (any, bool) { return s.values.Get(name) }

// Error returns the current message for name, or "".
func (s *Session) Error(name string) string { return s.errors.Get(name) }

// Values returns a copy of the value store.
func (s *Session) Values() map[string]any { return s.values.Snapshot() }

// Errors returns a copy of the error store.
func (s *Session) Errors() map[string]string { return s.errors.Snapshot() }

// Submission returns the collected payload once the session is submitted.
func (s *Session) Submission() (Submission, bool) {
	if s.result == nil {
		return Submission{}, false
	}
	return cloneSubmission(*s.result), true
}

// IsActive reports whether field is live against the current values.
func (s *Session) IsActive(field schema.Field) bool {
	return s.evaluator.IsActive(field, s.values)
}

// ActiveFields returns the active fields of the current step in order.
func (s *Session) ActiveFields() []schema.Field {
	step, _ := s.app.Step(s.index)
	return visibility.ActiveFields(s.evaluator, step.Fields, s.values)
}

// Edit stores value under name and re-validates the owning field. Only that
// field's error entry changes. The value must fit the field kind: text
// fields take strings or numbers, checkboxes take booleans and radio groups
// take one of their member values.
func (s *Session) Edit(name string, value any) error {
	if s.submitted {
		return ErrSubmitted
	}
	fields := s.app.FieldsByName(name)
	if len(fields) == 0 {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	normalized, err := coerce(fields, value)
	if err != nil {
		return fmt.Errorf("%w for %q: %v", ErrInvalidValue, name, err)
	}

	message := validation.Validate(fields[0], normalized)
	s.values.Set(name, normalized)
	s.errors.Set(name, message)

	s.logger.Debug("field edited", "field", name, "valid", message == "")
	s.notify()
	return nil
}

// Next validates the active fields of the current step and advances when
// they all pass. On failure the step stays put and a *StepError is returned.
func (s *Session) Next() error {
	if s.submitted {
		return ErrSubmitted
	}
	if s.index >= s.app.StepCount()-1 {
		return ErrNoNextStep
	}
	if err := s.checkStep(); err != nil {
		return err
	}

	s.leave(DirectionForward)
	s.index++
	s.enter(DirectionForward)
	s.notify()
	return nil
}

// Back moves to the previous step. It never validates.
func (s *Session) Back() error {
	if s.submitted {
		return ErrSubmitted
	}
	if s.index == 0 {
		return ErrNoPreviousStep
	}

	s.leave(DirectionBack)
	s.index--
	s.enter(DirectionBack)
	s.notify()
	return nil
}

// Submit validates the final step and, when it passes, moves the session to
// its terminal state and returns the active values across every step.
func (s *Session) Submit() (Submission, error) {
	if s.submitted {
		return Submission{}, ErrSubmitted
	}
	if s.index != s.app.StepCount()-1 {
		return Submission{}, ErrNotFinalStep
	}
	if err := s.checkStep(); err != nil {
		return Submission{}, err
	}

	submission := Submission{
		ApplicationID: s.app.ID(),
		Category:      string(s.app.Category()),
		Values:        s.collect(),
	}
	s.result = &submission
	s.submitted = true

	s.logger.Info("application submitted", "category", submission.Category, "fields", len(submission.Values))
	if s.hooks.OnSubmit != nil {
		s.hooks.OnSubmit(cloneSubmission(submission))
	}
	s.notify()
	return cloneSubmission(submission), nil
}

// Dispatch routes a renderer event to the matching operation. The returned
// Result carries the view after the event, including when validation blocked
// it; contract violations return a zero Result.
func (s *Session) Dispatch(event Event) (Result, error) {
	var (
		submission *Submission
		err        error
	)
	switch ev := event.(type) {
	case EditEvent:
		err = s.Edit(ev.Name, ev.Value)
	case NextEvent:
		err = s.Next()
	case BackEvent:
		err = s.Back()
	case SubmitEvent:
		var out Submission
		out, err = s.Submit()
		if err == nil {
			submission = &out
		}
	default:
		return Result{}, fmt.Errorf("%w %T", ErrUnknownEvent, event)
	}
	if err != nil && !isStepError(err) {
		return Result{}, err
	}
	return Result{View: s.View(), Submission: submission}, err
}

// View builds a snapshot of the current step.
func (s *Session) View() View {
	step, _ := s.app.Step(s.index)
	last := s.app.StepCount() - 1

	active := visibility.ActiveFields(s.evaluator, step.Fields, s.values)
	fields := make([]FieldView, 0, len(active))
	for _, field := range active {
		name := field.Base().Name
		value, _ := s.values.Get(name)
		fv := FieldView{Field: field, Value: value, Error: s.errors.Get(name)}
		if radio, ok := field.(schema.RadioField); ok {
			fv.Selected = value == radio.Value
		}
		fields = append(fields, fv)
	}

	return View{
		ApplicationID: s.app.ID(),
		Category:      s.app.Category(),
		Title:         s.app.Title(),
		StepIndex:     s.index,
		StepCount:     s.app.StepCount(),
		Step:          StepView{ID: step.ID, Title: step.Title, Description: step.Description},
		Fields:        fields,
		CanBack:       !s.submitted && s.index > 0,
		CanNext:       !s.submitted && s.index < last,
		CanSubmit:     !s.submitted && s.index == last,
		Submitted:     s.submitted,
	}
}

func (s *Session) checkStep() error {
	step, _ := s.app.Step(s.index)
	active := visibility.ActiveFields(s.evaluator, step.Fields, s.values)
	results := validation.ValidateAll(active, s.values)
	s.errors.Apply(results)
	if !validation.Failed(results) {
		return nil
	}

	failures := make(map[string]string)
	for name, message := range results {
		if message != "" {
			failures[name] = message
		}
	}
	s.logger.Warn("step blocked by validation", "step", step.ID, "failures", len(failures))
	if s.hooks.OnValidationFailed != nil {
		s.hooks.OnValidationFailed(ValidationEvent{
			ApplicationID: s.app.ID(),
			StepIndex:     s.index,
			StepID:        step.ID,
			Failures:      copyMessages(failures),
		})
	}
	s.notify()
	return &StepError{StepIndex: s.index, StepID: step.ID, Fields: failures}
}

func (s *Session) collect() map[string]any {
	out := make(map[string]any)
	for _, field := range s.app.Fields() {
		if !s.evaluator.IsActive(field, s.values) {
			continue
		}
		name := field.Base().Name
		if value, ok := s.values.Get(name); ok {
			out[name] = value
		}
	}
	return out
}

func (s *Session) enter(dir Direction) {
	step, _ := s.app.Step(s.index)
	s.logger.Debug("step entered", "step", step.ID, "index", s.index, "direction", dir)
	if s.hooks.OnStepEnter != nil {
		s.hooks.OnStepEnter(StepEvent{ApplicationID: s.app.ID(), StepIndex: s.index, StepID: step.ID, Direction: dir})
	}
}

func (s *Session) leave(dir Direction) {
	if s.hooks.OnStepLeave == nil {
		return
	}
	step, _ := s.app.Step(s.index)
	s.hooks.OnStepLeave(StepEvent{ApplicationID: s.app.ID(), StepIndex: s.index, StepID: step.ID, Direction: dir})
}

func (s *Session) notify() {
	if len(s.observers) == 0 {
		return
	}
	view := s.View()
	for _, observer := range s.observers {
		observer.Observe(view)
	}
}

func isStepError(err error) bool {
	_, ok := err.(*StepError)
	return ok
}

func copyMessages(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneSubmission(in Submission) Submission {
	values := make(map[string]any, len(in.Values))
	for k, v := range in.Values {
		values[k] = v
	}
	in.Values = values
	return in
}
