package wizard

import (
	"log/slog"

	"github.com/goliatone/go-formwizard/pkg/visibility"
)

// Direction names the movement between steps.
type Direction string

const (
	DirectionStart   Direction = "start"
	DirectionForward Direction = "forward"
	DirectionBack    Direction = "back"
)

// StepEvent describes entering or leaving a step.
type StepEvent struct {
	ApplicationID string
	StepIndex     int
	StepID        string
	Direction     Direction
}

// ValidationEvent reports the fields that blocked Next or Submit.
type ValidationEvent struct {
	ApplicationID string
	StepIndex     int
	StepID        string
	Failures      map[string]string
}

// Hooks are lifecycle callbacks for auditing and metrics. OnStepLeave runs
// while the session is still on the step being left, before the index moves.
// The others run after the change they describe has been applied. Nil
// callbacks are skipped.
type Hooks struct {
	OnStepEnter        func(StepEvent)
	OnStepLeave        func(StepEvent)
	OnValidationFailed func(ValidationEvent)
	OnSubmit           func(Submission)
}

// Merge returns hooks that run h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnStepEnter:        chain(h.OnStepEnter, other.OnStepEnter),
		OnStepLeave:        chain(h.OnStepLeave, other.OnStepLeave),
		OnValidationFailed: chain(h.OnValidationFailed, other.OnValidationFailed),
		OnSubmit:           chain(h.OnSubmit, other.OnSubmit),
	}
}

func chain[T any](first, second func(T)) func(T) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(v T) {
		first(v)
		second(v)
	}
}

// Observer is notified with a fresh View once an operation has completed.
type Observer interface {
	Observe(View)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(View)

// Observe calls fn.
func (fn ObserverFunc) Observe(v View) {
	fn(v)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEvaluator overrides how field activity is resolved.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(s *Session) {
		if eval != nil {
			s.evaluator = eval
		}
	}
}

// WithObserver registers an observer. Observers run in registration order.
func WithObserver(observer Observer) Option {
	return func(s *Session) {
		if observer != nil {
			s.observers = append(s.observers, observer)
		}
	}
}

// WithHooks adds lifecycle hooks, merged after any registered earlier.
func WithHooks(hooks Hooks) Option {
	return func(s *Session) {
		s.hooks = s.hooks.Merge(hooks)
	}
}
