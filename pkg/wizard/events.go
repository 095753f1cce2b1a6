package wizard

// Event is an input from the rendering layer. Renderers never mutate the
// stores directly; every change goes through Session.Dispatch.
type Event interface {
	eventName() string
}

// EditEvent sets the value of the named field.
type EditEvent struct {
	Name  string
	Value any
}

// NextEvent requests the following step.
type NextEvent struct{}

// BackEvent requests the previous step.
type BackEvent struct{}

// SubmitEvent requests submission from the final step.
type SubmitEvent struct{}

func (EditEvent) eventName() string   { return "edit" }
func (NextEvent) eventName() string   { return "next" }
func (BackEvent) eventName() string   { return "back" }
func (SubmitEvent) eventName() string { return "submit" }

// Result is what Dispatch hands back: the view after the event and, for a
// successful submit, the submission.
type Result struct {
	View       View
	Submission *Submission
}

// Submission is the collected name to value mapping of every field active at
// submission time. Radio groups without a selection are omitted.
type Submission struct {
	ApplicationID string
	Category      string
	Values        map[string]any
}
