// Package tui walks a wizard session in the terminal. Each active field of
// the current step is prompted in order, invalid answers are reported and
// asked again, and a navigation prompt moves between steps.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Navigation labels offered after a step's fields are answered.
const (
	ActionNext   = "Next"
	ActionBack   = "Back"
	ActionSubmit = "Submit"
)

// Renderer drives sessions through a PromptDriver. It also satisfies
// render.Renderer with a plain-text snapshot of a view.
type Renderer struct {
	driver            PromptDriver
	outputFormat      submission.Format
	submitTransformer submission.Transformer
	theme             Theme
	logger            *slog.Logger
	sessionOptions    []wizard.Option
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: submission.FormatJSON,
		theme:        DefaultTheme,
		logger:       logging.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "text"
}

// ContentType reports the type of Render output.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes a text snapshot of the current step: each active field with
// its value and error, then the available navigation.
func (r *Renderer) Render(ctx context.Context, view wizard.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", view.Title)
	fmt.Fprintf(&b, "Step %d of %d: %s\n", view.StepIndex+1, view.StepCount, view.Step.Title)
	if view.Step.Description != "" {
		fmt.Fprintf(&b, "%s\n", view.Step.Description)
	}
	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, message)
	}

	for _, group := range view.Groups() {
		first := group[0]
		base := first.Field.Base()
		label := fieldLabel(first.Field)
		value := validation.Stringify(first.Value)
		if _, isRadio := first.Field.(schema.RadioField); isRadio {
			label = groupTitle(group)
			value = selectedLabel(group)
		}
		if base.Required {
			label += " *"
		}
		fmt.Fprintf(&b, "  %s: %s\n", label, value)

		errs := []string{}
		if first.Error != "" {
			errs = append(errs, first.Error)
		}
		for _, message := range render.MergeFormErrors(errs, opts.Errors[base.Name]...) {
			fmt.Fprintf(&b, "    %s%s\n", r.theme.ErrorPrefix, message)
		}
	}

	if actions := navigation(view); len(actions) > 0 {
		fmt.Fprintf(&b, "[%s]\n", strings.Join(actions, "] ["))
	}
	if view.Submitted {
		b.WriteString("Submitted.\n")
	}
	return []byte(b.String()), nil
}

// NewSession starts a session for app with the options given through
// WithSessionOptions.
func (r *Renderer) NewSession(app *schema.Application) (*wizard.Session, error) {
	return wizard.New(app, r.sessionOptions...)
}

// Collect runs a fresh session for app and returns the serialized submission.
func (r *Renderer) Collect(ctx context.Context, app *schema.Application) ([]byte, error) {
	session, err := r.NewSession(app)
	if err != nil {
		return nil, err
	}
	result, err := r.Run(ctx, session)
	if err != nil {
		return nil, err
	}

	values := result.Values
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return submission.Encode(values, r.outputFormat)
}

// Run prompts until session is submitted or the driver fails. Driver errors,
// including ErrAborted, end the run; contract violations from the session are
// returned as-is.
func (r *Renderer) Run(ctx context.Context, session *wizard.Session) (wizard.Submission, error) {
	if ctx == nil {
		return wizard.Submission{}, errors.New("tui: context is required")
	}
	if session == nil {
		return wizard.Submission{}, ErrNoSession
	}
	if out, done := session.Submission(); done {
		return out, nil
	}

	entered := true
	for {
		if err := ctx.Err(); err != nil {
			return wizard.Submission{}, err
		}
		if entered {
			if err := r.announce(ctx, session.View()); err != nil {
				return wizard.Submission{}, err
			}
			if err := r.promptStep(ctx, session, nil); err != nil {
				return wizard.Submission{}, err
			}
		}

		before := session.StepIndex()
		out, done, err := r.navigate(ctx, session)
		if err != nil {
			return wizard.Submission{}, err
		}
		if done {
			return out, nil
		}
		entered = session.StepIndex() != before
	}
}

func (r *Renderer) announce(ctx context.Context, view wizard.View) error {
	header := fmt.Sprintf("%s(%d/%d) %s", r.theme.InfoPrefix, view.StepIndex+1, view.StepCount, view.Step.Title)
	if err := r.driver.Info(ctx, header); err != nil {
		return err
	}
	if view.Step.Description != "" {
		return r.driver.Info(ctx, r.theme.InfoPrefix+view.Step.Description)
	}
	return nil
}

// promptStep asks every active, enabled field of the current step once. A
// field that becomes active after an earlier answer is picked up on the same
// pass. When only is non-nil, just those names are asked.
func (r *Renderer) promptStep(ctx context.Context, session *wizard.Session, only map[string]bool) error {
	asked := make(map[string]bool)
	for {
		group := nextGroup(session.View(), asked, only)
		if group == nil {
			return nil
		}
		name := group[0].Name()
		asked[name] = true
		if err := r.promptGroup(ctx, session, group); err != nil {
			return err
		}
	}
}

func nextGroup(view wizard.View, asked, only map[string]bool) []wizard.FieldView {
	for _, group := range view.Groups() {
		name := group[0].Name()
		if asked[name] || (only != nil && !only[name]) {
			continue
		}
		if enabledMembers(group) == nil {
			continue
		}
		return group
	}
	return nil
}

func (r *Renderer) promptGroup(ctx context.Context, session *wizard.Session, group []wizard.FieldView) error {
	for {
		value, err := r.ask(ctx, group)
		if err != nil {
			return err
		}

		name := group[0].Name()
		if _, err := session.Dispatch(wizard.EditEvent{Name: name, Value: value}); err != nil {
			return err
		}
		message := session.Error(name)
		if message == "" {
			return nil
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, fieldLabel(group[0].Field), message)); err != nil {
			return err
		}
		r.logger.Debug("answer rejected", "field", name)
		group = refreshGroup(session.View(), name, group)
	}
}

func (r *Renderer) ask(ctx context.Context, group []wizard.FieldView) (any, error) {
	first := group[0]
	base := first.Field.Base()
	message := r.theme.PromptPrefix + fieldLabel(first.Field)

	switch f := first.Field.(type) {
	case schema.TextField:
		current := validation.Stringify(first.Value)
		if f.Type == schema.TextTypeTextarea {
			return r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: base.Description})
		}
		help := base.Description
		if help == "" {
			help = f.Placeholder
		}
		return r.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: help})
	case schema.CheckboxField:
		current, _ := first.Value.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: current, Help: base.Description})
	case schema.RadioField:
		members := enabledMembers(group)
		options := make([]string, 0, len(members))
		defaultIndex := 0
		for i, member := range members {
			options = append(options, member.Field.Base().Label)
			if member.Selected {
				defaultIndex = i
			}
		}
		for {
			idx, err := r.driver.Select(ctx, SelectConfig{
				Message:      r.theme.PromptPrefix + groupTitle(group),
				Options:      options,
				DefaultIndex: defaultIndex,
				Help:         base.Description,
			})
			if err != nil {
				return nil, err
			}
			if idx >= 0 && idx < len(members) {
				return members[idx].Field.(schema.RadioField).Value, nil
			}
			if err := r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s selection", r.theme.ErrorPrefix, base.Name)); err != nil {
				return nil, err
			}
		}
	default:
		panic(&validation.UnreachableError{What: "field kind", Value: first.Field})
	}
}

// navigate offers the step actions and applies the chosen one. It reports
// done once the session is submitted.
func (r *Renderer) navigate(ctx context.Context, session *wizard.Session) (wizard.Submission, bool, error) {
	view := session.View()
	actions := navigation(view)

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: r.theme.PromptPrefix + "Continue",
		Options: actions,
	})
	if err != nil {
		return wizard.Submission{}, false, err
	}
	if idx < 0 || idx >= len(actions) {
		return wizard.Submission{}, false, r.driver.Info(ctx, r.theme.ErrorPrefix+"Invalid selection")
	}

	var event wizard.Event
	switch actions[idx] {
	case ActionNext:
		event = wizard.NextEvent{}
	case ActionBack:
		event = wizard.BackEvent{}
	default:
		event = wizard.SubmitEvent{}
	}

	result, err := session.Dispatch(event)
	var stepErr *wizard.StepError
	switch {
	case errors.As(err, &stepErr):
		return wizard.Submission{}, false, r.reportBlocked(ctx, session, stepErr)
	case err != nil:
		return wizard.Submission{}, false, err
	}
	if result.Submission != nil {
		r.logger.Info("terminal session submitted", "application", result.Submission.ApplicationID)
		return *result.Submission, true, nil
	}
	return wizard.Submission{}, false, nil
}

// reportBlocked lists the failing fields and asks them again before the
// navigation prompt is offered once more.
func (r *Renderer) reportBlocked(ctx context.Context, session *wizard.Session, stepErr *wizard.StepError) error {
	only := make(map[string]bool, len(stepErr.Fields))
	for _, name := range stepErr.FieldNames() {
		only[name] = true
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, name, stepErr.Fields[name])); err != nil {
			return err
		}
	}
	if nextGroup(session.View(), nil, only) == nil {
		return fmt.Errorf("%w: %s", ErrStepBlocked, strings.Join(stepErr.FieldNames(), ", "))
	}
	return r.promptStep(ctx, session, only)
}

func navigation(view wizard.View) []string {
	var actions []string
	if view.CanNext {
		actions = append(actions, ActionNext)
	}
	if view.CanSubmit {
		actions = append(actions, ActionSubmit)
	}
	if view.CanBack {
		actions = append(actions, ActionBack)
	}
	return actions
}

func enabledMembers(group []wizard.FieldView) []wizard.FieldView {
	var out []wizard.FieldView
	for _, member := range group {
		if !member.Field.Base().Disabled {
			out = append(out, member)
		}
	}
	return out
}

func refreshGroup(view wizard.View, name string, fallback []wizard.FieldView) []wizard.FieldView {
	for _, group := range view.Groups() {
		if group[0].Name() == name {
			return group
		}
	}
	return fallback
}

func fieldLabel(field schema.Field) string {
	base := field.Base()
	if label := strings.TrimSpace(base.Label); label != "" {
		return label
	}
	return base.Name
}

func groupTitle(group []wizard.FieldView) string {
	for _, member := range group {
		if description := strings.TrimSpace(member.Field.Base().Description); description != "" {
			return description
		}
	}
	return group[0].Name()
}

func selectedLabel(group []wizard.FieldView) string {
	for _, member := range group {
		if member.Selected {
			return member.Field.Base().Label
		}
	}
	return ""
}
