package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	inputErr     error
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) assertDrained(t *testing.T) {
	t.Helper()
	if s.inputPos != len(s.inputs) || s.selectPos != len(s.selectIdx) ||
		s.confirmPos != len(s.confirm) || s.textPos != len(s.textAreas) {
		t.Fatalf("unused script: inputs %d/%d selects %d/%d confirms %d/%d textareas %d/%d",
			s.inputPos, len(s.inputs), s.selectPos, len(s.selectIdx),
			s.confirmPos, len(s.confirm), s.textPos, len(s.textAreas))
	}
}

func TestRun_WorkersCompensation(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs: []string{
			"Ada Lovelace", "Owner", "555-1234", "5551234567",
			"Analytical Engines", "123456789", "2", "CA",
			"Clinic", "Two weeks",
		},
		confirm:   []bool{false, true, true},
		selectIdx: []int{0, 0, 0, 1, 0},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	app := testsupport.MustLoadApplication(t, testsupport.WorkersCompensation)
	session, err := wizard.New(app)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	out, err := r.Run(context.Background(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	driver.assertDrained(t)

	want := wizard.Submission{
		ApplicationID: "app",
		Category:      "workers-compensation",
		Values: map[string]any{
			"fullname":              "Ada Lovelace",
			"role":                  "Owner",
			"phone":                 "5551234567",
			"company-name":          "Analytical Engines",
			"fein":                  "123456789",
			"number-of-locations":   "2",
			"states":                "CA",
			"work-injury":           "Clinic",
			"medical-insurance":     false,
			"retirement-pension":    true,
			"paid-vacation":         true,
			"paid-vacation-details": "Two weeks",
			"pay":                   "Insurance",
		},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}

	found := false
	for _, msg := range driver.infoMessages {
		if msg == "! Phone: Must be a valid phone number" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected phone error to be reported, got %v", driver.infoMessages)
	}
	if driver.infoMessages[0] != "(1/4) Who is the primary contact for this policy?" {
		t.Fatalf("unexpected header %q", driver.infoMessages[0])
	}

	radio := driver.selects[3]
	if radio.DefaultIndex != 0 || len(radio.Options) != 2 {
		t.Fatalf("expected pay select defaulting to Newfront, got %+v", radio)
	}
	if diff := cmp.Diff([]string{ActionSubmit, ActionBack}, driver.selects[4].Options); diff != "" {
		t.Fatalf("final navigation mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_BackNavigationRepromptsAndHidesInactiveFields(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs: []string{
			"bad", "sec@example.com", "5551234567", "10",
			"sec@example.com", "5551234567", "10",
		},
		confirm:   []bool{true, true},
		textAreas: []string{"Locked cage"},
		selectIdx: []int{0, 1, 1, 0, 0, 0},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	app := testsupport.MustLoadApplication(t, testsupport.CyberInsurance)
	session, err := wizard.New(app)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	out, err := r.Run(context.Background(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	driver.assertDrained(t)

	want := map[string]any{
		"email":   "sec@example.com",
		"phone":   "5551234567",
		"records": "10",
		"mfa":     true,
		"hosting": "cloud",
	}
	if diff := cmp.Diff(want, out.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	// Second visit to the hosting prompt starts on the stored selection.
	if got := driver.selects[4].DefaultIndex; got != 1 {
		t.Fatalf("expected on-prem preselected on return, got %d", got)
	}
}

func TestRun_DisabledFailingFieldBlocks(t *testing.T) {
	t.Parallel()

	app := testsupport.MustParseApplication(t, `{
		"id": "app", "category": "farm-insurance", "title": "Farm",
		"steps": [
			{"id": "one", "title": "One", "fields": [
				{"id": "acres", "kind": "text", "type": "number", "name": "acres", "label": "Acres", "required": true, "disabled": true}
			]},
			{"id": "two", "title": "Two", "fields": []}
		]}`)
	session, err := wizard.New(app)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	driver := &stubDriver{selectIdx: []int{0}}
	r, _ := New(WithPromptDriver(driver))

	if _, err := r.Run(context.Background(), session); !errors.Is(err, ErrStepBlocked) {
		t.Fatalf("expected ErrStepBlocked, got %v", err)
	}
	if session.StepIndex() != 0 {
		t.Fatalf("expected session to stay on the first step")
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	r, _ := New(WithPromptDriver(&stubDriver{inputErr: ErrAborted}))
	if _, err := r.Run(context.Background(), nil); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}

	app := testsupport.MustLoadApplication(t, testsupport.WorkersCompensation)
	session, _ := wizard.New(app)
	if _, err := r.Run(context.Background(), session); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx, session); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCollect_EncodesTransformedSubmission(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs:    []string{"sec@example.com", "5551234567", "0"},
		confirm:   []bool{false},
		selectIdx: []int{0, 0, 0},
	}
	r, err := New(
		WithPromptDriver(driver),
		WithOutputFormat(submission.FormatPretty),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			delete(values, "phone")
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	app := testsupport.MustLoadApplication(t, testsupport.CyberInsurance)
	out, err := r.Collect(context.Background(), app)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := "email=sec@example.com\nhosting=cloud\nmfa=false\nrecords=0\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_TextSnapshot(t *testing.T) {
	t.Parallel()

	app := testsupport.MustLoadApplication(t, testsupport.CyberInsurance)
	session, _ := wizard.New(app)
	_ = session.Edit("email", "nope")

	r, _ := New(WithPromptDriver(&stubDriver{}))
	out, err := r.Render(context.Background(), session.View(), render.RenderOptions{
		Errors:     map[string][]string{"phone": {"Already registered"}},
		FormErrors: []string{"Backend unavailable"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"Cyber insurance application",
		"Step 1 of 2: Security contact",
		"Who should we reach when an incident is reported?",
		"! Backend unavailable",
		"  Email *: nope",
		"    ! Must be a valid email address",
		"  On-call phone: ",
		"    ! Already registered",
		"[Next]",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if r.Name() != "text" {
		t.Fatalf("unexpected name %q", r.Name())
	}
}
