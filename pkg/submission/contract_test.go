package submission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestContractSchema_DescribesFields(t *testing.T) {
	t.Parallel()

	app := testsupport.MustLoadApplication(t, testsupport.CyberInsurance)
	contract := submission.ContractSchema(app)

	if err := contract.Validate(context.Background()); err != nil {
		t.Fatalf("contract schema invalid: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "mfa", "phone", "records"}, contract.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	hosting := contract.Properties["hosting"].Value
	if diff := cmp.Diff([]any{"cloud", "on-prem"}, hosting.Enum); diff != "" {
		t.Fatalf("hosting enum mismatch (-want +got):\n%s", diff)
	}
	if len(contract.Properties["email"].Value.OneOf) != 2 {
		t.Fatalf("expected text fields to accept string or number")
	}
}

func TestVerify_AcceptsSessionSubmission(t *testing.T) {
	t.Parallel()

	app := testsupport.MustLoadApplication(t, testsupport.WorkersCompensation)
	session, err := wizard.New(app)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	steps := []map[string]any{
		{"fullname": "Ada", "role": "Owner", "phone": "5551234567"},
		{"company-name": "Engines", "fein": "1", "number-of-locations": 3, "states": "CA"},
		{"work-injury": "None", "paid-vacation": true, "paid-vacation-details": "Two weeks"},
	}
	for _, edits := range steps {
		for name, value := range edits {
			if err := session.Edit(name, value); err != nil {
				t.Fatalf("edit %s: %v", name, err)
			}
		}
		if err := session.Next(); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
	out, err := session.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := submission.Verify(app, out.Values); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestVerify_RejectsMismatches(t *testing.T) {
	t.Parallel()

	app := testsupport.MustLoadApplication(t, testsupport.CyberInsurance)
	base := func() map[string]any {
		return map[string]any{"email": "a@b", "phone": "5551234567", "records": float64(0), "mfa": true}
	}

	if err := submission.Verify(app, base()); err != nil {
		t.Fatalf("expected minimal payload to pass: %v", err)
	}

	cases := map[string]func(map[string]any){
		"missing required":  func(v map[string]any) { delete(v, "email") },
		"wrong type":        func(v map[string]any) { v["mfa"] = "yes" },
		"radio outside set": func(v map[string]any) { v["hosting"] = "colo" },
		"unknown field":     func(v map[string]any) { v["extra"] = "x" },
	}
	for name, mutate := range cases {
		values := base()
		mutate(values)
		if err := submission.Verify(app, values); !errors.Is(err, submission.ErrContractMismatch) {
			t.Fatalf("%s: expected ErrContractMismatch, got %v", name, err)
		}
	}
}
