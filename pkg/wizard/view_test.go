package wizard_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestView_ReflectsCurrentStep(t *testing.T) {
	t.Parallel()

	session := newWorkersComp(t)
	view := session.View()

	if view.Title == "" || view.StepCount != 4 || view.StepIndex != 0 {
		t.Fatalf("unexpected header: %+v", view)
	}
	if view.CanBack || !view.CanNext || view.CanSubmit {
		t.Fatalf("unexpected affordances on first step: back=%v next=%v submit=%v", view.CanBack, view.CanNext, view.CanSubmit)
	}

	names := make([]string, 0, len(view.Fields))
	for _, field := range view.Fields {
		names = append(names, field.Name())
	}
	if diff := cmp.Diff([]string{"fullname", "role", "phone"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestView_HidesInactiveFieldsAndGroupsRadios(t *testing.T) {
	t.Parallel()

	session := newWorkersComp(t)
	walkToPay(t, session, false)
	if err := session.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}

	view := session.View()
	for _, field := range view.Fields {
		if field.Name() == "paid-vacation-details" {
			t.Fatalf("expected inactive details hidden")
		}
	}

	mustEdit(t, session, "paid-vacation", true)
	found := false
	for _, field := range session.View().Fields {
		if field.Name() == "paid-vacation-details" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected details visible once paid-vacation is true")
	}

	if err := session.Next(); err != nil {
		t.Fatalf("next with optional details: %v", err)
	}
	groups := session.View().Groups()
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Fatalf("expected one radio group with two members, got %+v", groups)
	}
	if !groups[0][0].Selected || groups[0][1].Selected {
		t.Fatalf("expected Newfront selected only")
	}
}

func TestView_IsDetachedFromSession(t *testing.T) {
	t.Parallel()

	session := newWorkersComp(t)
	before := session.View()
	mustEdit(t, session, "fullname", "Ada")

	if before.Fields[0].Value != "" {
		t.Fatalf("expected earlier view unchanged, got %#v", before.Fields[0].Value)
	}
	if got := session.View().Fields[0].Value; got != "Ada" {
		t.Fatalf("expected fresh view to carry edit, got %#v", got)
	}
}
