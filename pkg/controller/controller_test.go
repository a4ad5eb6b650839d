package controller_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-formstate/pkg/controller"
	"github.com/goliatone/go-formstate/pkg/lifecycle"
	"github.com/goliatone/go-formstate/pkg/lifecycle/policy"
)

type createdResource struct {
	ID string
}

type serverError struct {
	Status int
}

func newController(opts ...controller.Option[createdResource, serverError]) *controller.Controller[createdResource, serverError] {
	return controller.New(opts...)
}

func TestControllerWalksHappyPath(t *testing.T) {
	ctrl := newController()

	if got := ctrl.Current().Variant(); got != lifecycle.VariantLoading {
		t.Fatalf("initial variant = %s, want Loading", got)
	}

	steps := []struct {
		name string
		run  func() error
		want lifecycle.Variant
	}{
		{name: "loaded", run: ctrl.Loaded, want: lifecycle.VariantLoaded},
		{name: "submit", run: func() error { return ctrl.Submit(0) }, want: lifecycle.VariantSubmitting},
		{name: "progress", run: func() error { return ctrl.Progress(0.5) }, want: lifecycle.VariantSubmitting},
		{name: "success", run: func() error { return ctrl.Success(&createdResource{ID: "a1"}) }, want: lifecycle.VariantSuccess},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if got := ctrl.Current().Variant(); got != step.want {
			t.Fatalf("%s: variant = %s, want %s", step.name, got, step.want)
		}
	}

	payload, ok := ctrl.Current().SuccessResponse()
	if !ok || payload.ID != "a1" {
		t.Fatalf("success payload = %+v, %t", payload, ok)
	}
}

func TestControllerEnforcesPolicy(t *testing.T) {
	ctrl := newController(
		controller.WithPolicy[createdResource, serverError](policy.Default()),
	)

	// Loading -> Submitting is off the default table.
	err := ctrl.Submit(0.5)
	if err == nil {
		t.Fatal("expected denial for Loading -> Submitting")
	}
	if !errors.Is(err, controller.ErrTransitionDenied) {
		t.Fatalf("error %v does not match ErrTransitionDenied", err)
	}
	if !strings.Contains(err.Error(), "Loading") || !strings.Contains(err.Error(), "Submitting") {
		t.Fatalf("error %q does not name the denied edge", err)
	}
	if got := ctrl.Current().Variant(); got != lifecycle.VariantLoading {
		t.Fatalf("denied transition replaced state: %s", got)
	}

	// The table still admits the advisory flow.
	if err := ctrl.Loaded(); err != nil {
		t.Fatalf("Loaded: %v", err)
	}
	if err := ctrl.Submit(0.1); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := ctrl.Progress(0.9); err != nil {
		t.Fatalf("Progress self-edge: %v", err)
	}
	if err := ctrl.Success(nil); err != nil {
		t.Fatalf("Success: %v", err)
	}
}

func TestAmendmentsBypassPolicy(t *testing.T) {
	// A strict table with no self-edges must not reject flag changes.
	table := policy.New(policy.Rule{From: lifecycle.VariantLoading, To: lifecycle.VariantLoaded})
	ctrl := newController(controller.WithPolicy[createdResource, serverError](table))

	ctrl.SetValid(true)
	if !ctrl.Current().IsValid() {
		t.Fatal("SetValid did not apply")
	}
	ctrl.SetEditing(true)
	if !ctrl.Current().IsEditing() {
		t.Fatal("SetEditing did not apply")
	}
}

func TestCancelSubmission(t *testing.T) {
	ctrl := newController(controller.WithInitial[createdResource, serverError](
		lifecycle.NewLoading[createdResource, serverError](true, false),
	))

	// Outside Submitting the cancel flag has nowhere to live.
	ctrl.CancelSubmission()
	if ctrl.Current().IsCanceling() {
		t.Fatal("cancel intent must not stick outside Submitting")
	}

	if err := ctrl.Loaded(); err != nil {
		t.Fatalf("Loaded: %v", err)
	}
	if err := ctrl.Submit(0.3); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	ctrl.CancelSubmission()
	if !ctrl.Current().IsCanceling() {
		t.Fatal("cancel intent not recorded on Submitting")
	}

	// Later progress reports keep the intent until the work stops.
	if err := ctrl.Progress(0.6); err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if !ctrl.Current().IsCanceling() {
		t.Fatal("progress report dropped cancel intent")
	}

	if err := ctrl.SubmissionCancelled(); err != nil {
		t.Fatalf("SubmissionCancelled: %v", err)
	}
	if got := ctrl.Current().Variant(); got != lifecycle.VariantSubmissionCancelled {
		t.Fatalf("variant = %s, want SubmissionCancelled", got)
	}
}

func TestControllerSerialisesTransitions(t *testing.T) {
	ctrl := newController()
	if err := ctrl.Loaded(); err != nil {
		t.Fatalf("Loaded: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = ctrl.Submit(float64(n) / 32)
			ctrl.SetValid(n%2 == 0)
		}(i)
	}
	wg.Wait()

	// Whatever the interleaving, the invariants hold on the final value.
	final := ctrl.Current()
	if final.Variant() != lifecycle.VariantSubmitting {
		t.Fatalf("final variant = %s, want Submitting", final.Variant())
	}
	if p := final.SubmissionProgress(); p < 0 || p > 1 {
		t.Fatalf("progress %v escaped [0, 1]", p)
	}
}
