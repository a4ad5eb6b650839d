package lifecycle_test

import (
	"testing"

	"github.com/goliatone/go-formstate/pkg/lifecycle"
)

func TestStringFormat(t *testing.T) {
	base := lifecycle.NewLoading[successPayload, failurePayload](true, false)

	cases := []struct {
		name  string
		state formState
		want  string
	}{
		{
			name:  "loading",
			state: lifecycle.Initial[successPayload, failurePayload](),
			want:  "Loading { isValid: false, isEditing: false, submissionProgress: 0.0 }",
		},
		{
			name:  "loaded carries flags",
			state: base.ToLoaded().WithEditing(true),
			want:  "Loaded { isValid: true, isEditing: true, submissionProgress: 0.0 }",
		},
		{
			name:  "submitting fractional progress",
			state: base.ToLoaded().ToSubmitting(0.5),
			want:  "Submitting { isValid: true, isEditing: false, submissionProgress: 0.5 }",
		},
		{
			name:  "submitting renders doubled-l cancelling key",
			state: base.ToLoaded().ToSubmitting(0.5).Cancelling(),
			want:  "Submitting { isValid: true, isEditing: false, submissionProgress: 0.5, isCancelling: true }",
		},
		{
			name:  "success pins progress to one",
			state: base.ToLoaded().ToSubmitting(0.2).ToSuccess(nil),
			want:  "Success { isValid: true, isEditing: false, submissionProgress: 1.0 }",
		},
		{
			name:  "success with payload",
			state: base.ToLoaded().ToSubmitting(1).ToSuccess(&successPayload{ID: "42"}),
			want:  "Success { isValid: true, isEditing: false, submissionProgress: 1.0, successResponse: {42} }",
		},
		{
			name:  "failure with payload",
			state: base.ToLoaded().ToSubmitting(1).ToFailure(&failurePayload{Message: "offline"}),
			want:  "Failure { isValid: true, isEditing: false, submissionProgress: 0.0, failureResponse: {offline} }",
		},
		{
			name:  "load failed without payload omits the key",
			state: base.ToLoadFailed(nil),
			want:  "LoadFailed { isValid: true, isEditing: false, submissionProgress: 0.0 }",
		},
		{
			name:  "delete successful with payload",
			state: base.ToLoaded().ToDeleting().ToDeleteSuccessful(&successPayload{ID: "7"}),
			want:  "DeleteSuccessful { isValid: true, isEditing: false, submissionProgress: 1.0, successResponse: {7} }",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStringDeterministic(t *testing.T) {
	state := lifecycle.NewLoading[successPayload, failurePayload](true, false).
		ToLoaded().ToSubmitting(0.333)
	first := state.String()
	for i := 0; i < 10; i++ {
		if got := state.String(); got != first {
			t.Fatalf("rendering drifted between calls: %q vs %q", first, got)
		}
	}
}

func TestVariantStringCoversUnion(t *testing.T) {
	seen := make(map[string]struct{}, len(lifecycle.Variants()))
	for _, v := range lifecycle.Variants() {
		name := v.String()
		if name == "" {
			t.Fatalf("variant %d renders empty name", int(v))
		}
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate variant name %q", name)
		}
		seen[name] = struct{}{}
	}

	if got := lifecycle.Variant(99).String(); got != "Variant(99)" {
		t.Fatalf("out-of-union variant rendered %q", got)
	}
}
