package lifecycle

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Variant identifies one case of the closed lifecycle union.
type Variant int

const (
	VariantLoading Variant = iota
	VariantLoadFailed
	VariantLoaded
	VariantSubmitting
	VariantSuccess
	VariantFailure
	VariantSubmissionCancelled
	VariantSubmissionFailed
	VariantDeleting
	VariantDeleteFailed
	VariantDeleteSuccessful

	// numVariants must stay last: Variants and the dispatch tests derive the
	// closed union from it, so a new variant is picked up everywhere or
	// nowhere.
	numVariants
)

// Variants returns every variant in declaration order. The slice is a fresh
// copy on each call so callers can reorder it freely.
func Variants() []Variant {
	out := make([]Variant, numVariants)
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

// String returns the canonical variant name. The switch is exhaustive on
// purpose: adding a variant without updating the rendered names is a bug this
// method should surface immediately.
func (v Variant) String() string {
	switch v {
	case VariantLoading:
		return "Loading"
	case VariantLoadFailed:
		return "LoadFailed"
	case VariantLoaded:
		return "Loaded"
	case VariantSubmitting:
		return "Submitting"
	case VariantSuccess:
		return "Success"
	case VariantFailure:
		return "Failure"
	case VariantSubmissionCancelled:
		return "SubmissionCancelled"
	case VariantSubmissionFailed:
		return "SubmissionFailed"
	case VariantDeleting:
		return "Deleting"
	case VariantDeleteFailed:
		return "DeleteFailed"
	case VariantDeleteSuccessful:
		return "DeleteSuccessful"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant resolves a canonical variant name back to its Variant value.
// Matching is exact; use it when reading variant names from configuration.
func ParseVariant(name string) (Variant, error) {
	trimmed := strings.TrimSpace(name)
	for _, v := range Variants() {
		if v.String() == trimmed {
			return v, nil
		}
	}
	return 0, fmt.Errorf("lifecycle: unknown variant %q", name)
}

// State is an immutable snapshot of where a form is in its lifecycle. S and F
// are the caller's success and failure payload types; both are opaque here.
// The zero value is a Loading state with all flags false, matching Initial.
type State[S, F any] struct {
	variant     Variant
	isValid     bool
	isEditing   bool
	progress    float64
	isCanceling bool
	success     *S
	failure     *F
}

// Initial returns the state a freshly constructed controller starts in:
// Loading with isValid and isEditing false.
func Initial[S, F any]() State[S, F] {
	return State[S, F]{variant: VariantLoading}
}

// NewLoading returns a Loading state with explicit flags, used by controllers
// that resume an edit flow and already know the form governs an existing
// resource.
func NewLoading[S, F any](isValid, isEditing bool) State[S, F] {
	return State[S, F]{variant: VariantLoading, isValid: isValid, isEditing: isEditing}
}

// Variant reports which case of the union this state is.
func (s State[S, F]) Variant() Variant {
	return s.variant
}

// IsValid reports whether every field in the governed form is currently valid.
func (s State[S, F]) IsValid() bool {
	return s.isValid
}

// IsEditing reports whether the controller is updating an existing resource
// rather than creating a new one.
func (s State[S, F]) IsEditing() bool {
	return s.isEditing
}

// SubmissionProgress returns the submission fraction, always within [0, 1].
func (s State[S, F]) SubmissionProgress() float64 {
	return s.progress
}

// IsCanceling reports cancellation intent. It is only ever true on a
// Submitting state.
func (s State[S, F]) IsCanceling() bool {
	return s.isCanceling
}

// HasSuccessResponse reports whether a success payload instance is attached.
func (s State[S, F]) HasSuccessResponse() bool {
	return s.success != nil
}

// SuccessResponse returns the attached success payload when present.
func (s State[S, F]) SuccessResponse() (S, bool) {
	if s.success == nil {
		var zero S
		return zero, false
	}
	return *s.success, true
}

// HasFailureResponse reports whether a failure payload instance is attached.
func (s State[S, F]) HasFailureResponse() bool {
	return s.failure != nil
}

// FailureResponse returns the attached failure payload when present.
func (s State[S, F]) FailureResponse() (F, bool) {
	if s.failure == nil {
		var zero F
		return zero, false
	}
	return *s.failure, true
}

// CanSubmit reports whether the controller may start a submission from this
// state. This is a pure tag check: SubmissionFailed exists precisely to
// represent "tried to submit while invalid", so CanSubmit can be true while
// IsValid is false.
func (s State[S, F]) CanSubmit() bool {
	switch s.variant {
	case VariantLoaded, VariantFailure, VariantSubmissionCancelled,
		VariantSubmissionFailed, VariantDeleteFailed:
		return true
	default:
		return false
	}
}

// CanShowProgress reports whether the submission-progress fraction is
// meaningful to display.
func (s State[S, F]) CanShowProgress() bool {
	return s.variant == VariantSubmitting || s.variant == VariantSuccess
}

// Equal reports structural equality: same variant tag and same values for
// every field that variant carries. Payloads compare by deep value.
func (s State[S, F]) Equal(other State[S, F]) bool {
	if s.variant != other.variant ||
		s.isValid != other.isValid ||
		s.isEditing != other.isEditing ||
		s.progress != other.progress {
		return false
	}
	switch s.variant {
	case VariantSubmitting:
		return s.isCanceling == other.isCanceling
	case VariantSuccess, VariantDeleteSuccessful:
		return payloadEqual(s.success, other.success)
	case VariantLoadFailed, VariantFailure, VariantDeleteFailed:
		return payloadEqual(s.failure, other.failure)
	default:
		return true
	}
}

func payloadEqual[T any](a, b *T) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return reflect.DeepEqual(*a, *b)
}

// clamp01 restricts a progress fraction into [0, 1]. Out-of-range input is
// silently corrected rather than rejected; NaN collapses to 0.
func clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
