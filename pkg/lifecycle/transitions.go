package lifecycle

// Transition constructors. Each one is a pure function over the receiver:
// isValid and isEditing carry forward unless a copy-with helper overrides
// them, progress is fixed by the target variant (Submitting excepted), and
// the receiver is never mutated. No transition fails; legality enforcement is
// the policy package's concern.

// ToLoading moves to Loading, resetting progress.
func (s State[S, F]) ToLoading() State[S, F] {
	return State[S, F]{variant: VariantLoading, isValid: s.isValid, isEditing: s.isEditing}
}

// ToLoadFailed moves to LoadFailed with an optional failure payload. Pass nil
// when the failure carries no payload.
func (s State[S, F]) ToLoadFailed(failure *F) State[S, F] {
	return State[S, F]{
		variant:   VariantLoadFailed,
		isValid:   s.isValid,
		isEditing: s.isEditing,
		failure:   clonePayload(failure),
	}
}

// ToLoaded moves to Loaded. Use WithEditing on the result when the load
// determined an edit flow: s.ToLoaded().WithEditing(true).
func (s State[S, F]) ToLoaded() State[S, F] {
	return State[S, F]{variant: VariantLoaded, isValid: s.isValid, isEditing: s.isEditing}
}

// ToSubmitting moves to Submitting with the supplied progress fraction,
// clamped into [0, 1]. Cancellation intent carries forward only when the
// current state is already Submitting; from any other variant the result
// starts with isCanceling false.
func (s State[S, F]) ToSubmitting(progress float64) State[S, F] {
	canceling := false
	if s.variant == VariantSubmitting {
		canceling = s.isCanceling
	}
	return State[S, F]{
		variant:     VariantSubmitting,
		isValid:     s.isValid,
		isEditing:   s.isEditing,
		progress:    clamp01(progress),
		isCanceling: canceling,
	}
}

// ToSuccess moves to Success with an optional payload; progress is 1.
func (s State[S, F]) ToSuccess(success *S) State[S, F] {
	return State[S, F]{
		variant:   VariantSuccess,
		isValid:   s.isValid,
		isEditing: s.isEditing,
		progress:  1,
		success:   clonePayload(success),
	}
}

// ToFailure moves to Failure with an optional payload; progress resets.
func (s State[S, F]) ToFailure(failure *F) State[S, F] {
	return State[S, F]{
		variant:   VariantFailure,
		isValid:   s.isValid,
		isEditing: s.isEditing,
		failure:   clonePayload(failure),
	}
}

// ToSubmissionCancelled moves to SubmissionCancelled.
func (s State[S, F]) ToSubmissionCancelled() State[S, F] {
	return State[S, F]{variant: VariantSubmissionCancelled, isValid: s.isValid, isEditing: s.isEditing}
}

// ToSubmissionFailed moves to SubmissionFailed, the state representing a
// submit attempt that never started (typically because the form was invalid).
func (s State[S, F]) ToSubmissionFailed() State[S, F] {
	return State[S, F]{variant: VariantSubmissionFailed, isValid: s.isValid, isEditing: s.isEditing}
}

// ToDeleting moves to Deleting.
func (s State[S, F]) ToDeleting() State[S, F] {
	return State[S, F]{variant: VariantDeleting, isValid: s.isValid, isEditing: s.isEditing}
}

// ToDeleteFailed moves to DeleteFailed with an optional failure payload.
func (s State[S, F]) ToDeleteFailed(failure *F) State[S, F] {
	return State[S, F]{
		variant:   VariantDeleteFailed,
		isValid:   s.isValid,
		isEditing: s.isEditing,
		failure:   clonePayload(failure),
	}
}

// ToDeleteSuccessful moves to DeleteSuccessful with an optional payload;
// progress is 1.
func (s State[S, F]) ToDeleteSuccessful(success *S) State[S, F] {
	return State[S, F]{
		variant:   VariantDeleteSuccessful,
		isValid:   s.isValid,
		isEditing: s.isEditing,
		progress:  1,
		success:   clonePayload(success),
	}
}

// WithIsValid returns a copy of the state with only the validity flag
// replaced. Variant, payloads, progress, and every other field are untouched,
// so repeated application with the same value is a no-op.
func (s State[S, F]) WithIsValid(isValid bool) State[S, F] {
	out := s
	out.isValid = isValid
	return out
}

// WithEditing returns a copy of the state with only the editing flag
// replaced.
func (s State[S, F]) WithEditing(isEditing bool) State[S, F] {
	out := s
	out.isEditing = isEditing
	return out
}

// Cancelling marks cancellation intent on a Submitting state. Cancellation is
// data, not control flow: callers keep reporting progress until the
// in-flight work observes the flag and transitions to SubmissionCancelled.
// Any other variant is returned unchanged.
func (s State[S, F]) Cancelling() State[S, F] {
	if s.variant != VariantSubmitting {
		return s
	}
	out := s
	out.isCanceling = true
	return out
}

func clonePayload[T any](p *T) *T {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
