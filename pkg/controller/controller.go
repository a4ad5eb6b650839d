// Package controller owns the current lifecycle state for a single form and
// publishes each replacement to observers. States themselves are immutable;
// the controller adds the one piece of coordination the value type leaves
// out: at most one transition is applied at a time, and observers see a
// monotonically replaced sequence with no intermediate values.
package controller

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formstate/pkg/lifecycle"
	"github.com/goliatone/go-formstate/pkg/lifecycle/policy"
)

// ErrTransitionDenied wraps every rejection coming from the configured policy
// table. Match with errors.Is.
var ErrTransitionDenied = errors.New("transition denied")

// Controller is the single owner of a form's current lifecycle state. The
// zero value is not usable; construct with New.
type Controller[S, F any] struct {
	mu        sync.Mutex
	current   lifecycle.State[S, F]
	table     *policy.Table
	buffer    int
	observers map[int]chan lifecycle.State[S, F]
	nextID    int
}

// Option configures a Controller during construction.
type Option[S, F any] func(*Controller[S, F])

// WithInitial seeds the controller with a specific starting state instead of
// lifecycle.Initial.
func WithInitial[S, F any](state lifecycle.State[S, F]) Option[S, F] {
	return func(c *Controller[S, F]) {
		c.current = state
	}
}

// WithPolicy installs a transition table. Without one the controller is
// permissive, matching the advisory-only nature of the state machine.
func WithPolicy[S, F any](table *policy.Table) Option[S, F] {
	return func(c *Controller[S, F]) {
		c.table = table
	}
}

// WithObserverBuffer sets the channel buffer handed to each subscriber.
// Publishing never blocks: a subscriber that falls more than buffer states
// behind misses intermediate values and catches up on the next publish.
func WithObserverBuffer[S, F any](size int) Option[S, F] {
	return func(c *Controller[S, F]) {
		if size > 0 {
			c.buffer = size
		}
	}
}

// New constructs a Controller starting in lifecycle.Initial unless overridden.
func New[S, F any](options ...Option[S, F]) *Controller[S, F] {
	c := &Controller[S, F]{
		current:   lifecycle.Initial[S, F](),
		buffer:    8,
		observers: make(map[int]chan lifecycle.State[S, F]),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Current returns a snapshot of the current state.
func (c *Controller[S, F]) Current() lifecycle.State[S, F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// transition computes the next state from the current one under the lock,
// checks the policy table, and publishes the replacement.
func (c *Controller[S, F]) transition(next func(lifecycle.State[S, F]) lifecycle.State[S, F]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	candidate := next(c.current)
	if c.table != nil {
		decision := c.table.Check(c.current.Variant(), candidate.Variant())
		if !decision.Allowed {
			return fmt.Errorf("controller: %w: %s", ErrTransitionDenied, decision.Reason)
		}
	}
	c.replace(candidate)
	return nil
}

// amend applies a copy-with that keeps the variant tag. Flag amendments are
// not transitions, so the policy table is never consulted.
func (c *Controller[S, F]) amend(change func(lifecycle.State[S, F]) lifecycle.State[S, F]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	candidate := change(c.current)
	if candidate.Equal(c.current) {
		return
	}
	c.replace(candidate)
}

// replace swaps the current state and fans it out. Callers hold c.mu, which
// also serialises against Subscribe's register/unregister.
func (c *Controller[S, F]) replace(next lifecycle.State[S, F]) {
	c.current = next
	for _, ch := range c.observers {
		select {
		case ch <- next:
		default:
		}
	}
}

// Load moves to Loading.
func (c *Controller[S, F]) Load() error {
	return c.transition(lifecycle.State[S, F].ToLoading)
}

// LoadFailed moves to LoadFailed with an optional failure payload.
func (c *Controller[S, F]) LoadFailed(failure *F) error {
	return c.transition(func(s lifecycle.State[S, F]) lifecycle.State[S, F] {
		return s.ToLoadFailed(failure)
	})
}

// Loaded moves to Loaded.
func (c *Controller[S, F]) Loaded() error {
	return c.transition(lifecycle.State[S, F].ToLoaded)
}

// Submit starts (or re-enters) a submission at the supplied progress
// fraction.
func (c *Controller[S, F]) Submit(progress float64) error {
	return c.transition(func(s lifecycle.State[S, F]) lifecycle.State[S, F] {
		return s.ToSubmitting(progress)
	})
}

// Progress reports submission progress. It is the same transition as Submit;
// the split exists so call sites read as intent.
func (c *Controller[S, F]) Progress(progress float64) error {
	return c.Submit(progress)
}

// Success completes a submission with an optional payload.
func (c *Controller[S, F]) Success(success *S) error {
	return c.transition(func(s lifecycle.State[S, F]) lifecycle.State[S, F] {
		return s.ToSuccess(success)
	})
}

// Fail records a failed submission with an optional payload.
func (c *Controller[S, F]) Fail(failure *F) error {
	return c.transition(func(s lifecycle.State[S, F]) lifecycle.State[S, F] {
		return s.ToFailure(failure)
	})
}

// CancelSubmission marks cancellation intent on an in-flight submission. The
// flag is data: the submission keeps running until the in-flight work
// observes it and calls SubmissionCancelled. Outside Submitting this is a
// no-op.
func (c *Controller[S, F]) CancelSubmission() {
	c.amend(lifecycle.State[S, F].Cancelling)
}

// SubmissionCancelled records that an in-flight submission stopped.
func (c *Controller[S, F]) SubmissionCancelled() error {
	return c.transition(lifecycle.State[S, F].ToSubmissionCancelled)
}

// SubmissionFailed records a submit attempt that never started.
func (c *Controller[S, F]) SubmissionFailed() error {
	return c.transition(lifecycle.State[S, F].ToSubmissionFailed)
}

// Delete moves to Deleting.
func (c *Controller[S, F]) Delete() error {
	return c.transition(lifecycle.State[S, F].ToDeleting)
}

// DeleteFailed records a failed delete with an optional payload.
func (c *Controller[S, F]) DeleteFailed(failure *F) error {
	return c.transition(func(s lifecycle.State[S, F]) lifecycle.State[S, F] {
		return s.ToDeleteFailed(failure)
	})
}

// DeleteSuccessful records a completed delete with an optional payload.
func (c *Controller[S, F]) DeleteSuccessful(success *S) error {
	return c.transition(func(s lifecycle.State[S, F]) lifecycle.State[S, F] {
		return s.ToDeleteSuccessful(success)
	})
}

// SetValid replaces the validity flag on the current state, whatever its
// variant.
func (c *Controller[S, F]) SetValid(isValid bool) {
	c.amend(func(s lifecycle.State[S, F]) lifecycle.State[S, F] {
		return s.WithIsValid(isValid)
	})
}

// SetEditing replaces the editing flag on the current state.
func (c *Controller[S, F]) SetEditing(isEditing bool) {
	c.amend(func(s lifecycle.State[S, F]) lifecycle.State[S, F] {
		return s.WithEditing(isEditing)
	})
}
