// Package policy decides which lifecycle transitions a controller accepts.
// The state type itself keeps every transition total; a Table layers the
// legal-predecessor rules on top, so hosts choose between the permissive
// original behaviour and a strict edge list. Tables are plain data and safe
// for concurrent reads once built.
package policy

import (
	"fmt"

	"github.com/goliatone/go-formstate/pkg/lifecycle"
)

// Rule is a single allowed edge between two lifecycle variants.
type Rule struct {
	From lifecycle.Variant
	To   lifecycle.Variant
}

// Decision records whether a transition is allowed and, when denied, why.
type Decision struct {
	Allowed bool
	Reason  string
}

// Table holds the set of allowed edges. The zero value denies everything;
// build tables through New, Default, or Permissive.
type Table struct {
	edges      map[Rule]struct{}
	permissive bool
}

// New builds a strict table from an explicit edge list.
func New(rules ...Rule) *Table {
	t := &Table{edges: make(map[Rule]struct{}, len(rules))}
	return t.Allow(rules...)
}

// Permissive returns a table that allows every transition, matching the
// behaviour of a controller without a policy.
func Permissive() *Table {
	return &Table{permissive: true}
}

// Default returns the advisory flow as a strict edge list: load resolves to
// Loaded or LoadFailed (with reload after failure), every submit-capable
// variant may enter Submitting, a submission resolves to Success, Failure,
// SubmissionCancelled, or SubmissionFailed, and deletes run from Loaded (or a
// previous DeleteFailed) to their terminal pair. Submitting self-edges are
// included so progress updates pass the check.
func Default() *Table {
	return New(
		Rule{From: lifecycle.VariantLoading, To: lifecycle.VariantLoaded},
		Rule{From: lifecycle.VariantLoading, To: lifecycle.VariantLoadFailed},
		Rule{From: lifecycle.VariantLoadFailed, To: lifecycle.VariantLoading},

		Rule{From: lifecycle.VariantLoaded, To: lifecycle.VariantSubmitting},
		Rule{From: lifecycle.VariantFailure, To: lifecycle.VariantSubmitting},
		Rule{From: lifecycle.VariantSubmissionCancelled, To: lifecycle.VariantSubmitting},
		Rule{From: lifecycle.VariantSubmissionFailed, To: lifecycle.VariantSubmitting},
		Rule{From: lifecycle.VariantDeleteFailed, To: lifecycle.VariantSubmitting},

		Rule{From: lifecycle.VariantSubmitting, To: lifecycle.VariantSubmitting},
		Rule{From: lifecycle.VariantSubmitting, To: lifecycle.VariantSuccess},
		Rule{From: lifecycle.VariantSubmitting, To: lifecycle.VariantFailure},
		Rule{From: lifecycle.VariantSubmitting, To: lifecycle.VariantSubmissionCancelled},
		Rule{From: lifecycle.VariantSubmitting, To: lifecycle.VariantSubmissionFailed},

		Rule{From: lifecycle.VariantLoaded, To: lifecycle.VariantSubmissionFailed},

		Rule{From: lifecycle.VariantLoaded, To: lifecycle.VariantDeleting},
		Rule{From: lifecycle.VariantDeleteFailed, To: lifecycle.VariantDeleting},
		Rule{From: lifecycle.VariantDeleting, To: lifecycle.VariantDeleteSuccessful},
		Rule{From: lifecycle.VariantDeleting, To: lifecycle.VariantDeleteFailed},
	)
}

// Allow adds edges to the table and returns it for chaining.
func (t *Table) Allow(rules ...Rule) *Table {
	if t.edges == nil {
		t.edges = make(map[Rule]struct{}, len(rules))
	}
	for _, rule := range rules {
		t.edges[rule] = struct{}{}
	}
	return t
}

// Check reports whether the from→to edge is allowed.
func (t *Table) Check(from, to lifecycle.Variant) Decision {
	if t == nil || t.permissive {
		return Decision{Allowed: true}
	}
	if _, ok := t.edges[Rule{From: from, To: to}]; ok {
		return Decision{Allowed: true}
	}
	return Decision{
		Reason: fmt.Sprintf("transition %s -> %s is not allowed", from, to),
	}
}

// Rules returns the allowed edges. Permissive tables return nil: they have no
// finite edge list.
func (t *Table) Rules() []Rule {
	if t == nil || t.permissive || len(t.edges) == 0 {
		return nil
	}
	out := make([]Rule, 0, len(t.edges))
	for rule := range t.edges {
		out = append(out, rule)
	}
	return out
}

// IsPermissive reports whether the table allows every transition.
func (t *Table) IsPermissive() bool {
	return t == nil || t.permissive
}
