// Package formstate is the companion state layer for form controllers: an
// immutable lifecycle-state union, optional transition policies, a
// current-state owner with observers, and helpers that bind controllers to
// the OpenAPI operations their forms submit to. The subpackages work alone;
// this package re-exports the common entry points so most hosts import one
// path.
package formstate

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formstate/pkg/controller"
	"github.com/goliatone/go-formstate/pkg/lifecycle"
	"github.com/goliatone/go-formstate/pkg/lifecycle/policy"
	"github.com/goliatone/go-formstate/pkg/openapi"
)

// Variant re-exports the lifecycle variant enumeration.
type Variant = lifecycle.Variant

// Descriptor re-exports the OpenAPI operation metadata used to seed
// controllers.
type Descriptor = openapi.Descriptor

// Initial returns the state every fresh controller starts in.
func Initial[S, F any]() lifecycle.State[S, F] {
	return lifecycle.Initial[S, F]()
}

// NewController constructs a lifecycle controller; see pkg/controller for the
// available options.
func NewController[S, F any](options ...controller.Option[S, F]) *controller.Controller[S, F] {
	return controller.New(options...)
}

// ControllerFor seeds a controller from an operation descriptor: the initial
// Loading state carries the descriptor's editing flag, so update forms start
// in edit mode before their data arrives. Additional options apply after the
// seed and may override it.
func ControllerFor[S, F any](d openapi.Descriptor, options ...controller.Option[S, F]) *controller.Controller[S, F] {
	seed := controller.WithInitial[S, F](lifecycle.NewLoading[S, F](false, d.IsEditing))
	return controller.New(append([]controller.Option[S, F]{seed}, options...)...)
}

// StrictPolicy returns the recommended predecessor-enforcing transition
// table.
func StrictPolicy() *policy.Table {
	return policy.Default()
}

// LoadDescriptors fetches and parses an OpenAPI document in one call.
func LoadDescriptors(ctx context.Context, loader *openapi.Loader, src openapi.Source) (openapi.DescriptorSet, error) {
	if loader == nil {
		loader = openapi.NewLoader()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("formstate: load descriptors: %w", err)
	}
	return openapi.Parse(ctx, doc)
}
