// Package render turns lifecycle states into the status chrome a form shell
// displays above its fields: a banner with the variant, an optional progress
// bar, and the sanitized payload message. It renders only the lifecycle
// summary; the form body itself belongs to the host's renderer.
package render

import (
	"math"

	"github.com/goliatone/go-formstate/pkg/lifecycle"
)

// Tone buckets variants by how the chrome should colour them.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneBusy    Tone = "busy"
	ToneSuccess Tone = "success"
	ToneFailure Tone = "failure"
)

// Summary is the template-facing projection of a state. Every field is
// precomputed so templates stay logic-free and output stays deterministic.
type Summary struct {
	Variant         string
	Tone            string
	IsValid         bool
	IsEditing       bool
	IsCanceling     bool
	CanSubmit       bool
	CanShowProgress bool
	ProgressPercent int
	Message         string
}

// NewSummary projects a state into its Summary. Payload text runs through the
// strict sanitizer: payloads are opaque and may carry server-supplied markup.
func NewSummary[S, F any](state lifecycle.State[S, F]) Summary {
	summary := Summary{
		Variant:         state.Variant().String(),
		Tone:            string(toneFor(state.Variant())),
		IsValid:         state.IsValid(),
		IsEditing:       state.IsEditing(),
		IsCanceling:     state.IsCanceling(),
		CanSubmit:       state.CanSubmit(),
		CanShowProgress: state.CanShowProgress(),
		ProgressPercent: int(math.Round(state.SubmissionProgress() * 100)),
	}

	if payload, ok := state.SuccessResponse(); ok {
		summary.Message = sanitizeMessage(payload)
	} else if payload, ok := state.FailureResponse(); ok {
		summary.Message = sanitizeMessage(payload)
	}

	return summary
}

func toneFor(v lifecycle.Variant) Tone {
	switch v {
	case lifecycle.VariantSuccess, lifecycle.VariantDeleteSuccessful:
		return ToneSuccess
	case lifecycle.VariantLoadFailed, lifecycle.VariantFailure,
		lifecycle.VariantSubmissionFailed, lifecycle.VariantDeleteFailed:
		return ToneFailure
	case lifecycle.VariantLoading, lifecycle.VariantSubmitting, lifecycle.VariantDeleting:
		return ToneBusy
	default:
		return ToneNeutral
	}
}
