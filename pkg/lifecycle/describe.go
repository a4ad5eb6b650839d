package lifecycle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// String renders a structural summary of the state:
//
//	<VariantName> { isValid: <bool>, isEditing: <bool>, submissionProgress: <double> }
//
// Variants carrying a present payload append ", successResponse: <payload>" or
// ", failureResponse: <payload>" before the closing brace. A Submitting state
// with cancellation intent appends ", isCancelling: true"; the doubled-l
// spelling in the rendered key is part of the format and must not be
// normalised to match the field name. Output is deterministic for equal
// field values.
func (s State[S, F]) String() string {
	var b strings.Builder
	b.WriteString(s.variant.String())
	b.WriteString(" { isValid: ")
	b.WriteString(strconv.FormatBool(s.isValid))
	b.WriteString(", isEditing: ")
	b.WriteString(strconv.FormatBool(s.isEditing))
	b.WriteString(", submissionProgress: ")
	b.WriteString(formatProgress(s.progress))

	switch s.variant {
	case VariantSubmitting:
		if s.isCanceling {
			b.WriteString(", isCancelling: true")
		}
	case VariantSuccess, VariantDeleteSuccessful:
		if s.success != nil {
			fmt.Fprintf(&b, ", successResponse: %v", *s.success)
		}
	case VariantLoadFailed, VariantFailure, VariantDeleteFailed:
		if s.failure != nil {
			fmt.Fprintf(&b, ", failureResponse: %v", *s.failure)
		}
	}

	b.WriteString(" }")
	return b.String()
}

// formatProgress renders integral fractions with one decimal ("0.0", "1.0")
// and everything else with the shortest exact representation ("0.5",
// "0.425").
func formatProgress(p float64) string {
	if p == math.Trunc(p) {
		return strconv.FormatFloat(p, 'f', 1, 64)
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}
