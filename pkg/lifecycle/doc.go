// Package lifecycle defines the immutable state values a form controller
// moves through while loading, submitting, and deleting a form. A state is a
// closed union of eleven variants, each carrying the form's validity flag,
// editing flag, and a submission-progress fraction clamped to [0, 1]. States
// never mutate: every transition constructor returns a fresh value, so the
// current state can be shared across goroutines without synchronisation.
// Success and failure payloads are generic and opaque to this package; their
// presence is queryable but never an error by itself.
package lifecycle
