package expect

import "fmt"

// Assertion is a deferred block of assertion code. It receives the
// expectation's subject explicitly and returns nil when the assertion
// holds. Any non-nil error — a matcher failure, an access error, or an
// arbitrary failure — marks the expectation as failed.
type Assertion func(subject any) error

// Expectation is a registered (subject, description, assertion) triple.
// Expectations are created at build-definition time, never mutated, and
// evaluated once during verification.
type Expectation struct {
	// Subject is the artifact or object under test.
	Subject any

	// Description is the human-readable label used in the consolidated
	// failure report.
	Description string

	// Assert is the deferred assertion block. A nil block is a valid
	// placeholder ("to be implemented") and always passes.
	Assert Assertion
}

// Evaluate runs the assertion block with the subject bound. Exposed so
// callers can invoke a registered expectation manually for nested
// composition; the runner adds panic recovery around this.
func (e *Expectation) Evaluate() error {
	if e.Assert == nil {
		return nil
	}
	return e.Assert(e.Subject)
}

// describable is satisfied by artifact kinds and anything else that can
// name itself for diagnostics.
type describable interface {
	Describe() string
}

// describe returns the textual representation of a subject for use as a
// default description.
func describe(subject any) string {
	if d, ok := subject.(describable); ok {
		return d.Describe()
	}
	return fmt.Sprintf("%v", subject)
}
