package expect

import (
	"fmt"
	"strings"
)

// ExpectationFailure is one failed expectation inside a consolidated
// verification failure.
type ExpectationFailure struct {
	// Description is the failing expectation's label.
	Description string

	// Cause is the underlying failure: a matcher failure, an artifact
	// access error, or an arbitrary error raised by the block.
	Cause error
}

// VerificationError is the single consolidated failure raised when one or
// more expectations did not hold. It is the only error kind the external
// build hook sees; its message enumerates every contributing failure.
type VerificationError struct {
	// Evaluated is the total number of expectations evaluated.
	Evaluated int

	// Failures lists every failed expectation in registration order.
	Failures []ExpectationFailure
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "verification failed: %d of %d expectation(s) did not hold\n",
		len(e.Failures), e.Evaluated)
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "  ✗ %s\n      %v\n", f.Description, f.Cause)
	}
	return strings.TrimRight(b.String(), "\n")
}
