package artifact

import (
	"errors"
	"fmt"
)

// AccessError reports an I/O failure while inspecting an artifact: an
// unreadable archive, a permission error on a directory walk, and so on.
//
// It is deliberately distinct from clean non-existence — a missing file is
// a false Exists result, not an AccessError. Matchers surface an
// AccessError as the failure cause of the expectation that hit it.
type AccessError struct {
	// Op is the operation that failed ("stat", "open archive", "walk", ...).
	Op string

	// Path is the filesystem path (or archive-internal path) involved.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *AccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *AccessError) Unwrap() error {
	return e.Err
}

// IsAccessError reports whether err is (or wraps) an *AccessError.
func IsAccessError(err error) bool {
	var ae *AccessError
	return errors.As(err, &ae)
}

func accessErr(op, path string, err error) *AccessError {
	return &AccessError{Op: op, Path: path, Err: err}
}
