package balsa

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError reports a malformed command line or an ill-typed table file.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

// NewParseErrorf builds a ParseError.
func NewParseErrorf(format string, args ...interface{}) error {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// ClientError reports a dimensional or value violation detectable at an API
// boundary: a length not divisible by the feature count, a NaN feature, a
// label out of range, a non-positive repeat count, a negative class weight.
type ClientError struct {
	msg string
}

func (e *ClientError) Error() string { return e.msg }

// NewClientErrorf builds a ClientError.
func NewClientErrorf(format string, args ...interface{}) error {
	return &ClientError{msg: fmt.Sprintf(format, args...)}
}

// SupplierError reports the inability to create or write an output
// artifact. It wraps the underlying cause so callers can still recover it
// with errors.Cause.
type SupplierError struct {
	error
}

// NewSupplierError builds a SupplierError wrapping cause with msg.
func NewSupplierError(msg string, cause error) error {
	return &SupplierError{errors.Wrap(cause, msg)}
}

// Cause returns the wrapped error, letting errors.Cause walk past the
// SupplierError down to the original failure.
func (e *SupplierError) Cause() error { return e.error }
