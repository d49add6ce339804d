package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedInput matches any *MalformedInputError via errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// ErrInvalidCapital is returned when the capital deployed is negative or not a number.
var ErrInvalidCapital = errors.New("capital deployed must be a non-negative number")

// MalformedInputError reports a trade document that cannot be analyzed.
// Index is the position of the offending entry in data.trades, or -1 for
// document-level problems.
type MalformedInputError struct {
	Index   int
	Field   string
	Message string
	Err     error
}

// NewDocumentError creates a document-level MalformedInputError.
func NewDocumentError(field, message string, err error) *MalformedInputError {
	return &MalformedInputError{Index: -1, Field: field, Message: message, Err: err}
}

func (e *MalformedInputError) Error() string {
	var msg string
	if e.Index < 0 {
		msg = fmt.Sprintf("malformed input: %s: %s", e.Field, e.Message)
	} else {
		msg = fmt.Sprintf("malformed input: trade %d: %s: %s", e.Index, e.Field, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Is lets callers test with errors.Is(err, ErrMalformedInput).
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
