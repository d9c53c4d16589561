package errors

import (
	"errors"
	"fmt"
)

// ValidationError is a request-scoped input error. Field is optional and names
// the offending form field when the message applies to a single field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func NewFieldValidationError(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// Not-found is deliberately indistinguishable from not-owned on reads and
// deletes, so a caller cannot probe for other users' records.
var ErrTransactionNotFound = errors.New("transaction not found")
var ErrBucketNotFound = errors.New("bucket not found")

// ErrNotOwner is returned by edit flows only, after the record has been loaded
// and its owner compared against the caller.
var ErrNotOwner = errors.New("transaction does not belong to the current user")
