package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a record that is not
// in the store.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a rejected input. The operation that returned
// it has not mutated anything.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
