package types

import (
	"strings"
)

// Errors concatenates multiple errors into one. Useful when several
// independent sinks (storage backends, notifiers) can fail without
// aborting each other.
type Errors []error

// Error returns a string containing all the errors in e, separated
// by semicolons.
func (e Errors) Error() string {
	var errs []string
	for _, err := range e {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return strings.Join(errs, "; ")
}

// Empty returns whether e has any non-nil errors in it.
func (e Errors) Empty() bool {
	for _, err := range e {
		if err != nil {
			return false
		}
	}
	return true
}
