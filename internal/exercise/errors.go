package exercise

import (
	"errors"
	"fmt"
)

// InsufficientDataError is returned when a vocabulary set is too small for
// the requested exercise shape. It is surfaced to the learner as a
// "not enough words" condition, never silently degraded.
type InsufficientDataError struct {
	Required int
	Actual   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient vocabulary: need at least %d terms, have %d", e.Required, e.Actual)
}

// DuplicateTermError is returned when the same term string appears more than
// once in the input vocabulary. Duplicates would produce an ambiguous answer
// key, so sampling fails fast instead.
type DuplicateTermError struct {
	Term string
}

func (e *DuplicateTermError) Error() string {
	return fmt.Sprintf("duplicate term %q in vocabulary set", e.Term)
}

// IsInsufficientData reports whether err is an InsufficientDataError.
func IsInsufficientData(err error) bool {
	var ide *InsufficientDataError
	return errors.As(err, &ide)
}

// IsDuplicateTerm reports whether err is a DuplicateTermError.
func IsDuplicateTerm(err error) bool {
	var dte *DuplicateTermError
	return errors.As(err, &dte)
}
