package services

import (
	"errors"

	apperrors "github.com/vocadrill/practice-service/internal/errors"
	"github.com/vocadrill/practice-service/internal/exercise"
	"github.com/vocadrill/practice-service/internal/generation"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Vocabulary set errors
	ErrSetNotFound     = errors.New("vocabulary set not found")
	ErrSetAccessDenied = errors.New("access denied to vocabulary set")
	ErrSetEmpty        = errors.New("vocabulary set has no terms")

	// Exercise errors
	ErrExerciseNotFound     = errors.New("exercise not found or expired")
	ErrExerciseAccessDenied = errors.New("access denied to exercise")

	// Import errors
	ErrUnsupportedFileFormat = errors.New("unsupported file format")
	ErrImportNoRows          = errors.New("import file contains no usable rows")
)

// Use shared validation errors from the errors package.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR PREDICATES =====

// IsNotFound checks if err represents a "not found" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSetNotFound) ||
		errors.Is(err, ErrExerciseNotFound)
}

// IsForbidden checks if err represents an access-denied condition.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrSetAccessDenied) ||
		errors.Is(err, ErrExerciseAccessDenied)
}

// IsValidation checks if err represents a validation failure.
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsUnprocessable checks if err means the vocabulary cannot produce the
// requested exercise shape. Surfaced as a user-visible "not enough words"
// condition.
func IsUnprocessable(err error) bool {
	return exercise.IsInsufficientData(err) ||
		exercise.IsDuplicateTerm(err) ||
		errors.Is(err, ErrSetEmpty)
}

// IsGenerationFailure checks if err came from the text-generation provider.
// These are retryable from the learner's point of view.
func IsGenerationFailure(err error) bool {
	return errors.Is(err, generation.ErrGenerationFailed) ||
		errors.Is(err, generation.ErrEmptyPassage) ||
		errors.Is(err, generation.ErrContentBlocked)
}
