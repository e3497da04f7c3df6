// Package generation provides the passage generator consumed by the cloze
// exercise builder. The generator is an external text-generation provider:
// given a target language and a list of term strings it returns a short
// natural-language passage that should contain each term at least once, in
// free word order, with no contract on exact surface form. Terms the
// provider leaves out (or inflects beyond recognition) are handled
// downstream by the blank aligner's under-coverage reporting.
package generation

import (
	"context"
	"errors"
)

// PassageGenerator produces a practice passage for a set of vocabulary
// terms. Implementations must be safe for concurrent use.
type PassageGenerator interface {
	GeneratePassage(ctx context.Context, language string, terms []string) (string, error)
}

var (
	// ErrGenerationFailed is returned when the provider fails for any
	// general reason. Surfaced to the learner as a retryable condition.
	ErrGenerationFailed = errors.New("failed to generate practice passage")

	// ErrEmptyPassage is returned when the provider responds with no
	// usable text.
	ErrEmptyPassage = errors.New("language model returned an empty passage")

	// ErrContentBlocked is returned when the provider blocks the request
	// via its safety filters.
	ErrContentBlocked = errors.New("passage blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is
	// invalid.
	ErrInvalidConfig = errors.New("invalid passage generator configuration")
)
