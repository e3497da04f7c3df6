package exercise

import "math/rand"

// Sample selects a uniformly shuffled subset of the vocabulary for one
// exercise instance. When len(terms) exceeds limit, the first limit entries
// of the shuffle are kept (sampling without replacement); otherwise the
// whole shuffled list is returned.
//
// min is the variant-specific minimum (MinClozeTerms, MinQuizTerms or
// MinMatchTerms). The input slice is never mutated.
func Sample(terms []Term, limit, min int, rng *rand.Rand) ([]Term, error) {
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if _, dup := seen[t.Term]; dup {
			return nil, &DuplicateTermError{Term: t.Term}
		}
		seen[t.Term] = struct{}{}
	}

	if len(terms) < min {
		return nil, &InsufficientDataError{Required: min, Actual: len(terms)}
	}

	sampled := make([]Term, len(terms))
	copy(sampled, terms)
	rng.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})

	if limit > 0 && len(sampled) > limit {
		sampled = sampled[:limit]
	}
	return sampled, nil
}
