package exercise

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
)

const (
	// DistractorCount is the number of incorrect definitions offered next
	// to the correct one, yielding four options per question.
	DistractorCount = 3

	// DefaultSplitRatio is the share of sampled terms that become
	// multiple-choice questions; the remainder become drag-and-drop items.
	DefaultSplitRatio = 0.6
)

// Partition splits a shuffled copy of the sampled terms into the
// multiple-choice and drag-and-drop groups at round(len*ratio). The input
// slice is never mutated and the two groups are independently ordered.
func Partition(terms []Term, ratio float64, rng *rand.Rand) (multipleChoice, dragDrop []Term) {
	shuffled := make([]Term, len(terms))
	copy(shuffled, terms)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(math.Round(float64(len(shuffled)) * ratio))
	if cut > len(shuffled) {
		cut = len(shuffled)
	}
	return shuffled[:cut], shuffled[cut:]
}

// SelectDistractors samples count incorrect definitions for target from the
// rest of the pool. The target is excluded by term-string equality, and the
// candidate definitions are deduplicated and never equal to the target's
// own definition, so the final option list can never contain duplicates.
func SelectDistractors(target Term, pool []Term, count int, rng *rand.Rand) ([]string, error) {
	seen := make(map[string]struct{}, len(pool))
	candidates := make([]string, 0, len(pool))
	for _, t := range pool {
		if t.Term == target.Term {
			continue
		}
		norm := strings.ToLower(strings.TrimSpace(t.Definition))
		if norm == strings.ToLower(strings.TrimSpace(target.Definition)) {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		candidates = append(candidates, t.Definition)
	}

	if len(candidates) < count {
		return nil, &InsufficientDataError{Required: count + 1, Actual: len(candidates) + 1}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[:count], nil
}

// BuildQuiz assembles the mixed quiz instance and its answer key from a
// sampled term list. Distractors for each multiple-choice question are
// drawn from the full sampled set, and each option list is shuffled once
// more so the correct answer's slot is uniformly random.
func BuildQuiz(terms []Term, ratio float64, rng *rand.Rand) (QuizInstance, AnswerKey, error) {
	mcTerms, ddTerms := Partition(terms, ratio, rng)

	instance := QuizInstance{
		MultipleChoice: make([]MCQuestion, 0, len(mcTerms)),
		DragDrop:       make([]DDQuestion, 0, len(ddTerms)),
	}
	key := AnswerKey{Items: make([]KeyItem, 0, len(terms))}

	for i, t := range mcTerms {
		distractors, err := SelectDistractors(t, terms, DistractorCount, rng)
		if err != nil {
			return QuizInstance{}, AnswerKey{}, err
		}

		options := make([]string, 0, DistractorCount+1)
		options = append(options, t.Definition)
		options = append(options, distractors...)
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		q := MCQuestion{
			ID:            "mc-" + strconv.Itoa(i),
			Prompt:        t.Term,
			Options:       options,
			CorrectAnswer: t.Definition,
		}
		instance.MultipleChoice = append(instance.MultipleChoice, q)
		key.Items = append(key.Items, KeyItem{ItemID: q.ID, CorrectAnswer: q.CorrectAnswer})
	}

	for i, t := range ddTerms {
		q := DDQuestion{
			ID:            "dd-" + strconv.Itoa(i),
			Definition:    t.Definition,
			CorrectAnswer: t.Term,
		}
		instance.DragDrop = append(instance.DragDrop, q)
		key.Items = append(key.Items, KeyItem{ItemID: q.ID, CorrectAnswer: q.CorrectAnswer})
	}

	return instance, key, nil
}
