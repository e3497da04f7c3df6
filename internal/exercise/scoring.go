package exercise

import "strings"

// Score reconciles learner responses against an answer key. Comparison is
// case-insensitive, whitespace-trimmed exact equality; there is no partial
// credit and no fuzzy matching. Missing responses count as incorrect, never
// as an error. The per-item breakdown preserves key order so the review
// pass can be rendered directly from it.
//
// Score is pure and idempotent: identical inputs always produce identical
// results.
func Score(key AnswerKey, responses ResponseSet) ScoreResult {
	result := ScoreResult{
		TotalCount: len(key.Items),
		PerItem:    make([]ItemResult, 0, len(key.Items)),
	}

	for _, item := range key.Items {
		given := responses[item.ItemID]
		correct := normalizeAnswer(given) == normalizeAnswer(item.CorrectAnswer) && strings.TrimSpace(given) != ""
		if correct {
			result.CorrectCount++
		}
		result.PerItem = append(result.PerItem, ItemResult{
			ItemID:        item.ItemID,
			Given:         given,
			IsCorrect:     correct,
			CorrectAnswer: item.CorrectAnswer,
		})
	}
	return result
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
