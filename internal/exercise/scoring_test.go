package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appleCarKey() AnswerKey {
	return AnswerKey{Items: []KeyItem{
		{ItemID: "blank-0", CorrectAnswer: "apple"},
		{ItemID: "blank-1", CorrectAnswer: "car"},
	}}
}

func TestScore_CaseInsensitiveTrimmedMatch(t *testing.T) {
	result := Score(appleCarKey(), ResponseSet{
		"blank-0": "Apple",
		"blank-1": "bus",
	})

	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalCount)
	require.Len(t, result.PerItem, 2)
	assert.Equal(t, ItemResult{ItemID: "blank-0", Given: "Apple", IsCorrect: true, CorrectAnswer: "apple"}, result.PerItem[0])
	assert.Equal(t, ItemResult{ItemID: "blank-1", Given: "bus", IsCorrect: false, CorrectAnswer: "car"}, result.PerItem[1])
}

func TestScore_WhitespaceTrimmed(t *testing.T) {
	result := Score(appleCarKey(), ResponseSet{
		"blank-0": "  apple  ",
		"blank-1": "\tCAR\n",
	})

	assert.Equal(t, 2, result.CorrectCount)
}

func TestScore_MissingResponsesAreIncorrect(t *testing.T) {
	result := Score(appleCarKey(), ResponseSet{"blank-0": "apple"})

	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalCount)
	assert.False(t, result.PerItem[1].IsCorrect)
	assert.Empty(t, result.PerItem[1].Given)
}

func TestScore_EmptyResponseSet(t *testing.T) {
	result := Score(appleCarKey(), ResponseSet{})

	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 2, result.TotalCount)
}

func TestScore_NoPartialCredit(t *testing.T) {
	result := Score(appleCarKey(), ResponseSet{"blank-0": "appl"})

	assert.Equal(t, 0, result.CorrectCount)
}

func TestScore_Idempotent(t *testing.T) {
	responses := ResponseSet{"blank-0": "Apple", "blank-1": "bus"}

	first := Score(appleCarKey(), responses)
	second := Score(appleCarKey(), responses)

	assert.Equal(t, first, second)
}

func TestScore_PreservesKeyOrder(t *testing.T) {
	key := AnswerKey{Items: []KeyItem{
		{ItemID: "mc-0", CorrectAnswer: "a"},
		{ItemID: "dd-0", CorrectAnswer: "b"},
		{ItemID: "mc-1", CorrectAnswer: "c"},
	}}

	result := Score(key, ResponseSet{})

	require.Len(t, result.PerItem, 3)
	assert.Equal(t, "mc-0", result.PerItem[0].ItemID)
	assert.Equal(t, "dd-0", result.PerItem[1].ItemID)
	assert.Equal(t, "mc-1", result.PerItem[2].ItemID)
}
