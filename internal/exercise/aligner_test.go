package exercise

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignBlanks_OrderOfAppearance(t *testing.T) {
	terms := []Term{
		{Term: "apple", Definition: "a fruit"},
		{Term: "car", Definition: "a vehicle"},
	}

	instance, key := BuildCloze("I ate an apple and drove my car.", terms)

	require.Len(t, instance.Blanks, 2)
	assert.Equal(t, BlankSpec{Position: 0, CorrectAnswer: "apple"}, instance.Blanks[0])
	assert.Equal(t, BlankSpec{Position: 1, CorrectAnswer: "car"}, instance.Blanks[1])
	assert.Equal(t, "I ate an "+Placeholder+" and drove my "+Placeholder+".", instance.Passage)
	assert.Empty(t, instance.Dropped)

	require.Len(t, key.Items, 2)
	assert.Equal(t, KeyItem{ItemID: "blank-0", CorrectAnswer: "apple"}, key.Items[0])
	assert.Equal(t, KeyItem{ItemID: "blank-1", CorrectAnswer: "car"}, key.Items[1])
}

func TestAlignBlanks_LongestMatchPrecedence(t *testing.T) {
	// "run" must not consume part of "running"'s occurrence.
	instance := AlignBlanks("She was running late.", []string{"run", "running"})

	require.Len(t, instance.Blanks, 1)
	assert.Equal(t, "running", instance.Blanks[0].CorrectAnswer)
	assert.Equal(t, []string{"run"}, instance.Dropped)
	assert.Equal(t, "She was "+Placeholder+" late.", instance.Passage)
}

func TestAlignBlanks_CaseInsensitiveWholeWord(t *testing.T) {
	tests := []struct {
		name    string
		passage string
		terms   []string
		blanked []string
		dropped []string
	}{
		{
			name:    "case insensitive match",
			passage: "Apple pie is the best.",
			terms:   []string{"apple"},
			blanked: []string{"apple"},
		},
		{
			name:    "no partial word match",
			passage: "The cars drove past.",
			terms:   []string{"car"},
			dropped: []string{"car"},
		},
		{
			name:    "multi-word term",
			passage: "Don't give up on your dreams.",
			terms:   []string{"give up"},
			blanked: []string{"give up"},
		},
		{
			name:    "term absent from passage",
			passage: "Nothing to see here.",
			terms:   []string{"banana"},
			dropped: []string{"banana"},
		},
		{
			name:    "punctuation boundary",
			passage: "I like tea, coffee and milk.",
			terms:   []string{"coffee"},
			blanked: []string{"coffee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instance := AlignBlanks(tt.passage, tt.terms)

			got := make([]string, 0, len(instance.Blanks))
			for _, b := range instance.Blanks {
				got = append(got, b.CorrectAnswer)
			}
			assert.Equal(t, tt.blanked, nilIfEmpty(got))
			assert.Equal(t, tt.dropped, instance.Dropped)
		})
	}
}

func TestAlignBlanks_FirstUnconsumedOccurrence(t *testing.T) {
	// The same word appears twice; only the first occurrence is blanked.
	instance := AlignBlanks("A dog chased another dog.", []string{"dog"})

	require.Len(t, instance.Blanks, 1)
	assert.Equal(t, "A "+Placeholder+" chased another dog.", instance.Passage)
}

func TestAlignBlanks_CoverageBound(t *testing.T) {
	terms := []string{"alpha", "beta", "gamma"}
	instance := AlignBlanks("alpha and beta walked in.", terms)

	// One blank per matched term, never more blanks than terms.
	assert.LessOrEqual(t, len(instance.Blanks), len(terms))
	assert.Len(t, instance.Blanks, 2)
	assert.Equal(t, strings.Count(instance.Passage, Placeholder), len(instance.Blanks))
}

func TestAlignBlanks_KeyUsesSourceTermString(t *testing.T) {
	// The key carries the source term spelling even when the passage
	// surface form differs in case.
	instance := AlignBlanks("BANANA split, please.", []string{"banana"})

	require.Len(t, instance.Blanks, 1)
	assert.Equal(t, "banana", instance.Blanks[0].CorrectAnswer)
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
