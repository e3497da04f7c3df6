package exercise

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTerms(n int) []Term {
	terms := make([]Term, 0, n)
	for i := 0; i < n; i++ {
		terms = append(terms, Term{
			Term:       "term-" + string(rune('a'+i)),
			Definition: "definition-" + string(rune('a'+i)),
			Language:   "en",
		})
	}
	return terms
}

func TestSample_RespectsLimit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	sampled, err := Sample(testTerms(10), 4, MinClozeTerms, rng)

	require.NoError(t, err)
	assert.Len(t, sampled, 4)
}

func TestSample_ReturnsAllWhenUnderLimit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	sampled, err := Sample(testTerms(3), 10, MinClozeTerms, rng)

	require.NoError(t, err)
	assert.Len(t, sampled, 3)
	assert.ElementsMatch(t, testTerms(3), sampled)
}

func TestSample_InsufficientData(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := Sample(testTerms(2), 10, MinQuizTerms, rng)

	require.Error(t, err)
	assert.True(t, IsInsufficientData(err))
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, MinQuizTerms, ide.Required)
	assert.Equal(t, 2, ide.Actual)
}

func TestSample_DuplicateTermFailsFast(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	terms := []Term{
		{Term: "apple", Definition: "a fruit"},
		{Term: "apple", Definition: "a tech company"},
	}

	_, err := Sample(terms, 10, MinClozeTerms, rng)

	require.Error(t, err)
	assert.True(t, IsDuplicateTerm(err))
}

func TestSample_DoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	original := testTerms(8)
	input := make([]Term, len(original))
	copy(input, original)

	_, err := Sample(input, 5, MinClozeTerms, rng)

	require.NoError(t, err)
	assert.Equal(t, original, input)
}

func TestSample_DeterministicWithSeed(t *testing.T) {
	first, err := Sample(testTerms(10), 5, MinClozeTerms, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	second, err := Sample(testTerms(10), 5, MinClozeTerms, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
