package exercise

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countOverlaps(points []Point, minSeparation float64) int {
	overlaps := 0
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if math.Abs(points[i].X-points[j].X) < minSeparation &&
				math.Abs(points[i].Y-points[j].Y) < minSeparation {
				overlaps++
			}
		}
	}
	return overlaps
}

func TestPlanLayout_PointCountAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	bounds := Rect{Width: 600, Height: 600}

	points := PlanLayout(20, bounds, 15, rng)

	require.Len(t, points, 20)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.X, 15.0)
		assert.GreaterOrEqual(t, p.Y, 15.0)
		assert.LessOrEqual(t, p.X, bounds.Width-15)
		assert.LessOrEqual(t, p.Y, bounds.Height-15)
	}
}

func TestPlanLayout_SeparationHoldsForSparseBoards(t *testing.T) {
	// Probabilistic property: 10 cards on a 600x600 board with a 15 unit
	// separation should lay out without overlap in at least 95% of trials.
	const trials = 200
	bounds := Rect{Width: 600, Height: 600}

	clean := 0
	for seed := int64(0); seed < trials; seed++ {
		points := PlanLayout(10, bounds, 15, rand.New(rand.NewSource(seed)))
		if countOverlaps(points, 15) == 0 {
			clean++
		}
	}

	assert.GreaterOrEqual(t, clean, int(0.95*trials))
}

func TestPlanLayout_BestEffortWhenDense(t *testing.T) {
	// An impossible density must still terminate and return n points.
	rng := rand.New(rand.NewSource(23))

	points := PlanLayout(50, Rect{Width: 40, Height: 40}, 30, rng)

	assert.Len(t, points, 50)
}

func TestBuildMatch_TwoCardsPerTerm(t *testing.T) {
	rng := rand.New(rand.NewSource(25))
	terms := quizTerms(5)

	instance, key := BuildMatch(terms, Rect{Width: 600, Height: 600}, 15, rng)

	require.Len(t, instance.Cards, 10)
	require.Len(t, key.Items, 5)

	byTerm := make(map[string][]MatchCard)
	for _, c := range instance.Cards {
		byTerm[c.Term] = append(byTerm[c.Term], c)
	}
	for _, t2 := range terms {
		pair := byTerm[t2.Term]
		require.Len(t, pair, 2)
		roles := map[CardRole]bool{pair[0].Role: true, pair[1].Role: true}
		assert.True(t, roles[RoleTerm])
		assert.True(t, roles[RoleDefinition])
	}
}

func TestBuildMatch_KeyPairsTermToDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(27))
	terms := quizTerms(4)

	_, key := BuildMatch(terms, Rect{Width: 600, Height: 600}, 15, rng)

	want := make(map[string]string)
	for _, t2 := range terms {
		want[t2.Term] = t2.Definition
	}
	for _, item := range key.Items {
		assert.Equal(t, want[item.ItemID], item.CorrectAnswer)
	}
}
