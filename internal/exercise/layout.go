package exercise

import (
	"math"
	"math/rand"
)

// layoutMaxAttempts caps rejection sampling per point. When exhausted the
// last candidate is accepted regardless of overlap; callers tolerate
// occasional visual overlap on dense boards.
const layoutMaxAttempts = 100

// PlanLayout assigns n board positions by rejection sampling. Candidates
// are drawn uniformly within bounds inset by minSeparation on every edge to
// avoid edge clipping. A candidate is rejected only when it is within
// minSeparation of an accepted point in BOTH axes simultaneously — an
// axis-aligned box exclusion, not a circular one.
//
// For n small relative to the board area the separation constraint holds
// with high probability; no guarantee is made as density increases.
func PlanLayout(n int, bounds Rect, minSeparation float64, rng *rand.Rand) []Point {
	inset := minSeparation
	usableW := bounds.Width - 2*inset
	usableH := bounds.Height - 2*inset
	if usableW < 0 {
		usableW = 0
	}
	if usableH < 0 {
		usableH = 0
	}

	points := make([]Point, 0, n)
	for len(points) < n {
		var candidate Point
		for attempt := 0; attempt < layoutMaxAttempts; attempt++ {
			candidate = Point{
				X: inset + rng.Float64()*usableW,
				Y: inset + rng.Float64()*usableH,
			}
			if !collides(candidate, points, minSeparation) {
				break
			}
		}
		points = append(points, candidate)
	}
	return points
}

func collides(candidate Point, accepted []Point, minSeparation float64) bool {
	for _, p := range accepted {
		if math.Abs(candidate.X-p.X) < minSeparation && math.Abs(candidate.Y-p.Y) < minSeparation {
			return true
		}
	}
	return false
}

// BuildMatch lays out two cards per vocabulary item and pairs the instance
// with its answer key. Item identity is the term string; the correct answer
// is the paired definition.
func BuildMatch(terms []Term, bounds Rect, minSeparation float64, rng *rand.Rand) (MatchInstance, AnswerKey) {
	points := PlanLayout(2*len(terms), bounds, minSeparation, rng)

	instance := MatchInstance{Cards: make([]MatchCard, 0, 2*len(terms))}
	key := AnswerKey{Items: make([]KeyItem, 0, len(terms))}

	for i, t := range terms {
		instance.Cards = append(instance.Cards,
			MatchCard{Term: t.Term, Definition: t.Definition, Role: RoleTerm, Position: points[2*i]},
			MatchCard{Term: t.Term, Definition: t.Definition, Role: RoleDefinition, Position: points[2*i+1]},
		)
		key.Items = append(key.Items, KeyItem{ItemID: t.Term, CorrectAnswer: t.Definition})
	}
	return instance, key
}
