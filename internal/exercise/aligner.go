package exercise

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Placeholder is the token substituted for a blanked term in a cloze
// passage.
const Placeholder = "_____"

type wordSpan struct {
	start int // byte offset of the first rune
	end   int // byte offset one past the last rune
	lower string
}

// tokenize segments the passage into word spans once, so term matching can
// work on token runs instead of regex word boundaries. A word is a maximal
// run of letters, digits, apostrophes and hyphens.
func tokenize(passage string) []wordSpan {
	var spans []wordSpan
	start := -1
	for i, r := range passage {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, wordSpan{start: start, end: i, lower: strings.ToLower(passage[start:i])})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, wordSpan{start: start, end: len(passage), lower: strings.ToLower(passage[start:])})
	}
	return spans
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’' || r == '-'
}

type blankMatch struct {
	start int
	end   int
	term  string
}

// AlignBlanks replaces the first unconsumed whole-word occurrence of each
// term with Placeholder and returns the resulting passage together with the
// ordered answer key.
//
// Terms are processed longest-first so that a term which is a substring of
// another ("run" inside "running") can never consume part of the longer
// term's occurrence. Matching is case-insensitive and token-based;
// multi-word terms match runs of consecutive tokens. Blanks are numbered by
// their order of appearance in the final passage, because that is the order
// the learner encounters them. Terms with no occurrence are reported in
// Dropped so the caller can detect under-coverage; the exercise still
// proceeds with the terms actually blanked.
func AlignBlanks(passage string, terms []string) ClozeInstance {
	tokens := tokenize(passage)
	consumed := make([]bool, len(tokens))

	byLength := make([]string, len(terms))
	copy(byLength, terms)
	sort.SliceStable(byLength, func(i, j int) bool {
		return len([]rune(byLength[i])) > len([]rune(byLength[j]))
	})

	var matches []blankMatch
	var dropped []string

	for _, term := range byLength {
		words := strings.Fields(strings.ToLower(term))
		if len(words) == 0 {
			dropped = append(dropped, term)
			continue
		}

		found := false
		for i := 0; i+len(words) <= len(tokens); i++ {
			if !matchesAt(tokens, consumed, i, words) {
				continue
			}
			for j := range words {
				consumed[i+j] = true
			}
			matches = append(matches, blankMatch{
				start: tokens[i].start,
				end:   tokens[i+len(words)-1].end,
				term:  term,
			})
			found = true
			break
		}
		if !found {
			dropped = append(dropped, term)
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	var sb strings.Builder
	blanks := make([]BlankSpec, 0, len(matches))
	prev := 0
	for i, m := range matches {
		sb.WriteString(passage[prev:m.start])
		sb.WriteString(Placeholder)
		prev = m.end
		blanks = append(blanks, BlankSpec{Position: i, CorrectAnswer: m.term})
	}
	sb.WriteString(passage[prev:])

	return ClozeInstance{Passage: sb.String(), Blanks: blanks, Dropped: dropped}
}

func matchesAt(tokens []wordSpan, consumed []bool, i int, words []string) bool {
	for j, w := range words {
		if consumed[i+j] || tokens[i+j].lower != w {
			return false
		}
	}
	return true
}

// BuildCloze pairs a ClozeInstance with its AnswerKey. Blank identities are
// the textual blank positions.
func BuildCloze(passage string, terms []Term) (ClozeInstance, AnswerKey) {
	strs := make([]string, len(terms))
	for i, t := range terms {
		strs[i] = t.Term
	}

	instance := AlignBlanks(passage, strs)
	key := AnswerKey{Items: make([]KeyItem, 0, len(instance.Blanks))}
	for _, b := range instance.Blanks {
		key.Items = append(key.Items, KeyItem{ItemID: blankID(b.Position), CorrectAnswer: b.CorrectAnswer})
	}
	return instance, key
}

func blankID(position int) string {
	return "blank-" + strconv.Itoa(position)
}
