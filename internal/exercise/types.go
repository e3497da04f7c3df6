package exercise

// ExerciseType identifies one of the three practice modes.
type ExerciseType string

const (
	TypeCloze ExerciseType = "cloze"
	TypeQuiz  ExerciseType = "quiz"
	TypeMatch ExerciseType = "match"
)

// Minimum vocabulary sizes per exercise type. A quiz needs the correct
// definition plus DistractorCount incorrect ones, hence DistractorCount+1.
const (
	MinClozeTerms = 1
	MinQuizTerms  = DistractorCount + 1
	MinMatchTerms = 1
)

// Term is one vocabulary entry as supplied by the set-management service.
// The term string is the unique key within a single exercise instance.
type Term struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Language   string `json:"language"`
}

// BlankSpec describes one blank in a cloze passage. Position is the blank's
// ordinal in textual order, not the term's position in the input list.
type BlankSpec struct {
	Position      int    `json:"position"`
	CorrectAnswer string `json:"correct_answer"`
}

// ClozeInstance is a passage with term occurrences replaced by placeholders.
// Dropped lists terms that had no whole-word occurrence in the passage and
// were therefore left out of the answer key.
type ClozeInstance struct {
	Passage string      `json:"passage"`
	Blanks  []BlankSpec `json:"blanks"`
	Dropped []string    `json:"dropped,omitempty"`
}

// MCQuestion is a four-option multiple-choice question. Options always
// contains CorrectAnswer exactly once.
type MCQuestion struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// DDQuestion is a drag-and-drop item: the learner drags the matching term
// onto the shown definition.
type DDQuestion struct {
	ID            string `json:"id"`
	Definition    string `json:"definition"`
	CorrectAnswer string `json:"correct_answer"`
}

// QuizInstance is the mixed quiz variant.
type QuizInstance struct {
	MultipleChoice []MCQuestion `json:"multiple_choice"`
	DragDrop       []DDQuestion `json:"drag_drop"`
}

// CardRole distinguishes the two halves of a matching pair.
type CardRole string

const (
	RoleTerm       CardRole = "term"
	RoleDefinition CardRole = "definition"
)

// Point is a 2-D board coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is the usable board area for the matching game.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MatchCard is one card on the matching board. Each vocabulary item yields
// two cards, one per role, sharing the same Term/Definition pair.
type MatchCard struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Role       CardRole `json:"role"`
	Position   Point    `json:"position"`
}

// MatchInstance is the spatial matching variant.
type MatchInstance struct {
	Cards []MatchCard `json:"cards"`
}

// KeyItem maps one item identity to its correct answer.
type KeyItem struct {
	ItemID        string `json:"item_id"`
	CorrectAnswer string `json:"correct_answer"`
}

// AnswerKey is the authoritative, ordered answer list for an instance. Its
// identity space is exactly the identity space exposed by the paired
// instance; there are never orphan keys.
type AnswerKey struct {
	Items []KeyItem `json:"items"`
}

// ResponseSet holds learner answers keyed by item identity. Partial
// submissions are fine; absent items count as incorrect at scoring time.
type ResponseSet map[string]string

// ItemResult is the per-item breakdown used to render the review pass.
type ItemResult struct {
	ItemID        string `json:"item_id"`
	Given         string `json:"given"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// ScoreResult is the outcome of reconciling a ResponseSet against an
// AnswerKey.
type ScoreResult struct {
	CorrectCount int          `json:"correct_count"`
	TotalCount   int          `json:"total_count"`
	PerItem      []ItemResult `json:"per_item"`
}
