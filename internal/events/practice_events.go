package events

import (
	"time"

	"github.com/vocadrill/practice-service/internal/exercise"
)

// EventType represents the analytics events emitted by the practice flow.
type EventType string

const (
	// Exercise lifecycle events
	EventExerciseStarted   EventType = "exercise.started"
	EventExerciseCompleted EventType = "exercise.completed"

	// Generation events
	EventPassageUnderCoverage EventType = "generation.under_coverage"
)

// PracticeEvent is the envelope for all practice analytics events.
type PracticeEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// ExerciseStartedEvent is emitted when a learner starts a new instance.
type ExerciseStartedEvent struct {
	ExerciseID string                `json:"exercise_id"`
	SetID      uint                  `json:"set_id"`
	UserID     string                `json:"user_id"`
	Type       exercise.ExerciseType `json:"type"`
	TermCount  int                   `json:"term_count"`
	StartedAt  time.Time             `json:"started_at"`
}

// ExerciseCompletedEvent is emitted after scoring a submission. The
// dashboard and streak services consume it.
type ExerciseCompletedEvent struct {
	ExerciseID   string                `json:"exercise_id"`
	SetID        uint                  `json:"set_id"`
	UserID       string                `json:"user_id"`
	Type         exercise.ExerciseType `json:"type"`
	CorrectCount int                   `json:"correct_count"`
	TotalCount   int                   `json:"total_count"`
	SubmittedAt  time.Time             `json:"submitted_at"`
}

// PassageUnderCoverageEvent is emitted when the aligner dropped terms from
// a cloze instance, so generation quality can be tracked per language.
type PassageUnderCoverageEvent struct {
	ExerciseID   string   `json:"exercise_id"`
	SetID        uint     `json:"set_id"`
	Language     string   `json:"language"`
	DroppedTerms []string `json:"dropped_terms"`
}
