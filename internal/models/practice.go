package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/vocadrill/practice-service/internal/exercise"
)

// PracticeResult is the persisted outcome of one scored exercise
// submission. The in-flight instance itself is never persisted; it lives in
// the cache until submitted or expired.
type PracticeResult struct {
	ID         uint                  `json:"id" gorm:"primaryKey"`
	ExerciseID string                `json:"exercise_id" gorm:"not null;size:36;uniqueIndex"`
	SetID      uint                  `json:"set_id" gorm:"not null;index"`
	UserID     string                `json:"user_id" gorm:"not null;size:255;index"`
	Type       exercise.ExerciseType `json:"type" gorm:"not null;size:10"`

	CorrectCount int `json:"correct_count" gorm:"not null"`
	TotalCount   int `json:"total_count" gorm:"not null"`

	// Per-item review breakdown and any terms the aligner dropped, stored
	// as JSONB for the dashboard and analytics consumers.
	Breakdown    datatypes.JSON `json:"breakdown" gorm:"type:jsonb"`
	DroppedTerms datatypes.JSON `json:"dropped_terms,omitempty" gorm:"type:jsonb"`

	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPracticeResult builds the persisted row from a score result.
func NewPracticeResult(exerciseID string, setID uint, userID string, exerciseType exercise.ExerciseType, score exercise.ScoreResult, dropped []string) (*PracticeResult, error) {
	breakdown, err := json.Marshal(score.PerItem)
	if err != nil {
		return nil, err
	}

	result := &PracticeResult{
		ExerciseID:   exerciseID,
		SetID:        setID,
		UserID:       userID,
		Type:         exerciseType,
		CorrectCount: score.CorrectCount,
		TotalCount:   score.TotalCount,
		Breakdown:    breakdown,
		SubmittedAt:  time.Now(),
	}

	if len(dropped) > 0 {
		droppedJSON, err := json.Marshal(dropped)
		if err != nil {
			return nil, err
		}
		result.DroppedTerms = droppedJSON
	}
	return result, nil
}
