package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/vocadrill/practice-service/internal/exercise"
)

// VocabularySet is a named collection of terms owned by one user.
type VocabularySet struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Language    string  `json:"language" gorm:"not null;size:10;default:en" validate:"required,language_code"`

	// Metadata
	OwnerID   string         `json:"owner_id" gorm:"not null;size:255;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Terms []VocabularyTerm `json:"terms" gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE"`

	// Computed fields (not stored)
	TermCount int `json:"term_count" gorm:"-"`
}

// VocabularyTerm is one term/definition pair. The term string is unique
// within its set; the generator relies on that to build unambiguous answer
// keys.
type VocabularyTerm struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	SetID      uint   `json:"set_id" gorm:"not null;index;uniqueIndex:idx_set_term,priority:1"`
	Term       string `json:"term" gorm:"not null;size:200;uniqueIndex:idx_set_term,priority:2" validate:"required,min=1,max=200"`
	Definition string `json:"definition" gorm:"not null;type:text" validate:"required,min=1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExerciseTerms converts a set's stored terms into the value type consumed
// by the exercise generators.
func (s *VocabularySet) ExerciseTerms() []exercise.Term {
	terms := make([]exercise.Term, 0, len(s.Terms))
	for _, t := range s.Terms {
		terms = append(terms, exercise.Term{
			Term:       t.Term,
			Definition: t.Definition,
			Language:   s.Language,
		})
	}
	return terms
}
