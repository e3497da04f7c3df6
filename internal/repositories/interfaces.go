package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vocadrill/practice-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type VocabularySetFilters struct {
	OwnerID   *string `json:"owner_id"`
	Language  *string `json:"language"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`    // "created_at", "title"
	SortOrder string  `json:"sort_order"` // "asc", "desc"
}

type PracticeResultFilters struct {
	UserID *string `json:"user_id"`
	SetID  *uint   `json:"set_id"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type VocabularySetRepository interface {
	Create(ctx context.Context, set *models.VocabularySet) error
	GetByID(ctx context.Context, id uint) (*models.VocabularySet, error)
	GetByIDWithTerms(ctx context.Context, id uint) (*models.VocabularySet, error)
	Update(ctx context.Context, set *models.VocabularySet) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters VocabularySetFilters) ([]*models.VocabularySet, int64, error)
	ReplaceTerms(ctx context.Context, setID uint, terms []models.VocabularyTerm) error
}

type PracticeResultRepository interface {
	Create(ctx context.Context, result *models.PracticeResult) error
	GetByExerciseID(ctx context.Context, exerciseID string) (*models.PracticeResult, error)
	List(ctx context.Context, filters PracticeResultFilters) ([]*models.PracticeResult, int64, error)
}

// Repository bundles all repositories behind one dependency.
type Repository interface {
	VocabularySet() VocabularySetRepository
	PracticeResult() PracticeResultRepository
}

// IsNotFoundError reports whether err is the underlying store's "no rows"
// condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
