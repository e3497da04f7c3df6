package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vocadrill/practice-service/internal/models"
	"github.com/vocadrill/practice-service/internal/repositories"
)

type PracticeResultPostgreSQL struct {
	db *gorm.DB
}

func NewPracticeResultPostgreSQL(db *gorm.DB) repositories.PracticeResultRepository {
	return &PracticeResultPostgreSQL{db: db}
}

func (r *PracticeResultPostgreSQL) Create(ctx context.Context, result *models.PracticeResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to store practice result: %w", err)
	}
	return nil
}

func (r *PracticeResultPostgreSQL) GetByExerciseID(ctx context.Context, exerciseID string) (*models.PracticeResult, error) {
	var result models.PracticeResult
	if err := r.db.WithContext(ctx).Where("exercise_id = ?", exerciseID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *PracticeResultPostgreSQL) List(ctx context.Context, filters repositories.PracticeResultFilters) ([]*models.PracticeResult, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PracticeResult{})

	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.SetID != nil {
		query = query.Where("set_id = ?", *filters.SetID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count practice results: %w", err)
	}

	query = query.Order("submitted_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var results []*models.PracticeResult
	if err := query.Find(&results).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list practice results: %w", err)
	}
	return results, total, nil
}

// gormRepository implements repositories.Repository over one gorm handle.
type gormRepository struct {
	sets    repositories.VocabularySetRepository
	results repositories.PracticeResultRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		sets:    NewVocabularySetPostgreSQL(db),
		results: NewPracticeResultPostgreSQL(db),
	}
}

func (r *gormRepository) VocabularySet() repositories.VocabularySetRepository {
	return r.sets
}

func (r *gormRepository) PracticeResult() repositories.PracticeResultRepository {
	return r.results
}
