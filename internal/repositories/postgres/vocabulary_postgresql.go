package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vocadrill/practice-service/internal/models"
	"github.com/vocadrill/practice-service/internal/repositories"
)

type VocabularySetPostgreSQL struct {
	db *gorm.DB
}

func NewVocabularySetPostgreSQL(db *gorm.DB) repositories.VocabularySetRepository {
	return &VocabularySetPostgreSQL{db: db}
}

func (r *VocabularySetPostgreSQL) Create(ctx context.Context, set *models.VocabularySet) error {
	if err := r.db.WithContext(ctx).Create(set).Error; err != nil {
		return fmt.Errorf("failed to create vocabulary set: %w", err)
	}
	return nil
}

func (r *VocabularySetPostgreSQL) GetByID(ctx context.Context, id uint) (*models.VocabularySet, error) {
	var set models.VocabularySet
	if err := r.db.WithContext(ctx).First(&set, id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *VocabularySetPostgreSQL) GetByIDWithTerms(ctx context.Context, id uint) (*models.VocabularySet, error) {
	var set models.VocabularySet
	err := r.db.WithContext(ctx).
		Preload("Terms", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&set, id).Error
	if err != nil {
		return nil, err
	}
	set.TermCount = len(set.Terms)
	return &set, nil
}

func (r *VocabularySetPostgreSQL) Update(ctx context.Context, set *models.VocabularySet) error {
	if err := r.db.WithContext(ctx).Save(set).Error; err != nil {
		return fmt.Errorf("failed to update vocabulary set: %w", err)
	}
	return nil
}

func (r *VocabularySetPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.VocabularySet{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete vocabulary set: %w", err)
	}
	return nil
}

func (r *VocabularySetPostgreSQL) List(ctx context.Context, filters repositories.VocabularySetFilters) ([]*models.VocabularySet, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.VocabularySet{})

	if filters.OwnerID != nil {
		query = query.Where("owner_id = ?", *filters.OwnerID)
	}
	if filters.Language != nil {
		query = query.Where("language = ?", *filters.Language)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vocabulary sets: %w", err)
	}

	sortBy := filters.SortBy
	if sortBy != "title" && sortBy != "updated_at" {
		sortBy = "created_at"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var sets []*models.VocabularySet
	if err := query.Find(&sets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list vocabulary sets: %w", err)
	}
	return sets, total, nil
}

// ReplaceTerms swaps a set's terms atomically, used by imports and full-set
// edits.
func (r *VocabularySetPostgreSQL) ReplaceTerms(ctx context.Context, setID uint, terms []models.VocabularyTerm) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_id = ?", setID).Delete(&models.VocabularyTerm{}).Error; err != nil {
			return fmt.Errorf("failed to clear existing terms: %w", err)
		}
		for i := range terms {
			terms[i].ID = 0
			terms[i].SetID = setID
		}
		if len(terms) > 0 {
			if err := tx.Create(&terms).Error; err != nil {
				return fmt.Errorf("failed to insert terms: %w", err)
			}
		}
		return nil
	})
}
