package services

import (
	"context"
	"fmt"

	"github.com/vocadrill/practice-service/internal/models"
	"github.com/vocadrill/practice-service/internal/repositories"
	"github.com/vocadrill/practice-service/internal/utils"
)

// VocabularyService manages vocabulary sets and their terms.
type VocabularyService interface {
	Create(ctx context.Context, req *CreateSetRequest, ownerID string) (*models.VocabularySet, error)
	GetByID(ctx context.Context, id uint, userID string) (*models.VocabularySet, error)
	Update(ctx context.Context, id uint, req *UpdateSetRequest, userID string) (*models.VocabularySet, error)
	Delete(ctx context.Context, id uint, userID string) error
	List(ctx context.Context, ownerID string, filters repositories.VocabularySetFilters) ([]*models.VocabularySet, int64, error)
}

type CreateSetRequest struct {
	Title       string        `json:"title" validate:"required,min=1,max=200"`
	Description *string       `json:"description" validate:"omitempty,max=1000"`
	Language    string        `json:"language" validate:"required,language_code"`
	Terms       []TermRequest `json:"terms" validate:"required,min=1,dive"`
}

type UpdateSetRequest struct {
	Title       *string       `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string       `json:"description" validate:"omitempty,max=1000"`
	Terms       []TermRequest `json:"terms" validate:"omitempty,min=1,dive"`
}

type TermRequest struct {
	Term       string `json:"term" validate:"required,min=1,max=200"`
	Definition string `json:"definition" validate:"required,min=1"`
}

type vocabularyService struct {
	repo      repositories.Repository
	validator *utils.Validator
	logger    utils.Logger
}

func NewVocabularyService(repo repositories.Repository, validator *utils.Validator, logger utils.Logger) VocabularyService {
	return &vocabularyService{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

func (s *vocabularyService) Create(ctx context.Context, req *CreateSetRequest, ownerID string) (*models.VocabularySet, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validateUniqueTerms(req.Terms); err != nil {
		return nil, err
	}

	set := &models.VocabularySet{
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		OwnerID:     ownerID,
		Terms:       toTermModels(req.Terms),
	}

	if err := s.repo.VocabularySet().Create(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to create vocabulary set: %w", err)
	}

	s.logger.InfoContext(ctx, "Vocabulary set created",
		"set_id", set.ID,
		"owner_id", ownerID,
		"term_count", len(set.Terms))
	set.TermCount = len(set.Terms)
	return set, nil
}

func (s *vocabularyService) GetByID(ctx context.Context, id uint, userID string) (*models.VocabularySet, error) {
	set, err := s.repo.VocabularySet().GetByIDWithTerms(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("failed to get vocabulary set: %w", err)
	}
	if set.OwnerID != userID {
		return nil, ErrSetAccessDenied
	}
	return set, nil
}

func (s *vocabularyService) Update(ctx context.Context, id uint, req *UpdateSetRequest, userID string) (*models.VocabularySet, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	set, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		set.Title = *req.Title
	}
	if req.Description != nil {
		set.Description = req.Description
	}

	if err := s.repo.VocabularySet().Update(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to update vocabulary set: %w", err)
	}

	if req.Terms != nil {
		if err := validateUniqueTerms(req.Terms); err != nil {
			return nil, err
		}
		if err := s.repo.VocabularySet().ReplaceTerms(ctx, set.ID, toTermModels(req.Terms)); err != nil {
			return nil, fmt.Errorf("failed to replace terms: %w", err)
		}
	}

	return s.GetByID(ctx, id, userID)
}

func (s *vocabularyService) Delete(ctx context.Context, id uint, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repo.VocabularySet().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vocabulary set: %w", err)
	}
	s.logger.InfoContext(ctx, "Vocabulary set deleted", "set_id", id, "user_id", userID)
	return nil
}

func (s *vocabularyService) List(ctx context.Context, ownerID string, filters repositories.VocabularySetFilters) ([]*models.VocabularySet, int64, error) {
	filters.OwnerID = &ownerID
	return s.repo.VocabularySet().List(ctx, filters)
}

// validateUniqueTerms rejects duplicate term strings at the boundary, so
// the generator never sees an ambiguous vocabulary.
func validateUniqueTerms(terms []TermRequest) error {
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if _, dup := seen[t.Term]; dup {
			return NewValidationError("terms", fmt.Sprintf("duplicate term %q", t.Term), t.Term)
		}
		seen[t.Term] = struct{}{}
	}
	return nil
}

func toTermModels(terms []TermRequest) []models.VocabularyTerm {
	out := make([]models.VocabularyTerm, 0, len(terms))
	for _, t := range terms {
		out = append(out, models.VocabularyTerm{Term: t.Term, Definition: t.Definition})
	}
	return out
}
