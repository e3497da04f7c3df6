package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vocadrill/practice-service/internal/cache"
	"github.com/vocadrill/practice-service/internal/events"
	"github.com/vocadrill/practice-service/internal/exercise"
	"github.com/vocadrill/practice-service/internal/generation"
	"github.com/vocadrill/practice-service/internal/models"
	"github.com/vocadrill/practice-service/internal/repositories"
	"github.com/vocadrill/practice-service/internal/utils"
)

// Defaults for exercise shaping. Limits bound how many terms one instance
// can pull from a large set.
const (
	DefaultTermLimit = 10
	MaxTermLimit     = 30

	matchBoardWidth    = 600
	matchBoardHeight   = 600
	matchMinSeparation = 15
)

const eventSource = "practice-service"
const eventVersion = "1"

// ExerciseService runs the practice flow: start builds an instance and
// parks its answer key in the cache; submit scores the learner's responses
// against that key, persists the result and emits the analytics event.
type ExerciseService interface {
	Start(ctx context.Context, req *StartExerciseRequest, userID string) (*ExerciseResponse, error)
	Submit(ctx context.Context, exerciseID string, req *SubmitRequest, userID string) (*exercise.ScoreResult, error)
	ListResults(ctx context.Context, userID string, filters repositories.PracticeResultFilters) ([]*models.PracticeResult, int64, error)
}

type StartExerciseRequest struct {
	SetID uint   `json:"set_id" validate:"required"`
	Type  string `json:"type" validate:"required,exercise_type"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=30"`
}

type SubmitRequest struct {
	Responses map[string]string `json:"responses" validate:"required"`
}

// ExerciseResponse is the learner-facing instance. Answer key material is
// stripped: cloze blanks are exposed as ids only, quiz questions carry no
// correct-answer field, and match cards show a single label per role.
type ExerciseResponse struct {
	ExerciseID string                `json:"exercise_id"`
	SetID      uint                  `json:"set_id"`
	Type       exercise.ExerciseType `json:"type"`
	ExpiresAt  time.Time             `json:"expires_at"`

	Cloze *ClozeView `json:"cloze,omitempty"`
	Quiz  *QuizView  `json:"quiz,omitempty"`
	Match *MatchView `json:"match,omitempty"`
}

type ClozeView struct {
	Passage  string   `json:"passage"`
	BlankIDs []string `json:"blank_ids"`
	// Dropped reports terms the passage did not cover; the client may
	// offer to regenerate instead of presenting a shorter exercise.
	Dropped []string `json:"dropped,omitempty"`
}

type MCQuestionView struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type DDQuestionView struct {
	ID         string `json:"id"`
	Definition string `json:"definition"`
}

type QuizView struct {
	MultipleChoice []MCQuestionView `json:"multiple_choice"`
	DragDrop       []DDQuestionView `json:"drag_drop"`
	// TermBank is the shuffled pool of draggable terms for the drag-drop
	// section.
	TermBank []string `json:"term_bank"`
}

type MatchCardView struct {
	ID       string            `json:"id"`
	Role     exercise.CardRole `json:"role"`
	Label    string            `json:"label"`
	Position exercise.Point    `json:"position"`
}

type MatchView struct {
	Cards []MatchCardView `json:"cards"`
}

// cachedExercise is what start parks in Redis until submission.
type cachedExercise struct {
	ExerciseID string                `json:"exercise_id"`
	SetID      uint                  `json:"set_id"`
	UserID     string                `json:"user_id"`
	Language   string                `json:"language"`
	Type       exercise.ExerciseType `json:"type"`
	Key        exercise.AnswerKey    `json:"key"`
	Dropped    []string              `json:"dropped,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

type exerciseService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	generator generation.PassageGenerator
	publisher events.EventPublisher
	validator *utils.Validator
	logger    utils.Logger
	ttl       time.Duration

	// newRNG is swapped for a seeded source in tests.
	newRNG func() *rand.Rand
}

func NewExerciseService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	generator generation.PassageGenerator,
	publisher events.EventPublisher,
	validator *utils.Validator,
	logger utils.Logger,
	ttl time.Duration,
) ExerciseService {
	return &exerciseService{
		repo:      repo,
		cache:     cacheService,
		generator: generator,
		publisher: publisher,
		validator: validator,
		logger:    logger,
		ttl:       ttl,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func (s *exerciseService) Start(ctx context.Context, req *StartExerciseRequest, userID string) (*ExerciseResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	set, err := s.loadSet(ctx, req.SetID, userID)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultTermLimit
	}

	exerciseID := uuid.NewString()
	exerciseType := exercise.ExerciseType(req.Type)
	rng := s.newRNG()

	response := &ExerciseResponse{
		ExerciseID: exerciseID,
		SetID:      set.ID,
		Type:       exerciseType,
		ExpiresAt:  time.Now().Add(s.ttl),
	}
	cached := cachedExercise{
		ExerciseID: exerciseID,
		SetID:      set.ID,
		UserID:     userID,
		Language:   set.Language,
		Type:       exerciseType,
		CreatedAt:  time.Now(),
	}

	switch exerciseType {
	case exercise.TypeCloze:
		view, key, dropped, err := s.buildCloze(ctx, set, limit, rng)
		if err != nil {
			return nil, err
		}
		response.Cloze = view
		cached.Key = key
		cached.Dropped = dropped

	case exercise.TypeQuiz:
		view, key, err := s.buildQuiz(set, limit, rng)
		if err != nil {
			return nil, err
		}
		response.Quiz = view
		cached.Key = key

	case exercise.TypeMatch:
		view, key, err := s.buildMatch(set, limit, rng)
		if err != nil {
			return nil, err
		}
		response.Match = view
		cached.Key = key

	default:
		return nil, NewValidationError("type", "unknown exercise type", req.Type)
	}

	if err := s.cache.Set(ctx, exerciseKey(exerciseID), cached, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store exercise instance: %w", err)
	}

	s.publishEvent(ctx, events.EventExerciseStarted, &events.ExerciseStartedEvent{
		ExerciseID: exerciseID,
		SetID:      set.ID,
		UserID:     userID,
		Type:       exerciseType,
		TermCount:  len(cached.Key.Items),
		StartedAt:  cached.CreatedAt,
	})
	if len(cached.Dropped) > 0 {
		s.publishEvent(ctx, events.EventPassageUnderCoverage, &events.PassageUnderCoverageEvent{
			ExerciseID:   exerciseID,
			SetID:        set.ID,
			Language:     set.Language,
			DroppedTerms: cached.Dropped,
		})
	}

	s.logger.InfoContext(ctx, "Exercise started",
		"exercise_id", exerciseID,
		"set_id", set.ID,
		"type", exerciseType,
		"item_count", len(cached.Key.Items))
	return response, nil
}

func (s *exerciseService) Submit(ctx context.Context, exerciseID string, req *SubmitRequest, userID string) (*exercise.ScoreResult, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	var cached cachedExercise
	if err := s.cache.Get(ctx, exerciseKey(exerciseID), &cached); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("failed to load exercise instance: %w", err)
	}
	if cached.UserID != userID {
		return nil, ErrExerciseAccessDenied
	}

	score := exercise.Score(cached.Key, exercise.ResponseSet(req.Responses))

	result, err := models.NewPracticeResult(exerciseID, cached.SetID, userID, cached.Type, score, cached.Dropped)
	if err != nil {
		return nil, fmt.Errorf("failed to build practice result: %w", err)
	}
	if err := s.repo.PracticeResult().Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to persist practice result: %w", err)
	}

	// The instance is single-submission; drop it so a replay starts fresh.
	if err := s.cache.Delete(ctx, exerciseKey(exerciseID)); err != nil {
		s.logger.WarnContext(ctx, "Failed to evict submitted exercise", "exercise_id", exerciseID, "error", err)
	}

	s.publishEvent(ctx, events.EventExerciseCompleted, &events.ExerciseCompletedEvent{
		ExerciseID:   exerciseID,
		SetID:        cached.SetID,
		UserID:       userID,
		Type:         cached.Type,
		CorrectCount: score.CorrectCount,
		TotalCount:   score.TotalCount,
		SubmittedAt:  result.SubmittedAt,
	})

	s.logger.InfoContext(ctx, "Exercise submitted",
		"exercise_id", exerciseID,
		"correct", score.CorrectCount,
		"total", score.TotalCount)
	return &score, nil
}

func (s *exerciseService) ListResults(ctx context.Context, userID string, filters repositories.PracticeResultFilters) ([]*models.PracticeResult, int64, error) {
	filters.UserID = &userID
	return s.repo.PracticeResult().List(ctx, filters)
}

// ===== INSTANCE BUILDERS =====

func (s *exerciseService) buildCloze(ctx context.Context, set *models.VocabularySet, limit int, rng *rand.Rand) (*ClozeView, exercise.AnswerKey, []string, error) {
	sampled, err := exercise.Sample(set.ExerciseTerms(), limit, exercise.MinClozeTerms, rng)
	if err != nil {
		return nil, exercise.AnswerKey{}, nil, err
	}

	termStrings := make([]string, 0, len(sampled))
	for _, t := range sampled {
		termStrings = append(termStrings, t.Term)
	}

	passage, err := s.generator.GeneratePassage(ctx, set.Language, termStrings)
	if err != nil {
		return nil, exercise.AnswerKey{}, nil, err
	}

	instance, key := exercise.BuildCloze(passage, sampled)

	blankIDs := make([]string, 0, len(key.Items))
	for _, item := range key.Items {
		blankIDs = append(blankIDs, item.ItemID)
	}
	view := &ClozeView{
		Passage:  instance.Passage,
		BlankIDs: blankIDs,
		Dropped:  instance.Dropped,
	}
	return view, key, instance.Dropped, nil
}

func (s *exerciseService) buildQuiz(set *models.VocabularySet, limit int, rng *rand.Rand) (*QuizView, exercise.AnswerKey, error) {
	sampled, err := exercise.Sample(set.ExerciseTerms(), limit, exercise.MinQuizTerms, rng)
	if err != nil {
		return nil, exercise.AnswerKey{}, err
	}

	instance, key, err := exercise.BuildQuiz(sampled, exercise.DefaultSplitRatio, rng)
	if err != nil {
		return nil, exercise.AnswerKey{}, err
	}

	view := &QuizView{
		MultipleChoice: make([]MCQuestionView, 0, len(instance.MultipleChoice)),
		DragDrop:       make([]DDQuestionView, 0, len(instance.DragDrop)),
		TermBank:       make([]string, 0, len(instance.DragDrop)),
	}
	for _, q := range instance.MultipleChoice {
		view.MultipleChoice = append(view.MultipleChoice, MCQuestionView{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Options: q.Options,
		})
	}
	for _, q := range instance.DragDrop {
		view.DragDrop = append(view.DragDrop, DDQuestionView{ID: q.ID, Definition: q.Definition})
		view.TermBank = append(view.TermBank, q.CorrectAnswer)
	}
	rng.Shuffle(len(view.TermBank), func(i, j int) {
		view.TermBank[i], view.TermBank[j] = view.TermBank[j], view.TermBank[i]
	})
	return view, key, nil
}

func (s *exerciseService) buildMatch(set *models.VocabularySet, limit int, rng *rand.Rand) (*MatchView, exercise.AnswerKey, error) {
	sampled, err := exercise.Sample(set.ExerciseTerms(), limit, exercise.MinMatchTerms, rng)
	if err != nil {
		return nil, exercise.AnswerKey{}, err
	}

	bounds := exercise.Rect{Width: matchBoardWidth, Height: matchBoardHeight}
	instance, key := exercise.BuildMatch(sampled, bounds, matchMinSeparation, rng)

	view := &MatchView{Cards: make([]MatchCardView, 0, len(instance.Cards))}
	for i, c := range instance.Cards {
		label := c.Term
		if c.Role == exercise.RoleDefinition {
			label = c.Definition
		}
		view.Cards = append(view.Cards, MatchCardView{
			ID:       fmt.Sprintf("card-%d", i),
			Role:     c.Role,
			Label:    label,
			Position: c.Position,
		})
	}
	return view, key, nil
}

// ===== HELPERS =====

func (s *exerciseService) loadSet(ctx context.Context, setID uint, userID string) (*models.VocabularySet, error) {
	set, err := s.repo.VocabularySet().GetByIDWithTerms(ctx, setID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("failed to get vocabulary set: %w", err)
	}
	if set.OwnerID != userID {
		return nil, ErrSetAccessDenied
	}
	if len(set.Terms) == 0 {
		return nil, ErrSetEmpty
	}
	return set, nil
}

func (s *exerciseService) publishEvent(ctx context.Context, eventType events.EventType, data interface{}) {
	event := &events.PracticeEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
	if err := s.publisher.PublishPracticeEvent(ctx, event); err != nil {
		// Analytics loss is not worth failing the learner's request.
		s.logger.ErrorContext(ctx, "Failed to publish practice event",
			"event_type", eventType,
			"error", err)
	}
}

func exerciseKey(exerciseID string) string {
	return "exercise:" + exerciseID
}
