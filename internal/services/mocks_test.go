package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vocadrill/practice-service/internal/cache"
	"github.com/vocadrill/practice-service/internal/generation"
	"github.com/vocadrill/practice-service/internal/models"
	"github.com/vocadrill/practice-service/internal/repositories"
	"github.com/vocadrill/practice-service/internal/utils"
)

var errGenerationStub = fmt.Errorf("%w: provider unavailable", generation.ErrGenerationFailed)

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testValidator(t *testing.T) *utils.Validator {
	t.Helper()
	return utils.NewValidator()
}

// MockVocabularySetRepository is a mock implementation of VocabularySetRepository.
type MockVocabularySetRepository struct {
	mock.Mock
}

func (m *MockVocabularySetRepository) Create(ctx context.Context, set *models.VocabularySet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockVocabularySetRepository) GetByID(ctx context.Context, id uint) (*models.VocabularySet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularySet), args.Error(1)
}

func (m *MockVocabularySetRepository) GetByIDWithTerms(ctx context.Context, id uint) (*models.VocabularySet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularySet), args.Error(1)
}

func (m *MockVocabularySetRepository) Update(ctx context.Context, set *models.VocabularySet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockVocabularySetRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVocabularySetRepository) List(ctx context.Context, filters repositories.VocabularySetFilters) ([]*models.VocabularySet, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.VocabularySet), args.Get(1).(int64), args.Error(2)
}

func (m *MockVocabularySetRepository) ReplaceTerms(ctx context.Context, setID uint, terms []models.VocabularyTerm) error {
	args := m.Called(ctx, setID, terms)
	return args.Error(0)
}

// MockPracticeResultRepository is a mock implementation of PracticeResultRepository.
type MockPracticeResultRepository struct {
	mock.Mock
}

func (m *MockPracticeResultRepository) Create(ctx context.Context, result *models.PracticeResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockPracticeResultRepository) GetByExerciseID(ctx context.Context, exerciseID string) (*models.PracticeResult, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PracticeResult), args.Error(1)
}

func (m *MockPracticeResultRepository) List(ctx context.Context, filters repositories.PracticeResultFilters) ([]*models.PracticeResult, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.PracticeResult), args.Get(1).(int64), args.Error(2)
}

// mockRepository bundles the repository mocks.
type mockRepository struct {
	sets    *MockVocabularySetRepository
	results *MockPracticeResultRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		sets:    new(MockVocabularySetRepository),
		results: new(MockPracticeResultRepository),
	}
}

func (r *mockRepository) VocabularySet() repositories.VocabularySetRepository {
	return r.sets
}

func (r *mockRepository) PracticeResult() repositories.PracticeResultRepository {
	return r.results
}

// memoryCache is an in-memory CacheService for tests; TTLs are accepted but
// not enforced.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	payload, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// stubGenerator returns a canned passage or error.
type stubGenerator struct {
	passage string
	err     error
	calls   int
}

func (g *stubGenerator) GeneratePassage(_ context.Context, _ string, _ []string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if g.passage == "" {
		return "", errors.New("stub generator has no passage configured")
	}
	return g.passage, nil
}
