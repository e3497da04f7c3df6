package services

import (
	"time"

	"github.com/vocadrill/practice-service/internal/cache"
	"github.com/vocadrill/practice-service/internal/events"
	"github.com/vocadrill/practice-service/internal/generation"
	"github.com/vocadrill/practice-service/internal/repositories"
	"github.com/vocadrill/practice-service/internal/utils"
)

// ServiceManager bundles the services behind one dependency for the
// handlers.
type ServiceManager interface {
	Vocabulary() VocabularyService
	Exercise() ExerciseService
	ImportExport() ImportExportService
}

type serviceManager struct {
	vocabulary   VocabularyService
	exercise     ExerciseService
	importExport ImportExportService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	generator generation.PassageGenerator,
	publisher events.EventPublisher,
	validator *utils.Validator,
	logger utils.Logger,
	exerciseTTL time.Duration,
) ServiceManager {
	return &serviceManager{
		vocabulary:   NewVocabularyService(repo, validator, logger),
		exercise:     NewExerciseService(repo, cacheService, generator, publisher, validator, logger, exerciseTTL),
		importExport: NewImportExportService(repo, validator, logger),
	}
}

func (m *serviceManager) Vocabulary() VocabularyService     { return m.vocabulary }
func (m *serviceManager) Exercise() ExerciseService         { return m.exercise }
func (m *serviceManager) ImportExport() ImportExportService { return m.importExport }
