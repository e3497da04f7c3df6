package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vocadrill/practice-service/internal/config"
	"github.com/vocadrill/practice-service/internal/services"
	"github.com/vocadrill/practice-service/internal/utils"
)

type HandlerManager struct {
	vocabularyHandler *VocabularyHandler
	exerciseHandler   *ExerciseHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		vocabularyHandler: NewVocabularyHandler(serviceManager.Vocabulary(), serviceManager.ImportExport(), logger),
		exerciseHandler:   NewExerciseHandler(serviceManager.Exercise(), logger),
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, cfg *config.Config) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(AuthMiddleware(cfg))
	{
		sets := v1.Group("/sets")
		{
			sets.POST("", hm.vocabularyHandler.CreateSet)
			sets.GET("", hm.vocabularyHandler.ListSets)
			sets.POST("/import", hm.vocabularyHandler.ImportSet)
			sets.GET("/:id", hm.vocabularyHandler.GetSet)
			sets.PUT("/:id", hm.vocabularyHandler.UpdateSet)
			sets.DELETE("/:id", hm.vocabularyHandler.DeleteSet)
			sets.GET("/:id/export", hm.vocabularyHandler.ExportSet)
		}

		exercises := v1.Group("/exercises")
		{
			exercises.POST("", hm.exerciseHandler.StartExercise)
			exercises.POST("/:id/submissions", hm.exerciseHandler.SubmitExercise)
		}

		v1.GET("/results", hm.exerciseHandler.ListResults)
	}
}
