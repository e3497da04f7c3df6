package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vocadrill/practice-service/internal/repositories"
	"github.com/vocadrill/practice-service/internal/services"
	"github.com/vocadrill/practice-service/internal/utils"
)

type ExerciseHandler struct {
	BaseHandler
	exerciseService services.ExerciseService
}

func NewExerciseHandler(exerciseService services.ExerciseService, logger utils.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		BaseHandler:     NewBaseHandler(logger),
		exerciseService: exerciseService,
	}
}

// StartExercise generates a new exercise instance from a vocabulary set.
func (h *ExerciseHandler) StartExercise(c *gin.Context) {
	var req services.StartExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	instance, err := h.exerciseService.Start(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, instance)
}

// SubmitExercise scores a submission against the stored answer key.
func (h *ExerciseHandler) SubmitExercise(c *gin.Context) {
	exerciseID := c.Param("id")
	if exerciseID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing exercise id"})
		return
	}

	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	score, err := h.exerciseService.Submit(c.Request.Context(), exerciseID, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// ListResults returns the caller's recent practice results.
func (h *ExerciseHandler) ListResults(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := repositories.PracticeResultFilters{
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if setID := h.parseOptionalSetID(c); setID != nil {
		filters.SetID = setID
	}

	results, total, err := h.exerciseService.ListResults(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: results, Total: total})
}

func (h *ExerciseHandler) parseOptionalSetID(c *gin.Context) *uint {
	raw := c.Query("set_id")
	if raw == "" {
		return nil
	}
	value := parseIntQuery(c, "set_id", 0)
	if value == 0 {
		return nil
	}
	id := uint(value)
	return &id
}
