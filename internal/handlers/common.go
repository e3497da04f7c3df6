package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/vocadrill/practice-service/internal/errors"
	"github.com/vocadrill/practice-service/internal/services"
	"github.com/vocadrill/practice-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// ListResponse wraps paginated collections.
type ListResponse struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
}

// ===== BASE HANDLER =====

// BaseHandler provides logging and the shared service-error mapping.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}, additionalFields...)
	h.logger.LogError(err, message, fields...)
}

// parseIDParam reads a uint path parameter, writing the 400 response
// itself. A zero return means the response has already been sent.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
			Details: raw,
		})
		return 0
	}
	return uint(id)
}

// handleServiceError translates service-layer errors into HTTP responses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		var ve apperrors.ValidationErrors
		details := interface{}(err.Error())
		if ok := asValidationErrors(err, &ve); ok {
			details = ve
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: details,
			Code:    "validation_failed",
		})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
			Code:    "not_found",
		})
	case services.IsForbidden(err):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: err.Error(),
			Code:    "forbidden",
		})
	case services.IsUnprocessable(err):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: err.Error(),
			Code:    "not_enough_words",
		})
	case services.IsGenerationFailure(err):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: "Passage generation failed, please try again",
			Code:    "generation_failed",
		})
	default:
		h.LogError(c, err, "Unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Code:    "internal_error",
		})
	}
}

func asValidationErrors(err error, target *apperrors.ValidationErrors) bool {
	ve, ok := err.(apperrors.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
