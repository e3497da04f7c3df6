package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vocadrill/practice-service/internal/repositories"
	"github.com/vocadrill/practice-service/internal/services"
	"github.com/vocadrill/practice-service/internal/utils"
)

type VocabularyHandler struct {
	BaseHandler
	vocabularyService services.VocabularyService
	importExport      services.ImportExportService
}

func NewVocabularyHandler(
	vocabularyService services.VocabularyService,
	importExport services.ImportExportService,
	logger utils.Logger,
) *VocabularyHandler {
	return &VocabularyHandler{
		BaseHandler:       NewBaseHandler(logger),
		vocabularyService: vocabularyService,
		importExport:      importExport,
	}
}

// CreateSet creates a new vocabulary set with its terms.
func (h *VocabularyHandler) CreateSet(c *gin.Context) {
	var req services.CreateSetRequest
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

	set, err := h.vocabularyService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, set)
}

// GetSet retrieves one vocabulary set with its terms.
func (h *VocabularyHandler) GetSet(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	set, err := h.vocabularyService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// ListSets lists the caller's vocabulary sets.
func (h *VocabularyHandler) ListSets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := repositories.VocabularySetFilters{
		Limit:     parseIntQuery(c, "limit", 20),
		Offset:    parseIntQuery(c, "offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if language := c.Query("language"); language != "" {
		filters.Language = &language
	}

	sets, total, err := h.vocabularyService.List(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: sets, Total: total})
}

// UpdateSet updates set metadata and optionally replaces its terms.
func (h *VocabularyHandler) UpdateSet(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateSetRequest
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

	set, err := h.vocabularyService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// DeleteSet removes a vocabulary set.
func (h *VocabularyHandler) DeleteSet(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.vocabularyService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportSet creates a set from an uploaded spreadsheet.
func (h *VocabularyHandler) ImportSet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file upload",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	req := &services.ImportSetRequest{
		Title:    c.PostForm("title"),
		Language: c.PostForm("language"),
	}

	result, err := h.importExport.ImportSetFromFile(c.Request.Context(), file, header.Filename, req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ExportSet streams a set as an XLSX workbook.
func (h *VocabularyHandler) ExportSet(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, err := h.importExport.ExportSetToExcel(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="vocabulary-set.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
