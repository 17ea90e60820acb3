package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/middleware"
	"github.com/storynest/storynest-backend/internal/service"
)

// ProgressHandler handles reading progress HTTP requests
type ProgressHandler struct {
	service service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(service service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

type saveProgressRequest struct {
	Progress float64 `json:"progress"`
}

// SaveProgress handles PUT /chapters/:id/progress
func (h *ProgressHandler) SaveProgress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	chapterID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid chapter ID", err)
		return
	}

	var req saveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	history, err := h.service.SaveProgress(c.Request.Context(), userID, chapterID, req.Progress)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: history})
}

// GetChapterProgress handles GET /chapters/:id/progress
func (h *ProgressHandler) GetChapterProgress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	chapterID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid chapter ID", err)
		return
	}

	progress, err := h.service.GetChapterProgress(c.Request.Context(), userID, chapterID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{
		"chapter_id": chapterID,
		"progress":   progress,
	}})
}

// GetStoryProgress handles GET /stories/:id/progress
func (h *ProgressHandler) GetStoryProgress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	storyID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid story ID", err)
		return
	}

	progress, err := h.service.GetStoryProgress(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{
		"story_id": storyID,
		"progress": progress,
	}})
}

// GetContinueReading handles GET /me/continue-reading
func (h *ProgressHandler) GetContinueReading(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit := queryInt(c, "limit", 10)

	entries, err := h.service.GetContinueReading(c.Request.Context(), userID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: entries})
}
