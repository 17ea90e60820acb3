package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/middleware"
	"github.com/storynest/storynest-backend/internal/repository"
	"github.com/storynest/storynest-backend/internal/service"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	service service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// CreateComment handles POST /comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.CreatedResponse(c, comment)
}

// ListComments handles GET /comments?story_id=|chapter_id=
func (h *CommentHandler) ListComments(c *gin.Context) {
	scope, err := parseCommentScope(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid comment scope", err)
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	tree, total, err := h.service.ListComments(c.Request.Context(), scope, page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, tree, &common.Meta{Page: page, Limit: limit, Total: total})
}

// GetComment handles GET /comments/:id
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid comment ID", err)
		return
	}

	comment, err := h.service.GetComment(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: comment})
}

// UpdateComment handles PATCH /comments/:id
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid comment ID", err)
		return
	}

	var req domain.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	userID := middleware.GetUserID(c)
	level := middleware.GetUserLevel(c)
	if err := h.service.UpdateComment(c.Request.Context(), id, &req, userID, level); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"updated": true}})
}

// DeleteComment handles DELETE /comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid comment ID", err)
		return
	}

	userID := middleware.GetUserID(c)
	level := middleware.GetUserLevel(c)
	if err := h.service.DeleteComment(c.Request.Context(), id, userID, level); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"deleted": true}})
}

type moderateCommentRequest struct {
	Action domain.ModerationAction `json:"action" binding:"required"`
}

// ModerateComment handles POST /comments/:id/moderate (moderators only)
func (h *CommentHandler) ModerateComment(c *gin.Context) {
	if middleware.GetUserLevel(c) < service.ModeratorLevel {
		common.ErrorResponse(c, http.StatusForbidden, "moderator level required", nil)
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid comment ID", err)
		return
	}

	var req moderateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.service.ModerateComment(c.Request.Context(), id, req.Action); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"action": req.Action}})
}

// parseCommentScope reads story_id or chapter_id from the query string
func parseCommentScope(c *gin.Context) (repository.CommentScope, error) {
	var scope repository.CommentScope
	if v := c.Query("story_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return scope, err
		}
		scope.StoryID = &id
	}
	if v := c.Query("chapter_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return scope, err
		}
		scope.ChapterID = &id
	}
	return scope, nil
}

// queryInt reads an int query parameter with a default
func queryInt(c *gin.Context, name string, def int) int {
	if val, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def))); err == nil {
		return val
	}
	return def
}
