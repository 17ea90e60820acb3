package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/middleware"
	"github.com/storynest/storynest-backend/internal/service"
)

// EngagementHandler handles rating and follow HTTP requests
type EngagementHandler struct {
	ratingService service.RatingService
	followService service.FollowService
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(ratingService service.RatingService, followService service.FollowService) *EngagementHandler {
	return &EngagementHandler{ratingService: ratingService, followService: followService}
}

type rateStoryRequest struct {
	Value int `json:"value" binding:"required"`
}

// RateStory handles PUT /stories/:id/rating
func (h *EngagementHandler) RateStory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	storyID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid story ID", err)
		return
	}

	var req rateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.ratingService.RateStory(c.Request.Context(), userID, storyID, req.Value)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// GetUserRating handles GET /stories/:id/rating
func (h *EngagementHandler) GetUserRating(c *gin.Context) {
	userID := middleware.GetUserID(c)
	storyID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid story ID", err)
		return
	}

	rating, err := h.ratingService.GetUserRating(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: rating})
}

// DeleteRating handles DELETE /stories/:id/rating
func (h *EngagementHandler) DeleteRating(c *gin.Context) {
	userID := middleware.GetUserID(c)
	storyID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid story ID", err)
		return
	}

	result, err := h.ratingService.DeleteRating(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// FollowStory handles POST /stories/:id/follow
func (h *EngagementHandler) FollowStory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	storyID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid story ID", err)
		return
	}

	result, err := h.followService.FollowStory(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// UnfollowStory handles DELETE /stories/:id/follow
func (h *EngagementHandler) UnfollowStory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	storyID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid story ID", err)
		return
	}

	result, err := h.followService.UnfollowStory(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// IsFollowing handles GET /stories/:id/follow
func (h *EngagementHandler) IsFollowing(c *gin.Context) {
	userID := middleware.GetUserID(c)
	storyID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid story ID", err)
		return
	}

	result, err := h.followService.IsFollowing(c.Request.Context(), userID, storyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}
