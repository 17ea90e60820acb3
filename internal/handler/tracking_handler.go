package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/middleware"
	"github.com/storynest/storynest-backend/internal/service"
)

// TrackingHandler handles impression and click ingestion requests
type TrackingHandler struct {
	service service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler
func NewTrackingHandler(service service.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// TrackImpression handles POST /ads/:id/impression
func (h *TrackingHandler) TrackImpression(c *gin.Context) {
	adID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ad ID", err)
		return
	}

	result, err := h.service.TrackImpression(c.Request.Context(), adID, trackMeta(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// TrackClick handles POST /ads/:id/click
func (h *TrackingHandler) TrackClick(c *gin.Context) {
	adID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ad ID", err)
		return
	}

	result, err := h.service.TrackClick(c.Request.Context(), adID, trackMeta(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// trackMeta collects the actor identity and request metadata available on
// this request; all fields may be empty for anonymous readers
func trackMeta(c *gin.Context) domain.TrackMeta {
	return domain.TrackMeta{
		ActorID:   middleware.GetUserID(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// parseID parses a uint64 path parameter
func parseID(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(c *gin.Context, err error) {
	common.ErrorResponse(c, common.StatusFromError(err), err.Error(), err)
}
