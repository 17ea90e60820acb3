package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/service"
)

// AnalyticsHandler handles analytics rollup HTTP requests
type AnalyticsHandler struct {
	service service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetAdAnalytics handles GET /analytics/ads/:id
func (h *AnalyticsHandler) GetAdAnalytics(c *gin.Context) {
	adID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid ad ID", err)
		return
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid date range", err)
		return
	}

	result, err := h.service.GetAdAnalytics(c.Request.Context(), adID, dateRange)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// GetPlatformAnalytics handles GET /analytics/platform
func (h *AnalyticsHandler) GetPlatformAnalytics(c *gin.Context) {
	dateRange, err := parseDateRange(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid date range", err)
		return
	}

	result, err := h.service.GetPlatformAnalytics(c.Request.Context(), dateRange)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// GetCampaignAnalytics handles GET /analytics/campaigns/:id
func (h *AnalyticsHandler) GetCampaignAnalytics(c *gin.Context) {
	campaignID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid campaign ID", err)
		return
	}

	dateRange, err := parseDateRange(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid date range", err)
		return
	}

	result, err := h.service.GetCampaignAnalytics(c.Request.Context(), campaignID, dateRange)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// parseDateRange reads optional from/to query params as ISO dates. The "to"
// bound is pushed to end of day so a single-day range covers the whole day.
func parseDateRange(c *gin.Context) (domain.DateRange, error) {
	var r domain.DateRange
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return r, err
		}
		r.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return r, err
		}
		r.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return r, nil
}
