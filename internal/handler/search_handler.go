package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/common"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/service"
)

// SearchHandler handles story search HTTP requests
type SearchHandler struct {
	service service.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(service service.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles GET /search?q=
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	opts := domain.SearchOptions{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}

	result, err := h.service.Search(c.Request.Context(), query, opts)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, result, &common.Meta{
		Page:  opts.Page,
		Limit: opts.Limit,
		Total: result.Total,
	})
}

// GetSuggestions handles GET /search/suggest?q=
func (h *SearchHandler) GetSuggestions(c *gin.Context) {
	prefix := c.Query("q")
	limit := queryInt(c, "limit", 10)

	result, err := h.service.GetSuggestions(c.Request.Context(), prefix, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}
