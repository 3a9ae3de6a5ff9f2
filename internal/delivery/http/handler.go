package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricescout/backend/internal/domain"
)

// PriceComparer is the slice of the compare service the handlers need.
type PriceComparer interface {
	Compare(ctx context.Context, input, mode string) (*domain.ComparisonResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparer PriceComparer
}

// NewHandler creates a new HTTP handler
func NewHandler(comparer PriceComparer) *Handler {
	return &Handler{comparer: comparer}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricescout-backend",
		"version": "1.0.0",
	})
}

// ComparePrices handles POST price comparison requests
func (h *Handler) ComparePrices(c *gin.Context) {
	if h.comparer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Price comparison service is not configured",
		})
		return
	}

	var req domain.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: 'input' is required",
		})
		return
	}

	h.compare(c, req.Input, req.Mode)
}

// ComparePricesQuery handles GET price comparison requests
// (?q=<name or url>&mode=<all|google|brave|tavily>)
func (h *Handler) ComparePricesQuery(c *gin.Context) {
	if h.comparer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Price comparison service is not configured",
		})
		return
	}

	h.compare(c, c.Query("q"), c.Query("mode"))
}

// compare invokes the pipeline and maps domain errors to status codes.
func (h *Handler) compare(c *gin.Context, input, mode string) {
	result, err := h.comparer.Compare(c.Request.Context(), input, mode)
	if err != nil {
		c.JSON(statusForError(err), result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// statusForError maps the pipeline error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNameNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNoResults),
		errors.Is(err, domain.ErrNoPricesFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAllProvidersFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
