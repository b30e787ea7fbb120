package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/flavorquiz/backend/internal/domain"
	"github.com/flavorquiz/backend/internal/usecase"
)

const (
	serviceName    = "flavorquiz-backend"
	serviceVersion = "1.0.0"
)

// AnswerUsecase is what the handlers need from the answer service
type AnswerUsecase interface {
	Compare(ctx context.Context, request *domain.CompareRequest) (domain.ComparisonResult, error)
	CompareCategory(ctx context.Context, request *domain.CategoryCompareRequest) (domain.ComparisonResult, error)
	Lookup(ctx context.Context, name string) (*domain.ProductCategoryEntry, error)
	FlavorDistinctions() map[string]domain.FlavorDistinctionRule
	SpellingVariations() []domain.SpellingVariation
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	answers AnswerUsecase
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil usecase makes the answer endpoints report 503.
func NewHandler(answers AnswerUsecase, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{answers: answers, logger: logger}
}

// CompareResponse is a verdict plus its display message
type CompareResponse struct {
	Result  domain.ComparisonResult `json:"result"`
	Display usecase.Feedback        `json:"display"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// CompareAnswer handles plain answer comparisons
func (h *Handler) CompareAnswer(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var request domain.CompareRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.answers.Compare(c.Request.Context(), &request)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, CompareResponse{Result: result, Display: usecase.FormatFeedback(result)})
}

// CompareCategoryAnswer handles reverse-question comparisons with the taxonomy fallback
func (h *Handler) CompareCategoryAnswer(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var request domain.CategoryCompareRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.answers.CompareCategory(c.Request.Context(), &request)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, CompareResponse{Result: result, Display: usecase.FormatFeedback(result)})
}

// FlavorRules lists the forbidden flavor confusions
func (h *Handler) FlavorRules(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"distinctions": h.answers.FlavorDistinctions()})
}

// SpellingRules lists the accepted spelling variations in application order
func (h *Handler) SpellingRules(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"variations": h.answers.SpellingVariations()})
}

// TaxonomyEntry looks a product up in the taxonomy
func (h *Handler) TaxonomyEntry(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	entry, err := h.answers.Lookup(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entry": entry, "path": entry.Path()})
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.answers == nil {
		h.respondError(c, http.StatusServiceUnavailable, "answer service not configured")
		return false
	}
	return true
}

// handleError maps domain errors to status codes
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		h.respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEntryNotFound):
		h.respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrTaxonomyUnavailable):
		h.respondError(c, http.StatusServiceUnavailable, domain.ErrTaxonomyUnavailable.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.respondError(c, http.StatusRequestTimeout, "request canceled")
	default:
		requestLogger(c, h.logger).Error("unhandled error", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, RequestID: c.GetString(requestIDKey)})
}
