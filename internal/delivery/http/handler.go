package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bourbonvault/backend/internal/domain"
	"github.com/bourbonvault/backend/internal/logger"
	"github.com/bourbonvault/backend/internal/usecase"
)

const (
	serviceName    = "bourbonvault-backend"
	serviceVersion = "1.0.0"
)

// Services bundles the use cases the handlers call. Journal services may
// be nil when authentication is disabled.
type Services struct {
	Catalog          *usecase.CatalogService
	Recommendations  *usecase.RecommendationService
	Markups          *usecase.MarkupService
	Compare          *usecase.CompareService
	SessionFavorites *usecase.AnonymousFavoriteService
	Notes            *usecase.TastingNoteService
	Favorites        *usecase.FavoriteService
	Collection       *usecase.CollectionService
	Profiles         *usecase.ProfileService
	Dashboard        *usecase.DashboardService
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	svc Services
	log logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(svc Services, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{svc: svc, log: log}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	}
	if h.svc.Catalog != nil {
		body["catalogVersion"] = h.svc.Catalog.Version()
	}
	c.JSON(http.StatusOK, body)
}

// ListBourbons handles GET /bourbons
func (h *Handler) ListBourbons(c *gin.Context) {
	filter := domain.CatalogFilter{
		Query:        c.Query("q"),
		Category:     domain.Category(strings.ToLower(strings.TrimSpace(c.Query("category")))),
		Distilleries: queryList(c, "distillery"),
		Flavors:      queryList(c, "flavor"),
	}
	for _, r := range queryList(c, "rarity") {
		filter.Rarities = append(filter.Rarities, domain.Rarity(strings.ToLower(r)))
	}

	items, err := h.svc.Catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bourbons": items, "count": len(items), "version": h.svc.Catalog.Version()})
}

// GetBourbon handles GET /bourbons/:id
func (h *Handler) GetBourbon(c *gin.Context) {
	bourbon, err := h.svc.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bourbon)
}

// ListFlavors handles GET /flavors
func (h *Handler) ListFlavors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flavors": h.svc.Catalog.Flavors()})
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.svc.Catalog.Categories()})
}

// GetMarkups handles GET /markups
func (h *Handler) GetMarkups(c *gin.Context) {
	report, err := h.svc.Markups.Report(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RecommendByPreferences handles POST /recommendations/preferences
func (h *Handler) RecommendByPreferences(c *gin.Context) {
	var req domain.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must not be negative"})
		return
	}

	recs, err := h.svc.Recommendations.ByPreferences(c.Request.Context(), req.Flavors, req.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// respondError maps domain errors to status codes. Server errors are logged
// and their details kept out of the response.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed", map[string]interface{}{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrCompareFull):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// queryList reads a repeatable query parameter, also splitting comma lists
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// queryLimit parses ?limit=, returning 0 when absent
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
