package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bourbonvault/backend/internal/domain"
)

// GetProfile handles GET /me/profile
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.svc.Profiles.Get(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /me/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var update domain.ProfileUpdate
	if !bindJSON(c, &update) {
		return
	}
	profile, err := h.svc.Profiles.Update(c.Request.Context(), c.GetString(userIDKey), update)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetDashboard handles GET /me/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	dashboard, err := h.svc.Dashboard.Get(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// ListNotes handles GET /me/notes
func (h *Handler) ListNotes(c *gin.Context) {
	notes, err := h.svc.Notes.List(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes, "count": len(notes)})
}

// GetNote handles GET /me/notes/:id
func (h *Handler) GetNote(c *gin.Context) {
	note, err := h.svc.Notes.Get(c.Request.Context(), c.GetString(userIDKey), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// CreateNote handles POST /me/notes
func (h *Handler) CreateNote(c *gin.Context) {
	var input domain.TastingNoteInput
	if !bindJSON(c, &input) {
		return
	}
	note, err := h.svc.Notes.Create(c.Request.Context(), c.GetString(userIDKey), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// UpdateNote handles PUT /me/notes/:id
func (h *Handler) UpdateNote(c *gin.Context) {
	var input domain.TastingNoteInput
	if !bindJSON(c, &input) {
		return
	}
	note, err := h.svc.Notes.Update(c.Request.Context(), c.GetString(userIDKey), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote handles DELETE /me/notes/:id
func (h *Handler) DeleteNote(c *gin.Context) {
	if err := h.svc.Notes.Delete(c.Request.Context(), c.GetString(userIDKey), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFavorites handles GET /me/favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.svc.Favorites.List(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites, "count": len(favorites)})
}

// AddFavorite handles POST /me/favorites/:bourbonId
func (h *Handler) AddFavorite(c *gin.Context) {
	favorite, err := h.svc.Favorites.Add(c.Request.Context(), c.GetString(userIDKey), c.Param("bourbonId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite handles DELETE /me/favorites/:bourbonId
func (h *Handler) RemoveFavorite(c *gin.Context) {
	if err := h.svc.Favorites.Remove(c.Request.Context(), c.GetString(userIDKey), c.Param("bourbonId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleFavorite handles POST /me/favorites/:bourbonId/toggle
func (h *Handler) ToggleFavorite(c *gin.Context) {
	active, err := h.svc.Favorites.Toggle(c.Request.Context(), c.GetString(userIDKey), c.Param("bourbonId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bourbonId": c.Param("bourbonId"), "favorite": active})
}

// ListCollection handles GET /me/collection
func (h *Handler) ListCollection(c *gin.Context) {
	status := domain.CollectionStatus(strings.ToLower(strings.TrimSpace(c.Query("status"))))
	items, err := h.svc.Collection.List(c.Request.Context(), c.GetString(userIDKey), status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// AddCollectionItem handles POST /me/collection
func (h *Handler) AddCollectionItem(c *gin.Context) {
	var input domain.CollectionInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := h.svc.Collection.Add(c.Request.Context(), c.GetString(userIDKey), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateCollectionItem handles PUT /me/collection/:id
func (h *Handler) UpdateCollectionItem(c *gin.Context) {
	var input domain.CollectionInput
	if !bindJSON(c, &input) {
		return
	}
	item, err := h.svc.Collection.Update(c.Request.Context(), c.GetString(userIDKey), c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveCollectionItem handles DELETE /me/collection/:id
func (h *Handler) RemoveCollectionItem(c *gin.Context) {
	if err := h.svc.Collection.Remove(c.Request.Context(), c.GetString(userIDKey), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCollectionStats handles GET /me/collection/stats
func (h *Handler) GetCollectionStats(c *gin.Context) {
	stats, err := h.svc.Collection.Stats(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RecommendByHistory handles GET /me/recommendations/history
func (h *Handler) RecommendByHistory(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}
	recs, err := h.svc.Recommendations.ByHistory(c.Request.Context(), c.GetString(userIDKey), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// RecommendTopRated handles GET /me/recommendations/top-rated
func (h *Handler) RecommendTopRated(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}
	recs, err := h.svc.Recommendations.TopRated(c.Request.Context(), c.GetString(userIDKey), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// RecommendForProfile handles GET /me/recommendations/profile
func (h *Handler) RecommendForProfile(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}
	recs, err := h.svc.Recommendations.ForProfile(c.Request.Context(), c.GetString(userIDKey), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// bindJSON decodes the body and writes a 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}
