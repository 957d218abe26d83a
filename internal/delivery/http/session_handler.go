package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bourbonvault/backend/internal/domain"
)

// sessionIDs is the shape shared by the compare list and anonymous favorites
type sessionIDs interface {
	Resolve(ctx context.Context, sessionID string) ([]domain.Bourbon, error)
	Add(ctx context.Context, sessionID, bourbonID string) (bool, error)
	Remove(ctx context.Context, sessionID, bourbonID string) (bool, error)
	Toggle(ctx context.Context, sessionID, bourbonID string) (bool, error)
	Clear(ctx context.Context, sessionID string) error
}

// GetCompare handles GET /compare
func (h *Handler) GetCompare(c *gin.Context) {
	h.listSession(c, h.svc.Compare)
}

// AddCompare handles POST /compare/:bourbonId
func (h *Handler) AddCompare(c *gin.Context) {
	h.addSession(c, h.svc.Compare)
}

// RemoveCompare handles DELETE /compare/:bourbonId
func (h *Handler) RemoveCompare(c *gin.Context) {
	h.removeSession(c, h.svc.Compare)
}

// ToggleCompare handles POST /compare/:bourbonId/toggle
func (h *Handler) ToggleCompare(c *gin.Context) {
	h.toggleSession(c, h.svc.Compare)
}

// ClearCompare handles DELETE /compare
func (h *Handler) ClearCompare(c *gin.Context) {
	h.clearSession(c, h.svc.Compare)
}

// GetSessionFavorites handles GET /session/favorites
func (h *Handler) GetSessionFavorites(c *gin.Context) {
	h.listSession(c, h.svc.SessionFavorites)
}

// AddSessionFavorite handles POST /session/favorites/:bourbonId
func (h *Handler) AddSessionFavorite(c *gin.Context) {
	h.addSession(c, h.svc.SessionFavorites)
}

// RemoveSessionFavorite handles DELETE /session/favorites/:bourbonId
func (h *Handler) RemoveSessionFavorite(c *gin.Context) {
	h.removeSession(c, h.svc.SessionFavorites)
}

// ToggleSessionFavorite handles POST /session/favorites/:bourbonId/toggle
func (h *Handler) ToggleSessionFavorite(c *gin.Context) {
	h.toggleSession(c, h.svc.SessionFavorites)
}

// ClearSessionFavorites handles DELETE /session/favorites
func (h *Handler) ClearSessionFavorites(c *gin.Context) {
	h.clearSession(c, h.svc.SessionFavorites)
}

func (h *Handler) listSession(c *gin.Context, list sessionIDs) {
	bourbons, err := list.Resolve(c.Request.Context(), c.GetString(sessionIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bourbons": bourbons, "count": len(bourbons)})
}

func (h *Handler) addSession(c *gin.Context, list sessionIDs) {
	added, err := list.Add(c.Request.Context(), c.GetString(sessionIDKey), c.Param("bourbonId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	h.writeSession(c, list, status, gin.H{"added": added})
}

func (h *Handler) removeSession(c *gin.Context, list sessionIDs) {
	removed, err := list.Remove(c.Request.Context(), c.GetString(sessionIDKey), c.Param("bourbonId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.writeSession(c, list, http.StatusOK, gin.H{"removed": removed})
}

func (h *Handler) toggleSession(c *gin.Context, list sessionIDs) {
	active, err := list.Toggle(c.Request.Context(), c.GetString(sessionIDKey), c.Param("bourbonId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.writeSession(c, list, http.StatusOK, gin.H{"active": active})
}

func (h *Handler) clearSession(c *gin.Context, list sessionIDs) {
	if err := list.Clear(c.Request.Context(), c.GetString(sessionIDKey)); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeSession responds with the mutation result plus the resolved list
func (h *Handler) writeSession(c *gin.Context, list sessionIDs, status int, body gin.H) {
	bourbons, err := list.Resolve(c.Request.Context(), c.GetString(sessionIDKey))
	if err != nil {
		h.respondError(c, err)
		return
	}
	body["bourbons"] = bourbons
	body["count"] = len(bourbons)
	c.JSON(status, body)
}
