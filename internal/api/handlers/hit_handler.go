package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/snare/internal/services"
)

// HitHandler serves recorded hits. Hits cannot be created or edited from the
// console.
type HitHandler struct {
	service       *services.HitService
	notifications *services.NotificationService
	watcher       *Watcher
}

func NewHitHandler(service *services.HitService, ns *services.NotificationService, watcher *Watcher) *HitHandler {
	return &HitHandler{service: service, notifications: ns, watcher: watcher}
}

// RegisterRoutes registers hit routes.
func (h *HitHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/hit", h.List)
	router.GET("/hit/watch", h.Watch)
	router.GET("/hit/:id", h.Get)
	router.DELETE("/hit/:id", h.Delete)
}

func (h *HitHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.notifications, "Failed to load hits", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Watch streams the hit list.
func (h *HitHandler) Watch(c *gin.Context) {
	h.watcher.Stream(c, "hits", "Failed to refresh hits", func(ctx context.Context) (interface{}, error) {
		return h.service.List(ctx)
	})
}

func (h *HitHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	row, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.notifications, "Failed to load hit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": "View Hit " + c.Param("id"), "hit": row})
}

func (h *HitHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.notifications, "Failed to delete hit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hit deleted"})
}
