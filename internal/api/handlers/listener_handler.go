package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/snare/internal/models"
	"github.com/Wikid82/snare/internal/services"
)

type ListenerHandler struct {
	service       *services.ListenerService
	notifications *services.NotificationService
}

func NewListenerHandler(service *services.ListenerService, ns *services.NotificationService) *ListenerHandler {
	return &ListenerHandler{service: service, notifications: ns}
}

// RegisterRoutes registers listener routes.
func (h *ListenerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/listener", h.List)
	router.GET("/listener/create", h.CreateForm)
	router.POST("/listener", h.Create)
	router.GET("/listener/:id", h.Get)
	router.GET("/listener/:id/edit", h.EditForm)
	router.PUT("/listener/:id", h.Update)
	router.DELETE("/listener/:id", h.Delete)
}

func (h *ListenerHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.notifications, "Failed to load listeners", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ListenerHandler) CreateForm(c *gin.Context) {
	h.form(c, services.FormCreate, 0)
}

func (h *ListenerHandler) Get(c *gin.Context) {
	if id, ok := parseID(c); ok {
		h.form(c, services.FormView, id)
	}
}

func (h *ListenerHandler) EditForm(c *gin.Context) {
	if id, ok := parseID(c); ok {
		h.form(c, services.FormEdit, id)
	}
}

func (h *ListenerHandler) form(c *gin.Context, mode services.FormMode, id uint) {
	form, err := h.service.Form(c.Request.Context(), mode, id)
	if err != nil {
		respondError(c, h.notifications, "Failed to load listener", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *ListenerHandler) Create(c *gin.Context) {
	var listener models.Listener
	if err := c.ShouldBindJSON(&listener); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.Create(c.Request.Context(), listener)
	if err != nil {
		respondError(c, h.notifications, "Failed to create listener", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ListenerHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var listener models.Listener
	if err := c.ShouldBindJSON(&listener); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, listener)
	if err != nil {
		respondError(c, h.notifications, "Failed to update listener", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ListenerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.notifications, "Failed to delete listener", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listener deleted"})
}
