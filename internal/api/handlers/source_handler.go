package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/snare/internal/models"
	"github.com/Wikid82/snare/internal/services"
)

type SourceHandler struct {
	service       *services.SourceService
	notifications *services.NotificationService
}

func NewSourceHandler(service *services.SourceService, ns *services.NotificationService) *SourceHandler {
	return &SourceHandler{service: service, notifications: ns}
}

// RegisterRoutes registers source routes.
func (h *SourceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/source", h.List)
	router.GET("/source/create", h.CreateForm)
	router.POST("/source", h.Create)
	router.GET("/source/:id", h.Get)
	router.GET("/source/:id/edit", h.EditForm)
	router.PUT("/source/:id", h.Update)
	router.DELETE("/source/:id", h.Delete)
}

func (h *SourceHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.notifications, "Failed to load sources", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *SourceHandler) CreateForm(c *gin.Context) {
	h.form(c, services.FormCreate, 0)
}

func (h *SourceHandler) Get(c *gin.Context) {
	if id, ok := parseID(c); ok {
		h.form(c, services.FormView, id)
	}
}

func (h *SourceHandler) EditForm(c *gin.Context) {
	if id, ok := parseID(c); ok {
		h.form(c, services.FormEdit, id)
	}
}

func (h *SourceHandler) form(c *gin.Context, mode services.FormMode, id uint) {
	form, err := h.service.Form(c.Request.Context(), mode, id)
	if err != nil {
		respondError(c, h.notifications, "Failed to load source", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *SourceHandler) Create(c *gin.Context) {
	var source models.Source
	if err := c.ShouldBindJSON(&source); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.Create(c.Request.Context(), source)
	if err != nil {
		respondError(c, h.notifications, "Failed to create source", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SourceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var source models.Source
	if err := c.ShouldBindJSON(&source); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, source)
	if err != nil {
		respondError(c, h.notifications, "Failed to update source", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *SourceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.notifications, "Failed to delete source", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Source deleted"})
}
