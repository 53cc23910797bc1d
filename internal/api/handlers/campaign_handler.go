package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/snare/internal/models"
	"github.com/Wikid82/snare/internal/services"
)

// CampaignHandler serves the campaign list, editor and live list stream.
type CampaignHandler struct {
	service       *services.CampaignService
	notifications *services.NotificationService
	watcher       *Watcher
}

func NewCampaignHandler(service *services.CampaignService, ns *services.NotificationService, watcher *Watcher) *CampaignHandler {
	return &CampaignHandler{service: service, notifications: ns, watcher: watcher}
}

// RegisterRoutes registers campaign routes.
func (h *CampaignHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/campaign", h.List)
	router.GET("/campaign/watch", h.Watch)
	router.GET("/campaign/create", h.CreateForm)
	router.POST("/campaign", h.Create)
	router.GET("/campaign/:id", h.Get)
	router.GET("/campaign/:id/edit", h.EditForm)
	router.PUT("/campaign/:id", h.Update)
	router.DELETE("/campaign/:id", h.Delete)
}

func (h *CampaignHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.notifications, "Failed to load campaigns", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Watch streams the campaign list.
func (h *CampaignHandler) Watch(c *gin.Context) {
	h.watcher.Stream(c, "campaigns", "Failed to refresh campaigns", func(ctx context.Context) (interface{}, error) {
		return h.service.List(ctx)
	})
}

func (h *CampaignHandler) CreateForm(c *gin.Context) {
	h.form(c, services.FormCreate, 0)
}

// Get handles GET /campaign/:id, the read-only editor.
func (h *CampaignHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.form(c, services.FormView, id)
}

func (h *CampaignHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	h.form(c, services.FormEdit, id)
}

func (h *CampaignHandler) form(c *gin.Context, mode services.FormMode, id uint) {
	form, err := h.service.Form(c.Request.Context(), mode, id)
	if err != nil {
		respondError(c, h.notifications, "Failed to load campaign", err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var campaign models.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.Create(c.Request.Context(), campaign)
	if err != nil {
		respondError(c, h.notifications, "Failed to create campaign", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var campaign models.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, campaign)
	if err != nil {
		respondError(c, h.notifications, "Failed to update campaign", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.notifications, "Failed to delete campaign", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}
