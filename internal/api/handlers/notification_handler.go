package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/snare/internal/services"
)

// NotificationHandler serves the error banners.
type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List returns the banners that are still visible.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.service.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) Dismiss(c *gin.Context) {
	if err := h.service.Dismiss(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dismiss notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification dismissed"})
}

func (h *NotificationHandler) DismissAll(c *gin.Context) {
	if err := h.service.DismissAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dismiss notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications dismissed"})
}
