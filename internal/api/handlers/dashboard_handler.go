package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/services"
)

type DashboardHandler struct {
	service       *services.DashboardService
	notifications *services.NotificationService
}

func NewDashboardHandler(service *services.DashboardService, ns *services.NotificationService) *DashboardHandler {
	return &DashboardHandler{service: service, notifications: ns}
}

// RegisterRoutes registers dashboard routes. The dashboard is also the
// console's landing page.
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.Get)
	router.GET("/dashboard", h.Get)
	router.GET("/dashboard/report.pdf", h.PDF)
}

// Get returns the dashboard aggregates. When a fetch fails the body still
// carries the aggregates of the data loaded before the failure, next to the
// error message.
func (h *DashboardHandler) Get(c *gin.Context) {
	view, err := h.service.Build(c.Request.Context())
	if err != nil {
		if clientGone(c, err) {
			return
		}
		h.notifications.RaiseError("Failed to load dashboard", err)
		c.JSON(backend.StatusCode(err), view)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DashboardHandler) PDF(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.WritePDF(c.Request.Context(), &buf); err != nil {
		respondError(c, h.notifications, "Failed to render dashboard report", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="dashboard.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
