package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/version"
)

// HealthHandler reports service metadata and whether the backend answers.
type HealthHandler struct {
	client *backend.Client
}

func NewHealthHandler(client *backend.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

// Get responds 200 even when the backend is down; the backend state is
// reported in the body so uptime checks can tell the two apart.
func (h *HealthHandler) Get(c *gin.Context) {
	body := gin.H{
		"status":     "ok",
		"service":    version.Name,
		"version":    version.Version,
		"git_commit": version.GitCommit,
		"build_time": version.BuildTime,
	}
	if h.client != nil {
		// The source list is the cheapest backend call.
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		body["backend_url"] = h.client.BaseURL()
		if _, err := h.client.ListSources(ctx); err != nil {
			body["backend"] = "unreachable"
			body["backend_error"] = backend.DisplayMessage(err)
		} else {
			body["backend"] = "ok"
		}
	}
	c.JSON(http.StatusOK, body)
}
