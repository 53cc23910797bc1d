package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/services"
)

// statusClientClosedRequest is logged for requests the client gave up on.
const statusClientClosedRequest = 499

// clientGone aborts the request when err only reports that the caller
// went away. Nobody is left to read a banner about it.
func clientGone(c *gin.Context, err error) bool {
	if !errors.Is(err, context.Canceled) {
		return false
	}
	c.AbortWithStatus(statusClientClosedRequest)
	return true
}

// respondError answers a failed service call. Input errors become 400s;
// anything else came from the backend and also raises an error banner.
func respondError(c *gin.Context, ns *services.NotificationService, title string, err error) {
	if clientGone(c, err) {
		return
	}
	if errors.Is(err, services.ErrInvalidInput) || errors.Is(err, services.ErrInvalidMode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ns != nil {
		ns.RaiseError(title, err)
	}
	c.JSON(backend.StatusCode(err), gin.H{"error": backend.DisplayMessage(err)})
}

// parseID reads the :id path parameter, answering 400 when it is not a
// positive integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
