package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wikid82/snare/internal/api/middleware"
	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/metrics"
	"github.com/Wikid82/snare/internal/poller"
	"github.com/Wikid82/snare/internal/services"
)

type viewEvent struct {
	name string
	data interface{}
}

// Watcher streams a list view as server-sent events. Each stream owns one
// poller that lives exactly as long as the request.
type Watcher struct {
	interval      time.Duration
	notifications *services.NotificationService
}

func NewWatcher(interval time.Duration, ns *services.NotificationService) *Watcher {
	return &Watcher{interval: interval, notifications: ns}
}

// Stream sends a "snapshot" event right away and then once per interval. A
// failed refresh sends an "error" event and raises a banner; the client keeps
// its previous snapshot.
func (w *Watcher) Stream(c *gin.Context, view, errorTitle string, load func(ctx context.Context) (interface{}, error)) {
	ctx := c.Request.Context()
	log := middleware.GetRequestLogger(c).WithField("view", view)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	events := make(chan viewEvent)
	p := poller.New(w.interval)
	p.Start(ctx, func(jobCtx context.Context) {
		data, err := load(jobCtx)
		metrics.ObserveViewRefresh(view, err == nil)
		if jobCtx.Err() != nil {
			return
		}

		ev := viewEvent{name: "snapshot", data: data}
		if err != nil {
			log.WithError(err).Debug("view refresh failed")
			if w.notifications != nil {
				w.notifications.RaiseError(errorTitle, err)
			}
			ev = viewEvent{name: "error", data: gin.H{"error": backend.DisplayMessage(err)}}
		}
		select {
		case events <- ev:
		case <-jobCtx.Done():
		}
	})
	defer p.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			c.SSEvent(ev.name, ev.data)
			c.Writer.Flush()
		}
	}
}
