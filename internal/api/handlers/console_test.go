package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Wikid82/snare/internal/api/handlers"
	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/backend/backendtest"
	"github.com/Wikid82/snare/internal/database"
	"github.com/Wikid82/snare/internal/models"
	"github.com/Wikid82/snare/internal/services"
)

type console struct {
	router        *gin.Engine
	fake          *backendtest.Server
	notifications *services.NotificationService
	listener      models.Listener
	source        models.Source
	campaign      models.Campaign
	hit           models.Hit
}

// newConsole wires every console handler against a seeded fake backend and
// an in-memory database.
func newConsole(t *testing.T) *console {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := backendtest.NewServer(t)
	l := models.NewListener("portal", models.ListenerTypeLogin)
	l.Target = models.LoginPage{URL: "https://portal.example.com"}
	listener := fake.AddListener(l)
	s := models.NewSource("pastes", models.SourceTypePastebin)
	s.Settings = models.PastebinFeed{APIKey: "pastebin-secret-1234"}
	source := fake.AddSource(s)
	campaign := fake.AddCampaign(models.Campaign{
		Name:      "alpha",
		Honeypots: []models.Honeypot{{Name: "o365", ListenerID: listener.ID, SourceID: source.ID}},
	})
	hit := fake.AddHit(models.Hit{IPAddress: "198.51.100.4", Type: models.HitTypeLogin, SourceID: source.ID, CampaignID: campaign.ID})

	client := backend.NewClient(fake.BaseURL())
	ns := services.NewNotificationService(database.OpenTestDB(t), time.Minute)
	watcher := handlers.NewWatcher(time.Second, ns)

	router := gin.New()
	api := router.Group("/console/v1")
	handlers.NewDashboardHandler(services.NewDashboardService(client), ns).RegisterRoutes(api)
	handlers.NewCampaignHandler(services.NewCampaignService(client), ns, watcher).RegisterRoutes(api)
	handlers.NewHitHandler(services.NewHitService(client), ns, watcher).RegisterRoutes(api)
	handlers.NewListenerHandler(services.NewListenerService(client), ns).RegisterRoutes(api)
	handlers.NewSourceHandler(services.NewSourceService(client), ns).RegisterRoutes(api)

	nh := handlers.NewNotificationHandler(ns)
	api.GET("/notifications", nh.List)
	api.POST("/notifications/:id/dismiss", nh.Dismiss)
	api.POST("/notifications/dismiss-all", nh.DismissAll)

	ph := handlers.NewNotificationProviderHandler(ns)
	api.GET("/notifications/providers", ph.List)
	api.POST("/notifications/providers", ph.Create)
	api.PUT("/notifications/providers/:id", ph.Update)
	api.DELETE("/notifications/providers/:id", ph.Delete)
	api.POST("/notifications/providers/test", ph.Test)
	api.GET("/notifications/templates", ph.Templates)
	api.POST("/notifications/providers/preview", ph.Preview)

	router.GET("/api/v1/health", handlers.NewHealthHandler(client).Get)

	return &console{
		router:        router,
		fake:          fake,
		notifications: ns,
		listener:      listener,
		source:        source,
		campaign:      campaign,
		hit:           hit,
	}
}

func (c *console) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (c *console) banners(t *testing.T) []models.Notification {
	t.Helper()
	w := c.do(t, http.MethodGet, "/console/v1/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Notification
	decode(t, w, &list)
	return list
}
