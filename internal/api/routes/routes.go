package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/Wikid82/snare/internal/api/handlers"
	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/config"
	"github.com/Wikid82/snare/internal/database"
	"github.com/Wikid82/snare/internal/logger"
	"github.com/Wikid82/snare/internal/metrics"
	"github.com/Wikid82/snare/internal/poller"
	"github.com/Wikid82/snare/internal/services"
)

// Register wires up the console routes, migrates the console-local tables
// and starts the hit alert schedule. The schedule stops when ctx is done.
// A nil registry leaves /metrics unregistered.
func Register(ctx context.Context, router *gin.Engine, db *gorm.DB, cfg config.Config, client *backend.Client, registry *prometheus.Registry) error {
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	router.GET("/api/v1/health", handlers.NewHealthHandler(client).Get)
	if registry != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))
	}

	notificationService := services.NewNotificationService(db, cfg.BannerTTL)
	watcher := handlers.NewWatcher(cfg.PollInterval, notificationService)

	api := router.Group("/console/v1")

	handlers.NewDashboardHandler(services.NewDashboardService(client), notificationService).RegisterRoutes(api)
	handlers.NewCampaignHandler(services.NewCampaignService(client), notificationService, watcher).RegisterRoutes(api)
	handlers.NewHitHandler(services.NewHitService(client), notificationService, watcher).RegisterRoutes(api)
	handlers.NewListenerHandler(services.NewListenerService(client), notificationService).RegisterRoutes(api)
	handlers.NewSourceHandler(services.NewSourceService(client), notificationService).RegisterRoutes(api)

	// Banners
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	api.GET("/notifications", notificationHandler.List)
	api.POST("/notifications/:id/dismiss", notificationHandler.Dismiss)
	api.POST("/notifications/dismiss-all", notificationHandler.DismissAll)

	// Notification Providers
	providerHandler := handlers.NewNotificationProviderHandler(notificationService)
	api.GET("/notifications/providers", providerHandler.List)
	api.POST("/notifications/providers", providerHandler.Create)
	api.PUT("/notifications/providers/:id", providerHandler.Update)
	api.DELETE("/notifications/providers/:id", providerHandler.Delete)
	api.POST("/notifications/providers/test", providerHandler.Test)
	api.POST("/notifications/providers/preview", providerHandler.Preview)
	api.GET("/notifications/templates", providerHandler.Templates)

	if cfg.HitAlertInterval > 0 {
		alerts := services.NewHitAlertService(db, client, notificationService)
		p := poller.New(cfg.HitAlertInterval)
		p.Start(ctx, alerts.Run)
		logger.Component("routes").WithField("interval", p.Interval().String()).Info("hit alerts enabled")
	} else {
		logger.Component("routes").Info("hit alerts disabled")
	}

	return nil
}
