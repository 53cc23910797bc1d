package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/config"
	"github.com/Wikid82/snare/internal/database"
	"github.com/Wikid82/snare/internal/logger"
	"github.com/Wikid82/snare/internal/metrics"
	"github.com/Wikid82/snare/internal/server"
	"github.com/Wikid82/snare/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Setup logging with rotation
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		log.Fatalf("create log dir: %v", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, "snare.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	defer rotator.Close()

	// Log to both stdout and file
	mw := io.MultiWriter(os.Stdout, rotator)
	log.SetOutput(mw)
	logger.Init(cfg.Debug, mw)

	appLog := logger.Component("main")
	appLog.WithField("version", version.Full()).Infof("starting %s console", version.Name)

	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		appLog.WithError(err).Fatal("connect database")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(registry)

	client := backend.NewClient(cfg.BackendURL, backend.WithTimeout(cfg.BackendTimeout))
	appLog.WithField("backend_url", client.BaseURL()).Info("using honeypot backend")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, db, cfg, client, registry)
	if err != nil {
		appLog.WithError(err).Fatal("build server")
	}

	appLog.WithField("port", cfg.HTTPPort).Info("listening")
	if err := srv.Run(ctx); err != nil {
		appLog.WithError(err).Fatal("server error")
	}
	appLog.Info("shutdown complete")
}
