package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/config"
	"github.com/einkhub/renderer/internal/display"
	"github.com/einkhub/renderer/internal/handlers"
	"github.com/einkhub/renderer/internal/layout"
	"github.com/einkhub/renderer/internal/render"
	"github.com/einkhub/renderer/internal/snapshot"
	"github.com/einkhub/renderer/internal/state"
	"github.com/einkhub/renderer/internal/widget"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Snapshot store: Redis when configured, memory otherwise
	var snapshots snapshot.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := snapshot.NewRedisStore(cfg.Redis, logger)
		if err != nil {
			logger.Fatal("Failed to connect snapshot store", zap.Error(err))
		}
		snapshots = redisStore
	} else {
		logger.Info("No Redis configured, using in-memory snapshot store")
		snapshots = snapshot.NewMemoryStore()
	}
	defer snapshots.Close()

	// Widget registry and layout definitions
	registry := widget.Builtins()
	layouts, err := layout.Load(cfg.Paths.LayoutsFile, registry, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		logger.Fatal("Failed to load layouts",
			zap.String("path", cfg.Paths.LayoutsFile),
			zap.Error(err))
	}
	logger.Info("Loaded layouts",
		zap.Strings("names", layouts.Names()),
		zap.Strings("rotation", layouts.RotationSequence()))

	renderer := render.New(layouts, registry, cfg.Display.Width, cfg.Display.Height, cfg.Paths.OutputDir, logger)
	stateManager := state.NewManager(cfg.Paths.StateFile, logger)
	controller := display.NewController(
		cfg.Display, cfg.Paths,
		renderer, layouts, snapshots, stateManager,
		display.LogSink{Logger: logger}, logger,
	)

	// HTTP server
	mux := http.NewServeMux()
	handler := handlers.NewHandler(controller, renderer, layouts, registry, snapshots, cfg.Paths.PhotosDir, logger)
	handler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.Int("port", cfg.Server.Port),
		zap.Int("width", cfg.Display.Width),
		zap.Int("height", cfg.Display.Height))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server shutdown complete")
}
