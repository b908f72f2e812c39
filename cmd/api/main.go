package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"strainbrain/infrastructure/config"
	"strainbrain/infrastructure/di"
	"strainbrain/interfaces/http/rest"
	"strainbrain/interfaces/websocket"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	// Preload the graph before the scheduler or any client can touch it.
	container.BulkLoader.LoadFiles(ctx, cfg.EntitiesFile, cfg.ThoughtsFile)
	container.Metrics.SyncTotals(
		len(container.EntityGraph.ListEntities(ctx)),
		len(container.ThoughtStore.ListThoughts(ctx)),
	)

	// Visualization bridge
	hub := websocket.NewHub(logger)
	go hub.Run()
	wsServer := websocket.NewServer(hub, container.EventBus, logger)

	// Duty cycle
	container.Scheduler.Start(ctx)

	// Pick up config file edits; a restart applies them.
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		watcher := config.NewWatcher(path, func(next *config.Config) {
			logger.Info("configuration file changed, restart to apply",
				zap.String("path", path),
				zap.String("log_level", next.LogLevel),
			)
		}, logger)
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Warn("config watcher stopped", zap.Error(err))
			}
		}()
	}

	router := rest.NewRouter(rest.Deps{
		CommandBus:         container.CommandBus,
		QueryBus:           container.QueryBus,
		CreateEntity:       container.CommandHandlers.CreateEntity,
		CreateRelationship: container.CommandHandlers.CreateRelationship,
		CreateContext:      container.CommandHandlers.CreateContext,
		CreateThought:      container.CommandHandlers.CreateThought,
		Logger:             logger,
		Websocket:          wsServer,
		EnableCORS:         cfg.EnableCORS,
		EnableMetrics:      cfg.EnableMetrics,
		Debug:              cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("backend", cfg.BackendProvider),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	container.Scheduler.Stop()
	hub.Stop()

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
