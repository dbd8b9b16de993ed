package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VoidMesh/strata/internal/api"
	"github.com/VoidMesh/strata/internal/config"
	"github.com/VoidMesh/strata/internal/persistence"
	"github.com/VoidMesh/strata/internal/world"
	"github.com/charmbracelet/log"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Debug("Configuration loaded", "server_port", cfg.Server.Port, "db_path", cfg.Database.Path, "log_level", cfg.Logging.Level)

	// Setup logging
	setupLogging(cfg.Logging)
	log.Debug("Logging configured", "level", cfg.Logging.Level, "format", cfg.Logging.Format)

	// Generation parameters
	tuning, err := config.LoadTuning(cfg.World.TuningPath)
	if err != nil {
		log.Fatal("Failed to load generation tuning", "error", err)
	}

	catalog, err := world.LoadCatalog(cfg.World.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load block catalog", "error", err)
	}
	log.Debug("Block catalog loaded", "blocks", len(catalog.Defs()))

	pipeline, err := world.NewPipeline(catalog, cfg.World.NoiseBackend, tuning)
	if err != nil {
		log.Fatal("Failed to build generation pipeline", "error", err)
	}
	log.Debug("Generation pipeline ready", "noise_backend", cfg.World.NoiseBackend)

	// Initialize database
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	log.Debug("Running database migrations")
	if err := persistence.Migrate(db); err != nil {
		log.Fatal("Failed to run database migrations", "error", err)
	}

	saved := persistence.NewLoggingStore(persistence.NewRepository(db, catalog))

	// Assemble the world
	loop, source := pipeline.NewWorld(cfg.World, saved)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)

	// Initialize API handlers
	handler := api.NewHandler(catalog, pipeline.Biomes, source, loop, saved, cfg.World.ChunkWidth, cfg.World.ChunkHeight)
	router := api.SetupRoutes(handler)
	log.Debug("API routes configured")

	log.Debug("Creating HTTP server", "port", cfg.Server.Port, "read_timeout", cfg.Server.ReadTimeout, "write_timeout", cfg.Server.WriteTimeout, "idle_timeout", cfg.Server.IdleTimeout)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting strata server", "port", cfg.Server.Port, "seed", cfg.World.Seed)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
		log.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down server...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	} else {
		log.Debug("Server shutdown completed gracefully")
	}

	// Edited chunks are saved before the database closes
	if err := loop.Shutdown(); err != nil {
		log.Error("Failed to save world on shutdown", "error", err)
	}

	log.Info("Server exited")
}

func setupLogging(cfg config.LoggingConfig) {
	switch cfg.Level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warn("Invalid log level, using info", "level", cfg.Level)
		log.SetLevel(log.InfoLevel)
	}

	if cfg.Format == "pretty" || !cfg.Structured {
		log.SetReportCaller(true)
		log.SetReportTimestamp(true)
	}
	if cfg.Format == "json" {
		log.SetFormatter(log.JSONFormatter)
	}

	log.SetPrefix("[strata] ")
}
