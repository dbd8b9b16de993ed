package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/strata/cmd/debug/models"
	"github.com/VoidMesh/strata/internal/config"
	"github.com/VoidMesh/strata/internal/persistence"
	"github.com/VoidMesh/strata/internal/world"
)

func main() {
	cfg := config.Load()

	dbPath := flag.String("db", "", "Path to the SQLite world database (optional)")
	seed := flag.Int64("seed", cfg.World.Seed, "World seed")
	width := flag.Int("width", cfg.World.ChunkWidth, "Chunk width in columns")
	height := flag.Int("height", cfg.World.ChunkHeight, "Chunk height in rows")
	backend := flag.String("noise", cfg.World.NoiseBackend, "Noise backend (perlin, simplex)")
	tuningPath := flag.String("tuning", cfg.World.TuningPath, "Path to a YAML generation tuning file")
	catalogPath := flag.String("catalog", cfg.World.CatalogPath, "Path to a YAML block catalog")
	startView := flag.String("view", "menu", "Starting view (menu, chunks, biomes, stream, saved)")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	switch *logLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}

	// Log to a file while the alt screen owns the terminal
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	tuning, err := config.LoadTuning(*tuningPath)
	if err != nil {
		log.Fatal("Failed to load generation tuning", "error", err)
	}
	catalog, err := world.LoadCatalog(*catalogPath)
	if err != nil {
		log.Fatal("Failed to load block catalog", "error", err)
	}
	pipeline, err := world.NewPipeline(catalog, *backend, tuning)
	if err != nil {
		log.Fatal("Failed to build generation pipeline", "error", err)
	}

	var saved persistence.Store
	if *dbPath != "" {
		dbCfg := cfg.Database
		dbCfg.Path = *dbPath
		database, err := persistence.Open(dbCfg)
		if err != nil {
			log.Fatal("Failed to open database", "error", err, "path", *dbPath)
		}
		defer database.Close()
		if err := persistence.Migrate(database); err != nil {
			log.Fatal("Failed to run database migrations", "error", err)
		}
		saved = persistence.NewRepository(database, catalog)
	}

	worldCfg := cfg.World
	worldCfg.Seed = *seed
	worldCfg.ChunkWidth = *width
	worldCfg.ChunkHeight = *height
	loop, _ := pipeline.NewWorld(worldCfg, saved)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)
	defer func() {
		if err := loop.Shutdown(); err != nil {
			log.Error("Failed to save world on exit", "error", err)
		}
	}()

	app := models.NewApp(models.Env{
		Catalog:  catalog,
		Biomes:   pipeline.Biomes,
		Synth:    pipeline.Synth,
		Carver:   pipeline.Carver,
		RoomSize: tuning.Structure.RoomSize,
		Width:    *width,
		Height:   *height,
		TileSize: worldCfg.TileSize,
		Seed:     *seed,
		Loop:     loop,
		Saved:    saved,
	}, *startView)

	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting strata debug tool", "seed", *seed, "start_view", *startView)

	if _, err := program.Run(); err != nil {
		log.Fatal("Error running debug tool", "error", err)
	}
}
