package world

import (
	"fmt"

	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/config"
	"github.com/VoidMesh/strata/internal/noise"
	"github.com/VoidMesh/strata/internal/persistence"
	"github.com/VoidMesh/strata/internal/scheduler"
	"github.com/VoidMesh/strata/internal/structure"
	"github.com/VoidMesh/strata/internal/terrain"
)

// Pipeline is the generation stack built from one catalog, noise backend
// and tuning.
type Pipeline struct {
	Catalog *block.Catalog
	Noise   noise.Field
	Biomes  *biome.Field
	Synth   *terrain.Synthesizer
	Carver  *structure.Carver
	Tuning  config.Tuning
}

func NewPipeline(catalog *block.Catalog, backend string, tuning config.Tuning) (*Pipeline, error) {
	field, err := noise.New(backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create noise field: %w", err)
	}
	biomes := biome.NewField(field, catalog, tuning.Biome)
	return &Pipeline{
		Catalog: catalog,
		Noise:   field,
		Biomes:  biomes,
		Synth:   terrain.New(catalog, field, biomes, tuning.Terrain),
		Carver:  structure.NewCarver(catalog, tuning.Structure),
		Tuning:  tuning,
	}, nil
}

// Source builds a chunk source over the pipeline. saved may be nil.
func (p *Pipeline) Source(width, height int, dungeonChance float64, saved persistence.Store) *Source {
	return NewSource(SourceConfig{
		Width:         width,
		Height:        height,
		DungeonChance: dungeonChance,
		RoomSize:      p.Tuning.Structure.RoomSize,
	}, p.Synth, p.Carver, saved)
}

// LoadCatalog returns the catalog at path, or the built-in one for an empty path.
func LoadCatalog(path string) (*block.Catalog, error) {
	if path == "" {
		return block.DefaultCatalog(), nil
	}
	return block.LoadCatalog(path)
}

// NewWorld assembles the scheduler, store and loop of a world described by
// cfg. Edited chunks are saved to saved when it is non-nil.
func (p *Pipeline) NewWorld(cfg config.WorldConfig, saved persistence.Store) (*Loop, *Source) {
	source := p.Source(cfg.ChunkWidth, cfg.ChunkHeight, cfg.DungeonChance, saved)
	sched := scheduler.New(source)

	var saver chunk.Saver
	if saved != nil {
		saver = Saver{Store: saved}
	}
	store := chunk.NewStore(chunk.Options{
		ChunkWidth:   cfg.ChunkWidth,
		ChunkHeight:  cfg.ChunkHeight,
		TileSize:     cfg.TileSize,
		ViewDistance: cfg.ViewDistance,
		CacheTTL:     cfg.CacheTTL,
	}, sched, saver, NewTextCompositor(p.Catalog))

	loop := NewLoop(LoopConfig{
		Seed:          cfg.Seed,
		ScreenWidth:   cfg.ScreenWidth,
		FrameInterval: cfg.FrameInterval,
	}, store, sched)
	return loop, source
}
