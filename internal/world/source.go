// Package world wires generation, streaming and persistence into a running
// world driven by a single loop goroutine.
package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/persistence"
	"github.com/VoidMesh/strata/internal/structure"
	"github.com/VoidMesh/strata/internal/terrain"
)

// Source produces chunks for the scheduler: a saved copy when one exists,
// otherwise freshly synthesized terrain with an optional dungeon.
type Source struct {
	synth         *terrain.Synthesizer
	carver        *structure.Carver
	saved         persistence.Store
	width         int
	height        int
	dungeonChance float64
	roomSize      int
}

type SourceConfig struct {
	Width         int
	Height        int
	DungeonChance float64
	RoomSize      int
}

// NewSource builds a Source. saved may be nil to disable persistence.
func NewSource(cfg SourceConfig, synth *terrain.Synthesizer, carver *structure.Carver, saved persistence.Store) *Source {
	return &Source{
		synth:         synth,
		carver:        carver,
		saved:         saved,
		width:         cfg.Width,
		height:        cfg.Height,
		dungeonChance: cfg.DungeonChance,
		roomSize:      cfg.RoomSize,
	}
}

// Chunk implements scheduler.Source.
func (s *Source) Chunk(ctx context.Context, index int, seed int64) (*chunk.Chunk, error) {
	if s.saved != nil {
		c, err := s.saved.Load(ctx, seed, index)
		switch {
		case err == nil:
			if c.Width != s.width || c.Height != s.height {
				return nil, fmt.Errorf("saved chunk %d is %dx%d, world is %dx%d", index, c.Width, c.Height, s.width, s.height)
			}
			return c, nil
		case !errors.Is(err, persistence.ErrNotFound):
			return nil, err
		}
	}
	return s.Generate(index, seed), nil
}

// Generate runs the pure generation pipeline, ignoring saved chunks.
func (s *Source) Generate(index int, seed int64) *chunk.Chunk {
	return s.GenerateSized(index, s.width, s.height, seed)
}

// GenerateSized is Generate with explicit dimensions.
func (s *Source) GenerateSized(index, width, height int, seed int64) *chunk.Chunk {
	c := s.synth.Generate(index, width, height, seed)
	if s.carver != nil && structure.ShouldCarve(seed, index, s.dungeonChance) {
		startX := structure.Site(seed, index, width, s.roomSize)
		s.carver.Carve(c, startX, 0)
	}
	return c
}

// Saver adapts a persistence store to chunk.Saver.
type Saver struct {
	Store persistence.Store
}

func (s Saver) SaveChunk(c *chunk.Chunk) error {
	return s.Store.Save(context.Background(), c)
}
