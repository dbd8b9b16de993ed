// Package terrain synthesizes chunks from seeded noise in a fixed sequence of
// passes: height map, caves, underground water, ores (gold, iron, coal) and
// trees. Later passes only ever convert cells of the kind they scan, so the
// order of the passes is what decides priority where they overlap.
package terrain

import (
	"sync"

	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/noise"
	"github.com/charmbracelet/log"
)

// Ore configures one ore pass.
type Ore struct {
	SeedOffset int64   `yaml:"seed_offset"`
	Scale      float64 `yaml:"scale"`
	Threshold  float64 `yaml:"threshold"`
}

type Params struct {
	FlatScale       float64 `yaml:"flat_scale"`
	CaveScale       float64 `yaml:"cave_scale"`
	CaveThreshold   float64 `yaml:"cave_threshold"`
	WaterCaveChance float64 `yaml:"water_cave_chance"`
	Gold            Ore     `yaml:"gold"`
	Iron            Ore     `yaml:"iron"`
	Coal            Ore     `yaml:"coal"`
}

func DefaultParams() Params {
	return Params{
		FlatScale:       100,
		CaveScale:       20,
		CaveThreshold:   0.35,
		WaterCaveChance: 0.02,
		Gold:            Ore{SeedOffset: 300, Scale: 6, Threshold: 0.6},
		Iron:            Ore{SeedOffset: 200, Scale: 8, Threshold: 0.5},
		Coal:            Ore{SeedOffset: 100, Scale: 10, Threshold: 0.4},
	}
}

// Pass salts for the per-chunk random streams.
const (
	saltHeight uint64 = iota + 1
	saltWater
	saltTrees
)

// Synthesizer generates chunks. It holds no mutable state once built and is
// safe for concurrent use.
type Synthesizer struct {
	noise   noise.Field
	biomes  *biome.Field
	params  Params
	palette [codeCount]block.ID
	codes   map[block.ID]code
	leaves  map[biome.TreeType][]code
}

// New resolves the block palette against catalog. The catalog must contain
// every name NewCatalog requires.
func New(catalog *block.Catalog, field noise.Field, biomes *biome.Field, params Params) *Synthesizer {
	s := &Synthesizer{
		noise:  field,
		biomes: biomes,
		params: params,
		codes:  make(map[block.ID]code, codeCount),
		leaves: make(map[biome.TreeType][]code),
	}
	for c, name := range codeNames {
		id := catalog.MustID(name)
		s.palette[c] = id
		s.codes[id] = code(c)
	}
	for _, tree := range []biome.TreeType{biome.TreeOak, biome.TreeSpruce, biome.TreeAcacia} {
		for _, name := range tree.LeafNames() {
			s.leaves[tree] = append(s.leaves[tree], s.codes[catalog.MustID(name)])
		}
	}
	return s
}

// Generate returns the chunk identified by (seed, index). The result is a pure
// function of its arguments.
func (s *Synthesizer) Generate(index, width, height int, seed int64) *chunk.Chunk {
	g := newGrid(index, width, height)
	if width <= 0 || height <= 0 {
		return s.materialize(g, seed)
	}

	columns := s.sampleBiomes(g)
	s.heightPass(g, columns, seed)
	s.cavePass(g, seed)
	s.waterPass(g, seed)
	s.orePass(g, s.params.Gold, codeGoldOre, seed)
	s.orePass(g, s.params.Iron, codeIronOre, seed)
	s.orePass(g, s.params.Coal, codeCoalOre, seed)
	s.treePass(g, columns, seed)

	log.Debug("chunk synthesized", "chunk_index", index, "seed", seed, "width", width, "height", height)
	return s.materialize(g, seed)
}

func (s *Synthesizer) sampleBiomes(g *grid) []biome.Blended {
	columns := make([]biome.Blended, g.width)
	for x := range columns {
		columns[x] = s.biomes.Sample(float64(g.originX + x))
	}
	return columns
}

// materialize converts the code grid into catalog ids.
func (s *Synthesizer) materialize(g *grid, seed int64) *chunk.Chunk {
	c := chunk.New(g.index, seed, g.width, g.height)
	for i, cell := range g.cells {
		c.Blocks[i] = s.palette[cell]
	}
	copy(c.Surface, g.surface)
	return c
}

var (
	defaultOnce  sync.Once
	defaultSynth *Synthesizer
)

// Default returns a synthesizer built from the default catalog, Perlin noise
// and default parameters.
func Default() *Synthesizer {
	defaultOnce.Do(func() {
		catalog := block.DefaultCatalog()
		field := noise.NewPerlin()
		defaultSynth = New(catalog, field, biome.NewField(field, catalog, biome.DefaultParams()), DefaultParams())
	})
	return defaultSynth
}

// GenerateChunk generates a chunk with Default.
func GenerateChunk(index, width, height int, seed int64) *chunk.Chunk {
	return Default().Generate(index, width, height, seed)
}
