package terrain

import (
	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/noise"
)

// heightPass lays out surface, subsurface, stone and the unbreakable floor.
// Surface rows stay within [H/3, 2H/3] and at least two rows above the floor.
func (s *Synthesizer) heightPass(g *grid, columns []biome.Blended, seed int64) {
	rng := noise.NewRand(seed, g.index, saltHeight)
	h := g.height
	bottom := h - 1

	for x := 0; x < g.width; x++ {
		col := columns[x]
		gx := float64(g.originX + x)

		n := s.noise.Sample1D((gx+float64(seed))/s.params.FlatScale, 4, 0.5, seed)
		surface := int(float64(h)/2 + n*float64(h)/6*col.HeightMod)
		surface = clampInt(surface, h/3, 2*h/3)
		surface = clampInt(surface, 0, max(h-3, 0))
		g.surface[x] = surface

		top := s.codeOf(col.Surface, codeGrass)
		sub := s.codeOf(col.Subsurface, codeDirt)
		depth := 3 + rng.IntN(3)

		for y := surface; y < bottom; y++ {
			switch {
			case y == surface:
				g.set(x, y, top)
			case y <= surface+depth:
				g.set(x, y, sub)
			default:
				g.set(x, y, codeStone)
			}
		}
		g.set(x, bottom, codeUnbreakable)
	}
}

func (s *Synthesizer) codeOf(id block.ID, fallback code) code {
	if c, ok := s.codes[id]; ok {
		return c
	}
	return fallback
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
