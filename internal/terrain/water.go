package terrain

import "github.com/VoidMesh/strata/internal/noise"

// waterPass floods short horizontal runs of underground air. A run only
// fills cells strictly below the surface of the column they belong to.
func (s *Synthesizer) waterPass(g *grid, seed int64) {
	rng := noise.NewRand(seed, g.index, saltWater)
	for x := 0; x < g.width; x++ {
		for y := g.surface[x] + 1; y < g.height-1; y++ {
			if g.at(x, y) != codeAir {
				continue
			}
			if rng.Float64() >= s.params.WaterCaveChance {
				continue
			}
			run := 3 + rng.IntN(3)
			for dx := 0; dx < run; dx++ {
				tx := x + dx
				if tx >= g.width {
					break
				}
				if y > g.surface[tx] && g.at(tx, y) == codeAir {
					g.set(tx, y, codeWater)
				}
			}
		}
	}
}
