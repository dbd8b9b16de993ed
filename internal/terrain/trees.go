package terrain

import (
	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/noise"
)

const canopyKeep = 0.8

// treePass plants trees on grass-topped columns. A tree is skipped entirely
// when any trunk cell is occupied or off the grid. Canopy cells outside the
// grid are dropped, and leaves never replace anything but air.
func (s *Synthesizer) treePass(g *grid, columns []biome.Blended, seed int64) {
	rng := noise.NewRand(seed, g.index, saltTrees)

	for x := 0; x < g.width; x++ {
		col := columns[x]
		top := g.surface[x]
		if !g.inBounds(x, top) || !g.at(x, top).grassy() {
			continue
		}
		leaves := s.leaves[col.Tree]
		if len(leaves) == 0 {
			continue
		}
		if rng.Float64() >= col.TreeChance {
			continue
		}

		trunk := 3 + rng.IntN(3)
		if !s.trunkClear(g, x, top, trunk) {
			continue
		}
		for dy := 1; dy <= trunk; dy++ {
			g.set(x, top-dy, codeWood)
		}

		cx, cy := x, top-trunk
		radius := 2 + rng.IntN(2)
		leaf := leaves[rng.IntN(len(leaves))]

		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if abs(dx)+abs(dy) > radius {
					continue
				}
				keep := rng.Float64() < canopyKeep
				lx, ly := cx+dx, cy+dy
				if !keep || !g.inBounds(lx, ly) || g.at(lx, ly) != codeAir {
					continue
				}
				g.set(lx, ly, leaf)
			}
		}
	}
}

func (s *Synthesizer) trunkClear(g *grid, x, top, trunk int) bool {
	for dy := 1; dy <= trunk; dy++ {
		if !g.inBounds(x, top-dy) || g.at(x, top-dy) != codeAir {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
