package structure

import (
	"fmt"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
)

func (cv *Carver) clearWater(c *chunk.Chunk, x0, y0, x1, y1 int) {
	pad := cv.params.Padding
	for y := y0 - pad; y <= y1+pad; y++ {
		for x := x0 - pad; x <= x1+pad; x++ {
			if c.At(x, y) == cv.water && c.InBounds(x, y) {
				c.Set(x, y, cv.air)
			}
		}
	}
}

func (cv *Carver) carveRoom(c *chunk.Chunk, r Room) {
	for y := r.Y; y <= r.bottom(); y++ {
		for x := r.X; x <= r.right(); x++ {
			edge := y == r.Y || y == r.bottom() || x == r.X || x == r.right()
			if edge {
				c.Set(x, y, cv.wall)
			} else {
				c.Set(x, y, cv.air)
			}
		}
	}

	cx, cy := r.centre()
	switch r.Kind {
	case Spawner:
		c.Set(cx, cy, cv.spawner)
	case Loot:
		c.Set(cx, cy, cv.storage)
		inst := block.NewInstance(cv.storage, cv.storKind)
		if inv, ok := inst.Inventory(); ok && cv.params.LootCount > 0 {
			inv.SetItems([]block.ItemStack{{Item: cv.params.LootItem, Count: cv.params.LootCount}})
		}
		if inst != nil {
			// planned rooms always fit the chunk, so the centre is a valid cell
			if err := c.SetInstance(cx, cy, inst); err != nil {
				panic(fmt.Sprintf("structure: loot room centre (%d,%d): %v", cx, cy, err))
			}
		}
	}
}

// carveHallway cuts the tunnel from prev into next. Sideways tunnels have a
// floor, a path row, a headroom row and a ceiling; shafts are two cells wide
// between side walls.
func (cv *Carver) carveHallway(c *chunk.Chunk, prev, next Room) {
	x0, y0, x1, y1 := hallwayBounds(prev, next)

	switch next.From {
	case Right:
		floor := prev.bottom()
		for x := x0; x <= x1; x++ {
			c.Set(x, floor, cv.wall)
			c.Set(x, floor-1, cv.air)
			c.Set(x, floor-2, cv.air)
			c.Set(x, floor-3, cv.wall)
		}
		for _, x := range []int{prev.right(), next.X} {
			c.Set(x, floor-1, cv.air)
			c.Set(x, floor-2, cv.air)
		}
	case Down:
		for y := y0; y <= y1; y++ {
			c.Set(x0, y, cv.wall)
			c.Set(x0+1, y, cv.air)
			c.Set(x0+2, y, cv.air)
			c.Set(x1, y, cv.wall)
		}
		for _, y := range []int{prev.bottom(), next.Y} {
			c.Set(x0+1, y, cv.air)
			c.Set(x0+2, y, cv.air)
		}
	}
}

// hallwayBounds is the footprint of the tunnel between two consecutive rooms.
func hallwayBounds(prev, next Room) (x0, y0, x1, y1 int) {
	if next.From == Down {
		cx := prev.X + prev.Width/2
		return cx - 2, prev.bottom() + 1, cx + 1, next.Y - 1
	}
	floor := prev.bottom()
	return prev.right() + 1, floor - 3, next.X - 1, floor
}
