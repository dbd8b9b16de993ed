package structure

import (
	"testing"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// layered builds a chunk with grass at row 10, dirt below it, then stone and
// an unbreakable floor. Rows at or below flood are water instead of stone.
func layered(index int, seed int64, width, height, flood int) *chunk.Chunk {
	c := chunk.New(index, seed, width, height)
	for x := 0; x < width; x++ {
		c.Surface[x] = 10
		c.Set(x, 10, block.Grass)
		for y := 11; y < height-1; y++ {
			switch {
			case y < 15:
				c.Set(x, y, block.Dirt)
			case flood > 0 && y >= flood:
				c.Set(x, y, block.Water)
			default:
				c.Set(x, y, block.Stone)
			}
		}
		c.Set(x, height-1, block.Unbreakable)
	}
	return c
}

func fixedRooms(n int) Params {
	p := DefaultParams()
	p.MinRooms, p.MaxRooms = n, n
	return p
}

func TestPlan_WideChunkPlacesEveryRoom(t *testing.T) {
	cv := NewCarver(block.DefaultCatalog(), fixedRooms(3))

	for seed := int64(0); seed < 40; seed++ {
		c := layered(int(seed), seed, 120, 120, 0)
		rooms := cv.Plan(c, 0, 0)
		require.Len(t, rooms, 3, "seed %d", seed)

		assert.Equal(t, None, rooms[0].From)
		assert.Equal(t, 20, rooms[0].Y, "first room sits Depth rows below the reference row")
		for _, r := range rooms[1:] {
			assert.Contains(t, []Direction{Right, Down}, r.From)
			assert.GreaterOrEqual(t, r.HallwayLength, 5)
			assert.LessOrEqual(t, r.HallwayLength, 8)
		}
	}
}

func TestPlan_NarrowChunkTruncates(t *testing.T) {
	cv := NewCarver(block.DefaultCatalog(), fixedRooms(3))

	for seed := int64(0); seed < 40; seed++ {
		c := layered(0, seed, 12, 120, 0)
		rooms := cv.Plan(c, 5, 0)
		assert.GreaterOrEqual(t, len(rooms), 1, "seed %d", seed)
		assert.LessOrEqual(t, len(rooms), 3, "seed %d", seed)
		for _, r := range rooms {
			assert.NotEqual(t, Right, r.From, "no room fits to the right in a narrow chunk")
			assert.LessOrEqual(t, r.right(), 11)
		}
	}
}

func TestPlan_TooSmallForAnyRoom(t *testing.T) {
	cv := NewCarver(block.DefaultCatalog(), DefaultParams())

	assert.Nil(t, cv.Plan(layered(0, 1, 8, 120, 0), 0, 0))
	assert.Nil(t, cv.Plan(layered(0, 1, 40, 30, 0), 0, 0), "first room would reach the floor")
}

func TestPlan_AlwaysHasSpecialRoom(t *testing.T) {
	cv := NewCarver(block.DefaultCatalog(), DefaultParams())

	for seed := int64(0); seed < 200; seed++ {
		c := layered(int(seed%7), seed, 80, 140, 0)
		rooms := cv.Plan(c, int(seed%30), 0)
		if len(rooms) == 0 {
			continue
		}
		special := false
		for _, r := range rooms {
			if r.Kind == Spawner || r.Kind == Loot {
				special = true
			}
		}
		assert.True(t, special, "seed %d produced only empty rooms", seed)
	}
}

func TestPlan_StartClampedAndDeterministic(t *testing.T) {
	cv := NewCarver(block.DefaultCatalog(), DefaultParams())
	c := layered(3, 9, 60, 140, 0)

	a := cv.Plan(c, 58, 40)
	b := cv.Plan(c, 58, 40)
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.Equal(t, 50, a[0].X, "start column is pulled back so the first room fits")
	assert.Equal(t, 40, a[0].Y, "a start row below the reference depth is kept")
}

func TestCarve_LootRoomsCarryInventory(t *testing.T) {
	cv := NewCarver(block.DefaultCatalog(), DefaultParams())

	for seed := int64(0); seed < 100; seed++ {
		c := layered(int(seed%5), seed, 70, 140, 0)
		var rooms []Room
		require.NotPanics(t, func() { rooms = cv.Carve(c, int(seed%40), 0) }, "seed %d", seed)

		for _, r := range rooms {
			if r.Kind != Loot {
				continue
			}
			cx, cy := r.centre()
			assert.True(t, c.InBounds(cx, cy), "seed %d loot centre (%d,%d)", seed, cx, cy)
			assert.NotNil(t, c.Instance(cx, cy), "seed %d loot room has no storage state", seed)
		}
	}
}

func TestCarve_RoomLayout(t *testing.T) {
	cv := NewCarver(block.DefaultCatalog(), fixedRooms(3))
	c := layered(0, 4, 120, 120, 0)

	rooms := cv.Carve(c, 0, 0)
	require.Len(t, rooms, 3)

	for _, r := range rooms {
		assert.Equal(t, block.DungeonWall, c.At(r.X, r.bottom()), "bottom left corner")
		assert.Equal(t, block.DungeonWall, c.At(r.right(), r.Y), "top right corner")

		cx, cy := r.centre()
		switch r.Kind {
		case Spawner:
			assert.Equal(t, block.Spawner, c.At(cx, cy))
		case Loot:
			assert.Equal(t, block.Storage, c.At(cx, cy))
			inst := c.Instance(cx, cy)
			require.NotNil(t, inst)
			inv, ok := inst.Inventory()
			require.True(t, ok)
			assert.Equal(t, []block.ItemStack{{Item: "gold_ingot", Count: 4}}, inv.Items())
		default:
			assert.Equal(t, block.Air, c.At(cx, cy))
		}
		assert.Equal(t, block.Air, c.At(r.X+1, r.Y+1), "interior is open")
	}

	for x := 0; x < c.Width; x++ {
		assert.Equal(t, block.Unbreakable, c.At(x, c.Height-1))
	}
}

func TestCarve_HallwaysConnectRooms(t *testing.T) {
	cv := NewCarver(block.DefaultCatalog(), fixedRooms(3))
	c := layered(2, 21, 120, 120, 0)

	rooms := cv.Carve(c, 0, 0)
	require.Len(t, rooms, 3)

	for i := 1; i < len(rooms); i++ {
		prev, next := rooms[i-1], rooms[i]
		switch next.From {
		case Right:
			floor := prev.bottom()
			for x := prev.right(); x <= next.X; x++ {
				assert.Equal(t, block.Air, c.At(x, floor-1), "path at column %d", x)
				assert.Equal(t, block.Air, c.At(x, floor-2), "headroom at column %d", x)
			}
		case Down:
			cx := prev.X + prev.Width/2
			for y := prev.bottom(); y <= next.Y; y++ {
				assert.Equal(t, block.Air, c.At(cx, y), "shaft at row %d", y)
				assert.Equal(t, block.Air, c.At(cx-1, y), "shaft at row %d", y)
			}
		}
	}
}

func TestCarve_ClearsWaterAroundFootprint(t *testing.T) {
	p := fixedRooms(1)
	cv := NewCarver(block.DefaultCatalog(), p)
	c := layered(0, 1, 60, 80, 15)

	rooms := cv.Carve(c, 20, 0)
	require.Len(t, rooms, 1)

	r := rooms[0]
	for y := r.Y - p.Padding; y <= r.bottom()+p.Padding; y++ {
		for x := r.X - p.Padding; x <= r.right()+p.Padding; x++ {
			assert.NotEqual(t, block.Water, c.At(x, y), "water left at (%d,%d)", x, y)
		}
	}
	assert.Equal(t, block.Water, c.At(0, 40), "water far from the dungeon is kept")
}

func TestShouldCarve(t *testing.T) {
	assert.False(t, ShouldCarve(1, 1, 0))
	assert.True(t, ShouldCarve(1, 1, 1))

	for i := 0; i < 20; i++ {
		assert.Equal(t, ShouldCarve(42, i, 0.5), ShouldCarve(42, i, 0.5))
	}
}

func TestSite(t *testing.T) {
	for i := 0; i < 20; i++ {
		x := Site(42, i, 50, 10)
		assert.GreaterOrEqual(t, x, 0)
		assert.LessOrEqual(t, x, 40)
		assert.Equal(t, x, Site(42, i, 50, 10))
	}
	assert.Zero(t, Site(1, 1, 10, 10))
}
