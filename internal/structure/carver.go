// Package structure overlays dungeons onto generated chunks.
package structure

import (
	"math/rand/v2"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/noise"
	"github.com/charmbracelet/log"
)

type RoomKind int

const (
	Empty RoomKind = iota
	Spawner
	Loot
)

func (k RoomKind) String() string {
	switch k {
	case Spawner:
		return "spawner"
	case Loot:
		return "loot"
	default:
		return "empty"
	}
}

// Direction is how a room connects to its predecessor.
type Direction int

const (
	None Direction = iota
	Right
	Down
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Room is one cell of a dungeon chain. X and Y are the top-left wall cell.
// A room spans Width columns and Height+1 rows: Height rows of room plus one
// row of headroom inside the perimeter.
type Room struct {
	X             int       `json:"x"`
	Y             int       `json:"y"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	Kind          RoomKind  `json:"kind"`
	From          Direction `json:"from"`
	HallwayLength int       `json:"hallway_length"`
}

func (r Room) bottom() int { return r.Y + r.Height }
func (r Room) right() int  { return r.X + r.Width - 1 }

func (r Room) centre() (int, int) {
	return r.X + r.Width/2, r.Y + (r.Height+1)/2
}

type Params struct {
	MinRooms      int     `yaml:"min_rooms"`
	MaxRooms      int     `yaml:"max_rooms"`
	RoomSize      int     `yaml:"room_size"`
	HallwayMin    int     `yaml:"hallway_min"`
	HallwayMax    int     `yaml:"hallway_max"`
	Depth         int     `yaml:"depth"`
	Padding       int     `yaml:"padding"`
	SpecialChance float64 `yaml:"special_chance"`
	LootItem      string  `yaml:"loot_item"`
	LootCount     int     `yaml:"loot_count"`
}

func DefaultParams() Params {
	return Params{
		MinRooms:      3,
		MaxRooms:      5,
		RoomSize:      10,
		HallwayMin:    5,
		HallwayMax:    8,
		Depth:         10,
		Padding:       2,
		SpecialChance: 0.4,
		LootItem:      "gold_ingot",
		LootCount:     4,
	}
}

const (
	saltPlan    uint64 = 0xD0
	saltSite    uint64 = 0xD1
	saltDungeon uint64 = 0xD2
)

// Carver plans and carves room chains. It is safe for concurrent use.
type Carver struct {
	params   Params
	air      block.ID
	water    block.ID
	wall     block.ID
	spawner  block.ID
	storage  block.ID
	storKind block.Kind
	anchors  map[block.ID]bool
}

func NewCarver(catalog *block.Catalog, params Params) *Carver {
	c := &Carver{
		params:  params,
		air:     catalog.MustID(block.NameAir),
		water:   catalog.MustID(block.NameWater),
		wall:    catalog.MustID(block.NameDungeonWall),
		spawner: catalog.MustID(block.NameSpawner),
		storage: catalog.MustID(block.NameStorage),
		anchors: make(map[block.ID]bool),
	}
	if def, err := catalog.Resolve(c.storage); err == nil {
		c.storKind = def.Kind
	}
	for _, name := range []string{block.NameGrass, block.NameSnowyGrass, block.NameDirt} {
		c.anchors[catalog.MustID(name)] = true
	}
	return c
}

// Carve plans a room chain starting near (startX, startY) and cuts it into c
// in place. It returns the rooms that were placed.
func (cv *Carver) Carve(c *chunk.Chunk, startX, startY int) []Room {
	rooms := cv.Plan(c, startX, startY)
	if len(rooms) == 0 {
		return nil
	}

	for i, r := range rooms {
		cv.clearWater(c, r.X, r.Y, r.right(), r.bottom())
		if i > 0 {
			x0, y0, x1, y1 := hallwayBounds(rooms[i-1], r)
			cv.clearWater(c, x0, y0, x1, y1)
		}
	}
	for _, r := range rooms {
		cv.carveRoom(c, r)
	}
	for i := 1; i < len(rooms); i++ {
		cv.carveHallway(c, rooms[i-1], rooms[i])
	}

	log.Debug("dungeon carved", "chunk_index", c.Index, "rooms", len(rooms), "start_x", rooms[0].X, "start_y", rooms[0].Y)
	return rooms
}

// Plan lays out the room chain for c without modifying it. The plan is a pure
// function of the chunk identity, its contents and the start position.
func (cv *Carver) Plan(c *chunk.Chunk, startX, startY int) []Room {
	p := cv.params
	size := p.RoomSize
	if size < 3 || c.Width < size {
		return nil
	}

	rng := noise.NewRand(c.Seed, c.Index, saltPlan^uint64(startX)<<16^uint64(startY)<<32)

	x := clamp(startX, 0, c.Width-size)
	y := max(startY, cv.referenceRow(c, x)+p.Depth)

	planned := p.MinRooms
	if p.MaxRooms > p.MinRooms {
		planned += rng.IntN(p.MaxRooms - p.MinRooms + 1)
	}

	first := Room{X: x, Y: max(y, 0), Width: size, Height: size, From: None}
	if !cv.fits(c, first) || planned < 1 {
		return nil
	}

	var rooms []Room
	hasSpawner, hasLoot := false, false
	cur := first
	for i := 0; i < planned; i++ {
		if i > 0 {
			next, ok := cv.nextRoom(c, cur, rng)
			if !ok {
				break
			}
			cur = next
		}
		cur.Kind = cv.pickKind(i, planned, hasSpawner, hasLoot, rng)
		hasSpawner = hasSpawner || cur.Kind == Spawner
		hasLoot = hasLoot || cur.Kind == Loot
		rooms = append(rooms, cur)
	}
	return rooms
}

func (cv *Carver) pickKind(i, planned int, hasSpawner, hasLoot bool, rng *rand.Rand) RoomKind {
	switch {
	case i == 0:
		if rng.Float64() < 0.5 {
			return Spawner
		}
		return Loot
	case hasSpawner && hasLoot:
		return Empty
	case i == planned-1 && !hasSpawner && !hasLoot:
		if rng.Float64() < 0.5 {
			return Spawner
		}
		return Loot
	case !hasSpawner && rng.Float64() < cv.params.SpecialChance:
		return Spawner
	case !hasLoot && rng.Float64() < cv.params.SpecialChance:
		return Loot
	default:
		return Empty
	}
}

func (cv *Carver) nextRoom(c *chunk.Chunk, prev Room, rng *rand.Rand) (Room, bool) {
	p := cv.params
	hall := p.HallwayMin
	if p.HallwayMax > p.HallwayMin {
		hall += rng.IntN(p.HallwayMax - p.HallwayMin + 1)
	}

	next := Room{Width: prev.Width, Height: prev.Height, HallwayLength: hall}
	if rng.Float64() < 0.5 {
		next.From = Right
		next.X = prev.X + prev.Width + hall
		next.Y = prev.Y
	} else {
		next.From = Down
		next.X = prev.X
		next.Y = prev.bottom() + 1 + hall
	}
	return next, cv.fits(c, next)
}

// fits reports whether r and its headroom row sit inside c above the
// unbreakable floor.
func (cv *Carver) fits(c *chunk.Chunk, r Room) bool {
	return r.X >= 0 && r.right() < c.Width && r.Y >= 0 && r.bottom() <= c.Height-2
}

// referenceRow is the first grass or dirt cell from the top of column x.
func (cv *Carver) referenceRow(c *chunk.Chunk, x int) int {
	for y := 0; y < c.Height; y++ {
		if cv.anchors[c.At(x, y)] {
			return y
		}
	}
	return c.Height / 2
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
