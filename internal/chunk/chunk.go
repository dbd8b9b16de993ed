// Package chunk holds the world's block grid slices and the store that
// streams them in and out around the camera.
package chunk

import (
	"errors"
	"maps"

	"github.com/VoidMesh/strata/internal/block"
)

var (
	ErrOutOfBounds = errors.New("cell out of bounds")
	ErrNotLoaded   = errors.New("chunk not loaded")
)

// Chunk is a fixed-size slice of the world grid. Row 0 is the top. A chunk is
// identified by (Seed, Index) and never depends on its neighbours.
type Chunk struct {
	Index  int
	Seed   int64
	Width  int
	Height int
	// Blocks is row-major: cell (x, y) lives at y*Width + x.
	Blocks []block.ID
	// Surface holds the terrain surface row of each column.
	Surface []int
	// Instances holds per-cell state for stateful blocks, keyed by cell offset.
	Instances map[int]*block.Instance
}

// New returns an all-air chunk. Catalogs pin air to the zero id.
func New(index int, seed int64, width, height int) *Chunk {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Chunk{
		Index:     index,
		Seed:      seed,
		Width:     width,
		Height:    height,
		Blocks:    make([]block.ID, width*height),
		Surface:   make([]int, width),
		Instances: make(map[int]*block.Instance),
	}
}

// OriginX is the world column of local column 0.
func (c *Chunk) OriginX() int {
	return c.Index * c.Width
}

func (c *Chunk) InBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// Offset returns the Blocks offset of (x, y). The cell must be in bounds.
func (c *Chunk) Offset(x, y int) int {
	return y*c.Width + x
}

// At returns the block at (x, y), or Air outside the grid.
func (c *Chunk) At(x, y int) block.ID {
	if !c.InBounds(x, y) {
		return block.Air
	}
	return c.Blocks[c.Offset(x, y)]
}

// Set places id at (x, y) and drops any instance previously stored there.
// It reports false when the cell is outside the grid.
func (c *Chunk) Set(x, y int, id block.ID) bool {
	if !c.InBounds(x, y) {
		return false
	}
	off := c.Offset(x, y)
	c.Blocks[off] = id
	delete(c.Instances, off)
	return true
}

// Instance returns the stateful instance at (x, y), if any.
func (c *Chunk) Instance(x, y int) *block.Instance {
	if !c.InBounds(x, y) {
		return nil
	}
	return c.Instances[c.Offset(x, y)]
}

// SetInstance attaches inst to (x, y). A nil inst removes the cell's instance.
func (c *Chunk) SetInstance(x, y int, inst *block.Instance) error {
	if !c.InBounds(x, y) {
		return ErrOutOfBounds
	}
	off := c.Offset(x, y)
	if inst == nil {
		delete(c.Instances, off)
		return nil
	}
	if c.Instances == nil {
		c.Instances = make(map[int]*block.Instance)
	}
	c.Instances[off] = inst
	return nil
}

// Row returns a copy of row y.
func (c *Chunk) Row(y int) []block.ID {
	if y < 0 || y >= c.Height {
		return nil
	}
	row := make([]block.ID, c.Width)
	copy(row, c.Blocks[y*c.Width:(y+1)*c.Width])
	return row
}

// Clone returns a deep copy of the grid. Instance payloads are shared.
func (c *Chunk) Clone() *Chunk {
	out := &Chunk{
		Index:     c.Index,
		Seed:      c.Seed,
		Width:     c.Width,
		Height:    c.Height,
		Blocks:    append([]block.ID(nil), c.Blocks...),
		Surface:   append([]int(nil), c.Surface...),
		Instances: make(map[int]*block.Instance, len(c.Instances)),
	}
	maps.Copy(out.Instances, c.Instances)
	return out
}

// Equal reports whether both chunks hold identical blocks.
func (c *Chunk) Equal(other *Chunk) bool {
	if c.Index != other.Index || c.Seed != other.Seed || c.Width != other.Width || c.Height != other.Height {
		return false
	}
	for i := range c.Blocks {
		if c.Blocks[i] != other.Blocks[i] {
			return false
		}
	}
	return true
}
