// Package persistence stores edited chunks in sqlite as compressed JSON.
package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
)

// document is the persisted layout of a chunk. Each cell is either a bare
// block id or an object {id, type, ...state} for stateful blocks.
type document struct {
	Index   int                 `json:"index"`
	Seed    int64               `json:"seed"`
	Width   int                 `json:"width"`
	Height  int                 `json:"height"`
	Surface []int               `json:"surface,omitempty"`
	Rows    [][]json.RawMessage `json:"rows"`
}

type cellHeader struct {
	ID   *block.ID  `json:"id"`
	Type block.Kind `json:"type"`
}

// Encode serializes c into the persisted JSON layout.
func Encode(c *chunk.Chunk) ([]byte, error) {
	doc := document{
		Index:   c.Index,
		Seed:    c.Seed,
		Width:   c.Width,
		Height:  c.Height,
		Surface: c.Surface,
		Rows:    make([][]json.RawMessage, c.Height),
	}

	for y := 0; y < c.Height; y++ {
		row := make([]json.RawMessage, c.Width)
		for x := 0; x < c.Width; x++ {
			id := c.At(x, y)
			inst := c.Instance(x, y)
			if inst == nil || inst.Payload == nil {
				row[x] = json.RawMessage(fmt.Sprintf("%d", id))
				continue
			}
			cell, err := encodeInstance(id, inst)
			if err != nil {
				return nil, fmt.Errorf("encode cell (%d,%d): %w", x, y, err)
			}
			row[x] = cell
		}
		doc.Rows[y] = row
	}
	return json.Marshal(doc)
}

// encodeInstance flattens the payload fields next to id and type.
func encodeInstance(id block.ID, inst *block.Instance) (json.RawMessage, error) {
	raw, err := json.Marshal(inst.Payload)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields["id"], err = json.Marshal(id); err != nil {
		return nil, err
	}
	if fields["type"], err = json.Marshal(inst.Kind()); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// Decode parses a persisted chunk, resolving every id against catalog. An id
// the catalog does not know fails with block.ErrUnknownBlock.
func Decode(data []byte, catalog *block.Catalog) (*chunk.Chunk, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode chunk document: %w", err)
	}
	if doc.Width < 0 || doc.Height < 0 || len(doc.Rows) != doc.Height {
		return nil, fmt.Errorf("decode chunk %d: %d rows for height %d", doc.Index, len(doc.Rows), doc.Height)
	}

	c := chunk.New(doc.Index, doc.Seed, doc.Width, doc.Height)
	for y, row := range doc.Rows {
		if len(row) != doc.Width {
			return nil, fmt.Errorf("decode chunk %d: row %d has %d cells, want %d", doc.Index, y, len(row), doc.Width)
		}
		for x, cell := range row {
			if err := decodeCell(c, catalog, x, y, cell); err != nil {
				return nil, fmt.Errorf("decode chunk %d cell (%d,%d): %w", doc.Index, x, y, err)
			}
		}
	}

	if len(doc.Surface) == doc.Width {
		copy(c.Surface, doc.Surface)
	} else {
		recomputeSurface(c, catalog)
	}
	return c, nil
}

func decodeCell(c *chunk.Chunk, catalog *block.Catalog, x, y int, cell json.RawMessage) error {
	cell = bytes.TrimSpace(cell)
	if len(cell) > 0 && cell[0] == '{' {
		var hdr cellHeader
		if err := json.Unmarshal(cell, &hdr); err != nil {
			return err
		}
		if hdr.ID == nil {
			return fmt.Errorf("stateful cell has no id")
		}
		def, err := catalog.Resolve(*hdr.ID)
		if err != nil {
			return err
		}
		kind := hdr.Type
		if kind == "" {
			kind = def.Kind
		}
		if kind != def.Kind {
			return fmt.Errorf("block %q is %s, cell says %s", def.Name, def.Kind, kind)
		}
		c.Set(x, y, def.ID)
		payload := block.NewPayload(kind)
		if payload == nil {
			return nil
		}
		if err := json.Unmarshal(cell, payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", kind, err)
		}
		return c.SetInstance(x, y, &block.Instance{Block: def.ID, Payload: payload})
	}

	var id block.ID
	if err := json.Unmarshal(cell, &id); err != nil {
		return err
	}
	if _, err := catalog.Resolve(id); err != nil {
		return err
	}
	c.Set(x, y, id)
	return nil
}

// recomputeSurface takes the first solid cell from the top of each column.
func recomputeSurface(c *chunk.Chunk, catalog *block.Catalog) {
	for x := 0; x < c.Width; x++ {
		c.Surface[x] = c.Height - 1
		for y := 0; y < c.Height; y++ {
			if catalog.Solid(c.At(x, y)) {
				c.Surface[x] = y
				break
			}
		}
	}
}
