package world

import (
	"bytes"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
)

var glyphs = map[string]byte{
	block.NameAir:         ' ',
	block.NameWater:       '~',
	block.NameUnbreakable: '=',
	block.NameGrass:       '"',
	block.NameSnowyGrass:  '*',
	block.NameDirt:        ':',
	block.NameSand:        '.',
	block.NameSandstone:   '%',
	block.NameStone:       '#',
	block.NameCoalOre:     'c',
	block.NameIronOre:     'i',
	block.NameGoldOre:     'g',
	block.NameWood:        '|',
	block.NameLeaves:      '&',
	block.NameLeavesLight: '&',
	block.NameLeavesDark:  '&',
	block.NameDungeonWall: 'H',
	block.NameSpawner:     'S',
	block.NameStorage:     'B',
	block.NameFurnace:     'F',
}

// TextCompositor renders chunks as one glyph per cell, one line per row.
type TextCompositor struct {
	glyph map[block.ID]byte
}

func NewTextCompositor(catalog *block.Catalog) *TextCompositor {
	tc := &TextCompositor{glyph: make(map[block.ID]byte)}
	for _, def := range catalog.Defs() {
		g, ok := glyphs[def.Name]
		switch {
		case ok:
		case def.Solid:
			g = '#'
		default:
			g = '.'
		}
		tc.glyph[def.ID] = g
	}
	return tc
}

func (tc *TextCompositor) Render(c *chunk.Chunk) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow((c.Width + 1) * c.Height)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			g, ok := tc.glyph[c.At(x, y)]
			if !ok {
				g = '?'
			}
			buf.WriteByte(g)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
