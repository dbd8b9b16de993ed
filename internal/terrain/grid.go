package terrain

import "github.com/VoidMesh/strata/internal/block"

// code is the synthesizer's internal cell value. It indexes the palette.
type code uint8

const (
	codeAir code = iota
	codeWater
	codeUnbreakable
	codeGrass
	codeSnowyGrass
	codeDirt
	codeSand
	codeSandstone
	codeStone
	codeCoalOre
	codeIronOre
	codeGoldOre
	codeWood
	codeLeaves
	codeLeavesLight
	codeLeavesDark
	codeCount
)

var codeNames = [codeCount]string{
	codeAir:         block.NameAir,
	codeWater:       block.NameWater,
	codeUnbreakable: block.NameUnbreakable,
	codeGrass:       block.NameGrass,
	codeSnowyGrass:  block.NameSnowyGrass,
	codeDirt:        block.NameDirt,
	codeSand:        block.NameSand,
	codeSandstone:   block.NameSandstone,
	codeStone:       block.NameStone,
	codeCoalOre:     block.NameCoalOre,
	codeIronOre:     block.NameIronOre,
	codeGoldOre:     block.NameGoldOre,
	codeWood:        block.NameWood,
	codeLeaves:      block.NameLeaves,
	codeLeavesLight: block.NameLeavesLight,
	codeLeavesDark:  block.NameLeavesDark,
}

func (c code) grassy() bool {
	return c == codeGrass || c == codeSnowyGrass
}

type grid struct {
	index   int
	originX int
	width   int
	height  int
	cells   []code
	surface []int
}

func newGrid(index, width, height int) *grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &grid{
		index:   index,
		originX: index * width,
		width:   width,
		height:  height,
		cells:   make([]code, width*height),
		surface: make([]int, width),
	}
}

func (g *grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *grid) at(x, y int) code {
	return g.cells[y*g.width+x]
}

func (g *grid) set(x, y int, c code) {
	g.cells[y*g.width+x] = c
}

func (g *grid) clone() *grid {
	out := *g
	out.cells = append([]code(nil), g.cells...)
	out.surface = append([]int(nil), g.surface...)
	return &out
}
