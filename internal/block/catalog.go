// Package block defines block identifiers, the injectable block catalog and
// the tagged variant used for stateful block instances.
package block

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ID identifies a catalog entry. It is what chunk grids store per cell.
type ID uint16

// Ids of the default catalog.
const (
	Air ID = iota
	Water
	Unbreakable
	Grass
	SnowyGrass
	Dirt
	Sand
	Sandstone
	Stone
	CoalOre
	IronOre
	GoldOre
	Wood
	Leaves
	LeavesLight
	LeavesDark
	DungeonWall
	Spawner
	Storage
	Furnace
)

// Names the generation pipeline and the dungeon carver resolve at construction.
const (
	NameAir         = "air"
	NameWater       = "water"
	NameUnbreakable = "unbreakable"
	NameGrass       = "grass"
	NameSnowyGrass  = "snowy_grass"
	NameDirt        = "dirt"
	NameSand        = "sand"
	NameSandstone   = "sandstone"
	NameStone       = "stone"
	NameCoalOre     = "coal_ore"
	NameIronOre     = "iron_ore"
	NameGoldOre     = "gold_ore"
	NameWood        = "wood"
	NameLeaves      = "leaves"
	NameLeavesLight = "leaves_light"
	NameLeavesDark  = "leaves_dark"
	NameDungeonWall = "dungeon_wall"
	NameSpawner     = "spawner"
	NameStorage     = "storage"
	NameFurnace     = "furnace"
)

var (
	ErrUnknownBlock = errors.New("unknown block id")
	ErrUnknownName  = errors.New("unknown block name")
)

// Def describes a single catalog entry.
type Def struct {
	ID       ID     `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Solid    bool   `yaml:"solid" json:"solid"`
	DropItem string `yaml:"drop_item,omitempty" json:"drop_item,omitempty"`
	Kind     Kind   `yaml:"kind,omitempty" json:"kind"`
}

// Catalog is an immutable id/name lookup table. It is safe for concurrent use.
type Catalog struct {
	byID   map[ID]Def
	byName map[string]ID
}

// NewCatalog validates defs and builds a catalog from them. Every name the
// generator and the dungeon carver resolve must be present, and air must be
// the zero id.
func NewCatalog(defs []Def) (*Catalog, error) {
	c := &Catalog{
		byID:   make(map[ID]Def, len(defs)),
		byName: make(map[string]ID, len(defs)),
	}
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("block %d has no name", d.ID)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate block id %d", d.ID)
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate block name %q", d.Name)
		}
		if d.Kind == "" {
			d.Kind = KindBasic
		}
		if !d.Kind.valid() {
			return nil, fmt.Errorf("block %q has unknown kind %q", d.Name, d.Kind)
		}
		c.byID[d.ID] = d
		c.byName[d.Name] = d.ID
	}
	for _, name := range requiredNames {
		if _, ok := c.byName[name]; !ok {
			return nil, fmt.Errorf("catalog is missing %q: %w", name, ErrUnknownName)
		}
	}
	// zeroed grids are all-air, so air is pinned to the zero id
	if id := c.byName[NameAir]; id != Air {
		return nil, fmt.Errorf("block %q must have id %d, got %d", NameAir, Air, id)
	}
	return c, nil
}

var requiredNames = []string{
	NameAir, NameWater, NameUnbreakable, NameGrass, NameSnowyGrass, NameDirt,
	NameSand, NameSandstone, NameStone, NameCoalOre, NameIronOre, NameGoldOre,
	NameWood, NameLeaves, NameLeavesLight, NameLeavesDark, NameDungeonWall,
	NameSpawner, NameStorage,
}

// Resolve returns the definition of id or ErrUnknownBlock.
func (c *Catalog) Resolve(id ID) (Def, error) {
	d, ok := c.byID[id]
	if !ok {
		return Def{}, fmt.Errorf("%w: %d", ErrUnknownBlock, id)
	}
	return d, nil
}

// ID looks a block up by name.
func (c *Catalog) ID(name string) (ID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// MustID is ID for names validated by NewCatalog.
func (c *Catalog) MustID(name string) ID {
	id, ok := c.byName[name]
	if !ok {
		panic(fmt.Sprintf("block: %q not in catalog", name))
	}
	return id
}

// Solid reports whether id blocks movement. Unknown ids are not solid.
func (c *Catalog) Solid(id ID) bool {
	return c.byID[id].Solid
}

// Defs returns all definitions ordered by id.
func (c *Catalog) Defs() []Def {
	out := make([]Def, 0, len(c.byID))
	for _, d := range c.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DefaultCatalog returns the built-in catalog whose ids match the package constants.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultDefs)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultDefs = []Def{
	{ID: Air, Name: NameAir},
	{ID: Water, Name: NameWater},
	{ID: Unbreakable, Name: NameUnbreakable, Solid: true},
	{ID: Grass, Name: NameGrass, Solid: true, DropItem: "dirt"},
	{ID: SnowyGrass, Name: NameSnowyGrass, Solid: true, DropItem: "dirt"},
	{ID: Dirt, Name: NameDirt, Solid: true, DropItem: "dirt"},
	{ID: Sand, Name: NameSand, Solid: true, DropItem: "sand"},
	{ID: Sandstone, Name: NameSandstone, Solid: true, DropItem: "sandstone"},
	{ID: Stone, Name: NameStone, Solid: true, DropItem: "cobblestone"},
	{ID: CoalOre, Name: NameCoalOre, Solid: true, DropItem: "coal"},
	{ID: IronOre, Name: NameIronOre, Solid: true, DropItem: "raw_iron"},
	{ID: GoldOre, Name: NameGoldOre, Solid: true, DropItem: "raw_gold"},
	{ID: Wood, Name: NameWood, Solid: true, DropItem: "wood"},
	{ID: Leaves, Name: NameLeaves},
	{ID: LeavesLight, Name: NameLeavesLight},
	{ID: LeavesDark, Name: NameLeavesDark},
	{ID: DungeonWall, Name: NameDungeonWall, Solid: true, DropItem: "brick"},
	{ID: Spawner, Name: NameSpawner, Solid: true},
	{ID: Storage, Name: NameStorage, Solid: true, DropItem: "storage", Kind: KindStorage},
	{ID: Furnace, Name: NameFurnace, Solid: true, DropItem: "furnace", Kind: KindFurnace},
}

type catalogFile struct {
	Blocks []Def `yaml:"blocks"`
}

// LoadCatalog reads a YAML catalog of the form `blocks: [{id, name, solid, drop_item, kind}]`.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read block catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse block catalog %s: %w", path, err)
	}
	return NewCatalog(f.Blocks)
}
