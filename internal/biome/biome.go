// Package biome maps world columns onto blended climate profiles.
package biome

import (
	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/noise"
)

type Biome int

const (
	Plains Biome = iota
	Snowy
	Desert
	Savanna
)

func (b Biome) String() string {
	switch b {
	case Plains:
		return "plains"
	case Snowy:
		return "snowy"
	case Desert:
		return "desert"
	case Savanna:
		return "savanna"
	default:
		return "unknown"
	}
}

// TreeType names a tree species. TreeNone disables the tree pass.
type TreeType int

const (
	TreeNone TreeType = iota
	TreeOak
	TreeSpruce
	TreeAcacia
)

func (t TreeType) String() string {
	switch t {
	case TreeOak:
		return "oak"
	case TreeSpruce:
		return "spruce"
	case TreeAcacia:
		return "acacia"
	default:
		return "none"
	}
}

// LeafNames lists the leaf blocks a species may pick from, one per tree.
func (t TreeType) LeafNames() []string {
	switch t {
	case TreeOak:
		return []string{block.NameLeaves, block.NameLeavesLight}
	case TreeSpruce:
		return []string{block.NameLeavesDark}
	case TreeAcacia:
		return []string{block.NameLeavesLight, block.NameLeaves}
	default:
		return nil
	}
}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c Color) lerp(o Color, t float64) Color {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B)}
}

// Profile is the canonical description of a biome.
type Profile struct {
	Surface     string
	Subsurface  string
	Temperature float64
	Humidity    float64
	HeightMod   float64
	TreeChance  float64
	Tree        TreeType
	Tint        Color
}

var defaultProfiles = map[Biome]Profile{
	Plains: {
		Surface: block.NameGrass, Subsurface: block.NameDirt,
		Temperature: 0.5, Humidity: 0.5, HeightMod: 1.0, TreeChance: 0.1,
		Tree: TreeOak, Tint: Color{R: 110, G: 190, B: 70},
	},
	Snowy: {
		Surface: block.NameSnowyGrass, Subsurface: block.NameDirt,
		Temperature: 0.1, Humidity: 0.6, HeightMod: 1.2, TreeChance: 0.05,
		Tree: TreeSpruce, Tint: Color{R: 220, G: 235, B: 240},
	},
	Desert: {
		Surface: block.NameSand, Subsurface: block.NameSandstone,
		Temperature: 0.9, Humidity: 0.1, HeightMod: 0.6, TreeChance: 0,
		Tree: TreeNone, Tint: Color{R: 225, G: 200, B: 130},
	},
	Savanna: {
		Surface: block.NameGrass, Subsurface: block.NameDirt,
		Temperature: 0.75, Humidity: 0.3, HeightMod: 0.8, TreeChance: 0.03,
		Tree: TreeAcacia, Tint: Color{R: 170, G: 175, B: 80},
	},
}

// DefaultProfiles returns a fresh copy of the built-in biome profiles.
func DefaultProfiles() map[Biome]Profile {
	out := make(map[Biome]Profile, len(defaultProfiles))
	for b, p := range defaultProfiles {
		out[b] = p
	}
	return out
}

// Blended is the per-column result of Sample. It is a value type.
type Blended struct {
	Primary     Biome    `json:"primary"`
	Secondary   Biome    `json:"secondary"`
	Factor      float64  `json:"factor"`
	Surface     block.ID `json:"surface"`
	Subsurface  block.ID `json:"subsurface"`
	Temperature float64  `json:"temperature"`
	Humidity    float64  `json:"humidity"`
	HeightMod   float64  `json:"height_mod"`
	TreeChance  float64  `json:"tree_chance"`
	Tree        TreeType `json:"tree"`
	Tint        Color    `json:"tint"`
}

// Params controls the climate noise. Bases are fixed per field so biomes are
// shared by every world seed.
type Params struct {
	TemperatureScale float64 `yaml:"temperature_scale"`
	HumidityScale    float64 `yaml:"humidity_scale"`
	DetailScale      float64 `yaml:"detail_scale"`
	DetailWeight     float64 `yaml:"detail_weight"`
	TransitionScale  float64 `yaml:"transition_scale"`
	TemperatureBase  int64   `yaml:"temperature_base"`
	HumidityBase     int64   `yaml:"humidity_base"`
	TransitionBase   int64   `yaml:"transition_base"`

	// ClimateContrast stretches the summed climate noise before it is mapped
	// onto [0, 1]. Layered octaves rarely reach their peak amplitude, so without
	// it the extreme climates never occur.
	ClimateContrast float64 `yaml:"climate_contrast"`

	// Profiles overrides the built-in profile of each biome it names.
	Profiles map[Biome]Profile `yaml:"-"`
}

func DefaultParams() Params {
	return Params{
		TemperatureScale: 1000,
		HumidityScale:    1200,
		DetailScale:      80,
		DetailWeight:     0.1,
		TransitionScale:  400,
		TemperatureBase:  1000,
		HumidityBase:     2000,
		TransitionBase:   3000,
		ClimateContrast:  3,
		Profiles:         DefaultProfiles(),
	}
}

type resolved struct {
	Profile
	surface    block.ID
	subsurface block.ID
}

// Field samples biomes along the world's x axis. It is safe for concurrent use
// when its noise field is.
type Field struct {
	noise    noise.Field
	params   Params
	profiles map[Biome]resolved
}

// NewField resolves every profile's blocks against catalog.
func NewField(field noise.Field, catalog *block.Catalog, params Params) *Field {
	f := &Field{
		noise:    field,
		params:   params,
		profiles: make(map[Biome]resolved, len(defaultProfiles)),
	}
	for b, p := range defaultProfiles {
		if override, ok := params.Profiles[b]; ok {
			p = override
		}
		f.profiles[b] = resolved{
			Profile:    p,
			surface:    catalog.MustID(p.Surface),
			subsurface: catalog.MustID(p.Subsurface),
		}
	}
	return f
}

// Climate returns the normalized temperature and humidity at worldX.
func (f *Field) Climate(worldX float64) (temperature, humidity float64) {
	p := f.params
	t := f.noise.Sample1D(worldX/p.TemperatureScale, 2, 0.5, p.TemperatureBase) +
		p.DetailWeight*f.noise.Sample1D(worldX/p.DetailScale, 2, 0.5, p.TemperatureBase+1)
	h := f.noise.Sample1D(worldX/p.HumidityScale, 2, 0.5, p.HumidityBase) +
		p.DetailWeight*f.noise.Sample1D(worldX/p.DetailScale, 2, 0.5, p.HumidityBase+1)
	return noise.Normalize(p.ClimateContrast * t), noise.Normalize(p.ClimateContrast * h)
}

// Profile returns the profile the field resolved for b.
func (f *Field) Profile(b Biome) Profile {
	return f.profiles[b].Profile
}

// Classify returns the primary and secondary biome at worldX and the blend
// factor between them.
func (f *Field) Classify(worldX float64) (primary, secondary Biome, factor float64) {
	t, h := f.Climate(worldX)
	factor = noise.Normalize(f.noise.Sample1D(worldX/f.params.TransitionScale, 1, 0.5, f.params.TransitionBase))
	return Primary(t, h), Secondary(t), factor
}

// Sample blends the primary profile towards the secondary one by the
// transition factor. Discrete attributes switch at a factor of 0.5.
func (f *Field) Sample(worldX float64) Blended {
	primary, secondary, factor := f.Classify(worldX)
	a, b := f.profiles[primary], f.profiles[secondary]

	out := Blended{
		Primary:     primary,
		Secondary:   secondary,
		Factor:      factor,
		Temperature: lerp(a.Temperature, b.Temperature, factor),
		Humidity:    lerp(a.Humidity, b.Humidity, factor),
		HeightMod:   lerp(a.HeightMod, b.HeightMod, factor),
		TreeChance:  lerp(a.TreeChance, b.TreeChance, factor),
		Tint:        a.Tint.lerp(b.Tint, factor),
	}

	dominant := a
	if factor >= 0.5 {
		dominant = b
	}
	out.Surface = dominant.surface
	out.Subsurface = dominant.subsurface
	out.Tree = dominant.Tree
	return out
}

// Primary applies the ordered climate rules.
func Primary(temperature, humidity float64) Biome {
	switch {
	case temperature < 0.2:
		return Snowy
	case temperature > 0.8 && humidity < 0.2:
		return Desert
	case temperature > 0.6 && humidity < 0.4:
		return Savanna
	default:
		return Plains
	}
}

// Secondary is the coarse temperature-only neighbour used for blending.
func Secondary(temperature float64) Biome {
	switch {
	case temperature < 0.3:
		return Plains
	case temperature > 0.7:
		return Savanna
	default:
		return Plains
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
