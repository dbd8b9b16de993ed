package biome

import (
	"math"
	"testing"

	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/noise"
	mocknoise "github.com/VoidMesh/strata/internal/testmocks/noise"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// fixedClimate programs the mock so every climate signal returns a constant.
func fixedClimate(t *testing.T, temp, humidity, transition float64) *Field {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocknoise.NewMockField(ctrl)
	p := DefaultParams()

	m.EXPECT().
		Sample1D(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ float64, _ int, _ float64, base int64) float64 {
			switch base {
			case p.TemperatureBase:
				return temp
			case p.HumidityBase:
				return humidity
			case p.TransitionBase:
				return transition
			default:
				return 0
			}
		}).
		AnyTimes()

	return NewField(m, block.DefaultCatalog(), p)
}

func TestPrimaryRules(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		humidity float64
		want     Biome
	}{
		{name: "cold is snowy", temp: 0.1, humidity: 0.9, want: Snowy},
		{name: "hot and dry is desert", temp: 0.9, humidity: 0.1, want: Desert},
		{name: "hot and humid is plains", temp: 0.9, humidity: 0.9, want: Plains},
		{name: "warm and dry is savanna", temp: 0.7, humidity: 0.3, want: Savanna},
		{name: "hot and semi dry is savanna", temp: 0.85, humidity: 0.3, want: Savanna},
		{name: "temperate is plains", temp: 0.5, humidity: 0.5, want: Plains},
		{name: "threshold is exclusive", temp: 0.2, humidity: 0.5, want: Plains},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Primary(tt.temp, tt.humidity))
		})
	}
}

func TestSecondaryRules(t *testing.T) {
	assert.Equal(t, Plains, Secondary(0.1))
	assert.Equal(t, Plains, Secondary(0.5))
	assert.Equal(t, Savanna, Secondary(0.8))
}

func TestSample_DiscreteSwitchAtHalf(t *testing.T) {
	tests := []struct {
		name       string
		transition float64
		surface    block.ID
		tree       TreeType
	}{
		{name: "primary dominates", transition: -1, surface: block.SnowyGrass, tree: TreeSpruce},
		{name: "just below half", transition: -0.02, surface: block.SnowyGrass, tree: TreeSpruce},
		{name: "exactly half switches", transition: 0, surface: block.Grass, tree: TreeOak},
		{name: "secondary dominates", transition: 1, surface: block.Grass, tree: TreeOak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// temperature -0.9 saturates to 0: snowy primary, plains secondary
			f := fixedClimate(t, -0.9, 0, tt.transition)
			b := f.Sample(10)

			assert.Equal(t, Snowy, b.Primary)
			assert.Equal(t, Plains, b.Secondary)
			assert.Equal(t, tt.surface, b.Surface)
			assert.Equal(t, block.Dirt, b.Subsurface)
			assert.Equal(t, tt.tree, b.Tree)
		})
	}
}

func TestSample_ContinuousAttributesLerp(t *testing.T) {
	f := fixedClimate(t, -0.9, 0, 0)
	b := f.Sample(0)

	snowy, plains := f.Profile(Snowy), f.Profile(Plains)
	assert.InDelta(t, 0.5, b.Factor, 1e-9)
	assert.InDelta(t, (snowy.Temperature+plains.Temperature)/2, b.Temperature, 1e-9)
	assert.InDelta(t, (snowy.Humidity+plains.Humidity)/2, b.Humidity, 1e-9)
	assert.InDelta(t, (snowy.HeightMod+plains.HeightMod)/2, b.HeightMod, 1e-9)
	assert.InDelta(t, (snowy.TreeChance+plains.TreeChance)/2, b.TreeChance, 1e-9)
}

func TestSample_DesertHasNoTrees(t *testing.T) {
	// temperature 0.9 saturates to 1, humidity -0.9 to 0
	f := fixedClimate(t, 0.9, -0.9, -1)
	b := f.Sample(0)

	assert.Equal(t, Desert, b.Primary)
	assert.Equal(t, Savanna, b.Secondary)
	assert.Equal(t, block.Sand, b.Surface)
	assert.Equal(t, block.Sandstone, b.Subsurface)
	assert.Equal(t, TreeNone, b.Tree)
	assert.Zero(t, b.TreeChance)
}

func TestSample_BlendBounds(t *testing.T) {
	f := NewField(noise.NewPerlin(), block.DefaultCatalog(), DefaultParams())

	for x := -5000.0; x <= 5000; x += 37 {
		b := f.Sample(x)
		pt := f.Profile(b.Primary).Temperature
		st := f.Profile(b.Secondary).Temperature

		lo, hi := math.Min(pt, st), math.Max(pt, st)
		assert.GreaterOrEqual(t, b.Temperature, lo-1e-9, "x=%v", x)
		assert.LessOrEqual(t, b.Temperature, hi+1e-9, "x=%v", x)
		assert.GreaterOrEqual(t, b.Factor, 0.0)
		assert.LessOrEqual(t, b.Factor, 1.0)
	}
}

func TestClimate_InUnitRange(t *testing.T) {
	f := NewField(noise.NewSimplex(), block.DefaultCatalog(), DefaultParams())
	for x := -2000.0; x <= 2000; x += 53 {
		temp, hum := f.Climate(x)
		assert.True(t, temp >= 0 && temp <= 1, "temperature %v at %v", temp, x)
		assert.True(t, hum >= 0 && hum <= 1, "humidity %v at %v", hum, x)
	}
}

func TestLeafNames(t *testing.T) {
	assert.NotEmpty(t, TreeOak.LeafNames())
	assert.Nil(t, TreeNone.LeafNames())
	assert.Equal(t, "spruce", TreeSpruce.String())
	assert.Equal(t, "savanna", Savanna.String())
}

func TestClassify_AllPrimaryBiomesOccur(t *testing.T) {
	f := NewField(noise.NewPerlin(), block.DefaultCatalog(), DefaultParams())

	counts := map[Biome]int{}
	minTemp, maxTemp := 1.0, 0.0
	for x := -50000; x < 50000; x += 31 {
		temp, _ := f.Climate(float64(x))
		minTemp, maxTemp = math.Min(minTemp, temp), math.Max(maxTemp, temp)

		primary, _, _ := f.Classify(float64(x))
		counts[primary]++
	}

	for _, b := range []Biome{Plains, Snowy, Desert, Savanna} {
		assert.Positive(t, counts[b], "%s never sampled: %v", b, counts)
	}
	assert.Less(t, minTemp, 0.2)
	assert.Greater(t, maxTemp, 0.8)
}

func TestNewField_ProfileOverride(t *testing.T) {
	params := DefaultParams()
	desert := params.Profiles[Desert]
	desert.Surface = block.NameStone
	desert.TreeChance = 0.5
	params.Profiles[Desert] = desert
	delete(params.Profiles, Plains)

	f := NewField(noise.NewPerlin(), block.DefaultCatalog(), params)
	assert.Equal(t, block.NameStone, f.Profile(Desert).Surface)
	assert.Equal(t, 0.5, f.Profile(Desert).TreeChance)
	assert.Equal(t, DefaultProfiles()[Plains], f.Profile(Plains), "missing overrides fall back to the built-in profile")

	// the override must not leak into the built-in table
	assert.Equal(t, block.NameSand, DefaultProfiles()[Desert].Surface)
}
