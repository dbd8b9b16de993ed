package config

import (
	"fmt"
	"os"

	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/structure"
	"github.com/VoidMesh/strata/internal/terrain"
	"gopkg.in/yaml.v3"
)

// Tuning groups the generation parameters that can be overridden from YAML.
type Tuning struct {
	Terrain   terrain.Params   `yaml:"terrain"`
	Biome     biome.Params     `yaml:"biome"`
	Structure structure.Params `yaml:"structure"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Terrain:   terrain.DefaultParams(),
		Biome:     biome.DefaultParams(),
		Structure: structure.DefaultParams(),
	}
}

// LoadTuning overlays the YAML document at path onto DefaultTuning. An empty
// path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("failed to parse tuning file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("invalid tuning file %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects parameters that would divide by zero or break room planning.
func (t Tuning) Validate() error {
	for name, scale := range map[string]float64{
		"terrain.flat_scale":      t.Terrain.FlatScale,
		"terrain.cave_scale":      t.Terrain.CaveScale,
		"terrain.gold.scale":      t.Terrain.Gold.Scale,
		"terrain.iron.scale":      t.Terrain.Iron.Scale,
		"terrain.coal.scale":      t.Terrain.Coal.Scale,
		"biome.temperature_scale": t.Biome.TemperatureScale,
		"biome.humidity_scale":    t.Biome.HumidityScale,
		"biome.detail_scale":      t.Biome.DetailScale,
		"biome.transition_scale":  t.Biome.TransitionScale,
		"biome.climate_contrast":  t.Biome.ClimateContrast,
	} {
		if scale <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, scale)
		}
	}

	s := t.Structure
	if s.MinRooms < 1 || s.MaxRooms < s.MinRooms {
		return fmt.Errorf("structure rooms must satisfy 1 <= min_rooms <= max_rooms, got %d..%d", s.MinRooms, s.MaxRooms)
	}
	if s.HallwayMin < 1 || s.HallwayMax < s.HallwayMin {
		return fmt.Errorf("structure hallway must satisfy 1 <= hallway_min <= hallway_max, got %d..%d", s.HallwayMin, s.HallwayMax)
	}
	if s.RoomSize < 5 {
		return fmt.Errorf("structure.room_size must be at least 5, got %d", s.RoomSize)
	}
	return nil
}
