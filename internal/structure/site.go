package structure

import "github.com/VoidMesh/strata/internal/noise"

// ShouldCarve decides whether chunk index of world seed hosts a dungeon.
func ShouldCarve(seed int64, index int, chance float64) bool {
	if chance <= 0 {
		return false
	}
	return noise.NewRand(seed, index, saltDungeon).Float64() < chance
}

// Site picks the start column of a chunk's dungeon.
func Site(seed int64, index, width, roomSize int) int {
	span := width - roomSize + 1
	if span <= 1 {
		return 0
	}
	return noise.NewRand(seed, index, saltSite).IntN(span)
}
