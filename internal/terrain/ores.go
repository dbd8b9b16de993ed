package terrain

// orePass converts stone to ore where the ore's field exceeds its threshold.
// Cells claimed by an earlier ore pass are no longer stone and are skipped.
func (s *Synthesizer) orePass(g *grid, ore Ore, target code, seed int64) {
	base := seed + ore.SeedOffset
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.at(x, y) != codeStone {
				continue
			}
			gx := float64(g.originX + x)
			if s.noise.Sample2D(gx/ore.Scale, float64(y)/ore.Scale, 2, 0.5, base) > ore.Threshold {
				g.set(x, y, target)
			}
		}
	}
}
