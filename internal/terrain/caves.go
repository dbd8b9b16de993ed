package terrain

// cavePass hollows stone where the cave field exceeds the threshold. Low
// octave counts give long tunnels rather than round caverns.
func (s *Synthesizer) cavePass(g *grid, seed int64) {
	scale := s.params.CaveScale
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.at(x, y) != codeStone {
				continue
			}
			gx := float64(g.originX + x)
			if s.noise.Sample2D(gx/scale, float64(y)/scale, 2, 0.5, seed) > s.params.CaveThreshold {
				g.set(x, y, codeAir)
			}
		}
	}
}
