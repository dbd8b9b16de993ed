package noise

import "math/rand/v2"

const golden = 0x9E3779B97F4A7C15

// NewRand returns a PCG stream determined by seed, chunk index and a
// per-pass salt. Distinct salts give independent streams for the same chunk.
func NewRand(seed int64, index int, salt uint64) *rand.Rand {
	hi := uint64(seed)
	lo := uint64(int64(index))*golden ^ salt
	return rand.New(rand.NewPCG(hi, lo))
}
