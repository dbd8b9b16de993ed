package noise

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

//go:generate mockgen -source=generator.go -destination=../testmocks/noise/mock_field.go -package=mocknoise

// Field is a family of coherent noise functions indexed by base. Samples fall
// in [-1, 1] and are a pure function of their arguments.
type Field interface {
	Sample1D(x float64, octaves int, persistence float64, base int64) float64
	Sample2D(x, y float64, octaves int, persistence float64, base int64) float64
}

const (
	BackendPerlin  = "perlin"
	BackendSimplex = "simplex"
)

// New returns the Field implementation registered under backend.
func New(backend string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendPerlin:
		return NewPerlin(), nil
	case BackendSimplex:
		return NewSimplex(), nil
	default:
		return nil, fmt.Errorf("unknown noise backend %q", backend)
	}
}

// Perlin implements Field using gradient noise from go-perlin. One generator
// is built per base and reused.
type Perlin struct {
	mu    sync.RWMutex
	bases map[int64]*perlin.Perlin
}

// NewPerlin creates an empty Perlin field.
func NewPerlin() *Perlin {
	return &Perlin{bases: make(map[int64]*perlin.Perlin)}
}

// go-perlin peaks near ±0.5 in 1D and ±0.7 in 2D for a single octave.
const (
	perlinGain1D = 2.0
	perlinGain2D = 1.4
)

func (p *Perlin) source(base int64) *perlin.Perlin {
	p.mu.RLock()
	src, ok := p.bases[base]
	p.mu.RUnlock()
	if ok {
		return src
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if src, ok := p.bases[base]; ok {
		return src
	}
	// alpha=2, beta=2 as in terrain noise; octaves are summed by fractal below
	src = perlin.NewPerlin(2, 2, 1, base)
	p.bases[base] = src
	return src
}

func (p *Perlin) Sample1D(x float64, octaves int, persistence float64, base int64) float64 {
	src := p.source(base)
	return fractal(octaves, persistence, func(freq float64) float64 {
		return src.Noise1D(x*freq) * perlinGain1D
	})
}

func (p *Perlin) Sample2D(x, y float64, octaves int, persistence float64, base int64) float64 {
	src := p.source(base)
	return fractal(octaves, persistence, func(freq float64) float64 {
		return src.Noise2D(x*freq, y*freq) * perlinGain2D
	})
}

// Simplex implements Field with OpenSimplex noise; 1D samples are taken along y=0.
type Simplex struct {
	mu    sync.RWMutex
	bases map[int64]opensimplex.Noise
}

// NewSimplex creates an empty Simplex field.
func NewSimplex() *Simplex {
	return &Simplex{bases: make(map[int64]opensimplex.Noise)}
}

func (s *Simplex) source(base int64) opensimplex.Noise {
	s.mu.RLock()
	src, ok := s.bases[base]
	s.mu.RUnlock()
	if ok {
		return src
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if src, ok := s.bases[base]; ok {
		return src
	}
	src = opensimplex.New(base)
	s.bases[base] = src
	return src
}

func (s *Simplex) Sample1D(x float64, octaves int, persistence float64, base int64) float64 {
	src := s.source(base)
	return fractal(octaves, persistence, func(freq float64) float64 {
		return src.Eval2(x*freq, 0)
	})
}

func (s *Simplex) Sample2D(x, y float64, octaves int, persistence float64, base int64) float64 {
	src := s.source(base)
	return fractal(octaves, persistence, func(freq float64) float64 {
		return src.Eval2(x*freq, y*freq)
	})
}

// fractal layers octaves of sample, doubling frequency and scaling amplitude by
// persistence each time, normalized by total amplitude and clamped to [-1, 1].
func fractal(octaves int, persistence float64, sample func(freq float64) float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	freq := 1.0

	for i := 0; i < octaves; i++ {
		total += sample(freq) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		freq *= 2
	}

	return Clamp(total/maxVal, -1, 1)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Normalize remaps a [-1, 1] sample onto [0, 1].
func Normalize(v float64) float64 {
	return Clamp((v+1)/2, 0, 1)
}
