package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Backends(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		want    interface{}
		wantErr bool
	}{
		{name: "default is perlin", backend: "", want: &Perlin{}},
		{name: "perlin", backend: "perlin", want: &Perlin{}},
		{name: "simplex case insensitive", backend: " Simplex ", want: &Simplex{}},
		{name: "unknown backend", backend: "worley", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, err := New(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, field)
		})
	}
}

func TestField_RangeAndDeterminism(t *testing.T) {
	fields := map[string]func() Field{
		"perlin":  func() Field { return NewPerlin() },
		"simplex": func() Field { return NewSimplex() },
	}

	coords := []struct{ x, y float64 }{
		{0.13, 0.27},
		{10.5, 20.7},
		{-15.3, -8.9},
		{1000.25, 2000.75},
	}

	for name, build := range fields {
		t.Run(name, func(t *testing.T) {
			a, b := build(), build()
			for _, c := range coords {
				for _, octaves := range []int{1, 2, 4} {
					v1 := a.Sample1D(c.x, octaves, 0.5, 42)
					v2 := a.Sample2D(c.x, c.y, octaves, 0.5, 42)

					assert.GreaterOrEqual(t, v1, -1.0)
					assert.LessOrEqual(t, v1, 1.0)
					assert.GreaterOrEqual(t, v2, -1.0)
					assert.LessOrEqual(t, v2, 1.0)

					assert.Equal(t, v1, b.Sample1D(c.x, octaves, 0.5, 42), "1D sample should be deterministic")
					assert.Equal(t, v2, b.Sample2D(c.x, c.y, octaves, 0.5, 42), "2D sample should be deterministic")
				}
			}
		})
	}
}

func TestPerlin_BasesDiffer(t *testing.T) {
	p := NewPerlin()

	different := false
	for i := 0; i < 32; i++ {
		x := float64(i)*0.37 + 0.11
		if p.Sample2D(x, x*0.5, 2, 0.5, 1) != p.Sample2D(x, x*0.5, 2, 0.5, 2) {
			different = true
			break
		}
	}
	assert.True(t, different, "different bases should produce different noise")
}

func TestPerlin_ZeroOctavesTreatedAsOne(t *testing.T) {
	p := NewPerlin()
	assert.Equal(t, p.Sample1D(3.3, 1, 0.5, 9), p.Sample1D(3.3, 0, 0.5, 9))
}

func TestNormalizeAndClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: -1, want: 0},
		{in: 0, want: 0.5},
		{in: 1, want: 1},
		{in: 3, want: 1},
		{in: -7, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Normalize(tt.in), 1e-12)
	}
	assert.Equal(t, 2.0, Clamp(5, 0, 2))
}

func TestNewRand_Streams(t *testing.T) {
	a := NewRand(42, 3, 1)
	b := NewRand(42, 3, 1)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}

	c := NewRand(42, 3, 1)
	d := NewRand(42, 3, 2)
	e := NewRand(42, 4, 1)
	first := c.Uint64()
	assert.NotEqual(t, first, d.Uint64(), "salt should change the stream")
	assert.NotEqual(t, first, e.Uint64(), "index should change the stream")
}
