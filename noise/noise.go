// Package noise provides the seeded coherent-noise source used by the
// plate partition and the height synthesizer.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

// Source is a deterministic scalar field over 3D space, roughly in [-1, 1].
// Implementations must be safe for concurrent use once constructed.
type Source interface {
	Eval(p mgl64.Vec3) float64
}

// Fractal layers several octaves of Perlin noise.
type Fractal struct {
	p *perlin.Perlin
}

const (
	// DefaultAlpha is the amplitude falloff per octave (persistence 1/alpha).
	DefaultAlpha = 2.0
	// DefaultBeta is the frequency growth per octave (lacunarity).
	DefaultBeta = 2.0
	// DefaultOctaves matches the six-octave fBm the terrain was tuned on.
	DefaultOctaves = 6

	// domainOffset moves every sample into the positive octant. go-perlin
	// falls back to 2D noise for z < 0 and truncates lattice coordinates
	// toward zero, so negative input would cut seams along the coordinate
	// planes. Inputs must stay within (-domainOffset, domainOffset).
	domainOffset = 1024.0
)

// NewFractal creates a fractal Perlin source. The permutation tables are
// built once from seed and never modified afterwards.
func NewFractal(seed int64, octaves int) *Fractal {
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	return &Fractal{p: perlin.NewPerlin(DefaultAlpha, DefaultBeta, int32(octaves), seed)}
}

// Eval implements Source.
func (f *Fractal) Eval(p mgl64.Vec3) float64 {
	return f.p.Noise3D(p[0]+domainOffset, p[1]+domainOffset, p[2]+domainOffset)
}

// At samples src at p scaled by freq.
func At(src Source, p mgl64.Vec3, freq float64) float64 {
	return src.Eval(p.Mul(freq))
}

// Ridged samples src at p scaled by freq and folds it with an absolute value,
// turning smooth hills into sharp creases.
func Ridged(src Source, p mgl64.Vec3, freq float64) float64 {
	return math.Abs(At(src, p, freq))
}

// Warp returns a 3D offset with one sample per axis. The axis order of the
// sample point is rotated for each component so the three offsets are not
// copies of each other.
func Warp(src Source, p mgl64.Vec3, freq float64) mgl64.Vec3 {
	q := p.Mul(freq)
	return mgl64.Vec3{
		src.Eval(q),
		src.Eval(mgl64.Vec3{q[1], q[2], q[0]}),
		src.Eval(mgl64.Vec3{q[2], q[0], q[1]}),
	}
}

// Func adapts a plain function to Source. Tests use it to pin noise to a
// known value.
type Func func(p mgl64.Vec3) float64

// Eval implements Source.
func (fn Func) Eval(p mgl64.Vec3) float64 {
	return fn(p)
}

// Constant returns a Source that always yields v.
func Constant(v float64) Source {
	return Func(func(mgl64.Vec3) float64 { return v })
}
