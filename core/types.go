package core

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNonFinite is returned for vectors with a NaN or infinite component.
	ErrNonFinite = errors.New("core: non-finite vector")
	// ErrZeroLength is returned when a direction is requested for the zero vector.
	ErrZeroLength = errors.New("core: zero-length vector")
)

// Color is an RGBA color in linear light.
type Color struct {
	R, G, B, A float32
}

// NewColor builds an opaque linear color.
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Array returns the color as [r, g, b, a], the layout vertex buffers expect.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// SRGB8 encodes the color as 8-bit sRGB for display layers that expect
// gamma-encoded bytes.
func (c Color) SRGB8() [4]uint8 {
	return [4]uint8{
		encodeSRGB(c.R),
		encodeSRGB(c.G),
		encodeSRGB(c.B),
		uint8(math.Round(float64(clamp01(c.A)) * 255)),
	}
}

func encodeSRGB(v float32) uint8 {
	l := float64(clamp01(v))
	var s float64
	if l <= 0.0031308 {
		s = 12.92 * l
	} else {
		s = 1.055*math.Pow(l, 1/2.4) - 0.055
	}
	return uint8(math.Round(s * 255))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Mesh is the vertex data shared between the topology generator, the
// field applicator and the display layer. Positions, Normals and Colors are
// index-aligned once populated.
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Colors    []Color
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Direction returns v scaled to unit length. It fails on non-finite input
// and on the zero vector rather than returning NaN.
func Direction(v mgl64.Vec3) (mgl64.Vec3, error) {
	if !IsFinite(v) {
		return mgl64.Vec3{}, ErrNonFinite
	}
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}, ErrZeroLength
	}
	return v.Mul(1 / l), nil
}

// Chord is the straight-line distance between two points.
func Chord(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}
