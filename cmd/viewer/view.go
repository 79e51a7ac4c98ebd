package main

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"tectonicglobe/core"
)

// Light direction in view space.
var lightDir = mgl64.Vec3{0.4, 0.5, 0.75}.Normalize()

const ambient = 0.3

// globeView rotates the deformed mesh on the CPU and caches the shaded
// triangles until the rotation changes again.
type globeView struct {
	mesh        *core.Mesh
	sensitivity float64
	rotation    mgl64.Quat
	dirty       bool

	vertices []rl.Vector3
	colors   []rl.Color // per triangle
}

func newGlobeView(mesh *core.Mesh, sensitivity float64) *globeView {
	return &globeView{
		mesh:        mesh,
		sensitivity: sensitivity,
		rotation:    mgl64.QuatIdent(),
		dirty:       true,
		vertices:    make([]rl.Vector3, len(mesh.Positions)),
		colors:      make([]rl.Color, mesh.TriangleCount()),
	}
}

// drag applies a mouse delta in pixels: yaw around world Y, pitch around the
// globe's local X.
func (v *globeView) drag(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	yaw := mgl64.QuatRotate(dx*v.sensitivity, mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(dy*v.sensitivity, mgl64.Vec3{1, 0, 0})
	v.rotation = yaw.Mul(v.rotation).Mul(pitch).Normalize()
	v.dirty = true
}

func (v *globeView) update() {
	if !v.dirty {
		return
	}
	v.dirty = false

	shade := make([]float64, len(v.mesh.Positions))
	for i, p := range v.mesh.Positions {
		r := v.rotation.Rotate(p)
		v.vertices[i] = rl.NewVector3(float32(r.X()), float32(r.Y()), float32(r.Z()))
		n := v.rotation.Rotate(v.mesh.Normals[i])
		shade[i] = ambient + (1-ambient)*math.Max(0, n.Dot(lightDir))
	}

	idx := v.mesh.Indices
	for t := range v.colors {
		var sum core.Color
		for _, k := range idx[3*t : 3*t+3] {
			c, s := v.mesh.Colors[k], float32(shade[k]/3)
			sum.R += c.R * s
			sum.G += c.G * s
			sum.B += c.B * s
		}
		sum.A = 1
		rgba := sum.SRGB8()
		v.colors[t] = rl.NewColor(rgba[0], rgba[1], rgba[2], rgba[3])
	}
}

func (v *globeView) draw() {
	idx := v.mesh.Indices
	for t, col := range v.colors {
		rl.DrawTriangle3D(v.vertices[idx[3*t]], v.vertices[idx[3*t+1]], v.vertices[idx[3*t+2]], col)
	}
}
