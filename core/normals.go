package core

import "github.com/go-gl/mathgl/mgl64"

// ComputeSmoothNormals recomputes per-vertex normals from the current
// (displaced) positions. Face normals are accumulated unnormalized so larger
// triangles weigh more.
func ComputeSmoothNormals(m *Mesh) {
	normals := make([]mgl64.Vec3, len(m.Positions))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0, p1, p2 := m.Positions[i0], m.Positions[i1], m.Positions[i2]

		face := p1.Sub(p0).Cross(p2.Sub(p0))
		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i, n := range normals {
		if l := n.Len(); l > 0 {
			normals[i] = n.Mul(1 / l)
			continue
		}
		// Unreferenced vertex: fall back to the radial direction.
		if l := m.Positions[i].Len(); l > 0 {
			normals[i] = m.Positions[i].Mul(1 / l)
		}
	}

	m.Normals = normals
}
