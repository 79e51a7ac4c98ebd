package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NewIcosphere builds a unit icosphere by repeated midpoint subdivision of
// an icosahedron. Level n has 10*4^n + 2 vertices.
func NewIcosphere(subdivisions int) *Mesh {
	// Golden ratio
	t := (1.0 + math.Sqrt(5.0)) / 2.0

	// Initial icosahedron vertices
	positions := []mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range positions {
		positions[i] = positions[i].Normalize()
	}

	// Initial icosahedron faces
	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	mesh := &Mesh{Positions: positions, Indices: indices}
	for i := 0; i < subdivisions; i++ {
		mesh = subdivide(mesh)
	}
	return mesh
}

// IcosphereVertexCount returns the vertex count of an icosphere level.
func IcosphereVertexCount(level int) int {
	count := 10
	for i := 0; i < level; i++ {
		count *= 4
	}
	return count + 2
}

func subdivide(mesh *Mesh) *Mesh {
	midpoints := make(map[[2]uint32]uint32)
	positions := make([]mgl64.Vec3, len(mesh.Positions), len(mesh.Positions)*4)
	copy(positions, mesh.Positions)
	indices := make([]uint32, 0, len(mesh.Indices)*4)

	getMidpoint := func(i1, i2 uint32) uint32 {
		key := [2]uint32{i1, i2}
		if i1 > i2 {
			key = [2]uint32{i2, i1}
		}
		if mid, exists := midpoints[key]; exists {
			return mid
		}

		mid := mesh.Positions[key[0]].Add(mesh.Positions[key[1]]).Mul(0.5).Normalize()
		positions = append(positions, mid)
		midpoints[key] = uint32(len(positions) - 1)
		return midpoints[key]
	}

	for i := 0; i < len(mesh.Indices); i += 3 {
		v1, v2, v3 := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		m1 := getMidpoint(v1, v2)
		m2 := getMidpoint(v2, v3)
		m3 := getMidpoint(v3, v1)

		indices = append(indices, v1, m1, m3, v2, m2, m1, v3, m3, m2, m1, m2, m3)
	}

	return &Mesh{Positions: positions, Indices: indices}
}

// CubeFace identifies one face of a cube-sphere.
type CubeFace int

const (
	FacePosX CubeFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// CubeFaces lists every face in a stable order.
var CubeFaces = []CubeFace{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

// faceBasis holds the outward normal and the in-face axes of a cube face.
// Every axis is a signed unit coordinate vector, so cube-surface points have
// exact components and agree bit-for-bit when reached from adjacent faces.
type faceBasis struct {
	normal, u, v mgl64.Vec3
}

var faceBases = [6]faceBasis{
	FacePosX: {normal: mgl64.Vec3{1, 0, 0}, u: mgl64.Vec3{0, 0, -1}, v: mgl64.Vec3{0, 1, 0}},
	FaceNegX: {normal: mgl64.Vec3{-1, 0, 0}, u: mgl64.Vec3{0, 0, 1}, v: mgl64.Vec3{0, 1, 0}},
	FacePosY: {normal: mgl64.Vec3{0, 1, 0}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 0, -1}},
	FaceNegY: {normal: mgl64.Vec3{0, -1, 0}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 0, 1}},
	FacePosZ: {normal: mgl64.Vec3{0, 0, 1}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 1, 0}},
	FaceNegZ: {normal: mgl64.Vec3{0, 0, -1}, u: mgl64.Vec3{-1, 0, 0}, v: mgl64.Vec3{0, 1, 0}},
}

func (f CubeFace) String() string {
	switch f {
	case FacePosX:
		return "+X"
	case FaceNegX:
		return "-X"
	case FacePosY:
		return "+Y"
	case FaceNegY:
		return "-Y"
	case FacePosZ:
		return "+Z"
	case FaceNegZ:
		return "-Z"
	}
	return fmt.Sprintf("CubeFace(%d)", int(f))
}

// ChunkSpec addresses one tile of a chunked cube-sphere.
type ChunkSpec struct {
	Face          CubeFace
	I, J          int // tile column and row on the face
	ChunksPerFace int
	Resolution    int // cells per tile edge
}

// Validate checks that the chunk lies on its face.
func (c ChunkSpec) Validate() error {
	if c.Face < FacePosX || c.Face > FaceNegZ {
		return fmt.Errorf("core: invalid cube face %d", int(c.Face))
	}
	if c.ChunksPerFace <= 0 || c.Resolution <= 0 {
		return fmt.Errorf("core: chunk grid %dx%d must be positive", c.ChunksPerFace, c.Resolution)
	}
	if c.I < 0 || c.J < 0 || c.I >= c.ChunksPerFace || c.J >= c.ChunksPerFace {
		return fmt.Errorf("core: chunk (%d,%d) outside %d tiles per face", c.I, c.J, c.ChunksPerFace)
	}
	return nil
}

// CubeLatticeDirection maps an integer lattice coordinate on a face to its
// unit direction. a and b run over [0, n].
func CubeLatticeDirection(face CubeFace, a, b, n int) mgl64.Vec3 {
	basis := faceBases[face]
	// Integer numerators keep s and t exact negations of each other when a
	// face edge is walked in the opposite direction by its neighbor.
	s := float64(2*a-n) / float64(n)
	t := float64(2*b-n) / float64(n)
	p := basis.normal.Add(basis.u.Mul(s)).Add(basis.v.Mul(t))
	return p.Normalize()
}

// NewCubeSphereChunk builds the mesh of one cube-sphere tile. Directions
// depend only on the global lattice coordinate, so tiles that share an edge
// produce identical edge vertices.
func NewCubeSphereChunk(spec ChunkSpec) (*Mesh, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	n := spec.ChunksPerFace * spec.Resolution
	side := spec.Resolution + 1
	a0 := spec.I * spec.Resolution
	b0 := spec.J * spec.Resolution

	positions := make([]mgl64.Vec3, 0, side*side)
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			positions = append(positions, CubeLatticeDirection(spec.Face, a0+col, b0+row, n))
		}
	}

	indices := make([]uint32, 0, spec.Resolution*spec.Resolution*6)
	for row := 0; row < spec.Resolution; row++ {
		for col := 0; col < spec.Resolution; col++ {
			v00 := uint32(row*side + col)
			v10 := v00 + 1
			v01 := v00 + uint32(side)
			v11 := v01 + 1
			indices = append(indices, v00, v10, v11, v00, v11, v01)
		}
	}

	return &Mesh{Positions: positions, Indices: indices}, nil
}

// CanonicalDirections returns the six cube face centers followed by six
// cube edge midpoints, all on the unit sphere.
func CanonicalDirections() []mgl64.Vec3 {
	dirs := []mgl64.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
		{1, 1, 0}, {-1, 1, 0},
		{0, 1, 1}, {0, 1, -1},
		{1, 0, 1}, {-1, 0, -1},
	}
	for i := range dirs {
		dirs[i] = dirs[i].Normalize()
	}
	return dirs
}
