// Package globe assembles a deformed planet mesh from settings.
package globe

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"tectonicglobe/config"
	"tectonicglobe/core"
	"tectonicglobe/simulation"
)

// Planet is a generated globe ready for display.
type Planet struct {
	World    *simulation.World
	Mesh     *core.Mesh
	Heights  []float64
	PlateIDs []int
	Stats    simulation.Stats
}

// ResolveSeed returns the configured seed or draws one in the u32 range.
func ResolveSeed(s config.Settings) int64 {
	if s.World.Seed != nil {
		return *s.World.Seed
	}
	return rand.Int64N(math.MaxUint32 + 1)
}

// BuildTopology creates the undeformed unit-sphere mesh. Cube-sphere chunks
// are built and returned separately so each can be synthesized on its own.
func BuildTopology(s config.Settings) ([]*core.Mesh, error) {
	if s.Mesh.Topology == config.TopologyIcosphere {
		return []*core.Mesh{core.NewIcosphere(s.Mesh.Subdivisions)}, nil
	}

	var chunks []*core.Mesh
	for _, face := range core.CubeFaces {
		for j := 0; j < s.Mesh.ChunksPerFace; j++ {
			for i := 0; i < s.Mesh.ChunksPerFace; i++ {
				chunk, err := core.NewCubeSphereChunk(core.ChunkSpec{
					Face:          face,
					I:             i,
					J:             j,
					ChunksPerFace: s.Mesh.ChunksPerFace,
					Resolution:    s.Mesh.Resolution,
				})
				if err != nil {
					return nil, err
				}
				chunks = append(chunks, chunk)
			}
		}
	}
	return chunks, nil
}

// Generate builds the world, deforms every chunk with the same field
// and merges the chunks into one mesh.
func Generate(ctx context.Context, s config.Settings, seed int64) (*Planet, error) {
	params := s.Params()
	world, err := simulation.NewWorld(seed, params, nil)
	if err != nil {
		return nil, err
	}

	chunks, err := BuildTopology(s)
	if err != nil {
		return nil, err
	}

	var opts []simulation.FieldOption
	if s.Mesh.Workers > 0 {
		opts = append(opts, simulation.WithWorkers(s.Mesh.Workers))
	}
	field := simulation.NewField(world, opts...)
	defer field.Close()

	planet := &Planet{World: world, Mesh: &core.Mesh{}}
	var dirs []mgl64.Vec3

	for n, chunk := range chunks {
		dirs = append(dirs, chunk.Positions...)

		stats, err := field.ApplyMesh(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", n, err)
		}
		mergeStats(&planet.Stats, stats, n == 0)
		appendMesh(planet.Mesh, chunk)
	}

	planet.Heights = make([]float64, len(dirs))
	planet.PlateIDs = make([]int, len(dirs))
	for i, p := range planet.Mesh.Positions {
		planet.Heights[i] = p.Len() - params.Radius
		if probe, ok := world.Probe(dirs[i]); ok {
			planet.PlateIDs[i] = world.Plates[probe.Neighbors.First].ID
		}
	}

	return planet, nil
}

func appendMesh(dst, src *core.Mesh) {
	offset := uint32(len(dst.Positions))
	dst.Positions = append(dst.Positions, src.Positions...)
	dst.Normals = append(dst.Normals, src.Normals...)
	dst.Colors = append(dst.Colors, src.Colors...)
	for _, idx := range src.Indices {
		dst.Indices = append(dst.Indices, idx+offset)
	}
}

func mergeStats(dst *simulation.Stats, src simulation.Stats, first bool) {
	if first {
		*dst = src
		return
	}
	dst.Vertices += src.Vertices
	dst.Land += src.Land
	dst.Ocean += src.Ocean
	dst.MinHeight = min(dst.MinHeight, src.MinHeight)
	dst.MaxHeight = max(dst.MaxHeight, src.MaxHeight)
	dst.Elapsed += src.Elapsed
}
