package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"tectonicglobe/core"
	"tectonicglobe/simulation"
)

// Settings is the on-disk configuration of a world generation run.
type Settings struct {
	World  WorldSettings  `json:"world"`
	Tuning TuningSettings `json:"tuning"`
	Mesh   MeshSettings   `json:"mesh"`
	Server ServerSettings `json:"server"`
	Viewer ViewerSettings `json:"viewer"`
}

// WorldSettings holds the generation inputs. A null seed is drawn once at
// startup.
type WorldSettings struct {
	Seed                *int64  `json:"seed"`
	PlateCount          int     `json:"plateCount"`
	ContinentalFraction float64 `json:"continentalFraction"`
	MinSeparation       float64 `json:"minSeparation"`
	Radius              float64 `json:"radius"`
	Model               string  `json:"model"`
}

// TuningSettings overrides synthesizer constants. Omitted fields keep the
// defaults; an explicit zero is applied as given.
type TuningSettings struct {
	EdgeThreshold       *float64 `json:"edgeThreshold,omitempty"`
	WarpFrequency       *float64 `json:"warpFrequency,omitempty"`
	WarpStrength        *float64 `json:"warpStrength,omitempty"`
	CollisionThreshold  *float64 `json:"collisionThreshold,omitempty"`
	SeparationThreshold *float64 `json:"separationThreshold,omitempty"`
	MountainFrequency   *float64 `json:"mountainFrequency,omitempty"`
	DetailFrequency     *float64 `json:"detailFrequency,omitempty"`
	DetailAmplitude     *float64 `json:"detailAmplitude,omitempty"`
	HeightFloor         *float64 `json:"heightFloor,omitempty"`
	Octaves             *int     `json:"octaves,omitempty"`
}

// MeshSettings selects the topology the field is sampled on.
type MeshSettings struct {
	Topology      string `json:"topology"` // "icosphere" or "cubesphere"
	Subdivisions  int    `json:"subdivisions"`
	ChunksPerFace int    `json:"chunksPerFace"`
	Resolution    int    `json:"resolution"`
	Workers       int    `json:"workers"` // 0 = NumCPU-1
}

// ServerSettings configures the websocket preview server.
type ServerSettings struct {
	Port int `json:"port"`
}

// ViewerSettings configures the desktop viewer window.
type ViewerSettings struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Sensitivity float64 `json:"sensitivity"`
}

const (
	TopologyIcosphere  = "icosphere"
	TopologyCubeSphere = "cubesphere"
)

// DefaultSeed is the seed of the reference world.
const DefaultSeed int64 = 144

// Default returns the reference configuration.
func Default() Settings {
	seed := DefaultSeed
	p := simulation.DefaultParams()
	return Settings{
		World: WorldSettings{
			Seed:                &seed,
			PlateCount:          p.PlateCount,
			ContinentalFraction: p.ContinentalFraction,
			MinSeparation:       p.MinSeparation,
			Radius:              p.Radius,
			Model:               string(p.Model),
		},
		Mesh: MeshSettings{
			Topology:      TopologyIcosphere,
			Subdivisions:  6,
			ChunksPerFace: 2,
			Resolution:    32,
		},
		Server: ServerSettings{
			Port: 8080,
		},
		Viewer: ViewerSettings{
			Width:       1280,
			Height:      720,
			Sensitivity: 0.005,
		},
	}
}

// Load decodes a JSON settings file over the defaults. A missing file is
// not an error; the defaults are returned and found is false.
func Load(path string) (s Settings, found bool, err error) {
	s = Default()
	if path == "" {
		return s, false, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, false, nil
		}
		return s, false, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		return s, true, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return s, true, nil
}

// Validate checks the settings that are not covered by simulation.Params.
func (s Settings) Validate() error {
	switch s.Mesh.Topology {
	case TopologyIcosphere:
		if s.Mesh.Subdivisions < 0 || s.Mesh.Subdivisions > 8 {
			return fmt.Errorf("config: icosphere subdivisions %d outside [0,8]", s.Mesh.Subdivisions)
		}
	case TopologyCubeSphere:
		if s.Mesh.ChunksPerFace < 1 || s.Mesh.Resolution < 1 {
			return fmt.Errorf("config: cube-sphere grid %dx%d must be positive",
				s.Mesh.ChunksPerFace, s.Mesh.Resolution)
		}
	default:
		return fmt.Errorf("config: unknown topology %q", s.Mesh.Topology)
	}
	if s.Mesh.Workers < 0 {
		return fmt.Errorf("config: workers %d must not be negative", s.Mesh.Workers)
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", s.Server.Port)
	}
	return s.Params().Validate()
}

// Params converts the settings to synthesizer parameters.
func (s Settings) Params() simulation.Params {
	p := simulation.DefaultParams()
	p.PlateCount = s.World.PlateCount
	p.ContinentalFraction = s.World.ContinentalFraction
	p.MinSeparation = s.World.MinSeparation
	p.Radius = s.World.Radius
	if s.World.Model != "" {
		p.Model = simulation.Model(s.World.Model)
	}

	t := s.Tuning
	override(&p.EdgeThreshold, t.EdgeThreshold)
	override(&p.WarpFrequency, t.WarpFrequency)
	override(&p.WarpStrength, t.WarpStrength)
	override(&p.CollisionThreshold, t.CollisionThreshold)
	override(&p.SeparationThreshold, t.SeparationThreshold)
	override(&p.MountainFrequency, t.MountainFrequency)
	override(&p.DetailFrequency, t.DetailFrequency)
	override(&p.DetailAmplitude, t.DetailAmplitude)
	override(&p.HeightFloor, t.HeightFloor)
	override(&p.Octaves, t.Octaves)
	return p
}

func override[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ApproximateVertexCount estimates the vertex count of the configured mesh.
func (s Settings) ApproximateVertexCount() int {
	if s.Mesh.Topology == TopologyCubeSphere {
		side := s.Mesh.Resolution + 1
		return 6 * s.Mesh.ChunksPerFace * s.Mesh.ChunksPerFace * side * side
	}
	return core.IcosphereVertexCount(s.Mesh.Subdivisions)
}
