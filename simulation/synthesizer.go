package simulation

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"tectonicglobe/core"
	"tectonicglobe/noise"
)

// ErrNonFiniteVertex is returned for input points with NaN or Inf components.
var ErrNonFiniteVertex = errors.New("simulation: non-finite vertex position")

// ErrZeroVertex is returned for input points at the sphere center.
var ErrZeroVertex = errors.New("simulation: zero-length vertex position")

// ElevationSample is the synthesized field value of one surface point.
type ElevationSample struct {
	Height float64
	Color  core.Color
}

// HeightModel maps a unit direction to a raw, unclamped height.
type HeightModel interface {
	Height(dir mgl64.Vec3) float64
}

// Noises holds the three noise roles. They may share one source.
type Noises struct {
	Warp     noise.Source // partition domain warp
	Mountain noise.Source // ridged modulation of peaks
	Detail   noise.Source // low-frequency roughness everywhere
}

// SharedNoises uses one source for every role.
func SharedNoises(src noise.Source) Noises {
	return Noises{Warp: src, Mountain: src, Detail: src}
}

// Probe is the full diagnostic record of one partition-model sample.
type Probe struct {
	Neighbors   Neighbors
	Interaction Interaction
	Regime      Regime
	F           float64
	Dot         float64
	Raw         float64 // rule output before the detail pass
}

// PartitionModel is the nearest-two-plate rule-table model.
type PartitionModel struct {
	params Params
	plates PlateSet
	noises Noises
}

// NewPartitionModel builds the rule-table model.
func NewPartitionModel(params Params, plates PlateSet, noises Noises) *PartitionModel {
	return &PartitionModel{params: params, plates: plates, noises: noises}
}

// Height implements HeightModel.
func (m *PartitionModel) Height(dir mgl64.Vec3) float64 {
	return m.Probe(dir).Raw + m.detail(dir)
}

func (m *PartitionModel) detail(dir mgl64.Vec3) float64 {
	return noise.At(m.noises.Detail, dir, m.params.DetailFrequency) * m.params.DetailAmplitude
}

// Probe runs the partition and the rule table at dir without the detail
// pass or the floor.
func (m *PartitionModel) Probe(dir mgl64.Vec3) Probe {
	p := m.params
	nb := Partition(dir, m.plates, m.noises.Warp, p)
	owner := m.plates[nb.First]

	base := p.OceanicBase
	if owner.Type == Continental {
		base = p.ContinentalBase
	}

	probe := Probe{Neighbors: nb, Interaction: Interior, Raw: base}
	if !nb.HasSecond() || nb.BoundaryDist >= p.EdgeThreshold {
		return probe
	}

	neighbor := m.plates[nb.Second]
	probe.F = BoundaryFactor(nb.BoundaryDist, p.EdgeThreshold)
	probe.Dot = owner.Drift.Dot(neighbor.Drift)
	probe.Regime = ClassifyDrift(probe.Dot, p)
	probe.Interaction = Classify(owner.Type, neighbor.Type, probe.Regime)

	// Unwarped point so peaks do not smear along the warp field.
	mountain := p.MountainBias + noise.Ridged(m.noises.Mountain, dir, p.MountainFrequency)*p.MountainGain

	b := Boundary{Base: base, F: probe.F, Mountain: mountain}
	if probe.Interaction == IslandArc {
		b.Overriding = Overrides(owner, neighbor)
	}
	probe.Raw = RuleFor(probe.Interaction)(b, p)
	return probe
}

// Synthesizer turns surface points into elevation samples. It is immutable
// and safe for concurrent use.
type Synthesizer struct {
	params Params
	model  HeightModel
	bands  BiomeBands
}

// NewSynthesizer selects the height model named by params.Model.
func NewSynthesizer(params Params, plates PlateSet, noises Noises, bands BiomeBands) (*Synthesizer, error) {
	if len(plates) == 0 {
		return nil, ErrNoPlates
	}
	if len(bands) == 0 {
		bands = DefaultBiomeBands()
	}
	if !bands.Ascending() {
		return nil, fmt.Errorf("%w: biome thresholds must ascend", ErrInvalidParams)
	}

	var model HeightModel
	switch params.Model {
	case ModelPartition:
		model = NewPartitionModel(params, plates, noises)
	case ModelStressBlend:
		model = NewStressBlend(plates, noises.Detail, params.Stress, params.Radius)
	default:
		return nil, fmt.Errorf("%w: unknown model %q", ErrInvalidParams, params.Model)
	}

	return &Synthesizer{params: params, model: model, bands: bands}, nil
}

// Model returns the selected height model.
func (s *Synthesizer) Model() HeightModel {
	return s.model
}

// Bands returns the biome bands in use.
func (s *Synthesizer) Bands() BiomeBands {
	return s.bands
}

// Sample computes the height and color at v. v need not be unit length;
// non-finite or zero input is rejected.
func (s *Synthesizer) Sample(v mgl64.Vec3) (ElevationSample, error) {
	dir, err := core.Direction(v)
	if err != nil {
		if errors.Is(err, core.ErrZeroLength) {
			return ElevationSample{}, ErrZeroVertex
		}
		return ElevationSample{}, ErrNonFiniteVertex
	}
	return s.SampleDirection(dir), nil
}

// SampleDirection computes the sample at an already normalized direction.
func (s *Synthesizer) SampleDirection(dir mgl64.Vec3) ElevationSample {
	h := max(s.model.Height(dir), s.params.HeightFloor)
	return ElevationSample{Height: h, Color: s.bands.ColorAt(h)}
}
