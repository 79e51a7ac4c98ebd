package simulation

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"tectonicglobe/noise"
)

// World bundles everything derived from one seed: the plate set, the noise
// source and the synthesizer. Nothing in it changes after NewWorld returns.
type World struct {
	Seed   int64
	Params Params
	Plates PlateSet
	Noise  noise.Source
	Synth  *Synthesizer
}

// NewWorld validates params, draws the plates from a seeded PCG stream and
// builds the noise source from the same seed.
func NewWorld(seed int64, params Params, bands BiomeBands) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	plates, err := GeneratePlates(rng, params.PlateCount, params.ContinentalFraction, params.MinSeparation)
	if err != nil {
		return nil, fmt.Errorf("generate plates: %w", err)
	}

	src := noise.NewFractal(seed, params.Octaves)
	synth, err := NewSynthesizer(params, plates, SharedNoises(src), bands)
	if err != nil {
		return nil, fmt.Errorf("build synthesizer: %w", err)
	}

	return &World{
		Seed:   seed,
		Params: params,
		Plates: plates,
		Noise:  src,
		Synth:  synth,
	}, nil
}

// SamplePoints synthesizes every point in order. Input is not modified.
func (w *World) SamplePoints(points []mgl64.Vec3) ([]ElevationSample, error) {
	out := make([]ElevationSample, len(points))
	for i, p := range points {
		s, err := w.Synth.Sample(p)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// Probe returns partition diagnostics at v, or false when the world does not
// use the partition model.
func (w *World) Probe(v mgl64.Vec3) (Probe, bool) {
	m, ok := w.Synth.Model().(*PartitionModel)
	if !ok {
		return Probe{}, false
	}
	return m.Probe(v.Normalize()), true
}
