package simulation

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"tectonicglobe/noise"
)

// flatNoises pins every noise stream so heights are fully predictable.
func flatNoises(detail float64) Noises {
	return Noises{
		Warp:     noise.Constant(0),
		Mountain: noise.Constant(0),
		Detail:   noise.Constant(detail),
	}
}

func collidingPair(a, b PlateType) PlateSet {
	return PlateSet{
		{ID: 0, Type: a, Center: mgl64.Vec3{1, 0, 0}, Drift: mgl64.Vec3{0, 1, 0}},
		{ID: 1, Type: b, Center: mgl64.Vec3{0, 1, 0}, Drift: mgl64.Vec3{0, -1, 0}},
	}
}

func TestPartitionOrogenyOnBoundary(t *testing.T) {
	p := DefaultParams()
	m := NewPartitionModel(p, collidingPair(Continental, Continental), flatNoises(0))

	probe := m.Probe(mgl64.Vec3{1, 1, 0}.Normalize())
	if probe.Interaction != Orogeny || probe.Regime != Convergent {
		t.Fatalf("got %s/%s, want orogeny/convergent", probe.Interaction, probe.Regime)
	}
	if probe.F != 1 {
		t.Errorf("f = %v, want 1 on the boundary", probe.F)
	}

	// Ridged noise is pinned to zero, so the modulation is the bias alone.
	want := p.ContinentalBase + (p.MainRidgeHeight+p.SecondaryRidgeHeight)*p.MountainBias
	if math.Abs(probe.Raw-want) > 1e-9 {
		t.Errorf("raw height %v, want %v", probe.Raw, want)
	}
}

func TestPartitionInterior(t *testing.T) {
	p := DefaultParams()
	m := NewPartitionModel(p, collidingPair(Continental, Oceanic), flatNoises(0))

	tests := []struct {
		dir  mgl64.Vec3
		want float64
	}{
		{mgl64.Vec3{1, 0, 0}, p.ContinentalBase},
		{mgl64.Vec3{0, 1, 0}, p.OceanicBase},
	}

	for _, tc := range tests {
		probe := m.Probe(tc.dir)
		if probe.Interaction != Interior {
			t.Errorf("%v: interaction %s, want interior", tc.dir, probe.Interaction)
		}
		if probe.Raw != tc.want {
			t.Errorf("%v: raw %v, want %v", tc.dir, probe.Raw, tc.want)
		}
	}
}

func TestPartitionSinglePlate(t *testing.T) {
	p := DefaultParams()
	plates := PlateSet{{ID: 0, Type: Oceanic, Center: mgl64.Vec3{0, 0, 1}, Drift: mgl64.Vec3{1, 0, 0}}}
	m := NewPartitionModel(p, plates, flatNoises(0))

	for _, dir := range []mgl64.Vec3{{0, 0, 1}, {0, 0, -1}, {1, 0, 0}} {
		probe := m.Probe(dir)
		if probe.Interaction != Interior || probe.Raw != p.OceanicBase {
			t.Errorf("%v: got %s at %v", dir, probe.Interaction, probe.Raw)
		}
	}
}

func TestSynthesizerFloor(t *testing.T) {
	p := DefaultParams()
	s, err := NewSynthesizer(p, collidingPair(Oceanic, Oceanic), flatNoises(-10), nil)
	if err != nil {
		t.Fatal(err)
	}

	sample := s.SampleDirection(mgl64.Vec3{0, 0, 1})
	if sample.Height != p.HeightFloor {
		t.Errorf("height %v, want floor %v", sample.Height, p.HeightFloor)
	}
	if got := s.Bands().Lookup(sample.Height); got != 0 {
		t.Errorf("floor colored with band %d, want 0", got)
	}
}

func TestSynthesizerRejectsBadInput(t *testing.T) {
	s, err := NewSynthesizer(DefaultParams(), collidingPair(Oceanic, Oceanic), flatNoises(0), nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		v    mgl64.Vec3
		want error
	}{
		{"zero", mgl64.Vec3{}, ErrZeroVertex},
		{"nan", mgl64.Vec3{math.NaN(), 1, 0}, ErrNonFiniteVertex},
		{"inf", mgl64.Vec3{0, math.Inf(1), 0}, ErrNonFiniteVertex},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Sample(tc.v); !errors.Is(err, tc.want) {
				t.Errorf("Sample(%v) error = %v, want %v", tc.v, err, tc.want)
			}
		})
	}
}

func TestSynthesizerScaleInvariant(t *testing.T) {
	w, err := NewWorld(144, DefaultParams(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []mgl64.Vec3{{0, 0, 1}, {0, 2, 0}, {-4, 0, 0}} {
		a, err := w.Synth.Sample(v)
		if err != nil {
			t.Fatal(err)
		}
		b, err := w.Synth.Sample(v.Mul(8))
		if err != nil {
			t.Fatal(err)
		}
		if a != b {
			t.Errorf("%v: %+v vs %+v after scaling", v, a, b)
		}
	}
}

func TestNewSynthesizerValidation(t *testing.T) {
	p := DefaultParams()
	if _, err := NewSynthesizer(p, nil, flatNoises(0), nil); !errors.Is(err, ErrNoPlates) {
		t.Errorf("no plates: got %v", err)
	}

	bad := BiomeBands{{Threshold: 0.5}, {Threshold: 0.1}, {}}
	if _, err := NewSynthesizer(p, collidingPair(Oceanic, Oceanic), flatNoises(0), bad); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("descending bands: got %v", err)
	}

	p.Model = "unknown"
	if _, err := NewSynthesizer(p, collidingPair(Oceanic, Oceanic), flatNoises(0), nil); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("unknown model: got %v", err)
	}
}

func TestSynthesizerModelSelection(t *testing.T) {
	p := DefaultParams()
	s, err := NewSynthesizer(p, collidingPair(Oceanic, Oceanic), flatNoises(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Model().(*PartitionModel); !ok {
		t.Errorf("partition params built %T", s.Model())
	}

	p.Model = ModelStressBlend
	s, err = NewSynthesizer(p, collidingPair(Oceanic, Oceanic), flatNoises(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Model().(*StressBlend); !ok {
		t.Errorf("stress-blend params built %T", s.Model())
	}
}

// Heights on either side of an owner swap agree: bisection walks a short
// arc down to the point where the nearest and second-nearest plates trade
// places, and every boundary rule must give the same height from both
// plates there.
func TestPartitionContinuousAcrossOwnerSwap(t *testing.T) {
	w, err := NewWorld(144, DefaultParams(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m := w.Synth.Model().(*PartitionModel)
	rng := rand.New(rand.NewPCG(77, 0))

	at := func(a, b mgl64.Vec3, s float64) mgl64.Vec3 {
		return a.Mul(1 - s).Add(b.Mul(s)).Normalize()
	}

	swaps := map[Interaction]int{}
	var junctions int
	for k := 0; k < 3000; k++ {
		a := randomUnit(rng)
		b := a.Add(randomUnit(rng).Mul(0.05)).Normalize()
		owner := m.Probe(a).Neighbors.First
		if m.Probe(b).Neighbors.First == owner {
			continue
		}

		lo, hi := 0.0, 1.0
		for range 36 {
			mid := 0.5 * (lo + hi)
			if m.Probe(at(a, b, mid)).Neighbors.First == owner {
				lo = mid
			} else {
				hi = mid
			}
		}

		pl, ph := at(a, b, lo), at(a, b, hi)
		nl, nh := m.Probe(pl), m.Probe(ph)
		if nl.Neighbors.First != nh.Neighbors.Second || nl.Neighbors.Second != nh.Neighbors.First {
			junctions++
			continue
		}

		swaps[nl.Interaction]++
		if dh := math.Abs(m.Height(pl) - m.Height(ph)); dh > 1e-6 {
			t.Errorf("%s/%s swap near %v: heights differ by %v (f %v / %v)",
				nl.Interaction, nh.Interaction, pl, dh, nl.F, nh.F)
		}
	}

	var total int
	for _, n := range swaps {
		total += n
	}
	if total < 20 {
		t.Fatalf("only %d owner swaps found", total)
	}
	t.Logf("%d owner swaps by owner-side interaction %v, %d triple junctions skipped", total, swaps, junctions)
}

// Heights are continuous while a point keeps the same plate pair.
func TestPartitionContinuousWithinPair(t *testing.T) {
	w, err := NewWorld(144, DefaultParams(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m := w.Synth.Model().(*PartitionModel)
	rng := rand.New(rand.NewPCG(78, 0))

	for k := 0; k < 5000; k++ {
		dir := randomUnit(rng)
		near := dir.Add(randomUnit(rng).Mul(1e-7)).Normalize()

		a, b := m.Probe(dir), m.Probe(near)
		if a.Neighbors.First != b.Neighbors.First || a.Neighbors.Second != b.Neighbors.Second {
			continue
		}
		if dh := math.Abs(m.Height(dir) - m.Height(near)); dh > 1e-3 {
			t.Fatalf("height jumps by %v within plate pair %d/%d near %v",
				dh, a.Neighbors.First, a.Neighbors.Second, dir)
		}
	}
}
