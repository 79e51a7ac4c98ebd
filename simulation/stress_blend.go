package simulation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"tectonicglobe/noise"
)

// StressParams tunes the stress-blend model.
type StressParams struct {
	Sharpness       float64 // softmax k on dot(v, center)
	ContinentalBase float64
	OceanicBase     float64
	MinWeight       float64 // pairs with a lighter plate are skipped
	PairGain        float64
	DriftThreshold  float64 // symmetric dead zone on the drift dot product

	CollisionStress   float64 // continental/continental convergent
	RiftStress        float64 // continental/continental divergent
	SubductionGain    float64
	PassiveStress     float64 // mixed pair, not convergent
	IslandArcStress   float64 // oceanic/oceanic convergent
	OceanRidgeStress  float64 // oceanic/oceanic divergent
	SurfaceFrequency  float64
	SurfaceAmplitude  float64
	MountainFrequency float64
	UpliftGain        float64
	TroughGain        float64
}

// DefaultStressParams returns the original tuning of the blend model.
func DefaultStressParams() StressParams {
	return StressParams{
		Sharpness:       25,
		ContinentalBase: 0.08,
		OceanicBase:     -0.35,
		MinWeight:       0.01,
		PairGain:        4,
		DriftThreshold:  0.1,

		CollisionStress:   0.55,
		RiftStress:        0.35,
		SubductionGain:    1.6,
		PassiveStress:     0.1,
		IslandArcStress:   0.6,
		OceanRidgeStress:  0.2,
		SurfaceFrequency:  1.5,
		SurfaceAmplitude:  0.4,
		MountainFrequency: 0.5,
		UpliftGain:        2.5,
		TroughGain:        5.5,
	}
}

// StressBlend weighs every plate by a softmax kernel of its angular
// proximity and accumulates pairwise stress weighted by both plates'
// weights. Boundaries come out soft; cost is O(N²) per point.
type StressBlend struct {
	plates PlateSet
	src    noise.Source
	sp     StressParams
	radius float64
}

// NewStressBlend builds the blend model. src is sampled on the sphere of
// the given radius, matching the frequencies the model was tuned with.
func NewStressBlend(plates PlateSet, src noise.Source, sp StressParams, radius float64) *StressBlend {
	return &StressBlend{plates: plates, src: src, sp: sp, radius: radius}
}

// Weights returns the normalized softmax weight of every plate at dir.
func (m *StressBlend) Weights(dir mgl64.Vec3) []float64 {
	weights := make([]float64, len(m.plates))
	m.weights(dir, weights)
	return weights
}

func (m *StressBlend) weights(dir mgl64.Vec3, out []float64) {
	// Shift by the largest exponent; the normalized result is unchanged.
	top := math.Inf(-1)
	for i, p := range m.plates {
		out[i] = m.sp.Sharpness * dir.Dot(p.Center)
		top = max(top, out[i])
	}
	sum := 0.0
	for i := range out {
		out[i] = math.Exp(out[i] - top)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
}

// Stress returns the accumulated pairwise stress at dir for the given
// weights.
func (m *StressBlend) Stress(weights []float64) float64 {
	sp := m.sp
	stress := 0.0
	for i := range m.plates {
		if weights[i] < sp.MinWeight {
			continue
		}
		for j := i + 1; j < len(m.plates); j++ {
			if weights[j] < sp.MinWeight {
				continue
			}

			a, b := m.plates[i], m.plates[j]
			pair := weights[i] * weights[j] * sp.PairGain
			dot := a.Drift.Dot(b.Drift)
			converging := dot < -sp.DriftThreshold
			diverging := dot > sp.DriftThreshold

			switch {
			case a.Type == Continental && b.Type == Continental:
				if converging {
					stress += pair * sp.CollisionStress
				} else if diverging {
					stress -= pair * sp.RiftStress
				}
			case a.Type == Oceanic && b.Type == Oceanic:
				if converging {
					stress += pair * sp.IslandArcStress
				} else if diverging {
					stress += pair * sp.OceanRidgeStress
				}
			default:
				if !converging {
					stress -= pair * sp.PassiveStress
					continue
				}
				wCont, wOcean := weights[i], weights[j]
				if a.Type == Oceanic {
					wCont, wOcean = wOcean, wCont
				}
				// Zero on the coast, positive inland, negative offshore.
				diff := wCont - wOcean
				stress += diff * diff * diff * diff * diff * pair * sp.SubductionGain
			}
		}
	}
	return stress
}

// Height implements HeightModel.
func (m *StressBlend) Height(dir mgl64.Vec3) float64 {
	sp := m.sp
	weights := make([]float64, len(m.plates))
	m.weights(dir, weights)

	base := 0.0
	for i, p := range m.plates {
		if p.Type == Continental {
			base += weights[i] * sp.ContinentalBase
		} else {
			base += weights[i] * sp.OceanicBase
		}
	}

	stress := m.Stress(weights)

	pos := dir.Mul(m.radius)
	surface := noise.At(m.src, pos, sp.SurfaceFrequency)
	mountain := noise.Ridged(m.src, pos, sp.MountainFrequency)

	h := base + surface*sp.SurfaceAmplitude
	h += max(stress, 0) * mountain * sp.UpliftGain
	h += min(stress, 0) * mountain * sp.TroughGain
	return h
}
