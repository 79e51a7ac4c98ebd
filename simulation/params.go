package simulation

import (
	"errors"
	"fmt"
	"math"
)

// Model selects the boundary-interaction model.
type Model string

const (
	// ModelPartition commits each point to its two nearest plates under a
	// warped metric and applies the per-pair rule table.
	ModelPartition Model = "partition"
	// ModelStressBlend blends every plate with a softmax kernel and sums a
	// pairwise stress term. Smoother, O(N²) per point.
	ModelStressBlend Model = "stress-blend"
)

// ErrInvalidParams wraps every parameter validation failure.
var ErrInvalidParams = errors.New("simulation: invalid parameters")

// Params holds every tuning constant of the field synthesis.
type Params struct {
	Model Model

	// Plate generation
	PlateCount          int
	ContinentalFraction float64
	MinSeparation       float64 // chordal distance between plate centers

	// Surface
	Radius      float64
	HeightFloor float64

	// Base elevation by owning plate type
	ContinentalBase float64
	OceanicBase     float64

	// Partition domain warp
	WarpFrequency float64
	WarpStrength  float64

	// Boundary zone and drift regimes
	EdgeThreshold       float64
	CollisionThreshold  float64 // dot below this is convergent
	SeparationThreshold float64 // dot above this is divergent

	// Mountain modulation (ridged, evaluated on the unwarped point)
	MountainFrequency float64
	MountainBias      float64
	MountainGain      float64

	// Continental collision
	MainRidgeHeight      float64
	SecondaryRidgeHeight float64
	RidgeFolds           float64
	RiftDepth            float64

	// Continental/oceanic margins
	ArcPeakHeight float64
	TrenchDepth   float64
	CoastalShelf  float64 // continental side target, shallow
	OceanicSlope  float64 // oceanic side target, deeper

	// Oceanic/oceanic
	IslandArcHeight float64
	MidOceanRise    float64

	// Detail pass
	DetailFrequency float64
	DetailAmplitude float64

	// Noise source
	Octaves int

	// Alternative model
	Stress StressParams
}

// DefaultParams returns the canonical tuning: 15 plates, 40% continental.
func DefaultParams() Params {
	return Params{
		Model: ModelPartition,

		PlateCount:          15,
		ContinentalFraction: 0.4,
		MinSeparation:       0.4,

		Radius:      3.0,
		HeightFloor: -0.9,

		ContinentalBase: 0.12,
		OceanicBase:     -0.35,

		WarpFrequency: 1.5,
		WarpStrength:  0.35,

		EdgeThreshold:       0.45,
		CollisionThreshold:  -0.2,
		SeparationThreshold: 0.2,

		MountainFrequency: 6.0,
		MountainBias:      0.6,
		MountainGain:      1.2,

		MainRidgeHeight:      0.55,
		SecondaryRidgeHeight: 0.12,
		RidgeFolds:           3,
		RiftDepth:            0.25,

		ArcPeakHeight: 0.3,
		TrenchDepth:   0.4,
		CoastalShelf:  -0.04,
		OceanicSlope:  -0.18,

		IslandArcHeight: 0.5,
		MidOceanRise:    0.15,

		DetailFrequency: 4.0,
		DetailAmplitude: 0.35,

		Octaves: 6,

		Stress: DefaultStressParams(),
	}
}

// Validate checks ranges that would make generation ill-defined. Plate
// count feasibility against MinSeparation is checked here too, before any
// sampling happens.
func (p Params) Validate() error {
	switch p.Model {
	case ModelPartition, ModelStressBlend:
	default:
		return fmt.Errorf("%w: unknown model %q", ErrInvalidParams, p.Model)
	}
	if p.PlateCount < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidParams, ErrNoPlates)
	}
	if p.ContinentalFraction < 0 || p.ContinentalFraction > 1 || math.IsNaN(p.ContinentalFraction) {
		return fmt.Errorf("%w: continental fraction %v outside [0,1]", ErrInvalidParams, p.ContinentalFraction)
	}
	if p.MinSeparation < 0 || p.MinSeparation >= 2 {
		return fmt.Errorf("%w: min separation %v outside [0,2)", ErrInvalidParams, p.MinSeparation)
	}
	if p.Radius <= 0 {
		return fmt.Errorf("%w: radius %v must be positive", ErrInvalidParams, p.Radius)
	}
	if p.HeightFloor <= -p.Radius {
		return fmt.Errorf("%w: height floor %v reaches the sphere center", ErrInvalidParams, p.HeightFloor)
	}
	if p.EdgeThreshold <= 0 {
		return fmt.Errorf("%w: edge threshold %v must be positive", ErrInvalidParams, p.EdgeThreshold)
	}
	if p.CollisionThreshold > p.SeparationThreshold {
		return fmt.Errorf("%w: collision threshold %v above separation threshold %v",
			ErrInvalidParams, p.CollisionThreshold, p.SeparationThreshold)
	}
	if err := CheckPlateCount(p.PlateCount, p.MinSeparation); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}
