package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNoPlates is returned when fewer than one plate is requested.
	ErrNoPlates = errors.New("at least one plate is required")
	// ErrInfeasiblePlateCount is returned when the requested plates cannot
	// be placed with the required separation in reasonable time.
	ErrInfeasiblePlateCount = errors.New("plate count infeasible for minimum separation")
	// ErrPlacementExhausted is returned when rejection sampling gives up.
	ErrPlacementExhausted = errors.New("plate placement attempts exhausted")
)

// PlateType distinguishes buoyant continental crust from oceanic crust.
type PlateType int

const (
	Continental PlateType = iota
	Oceanic
)

func (t PlateType) String() string {
	switch t {
	case Continental:
		return "continental"
	case Oceanic:
		return "oceanic"
	}
	return fmt.Sprintf("PlateType(%d)", int(t))
}

// Plate is one tectonic unit. Immutable once generated.
type Plate struct {
	ID     int
	Center mgl64.Vec3 // unit vector
	Type   PlateType
	Drift  mgl64.Vec3 // unit vector
}

// PlateSet is the full set of plates of one world.
type PlateSet []Plate

// CountByType returns how many plates are continental and oceanic.
func (ps PlateSet) CountByType() (continental, oceanic int) {
	for _, p := range ps {
		if p.Type == Continental {
			continental++
		} else {
			oceanic++
		}
	}
	return continental, oceanic
}

// jammingFraction is the share of the cap-packing bound that random
// sequential placement reaches quickly. Random sequential adsorption of caps
// on a sphere jams near 0.55 of the bound, so stopping at 0.5 keeps the
// expected number of redraws small.
const jammingFraction = 0.5

// MaxFeasiblePlates returns the largest plate count accepted for the given
// chordal separation.
func MaxFeasiblePlates(minSeparation float64) int {
	if minSeparation <= 0 {
		return math.MaxInt32
	}
	if minSeparation >= 2 {
		return 1
	}
	// Angular separation, then caps of half that radius must not overlap.
	theta := 2 * math.Asin(minSeparation/2)
	capBound := 2 / (1 - math.Cos(theta/2))
	return max(1, int(jammingFraction*capBound))
}

// CheckPlateCount validates n against minSeparation without sampling.
func CheckPlateCount(n int, minSeparation float64) error {
	if n < 1 {
		return ErrNoPlates
	}
	if limit := MaxFeasiblePlates(minSeparation); n > limit {
		return fmt.Errorf("%w: %d plates requested, at most %d fit at separation %.3f",
			ErrInfeasiblePlateCount, n, limit, minSeparation)
	}
	return nil
}

// GeneratePlates places n plates by rejection sampling: each candidate
// center is a uniform vector in [-1,1]³ projected to the sphere and is
// redrawn while it lies closer than minSeparation to an accepted center.
// Each plate is continental with probability continentalFraction and gets
// an independent random unit drift.
func GeneratePlates(rng *rand.Rand, n int, continentalFraction, minSeparation float64) (PlateSet, error) {
	if err := CheckPlateCount(n, minSeparation); err != nil {
		return nil, err
	}

	plates := make(PlateSet, 0, n)
	budget := 10000 + 1000*n

	for attempts := 0; len(plates) < n; attempts++ {
		if attempts >= budget {
			return nil, fmt.Errorf("%w after %d draws (%d of %d placed)",
				ErrPlacementExhausted, attempts, len(plates), n)
		}

		center := randomUnit(rng)
		if tooClose(plates, center, minSeparation) {
			continue
		}

		plateType := Oceanic
		if rng.Float64() < continentalFraction {
			plateType = Continental
		}

		plates = append(plates, Plate{
			ID:     len(plates),
			Center: center,
			Type:   plateType,
			Drift:  randomUnit(rng),
		})
	}

	return plates, nil
}

func tooClose(plates PlateSet, center mgl64.Vec3, minSeparation float64) bool {
	for _, p := range plates {
		if p.Center.Sub(center).Len() < minSeparation {
			return true
		}
	}
	return false
}

// randomUnit normalizes a uniform vector from the [-1,1]³ cube.
func randomUnit(rng *rand.Rand) mgl64.Vec3 {
	for {
		v := mgl64.Vec3{
			rng.Float64()*2 - 1,
			rng.Float64()*2 - 1,
			rng.Float64()*2 - 1,
		}
		if l := v.Len(); l > 1e-9 {
			return v.Mul(1 / l)
		}
	}
}
