package simulation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"tectonicglobe/noise"
)

// Neighbors is the result of a two-nearest-plate query.
type Neighbors struct {
	First, Second int     // plate indices; Second is -1 with a single plate
	Dist1, Dist2  float64 // chordal distances from the warped point
	BoundaryDist  float64 // Dist2 - Dist1, +Inf with a single plate
	Warped        mgl64.Vec3
}

// HasSecond reports whether a distinct second plate exists.
func (n Neighbors) HasSecond() bool {
	return n.Second >= 0
}

// WarpPoint perturbs a unit direction with noise and projects it back onto
// the sphere, roughening the otherwise straight great-circle boundaries.
func WarpPoint(v mgl64.Vec3, src noise.Source, freq, strength float64) mgl64.Vec3 {
	if strength == 0 {
		return v
	}
	w := v.Add(noise.Warp(src, v, freq).Mul(strength))
	if l := w.Len(); l > 0 {
		return w.Mul(1 / l)
	}
	return v
}

// Partition finds the nearest and second-nearest plate centers to the warped
// point in a single pass. Chordal distance is used as a monotonic proxy for
// angular distance. Ties keep the lower index.
func Partition(v mgl64.Vec3, plates PlateSet, warp noise.Source, params Params) Neighbors {
	warped := WarpPoint(v, warp, params.WarpFrequency, params.WarpStrength)
	return nearestTwo(warped, plates)
}

func nearestTwo(p mgl64.Vec3, plates PlateSet) Neighbors {
	n := Neighbors{
		First:  -1,
		Second: -1,
		Dist1:  math.Inf(1),
		Dist2:  math.Inf(1),
		Warped: p,
	}

	for i := range plates {
		d := p.Sub(plates[i].Center).Len()
		switch {
		case d < n.Dist1:
			n.Second, n.Dist2 = n.First, n.Dist1
			n.First, n.Dist1 = i, d
		case d < n.Dist2:
			n.Second, n.Dist2 = i, d
		}
	}

	n.BoundaryDist = n.Dist2 - n.Dist1
	if n.Second < 0 {
		n.BoundaryDist = math.Inf(1)
	}
	return n
}
