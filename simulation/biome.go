package simulation

import "tectonicglobe/core"

// BiomeBand colors every height strictly below Threshold that no earlier
// band claimed.
type BiomeBand struct {
	Name      string
	Threshold float64
	Color     core.Color
}

// BiomeBands is an ascending list of bands; the last one is the catch-all
// and its threshold is ignored.
type BiomeBands []BiomeBand

// DefaultBiomeBands returns the eight standard bands, colors in linear light.
func DefaultBiomeBands() BiomeBands {
	return BiomeBands{
		{Name: "deep-trench", Threshold: -0.5, Color: core.NewColor(0.01, 0.02, 0.1)},
		{Name: "ocean", Threshold: -0.25, Color: core.NewColor(0.02, 0.05, 0.2)},
		{Name: "shallow-water", Threshold: -0.05, Color: core.NewColor(0.05, 0.2, 0.5)},
		{Name: "beach", Threshold: 0.02, Color: core.NewColor(0.8, 0.7, 0.4)},
		{Name: "plains", Threshold: 0.15, Color: core.NewColor(0.1, 0.4, 0.1)},
		{Name: "foothills", Threshold: 0.35, Color: core.NewColor(0.3, 0.2, 0.15)},
		{Name: "high-rock", Threshold: 0.5, Color: core.NewColor(0.4, 0.4, 0.4)},
		{Name: "snow", Color: core.NewColor(0.9, 0.9, 1.0)},
	}
}

// Lookup returns the index of the first band whose threshold exceeds height.
func (bb BiomeBands) Lookup(height float64) int {
	last := len(bb) - 1
	for i := 0; i < last; i++ {
		if height < bb[i].Threshold {
			return i
		}
	}
	return last
}

// ColorAt returns the color of the band containing height.
func (bb BiomeBands) ColorAt(height float64) core.Color {
	if len(bb) == 0 {
		return core.Color{}
	}
	return bb[bb.Lookup(height)].Color
}

// Ascending reports whether thresholds strictly increase, ignoring the
// catch-all band.
func (bb BiomeBands) Ascending() bool {
	for i := 1; i < len(bb)-1; i++ {
		if bb[i].Threshold <= bb[i-1].Threshold {
			return false
		}
	}
	return true
}
