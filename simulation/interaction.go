package simulation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Regime classifies the relative drift of two plates.
type Regime int

const (
	Neutral Regime = iota
	Convergent
	Divergent
)

func (r Regime) String() string {
	switch r {
	case Neutral:
		return "neutral"
	case Convergent:
		return "convergent"
	case Divergent:
		return "divergent"
	}
	return fmt.Sprintf("Regime(%d)", int(r))
}

// ClassifyDrift maps the dot product of two drift directions to a regime.
// The dead zone between the thresholds keeps near-parallel drift neutral.
func ClassifyDrift(dot float64, params Params) Regime {
	switch {
	case dot < params.CollisionThreshold:
		return Convergent
	case dot > params.SeparationThreshold:
		return Divergent
	}
	return Neutral
}

// Interaction is the closed set of boundary cases. The first word names the
// owning plate's side of the boundary.
type Interaction int

const (
	Interior Interaction = iota
	Orogeny
	Rift
	ContinentalTransform
	SubductionArc
	PassiveMargin
	CoastalShelf
	Trench
	PassiveSlope
	OceanicShelf
	IslandArc
	MidOceanRidge
	OceanicTransform
)

var interactionNames = [...]string{
	Interior:             "interior",
	Orogeny:              "orogeny",
	Rift:                 "rift",
	ContinentalTransform: "continental-transform",
	SubductionArc:        "subduction-arc",
	PassiveMargin:        "passive-margin",
	CoastalShelf:         "coastal-shelf",
	Trench:               "trench",
	PassiveSlope:         "passive-slope",
	OceanicShelf:         "oceanic-shelf",
	IslandArc:            "island-arc",
	MidOceanRidge:        "mid-ocean-ridge",
	OceanicTransform:     "oceanic-transform",
}

func (i Interaction) String() string {
	if i >= 0 && int(i) < len(interactionNames) {
		return interactionNames[i]
	}
	return fmt.Sprintf("Interaction(%d)", int(i))
}

// ruleTable is indexed by [owner type][neighbor type][regime].
var ruleTable = [2][2][3]Interaction{
	Continental: {
		Continental: {Neutral: ContinentalTransform, Convergent: Orogeny, Divergent: Rift},
		Oceanic:     {Neutral: CoastalShelf, Convergent: SubductionArc, Divergent: PassiveMargin},
	},
	Oceanic: {
		Continental: {Neutral: OceanicShelf, Convergent: Trench, Divergent: PassiveSlope},
		Oceanic:     {Neutral: OceanicTransform, Convergent: IslandArc, Divergent: MidOceanRidge},
	},
}

// Classify picks the interaction for an owner/neighbor pair and regime.
func Classify(owner, neighbor PlateType, regime Regime) Interaction {
	return ruleTable[owner][neighbor][regime]
}

// Boundary carries everything a rule needs about one point.
type Boundary struct {
	Base       float64 // base elevation of the owning plate
	F          float64 // 1 on the boundary, 0 at the zone edge
	Mountain   float64 // ridged modulation, always positive
	Overriding bool    // owner overrides the neighbor in a convergent pair
}

// BoundaryFactor converts a boundary distance to the falloff f.
func BoundaryFactor(boundaryDist, edgeThreshold float64) float64 {
	return mgl64.Clamp(1-boundaryDist/edgeThreshold, 0, 1)
}

// Rule computes the pre-detail height of a point.
type Rule func(b Boundary, p Params) float64

var rules = [...]Rule{
	Interior:             interior,
	Orogeny:              orogeny,
	Rift:                 rift,
	ContinentalTransform: interior,
	SubductionArc:        subductionArc,
	PassiveMargin:        passiveMargin,
	CoastalShelf:         coastalShelf,
	Trench:               trench,
	PassiveSlope:         passiveSlope,
	OceanicShelf:         oceanicShelf,
	IslandArc:            islandArc,
	MidOceanRidge:        midOceanRidge,
	OceanicTransform:     interior,
}

// RuleFor returns the rule function of an interaction.
func RuleFor(i Interaction) Rule {
	if i >= 0 && int(i) < len(rules) {
		return rules[i]
	}
	return interior
}

func interior(b Boundary, _ Params) float64 {
	return b.Base
}

// orogeny raises a main ridge sharply peaked on the boundary plus folded
// secondary ranges behind it.
func orogeny(b Boundary, p Params) float64 {
	f := b.F
	fold := 0.5 * (1 + math.Cos(2*math.Pi*p.RidgeFolds*f))
	ridge := f*f*f*f*p.MainRidgeHeight + fold*f*p.SecondaryRidgeHeight
	return b.Base + ridge*b.Mountain
}

func rift(b Boundary, p Params) float64 {
	return b.Base - b.F*b.F*p.RiftDepth
}

// subductionArc pins the coast to sea level and raises a volcanic range
// inland, peaking halfway across the zone.
func subductionArc(b Boundary, p Params) float64 {
	f := b.F
	s := math.Sin(math.Pi * f)
	return b.Base*(1-f*f*f) + s*s*p.ArcPeakHeight*b.Mountain
}

func passiveMargin(b Boundary, p Params) float64 {
	return margin(b, p.CoastalShelf, smoothstep(b.F), p)
}

func coastalShelf(b Boundary, p Params) float64 {
	return margin(b, p.CoastalShelf, b.F*b.F, p)
}

// trench pins the sea floor to the coastline and cuts a deep trench
// offshore of it.
func trench(b Boundary, p Params) float64 {
	f := b.F
	return b.Base*(1-f*f*f) - math.Sin(math.Pi*f)*p.TrenchDepth
}

func passiveSlope(b Boundary, p Params) float64 {
	return margin(b, p.OceanicSlope, smoothstep(b.F), p)
}

func oceanicShelf(b Boundary, p Params) float64 {
	return margin(b, p.OceanicSlope, b.F*b.F, p)
}

// margin eases from the base toward the side's own target, then bends to
// the shelf break shared by both sides so the two plates meet on the
// boundary.
func margin(b Boundary, target, w float64, p Params) float64 {
	f2 := b.F * b.F
	return lerp(lerp(b.Base, target, w), ShelfBreak(p), f2*f2)
}

// ShelfBreak is the height where a continental shelf and an oceanic slope
// join on a passive or neutral boundary.
func ShelfBreak(p Params) float64 {
	return 0.5 * (p.CoastalShelf + p.OceanicSlope)
}

// islandArc raises a chain on the overriding plate only, set back from the
// boundary.
func islandArc(b Boundary, p Params) float64 {
	if !b.Overriding {
		return b.Base
	}
	f := b.F
	return b.Base + f*f*f*math.Sin(f*math.Pi)*p.IslandArcHeight*b.Mountain
}

func midOceanRidge(b Boundary, p Params) float64 {
	return b.Base + b.F*b.F*p.MidOceanRise
}

// Overrides reports whether owner rides over neighbor when they converge.
// The plate whose drift carries it harder toward the other one subducts;
// ties go to the lower plate ID.
func Overrides(owner, neighbor Plate) bool {
	toNeighbor := neighbor.Center.Sub(owner.Center)
	ownerApproach := owner.Drift.Dot(toNeighbor)
	neighborApproach := neighbor.Drift.Dot(toNeighbor.Mul(-1))
	if ownerApproach != neighborApproach {
		return ownerApproach < neighborApproach
	}
	return owner.ID < neighbor.ID
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func smoothstep(t float64) float64 {
	t = mgl64.Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}
