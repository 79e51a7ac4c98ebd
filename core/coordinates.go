package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geographic represents a position in geographic coordinates
type Geographic struct {
	Lat float64 // Latitude in radians [-π/2, π/2], positive = north
	Lon float64 // Longitude in radians [-π, π], positive = east
	Alt float64 // Altitude above reference radius
}

// DegreesToRadians converts degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadiansToDegrees converts radians to degrees
func RadiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// FromGeographic converts geographic coordinates to a Cartesian position.
// Origin at planet center, Y points to the north pole, X to 0° longitude.
func FromGeographic(g Geographic, radius float64) mgl64.Vec3 {
	r := radius + g.Alt
	cosLat := math.Cos(g.Lat)

	return mgl64.Vec3{
		r * cosLat * math.Cos(g.Lon),
		r * math.Sin(g.Lat),
		r * cosLat * math.Sin(g.Lon),
	}
}

// ToGeographic converts a Cartesian position to geographic coordinates
func ToGeographic(c mgl64.Vec3, radius float64) Geographic {
	r := c.Len()

	// Handle special case of origin
	if r < 1e-10 {
		return Geographic{Lat: 0, Lon: 0, Alt: -radius}
	}

	return Geographic{
		Lat: math.Asin(mgl64.Clamp(c.Y()/r, -1, 1)),
		Lon: math.Atan2(c.Z(), c.X()),
		Alt: r - radius,
	}
}
