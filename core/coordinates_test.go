package core

import (
	"math"
	"testing"
)

// TestCoordinateConversions pins the Y-up convention.
func TestCoordinateConversions(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64 // degrees
		lon     float64 // degrees
		r       float64
		wantX   float64
		wantY   float64
		wantZ   float64
		epsilon float64
	}{
		{
			name:    "North Pole",
			lat:     90.0,
			lon:     0.0,
			r:       6371000.0,
			wantX:   0.0,
			wantY:   6371000.0,
			wantZ:   0.0,
			epsilon: 1.0,
		},
		{
			name:    "South Pole",
			lat:     -90.0,
			lon:     0.0,
			r:       6371000.0,
			wantX:   0.0,
			wantY:   -6371000.0,
			wantZ:   0.0,
			epsilon: 1.0,
		},
		{
			name:    "Equator Prime Meridian",
			lat:     0.0,
			lon:     0.0,
			r:       6371000.0,
			wantX:   6371000.0,
			wantY:   0.0,
			wantZ:   0.0,
			epsilon: 1.0,
		},
		{
			name:    "Equator 90E",
			lat:     0.0,
			lon:     90.0,
			r:       6371000.0,
			wantX:   0.0,
			wantY:   0.0,
			wantZ:   6371000.0,
			epsilon: 1.0,
		},
		{
			name:    "45N 45E",
			lat:     45.0,
			lon:     45.0,
			r:       6371000.0,
			wantX:   3185500.0, // r * cos(45°) * cos(45°)
			wantY:   4504977.0, // r * sin(45°)
			wantZ:   3185500.0, // r * cos(45°) * sin(45°)
			epsilon: 1.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := Geographic{Lat: DegreesToRadians(tc.lat), Lon: DegreesToRadians(tc.lon)}
			c := FromGeographic(g, tc.r)

			if math.Abs(c.X()-tc.wantX) > tc.epsilon {
				t.Errorf("X coordinate: got %f, want %f", c.X(), tc.wantX)
			}
			if math.Abs(c.Y()-tc.wantY) > tc.epsilon {
				t.Errorf("Y coordinate: got %f, want %f", c.Y(), tc.wantY)
			}
			if math.Abs(c.Z()-tc.wantZ) > tc.epsilon {
				t.Errorf("Z coordinate: got %f, want %f", c.Z(), tc.wantZ)
			}
		})
	}
}

func TestGeographicRoundTrip(t *testing.T) {
	const radius = 3.0
	for lat := -80.0; lat <= 80.0; lat += 20 {
		for lon := -170.0; lon <= 170.0; lon += 34 {
			g := Geographic{Lat: DegreesToRadians(lat), Lon: DegreesToRadians(lon), Alt: 0.25}
			back := ToGeographic(FromGeographic(g, radius), radius)

			if math.Abs(back.Lat-g.Lat) > 1e-12 || math.Abs(back.Lon-g.Lon) > 1e-12 {
				t.Errorf("(%v, %v): got (%v, %v)", lat, lon,
					RadiansToDegrees(back.Lat), RadiansToDegrees(back.Lon))
			}
			if math.Abs(back.Alt-g.Alt) > 1e-12 {
				t.Errorf("(%v, %v): altitude %v, want %v", lat, lon, back.Alt, g.Alt)
			}
		}
	}
}

// TestPolesSingularities checks that every longitude collapses onto the pole.
func TestPolesSingularities(t *testing.T) {
	poles := []struct {
		name string
		lat  float64
		y    float64
	}{
		{"North Pole", 90.0, 1},
		{"South Pole", -90.0, -1},
	}

	for _, pole := range poles {
		t.Run(pole.name, func(t *testing.T) {
			for lon := -180.0; lon <= 180.0; lon += 45.0 {
				c := FromGeographic(Geographic{Lat: DegreesToRadians(pole.lat), Lon: DegreesToRadians(lon)}, 1)
				if math.Abs(c.X()) > 1e-12 || math.Abs(c.Z()) > 1e-12 || math.Abs(c.Y()-pole.y) > 1e-12 {
					t.Errorf("lon %.0f: got %v", lon, c)
				}
			}
		})
	}
}

func TestToGeographicOrigin(t *testing.T) {
	g := ToGeographic([3]float64{}, 2)
	if g.Lat != 0 || g.Lon != 0 || g.Alt != -2 {
		t.Errorf("origin: got %+v", g)
	}
}
