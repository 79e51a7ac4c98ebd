package simulation

import "testing"

func TestBiomeLookup(t *testing.T) {
	bb := DefaultBiomeBands()
	tests := []struct {
		height float64
		want   string
	}{
		{-0.9, "deep-trench"},
		{-0.5, "ocean"},
		{-0.3, "ocean"},
		{-0.25, "shallow-water"},
		{-0.05, "beach"},
		{0.0, "beach"},
		{0.02, "plains"},
		{0.2, "foothills"},
		{0.4, "high-rock"},
		{0.5, "snow"},
		{3, "snow"},
	}

	for _, tc := range tests {
		if got := bb[bb.Lookup(tc.height)].Name; got != tc.want {
			t.Errorf("Lookup(%v) = %s, want %s", tc.height, got, tc.want)
		}
	}
}

func TestBiomeLookupMonotonic(t *testing.T) {
	bb := DefaultBiomeBands()
	prev := 0
	for h := -1.0; h <= 1.0; h += 0.001 {
		idx := bb.Lookup(h)
		if idx < prev {
			t.Fatalf("band index fell from %d to %d at height %v", prev, idx, h)
		}
		prev = idx
	}
	if prev != len(bb)-1 {
		t.Errorf("never reached the catch-all band, last index %d", prev)
	}
}

func TestBiomeAscending(t *testing.T) {
	if !DefaultBiomeBands().Ascending() {
		t.Fatal("default bands not ascending")
	}
	bad := BiomeBands{{Threshold: 0.1}, {Threshold: 0}, {}}
	if bad.Ascending() {
		t.Error("descending thresholds reported ascending")
	}
}

func TestBiomeColorAtEmpty(t *testing.T) {
	var bb BiomeBands
	if c := bb.ColorAt(0.3); c.A != 0 {
		t.Errorf("empty bands returned %+v", c)
	}
}
