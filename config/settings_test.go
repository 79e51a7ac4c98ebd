package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tectonicglobe/simulation"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValidates(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if s.World.Seed == nil || *s.World.Seed != DefaultSeed {
		t.Errorf("default seed %v, want %d", s.World.Seed, DefaultSeed)
	}
	if got, want := s.Params(), simulation.DefaultParams(); got != want {
		t.Errorf("default params %+v, want %+v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, found, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil || found {
		t.Fatalf("Load = found %v, err %v", found, err)
	}
	if s.World.PlateCount != Default().World.PlateCount {
		t.Errorf("missing file did not return defaults: %+v", s.World)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeSettings(t, `{
		"world": {"seed": null, "plateCount": 20},
		"tuning": {"edgeThreshold": 0.3, "octaves": 4},
		"mesh": {"topology": "cubesphere", "chunksPerFace": 3}
	}`)

	s, found, err := Load(path)
	if err != nil || !found {
		t.Fatalf("Load = found %v, err %v", found, err)
	}
	if s.World.Seed != nil {
		t.Errorf("null seed decoded as %d", *s.World.Seed)
	}
	if s.World.PlateCount != 20 || s.World.ContinentalFraction != 0.4 {
		t.Errorf("world %+v", s.World)
	}
	if s.Mesh.Topology != TopologyCubeSphere || s.Mesh.ChunksPerFace != 3 || s.Mesh.Resolution != 32 {
		t.Errorf("mesh %+v", s.Mesh)
	}

	p := s.Params()
	if p.EdgeThreshold != 0.3 || p.Octaves != 4 {
		t.Errorf("tuning not applied: edge %v octaves %d", p.EdgeThreshold, p.Octaves)
	}
	if p.WarpStrength != simulation.DefaultParams().WarpStrength {
		t.Errorf("unset tuning changed warp strength to %v", p.WarpStrength)
	}
}

func TestTuningExplicitZero(t *testing.T) {
	path := writeSettings(t, `{
		"tuning": {"warpStrength": 0, "collisionThreshold": 0, "separationThreshold": 0, "heightFloor": 0}
	}`)

	s, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	p := s.Params()
	if p.WarpStrength != 0 || p.CollisionThreshold != 0 || p.SeparationThreshold != 0 || p.HeightFloor != 0 {
		t.Errorf("explicit zeros not applied: warp %v collision %v separation %v floor %v",
			p.WarpStrength, p.CollisionThreshold, p.SeparationThreshold, p.HeightFloor)
	}
	if p.EdgeThreshold != simulation.DefaultParams().EdgeThreshold {
		t.Errorf("omitted edge threshold changed to %v", p.EdgeThreshold)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeSettings(t, `{"world": {"plateCuont": 20}}`)
	if _, found, err := Load(path); err == nil || !found {
		t.Fatalf("Load = found %v, err %v; want a decode error", found, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
	}{
		{"default", func(*Settings) {}, nil},
		{"topology", func(s *Settings) { s.Mesh.Topology = "octahedron" }, nil},
		{"subdivisions", func(s *Settings) { s.Mesh.Subdivisions = 12 }, nil},
		{"grid", func(s *Settings) { s.Mesh.Topology = TopologyCubeSphere; s.Mesh.Resolution = 0 }, nil},
		{"workers", func(s *Settings) { s.Mesh.Workers = -1 }, nil},
		{"port", func(s *Settings) { s.Server.Port = 70000 }, nil},
		{"plates", func(s *Settings) { s.World.PlateCount = 80 }, simulation.ErrInfeasiblePlateCount},
		{"model", func(s *Settings) { s.World.Model = "voronoi" }, simulation.ErrInvalidParams},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mutate(&s)
			err := s.Validate()
			if tc.name == "default" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestApproximateVertexCount(t *testing.T) {
	s := Default()
	if got, want := s.ApproximateVertexCount(), 40962; got != want {
		t.Errorf("icosphere level 6: %d, want %d", got, want)
	}
	s.Mesh.Topology = TopologyCubeSphere
	s.Mesh.ChunksPerFace = 2
	s.Mesh.Resolution = 4
	if got, want := s.ApproximateVertexCount(), 6*4*25; got != want {
		t.Errorf("cube-sphere: %d, want %d", got, want)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"settings.json", false},
		{"/etc/tectonicglobe/settings.json", false},
		{"https://example.com/settings.json", true},
		{"git::https://example.com/repo.git//settings.json", true},
		{"s3::https://s3.amazonaws.com/bucket/settings.json", true},
	}
	for _, tc := range tests {
		if got := IsRemote(tc.src); got != tc.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestLoadFromLocal(t *testing.T) {
	path := writeSettings(t, `{"server": {"port": 9090}}`)
	s, found, err := LoadFrom(t.Context(), path)
	if err != nil || !found {
		t.Fatalf("LoadFrom = found %v, err %v", found, err)
	}
	if s.Server.Port != 9090 {
		t.Errorf("port %d, want 9090", s.Server.Port)
	}
}

func TestFetchFileSource(t *testing.T) {
	path := writeSettings(t, `{"viewer": {"width": 640}}`)
	s, found, err := LoadFrom(t.Context(), "file::"+path)
	if err != nil || !found {
		t.Fatalf("LoadFrom = found %v, err %v", found, err)
	}
	if s.Viewer.Width != 640 {
		t.Errorf("width %d, want 640", s.Viewer.Width)
	}
}
