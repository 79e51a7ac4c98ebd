package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"tectonicglobe/config"
	"tectonicglobe/globe"
	"tectonicglobe/simulation"
)

func main() {
	defaults := config.Default()

	// Parse command line flags
	var (
		settingsPath = flag.String("settings", "settings.json", "settings file path or go-getter source")
		seed         = flag.Int64("seed", config.DefaultSeed, "world seed (-1 draws a random one)")
		plates       = flag.Int("plates", defaults.World.PlateCount, "number of tectonic plates")
		continental  = flag.Float64("continental", defaults.World.ContinentalFraction, "probability a plate is continental")
		subdivisions = flag.Int("subdivisions", defaults.Mesh.Subdivisions, "icosphere subdivision level")
		topology     = flag.String("topology", defaults.Mesh.Topology, "mesh topology (icosphere, cubesphere)")
		model        = flag.String("model", defaults.World.Model, "height model (partition, stress-blend)")
		workers      = flag.Int("workers", 0, "applicator workers (0 = NumCPU-1)")
		mode         = flag.String("mode", "summary", "run mode (summary, serve)")
		port         = flag.Int("port", defaults.Server.Port, "preview server port")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	settings, found, err := config.LoadFrom(ctx, *settingsPath)
	if err != nil {
		log.Error("load settings", "source", *settingsPath, "error", err)
		os.Exit(1)
	}
	if !found {
		log.Info("no settings file found, using defaults", "source", *settingsPath)
	}

	// Flags only override the file when given explicitly.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			if *seed < 0 {
				settings.World.Seed = nil
			} else {
				settings.World.Seed = seed
			}
		case "plates":
			settings.World.PlateCount = *plates
		case "continental":
			settings.World.ContinentalFraction = *continental
		case "subdivisions":
			settings.Mesh.Subdivisions = *subdivisions
		case "topology":
			settings.Mesh.Topology = *topology
		case "model":
			settings.World.Model = *model
		case "workers":
			settings.Mesh.Workers = *workers
		case "port":
			settings.Server.Port = *port
		}
	})

	if err := settings.Validate(); err != nil {
		log.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	worldSeed := globe.ResolveSeed(settings)
	log.Info("generating world",
		"seed", worldSeed,
		"plates", settings.World.PlateCount,
		"continental", settings.World.ContinentalFraction,
		"model", settings.World.Model,
		"topology", settings.Mesh.Topology,
		"vertices", settings.ApproximateVertexCount(),
	)

	planet, err := globe.Generate(ctx, settings, worldSeed)
	if err != nil {
		if errors.Is(err, simulation.ErrInvalidParams) {
			log.Error("world configuration rejected", "error", err)
		} else {
			log.Error("world generation failed", "error", err)
		}
		os.Exit(1)
	}

	logSummary(log, planet)

	switch *mode {
	case "summary":
	case "serve":
		srv := NewPreviewServer(planet, settings.Server.Port, log)
		if err := srv.Run(ctx); err != nil {
			log.Error("preview server", "error", err)
			os.Exit(1)
		}
	default:
		log.Error("unknown mode", "mode", *mode)
		os.Exit(1)
	}
}

func logSummary(log *slog.Logger, planet *globe.Planet) {
	stats := planet.Stats
	for _, p := range planet.World.Plates {
		log.Info("plate",
			"id", p.ID,
			"type", p.Type.String(),
			"center", p.Center,
			"drift", p.Drift,
		)
	}
	log.Info("world generated",
		"vertices", stats.Vertices,
		"triangles", planet.Mesh.TriangleCount(),
		"land", stats.Land,
		"ocean", stats.Ocean,
		"landFraction", stats.LandFraction(),
		"minHeight", stats.MinHeight,
		"maxHeight", stats.MaxHeight,
		"elapsed", stats.Elapsed,
	)
}
