package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"tectonicglobe/config"
	"tectonicglobe/globe"
)

func main() {
	settingsPath := flag.String("settings", "settings.json", "settings file path or go-getter source")
	seed := flag.Int64("seed", -1, "world seed (-1 keeps the settings value)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx := context.Background()
	settings, _, err := config.LoadFrom(ctx, *settingsPath)
	if err != nil {
		log.Error("load settings", "source", *settingsPath, "error", err)
		os.Exit(1)
	}
	if *seed >= 0 {
		settings.World.Seed = seed
	}
	if err := settings.Validate(); err != nil {
		log.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	worldSeed := globe.ResolveSeed(settings)
	planet, err := globe.Generate(ctx, settings, worldSeed)
	if err != nil {
		log.Error("world generation failed", "error", err)
		os.Exit(1)
	}
	log.Info("world generated",
		"seed", worldSeed,
		"vertices", planet.Stats.Vertices,
		"landFraction", planet.Stats.LandFraction(),
	)

	vs := settings.Viewer
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(vs.Width), int32(vs.Height), fmt.Sprintf("Tectonic Globe (seed %d)", worldSeed))
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	view := newGlobeView(planet.Mesh, vs.Sensitivity)
	distance := float32(planet.World.Params.Radius * 3)

	camera := rl.Camera3D{
		Position:   rl.NewVector3(0, 0, distance),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	for !rl.WindowShouldClose() {
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			delta := rl.GetMouseDelta()
			view.drag(float64(delta.X), float64(delta.Y))
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			distance = max(distance-wheel*0.25, float32(planet.World.Params.Radius)*1.2)
			camera.Position = rl.NewVector3(0, 0, distance)
		}
		view.update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(8, 10, 18, 255))

		rl.BeginMode3D(camera)
		rl.DisableBackfaceCulling()
		view.draw()
		rl.EnableBackfaceCulling()
		rl.EndMode3D()

		rl.DrawFPS(10, 10)
		rl.DrawText(fmt.Sprintf("%d plates, %s", len(planet.World.Plates), planet.World.Params.Model),
			10, 34, 18, rl.RayWhite)
		rl.EndDrawing()
	}
}
