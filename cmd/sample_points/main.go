package main

import (
	"flag"
	"fmt"
	"os"

	"tectonicglobe/config"
	"tectonicglobe/core"
	"tectonicglobe/simulation"
)

func main() {
	settingsPath := flag.String("settings", "", "settings file (defaults when empty)")
	seed := flag.Int64("seed", config.DefaultSeed, "world seed")
	flag.Parse()

	settings, _, err := config.Load(*settingsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	params := settings.Params()
	world, err := simulation.NewWorld(*seed, params, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("=== Canonical Directions (seed %d, %d plates, %s) ===\n\n",
		world.Seed, len(world.Plates), params.Model)

	for i, dir := range core.CanonicalDirections() {
		sample, err := world.Synth.Sample(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "direction %d: %v\n", i, err)
			os.Exit(1)
		}
		geo := core.ToGeographic(dir, 1)
		c := sample.Color.SRGB8()

		fmt.Printf("%2d (%7.2f°, %7.2f°):\n", i,
			core.RadiansToDegrees(geo.Lat),
			core.RadiansToDegrees(geo.Lon))
		fmt.Printf("  Height: %+.6f  Color: #%02x%02x%02x\n", sample.Height, c[0], c[1], c[2])

		probe, ok := world.Probe(dir)
		if !ok {
			fmt.Println()
			continue
		}
		n := probe.Neighbors
		owner := world.Plates[n.First]
		if n.HasSecond() {
			neighbor := world.Plates[n.Second]
			fmt.Printf("  Plates: %d (%s) / %d (%s)  Boundary: %.4f\n",
				owner.ID, owner.Type, neighbor.ID, neighbor.Type, n.BoundaryDist)
			fmt.Printf("  Interaction: %s  Regime: %s  f=%.3f\n",
				probe.Interaction, probe.Regime, probe.F)
		} else {
			fmt.Printf("  Plate: %d (%s)\n", owner.ID, owner.Type)
		}
		fmt.Println()
	}
}
