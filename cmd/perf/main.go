package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"tectonicglobe/core"
	"tectonicglobe/simulation"
)

func main() {
	subdivisions := flag.Int("subdivisions", 7, "icosphere subdivision level")
	seed := flag.Int64("seed", 144, "world seed")
	flag.Parse()

	fmt.Println("=== Performance Test ===")
	ctx := context.Background()

	// Test 1: Topology
	start := time.Now()
	mesh := core.NewIcosphere(*subdivisions)
	fmt.Printf("Icosphere level %d: %.3fs (%d vertices)\n",
		*subdivisions, time.Since(start).Seconds(), mesh.VertexCount())

	// Test 2: Plates and noise tables
	start = time.Now()
	world, err := simulation.NewWorld(*seed, simulation.DefaultParams(), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("World setup: %.3fs (%d plates)\n", time.Since(start).Seconds(), len(world.Plates))

	// Test 3: Field, serial then pooled
	for _, workers := range []int{1, max(runtime.NumCPU()-1, 1)} {
		points := core.NewIcosphere(*subdivisions).Positions

		field := simulation.NewField(world, simulation.WithWorkers(workers))
		_, stats, err := field.Apply(ctx, points)
		field.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Field apply (%d workers): %.3fs, %.0f vertices/s\n",
			workers, stats.Elapsed.Seconds(), float64(stats.Vertices)/stats.Elapsed.Seconds())
	}

	// Test 4: Normals
	field := simulation.NewField(world)
	defer field.Close()
	start = time.Now()
	if _, err := field.ApplyMesh(ctx, mesh); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Apply + normals: %.3fs\n", time.Since(start).Seconds())

	fmt.Println("\n=== Test Complete ===")
}
