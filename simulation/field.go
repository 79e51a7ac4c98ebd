package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl64"

	"tectonicglobe/core"
)

// ErrBufferMismatch is returned when parallel output buffers differ in length.
var ErrBufferMismatch = errors.New("simulation: output buffers not index-aligned")

// Stats summarizes one applicator pass.
type Stats struct {
	Vertices  int
	Land      int // height > 0
	Ocean     int
	MinHeight float64
	MaxHeight float64
	Elapsed   time.Duration
}

// LandFraction returns the share of vertices above sea level.
func (s Stats) LandFraction() float64 {
	if s.Vertices == 0 {
		return 0
	}
	return float64(s.Land) / float64(s.Vertices)
}

// Field applies a world's synthesizer to vertex buffers.
type Field struct {
	synth     *Synthesizer
	radius    float64
	workers   int
	chunkSize int
	pool      worker.DynamicWorkerPool
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithWorkers sets the number of pool workers. One or fewer runs serially.
func WithWorkers(n int) FieldOption {
	return func(f *Field) {
		f.workers = n
	}
}

// WithChunkSize sets how many vertices one pool task processes.
func WithChunkSize(n int) FieldOption {
	return func(f *Field) {
		if n > 0 {
			f.chunkSize = n
		}
	}
}

// NewField creates an applicator for w. The default worker count leaves one
// core for the caller. Callers must Close the field to release the pool.
func NewField(w *World, options ...FieldOption) *Field {
	f := &Field{
		synth:     w.Synth,
		radius:    w.Params.Radius,
		workers:   max(runtime.NumCPU()-1, 1),
		chunkSize: 4096,
	}
	for _, option := range options {
		option(f)
	}
	if f.workers > 1 {
		f.pool = worker.NewDynamicWorkerPool(f.workers, 256, 1*time.Second)
	}
	return f
}

// Close stops the worker pool. Later calls run serially. Close must not be
// called while a Synthesize or Apply call is in flight.
func (f *Field) Close() {
	if f.pool != nil {
		f.pool.Stop()
		f.pool = nil
	}
}

// Workers returns the configured worker count.
func (f *Field) Workers() int {
	return f.workers
}

// Synthesize computes heights and colors for points into caller-owned
// buffers of the same length. Points are not modified. On error the output
// buffers hold partial results and must be discarded.
func (f *Field) Synthesize(ctx context.Context, points []mgl64.Vec3, heights []float64, colors []core.Color) error {
	if len(heights) != len(points) || len(colors) != len(points) {
		return fmt.Errorf("%w: %d points, %d heights, %d colors",
			ErrBufferMismatch, len(points), len(heights), len(colors))
	}

	run := func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			s, err := f.synth.Sample(points[i])
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			heights[i] = s.Height
			colors[i] = s.Color
		}
		return nil
	}

	if f.pool == nil || len(points) <= f.chunkSize {
		return f.serial(ctx, len(points), run)
	}
	return f.parallel(ctx, len(points), run)
}

func (f *Field) serial(ctx context.Context, n int, run func(lo, hi int) error) error {
	for lo := 0; lo < n; lo += f.chunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := run(lo, min(lo+f.chunkSize, n)); err != nil {
			return err
		}
	}
	return nil
}

// parallel fans chunks out to the pool. Each chunk writes only its own index
// range; the WaitGroup is the only synchronization.
func (f *Field) parallel(ctx context.Context, n int, run func(lo, hi int) error) error {
	chunks := (n + f.chunkSize - 1) / f.chunkSize
	errs := make([]error, chunks)

	var wg sync.WaitGroup
	for c := 0; c < chunks; c++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return err
		}
		lo := c * f.chunkSize
		hi := min(lo+f.chunkSize, n)
		id := c

		wg.Add(1)
		f.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					errs[id] = err
					return nil, nil
				}
				errs[id] = run(lo, hi)
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Lowest failing chunk wins so the reported vertex does not depend on
	// scheduling.
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Apply displaces every position to dir*(radius+height) in place and returns
// the index-aligned colors. Positions are only written once every vertex
// has been synthesized, so an error leaves them untouched.
func (f *Field) Apply(ctx context.Context, positions []mgl64.Vec3) ([]core.Color, Stats, error) {
	start := time.Now()
	heights := make([]float64, len(positions))
	colors := make([]core.Color, len(positions))

	if err := f.Synthesize(ctx, positions, heights, colors); err != nil {
		return nil, Stats{}, err
	}

	for i, p := range positions {
		// Sample already rejected zero and non-finite input.
		dir := p.Mul(1 / p.Len())
		positions[i] = dir.Mul(f.radius + heights[i])
	}

	stats := summarize(heights)
	stats.Elapsed = time.Since(start)
	return colors, stats, nil
}

// ApplyMesh runs Apply over the mesh, stores the colors and then
// recomputes smooth normals from the displaced surface.
func (f *Field) ApplyMesh(ctx context.Context, mesh *core.Mesh) (Stats, error) {
	colors, stats, err := f.Apply(ctx, mesh.Positions)
	if err != nil {
		return Stats{}, err
	}
	mesh.Colors = colors
	core.ComputeSmoothNormals(mesh)
	return stats, nil
}

func summarize(heights []float64) Stats {
	s := Stats{
		Vertices:  len(heights),
		MinHeight: math.Inf(1),
		MaxHeight: math.Inf(-1),
	}
	if len(heights) == 0 {
		s.MinHeight, s.MaxHeight = 0, 0
		return s
	}
	for _, h := range heights {
		if h > 0 {
			s.Land++
		} else {
			s.Ocean++
		}
		s.MinHeight = min(s.MinHeight, h)
		s.MaxHeight = max(s.MaxHeight, h)
	}
	return s
}
