// seehuhn.de/go/sot - sliced optimal transport point sets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package sot

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sot/rand"
)

// Config describes one relaxation run.
type Config struct {
	// Points is the number of points to generate.  Must be positive.
	Points int

	// Iterations is the number of update steps.  Zero leaves the initial
	// random points unchanged.
	Iterations int

	// BatchSize is the number of directions whose displacements are
	// averaged in every iteration.  Must be positive.
	BatchSize int

	// Seed determines all random choices of the run.
	Seed uint64

	// Stratify jitters the target quantile of each rank randomly within
	// its bucket, instead of placing it at the bucket centre.
	Stratify bool

	// Directions selects the direction sampler.
	Directions DirectionMode

	// Target is the distribution to relax towards.
	// Nil means the uniform square.
	Target Target

	// Workers limits how many batches run concurrently.
	// Zero or negative means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns a configuration with the recommended number of
// iterations and batch size, relaxing towards the uniform square.
func DefaultConfig(points int, seed uint64) Config {
	return Config{
		Points:     points,
		Iterations: 1000,
		BatchSize:  64,
		Seed:       seed,
		Directions: Gaussian,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Points <= 0 {
		return fmt.Errorf("%w: point count %d", ErrConfig, c.Points)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iteration count %d", ErrConfig, c.Iterations)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size %d", ErrConfig, c.BatchSize)
	}
	if _, err := c.Directions.Sampler(c.Seed); err != nil {
		return err
	}
	return nil
}

// Sample is one recorded point of a convergence history.
type Sample struct {
	Iteration   int
	AvgMovement float64 // mean displacement length per point
}

// Progress is passed to the callback of [Relaxer.Run] after every
// iteration.
type Progress struct {
	Iteration   int // index of the completed iteration
	Iterations  int // total number of iterations
	Percent     int
	AvgMovement float64
	Sampled     bool // whether the iteration was added to the history
}

// batch holds the scratch space of one batch slot.  It is allocated once
// and reused for every iteration.
type batch struct {
	order []int      // point indices sorted by projection
	proj  []float64  // projection of every point
	disp  []vec.Vec2 // displacement of every point, by point index
}

// Relaxer moves a point set towards a target distribution by sliced
// optimal transport.
//
// A Relaxer is created with its initial random points, advanced by
// [Relaxer.Iterate] (or [Relaxer.Run]) and finished by
// [Relaxer.Finalize], which hands the points over to the caller.
// The methods of a Relaxer must not be called concurrently; batches
// within one iteration run in parallel internally.
type Relaxer struct {
	cfg     Config
	dirs    DirectionSampler
	target  Target
	workers int

	points    []vec.Vec2
	batches   []batch
	iteration int
	finalized bool

	history     []Sample
	lastPercent int
}

// New validates cfg and creates a Relaxer holding cfg.Points points drawn
// uniformly from (-1, 1)².
func New(cfg Config) (*Relaxer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dirs, err := cfg.Directions.Sampler(cfg.Seed)
	if err != nil {
		return nil, err
	}
	target := cfg.Target
	if target == nil {
		target = SquareTarget{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	r := &Relaxer{
		cfg:         cfg,
		dirs:        dirs,
		target:      target,
		workers:     min(workers, cfg.BatchSize),
		points:      InitialPoints(cfg.Points, cfg.Seed),
		batches:     make([]batch, cfg.BatchSize),
		lastPercent: -1,
	}
	for i := range r.batches {
		b := &r.batches[i]
		b.order = make([]int, cfg.Points)
		for j := range b.order {
			b.order[j] = j
		}
		b.proj = make([]float64, cfg.Points)
		b.disp = make([]vec.Vec2, cfg.Points)
	}
	return r, nil
}

// InitialPoints returns the n uniformly random points in (-1, 1)² which a
// run with the given seed starts from.
func InitialPoints(n int, seed uint64) []vec.Vec2 {
	rng := rand.Stream(seed, streamPoints)
	points := make([]vec.Vec2, n)
	for i := range points {
		points[i].X = rng.Uniform(-1, 1)
		points[i].Y = rng.Uniform(-1, 1)
	}
	return points
}

// Iteration returns the number of completed iterations.
func (r *Relaxer) Iteration() int {
	return r.iteration
}

// Done reports whether all configured iterations have been performed.
func (r *Relaxer) Done() bool {
	return r.iteration >= r.cfg.Iterations
}

// Points returns the current points.  The slice is owned by the Relaxer
// and changes with every iteration.
func (r *Relaxer) Points() []vec.Vec2 {
	return r.points
}

// History returns the recorded convergence samples.  An iteration is
// recorded whenever the integer percentage of completed iterations
// changes.
func (r *Relaxer) History() []Sample {
	return r.history
}

// Iterate performs one iteration and returns the mean displacement length
// per point.
//
// All batches run concurrently, each with its own direction.  Once every
// batch has finished, their displacements are averaged and applied to the
// points.  If ctx is cancelled, the iteration is abandoned and the points
// are left unchanged.
//
// Once all configured iterations are done, Iterate returns ErrDone.
func (r *Relaxer) Iterate(ctx context.Context) (float64, error) {
	if r.finalized {
		return 0, ErrFinalized
	}
	if r.Done() {
		return 0, ErrDone
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	it := r.iteration
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for bi := range r.batches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.runBatch(it, bi)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	// Running average: after step k, batch 0 holds the mean of batches 0..k.
	avg := r.batches[0].disp
	for k := 1; k < len(r.batches); k++ {
		alpha := 1 / float64(k+1)
		other := r.batches[k].disp
		for i := range avg {
			avg[i] = LerpVec(avg[i], other[i], alpha)
		}
	}

	for i, d := range avg {
		if !isFinite(d) {
			return 0, &NumericalError{Iteration: it, Batch: -1, Point: i, Value: d, What: "displacement"}
		}
	}
	var total float64
	for i, d := range avg {
		r.points[i] = r.points[i].Add(d)
		total += length(d)
	}
	movement := total / float64(len(r.points))

	r.iteration++
	r.record(it, movement)
	return movement, nil
}

// runBatch computes the displacements for batch slot bi in iteration it.
func (r *Relaxer) runBatch(it, bi int) error {
	b := &r.batches[bi]
	d := r.dirs.Direction(it, bi, len(r.batches))
	if err := checkDirection(d); err != nil {
		return err
	}

	for i, p := range r.points {
		b.proj[i] = dot(d, p)
	}

	slices.SortStableFunc(b.order, func(i, j int) int {
		return cmp.Compare(b.proj[i], b.proj[j])
	})

	q, err := r.target.Begin(d)
	if err != nil {
		return err
	}
	defer q.Release()

	var jitter *rand.Rand
	if r.cfg.Stratify {
		jitter = rand.Stream(rand.Derive(r.cfg.Seed, streamJitter), uint64(it*len(r.batches)+bi))
	}

	n := float64(len(r.points))
	for rank, idx := range b.order {
		u := 0.5
		if jitter != nil {
			u = jitter.Float64()
		}
		target := q.At((float64(rank) + u) / n)
		if math.IsNaN(target) || math.IsInf(target, 0) {
			return &NumericalError{
				Iteration: it,
				Batch:     bi,
				Point:     idx,
				Value:     vec.Vec2{X: target, Y: b.proj[idx]},
				What:      "target projection",
			}
		}
		b.disp[idx] = d.Mul(target - b.proj[idx])
	}
	return nil
}

// record adds iteration it to the history if the completed percentage
// changed.
func (r *Relaxer) record(it int, movement float64) {
	p := r.percent(it)
	if p == r.lastPercent {
		return
	}
	r.lastPercent = p
	r.history = append(r.history, Sample{Iteration: it, AvgMovement: movement})
	Logger().Debug("relaxation progress",
		"iteration", it,
		"percent", p,
		"movement", movement)
}

func (r *Relaxer) percent(it int) int {
	n := r.cfg.Iterations
	if n <= 1 {
		return 100
	}
	return 100 * it / (n - 1)
}

// Run performs all remaining iterations.  If progress is not nil, it is
// called after every iteration.  Run stops early, without error, when
// progress returns false, and with ctx's error when ctx is cancelled.
func (r *Relaxer) Run(ctx context.Context, progress func(Progress) bool) error {
	Logger().Info("relaxation started",
		"points", r.cfg.Points,
		"iterations", r.cfg.Iterations,
		"batchSize", r.cfg.BatchSize,
		"directions", r.cfg.Directions.String(),
		"stratify", r.cfg.Stratify,
		"seed", r.cfg.Seed)

	for !r.Done() {
		it := r.iteration
		sampled := len(r.history)
		movement, err := r.Iterate(ctx)
		if err != nil {
			return err
		}
		if progress != nil {
			ok := progress(Progress{
				Iteration:   it,
				Iterations:  r.cfg.Iterations,
				Percent:     r.percent(it),
				AvgMovement: movement,
				Sampled:     len(r.history) > sampled,
			})
			if !ok {
				break
			}
		}
	}

	Logger().Info("relaxation finished", "iterations", r.iteration)
	return nil
}

// Finalize ends the run and returns the points.  Afterwards the Relaxer
// no longer modifies the slice, and Iterate fails with ErrFinalized.
func (r *Relaxer) Finalize() []vec.Vec2 {
	r.finalized = true
	return r.points
}

// Generate runs a complete relaxation for cfg and returns the final points
// together with the convergence history.
func Generate(ctx context.Context, cfg Config, progress func(Progress) bool) ([]vec.Vec2, []Sample, error) {
	r, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := r.Run(ctx, progress); err != nil {
		return nil, nil, err
	}
	return r.Finalize(), r.History(), nil
}
