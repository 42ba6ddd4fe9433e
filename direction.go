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
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sot/rand"
)

// DirectionSampler chooses the projection direction for every batch of
// every iteration.  Direction must be a pure function of its arguments
// and the sampler's seed, and must be safe for concurrent use.
type DirectionSampler interface {
	Direction(iteration, batch, batchSize int) vec.Vec2
}

// DirectionMode selects one of the built-in direction samplers.
type DirectionMode int

const (
	// Gaussian draws independent, uniformly distributed directions.
	Gaussian DirectionMode = iota

	// GoldenRatio rotates each batch slot's direction by a low-discrepancy
	// golden ratio sequence.
	GoldenRatio
)

func (m DirectionMode) String() string {
	switch m {
	case Gaussian:
		return "gauss"
	case GoldenRatio:
		return "golden"
	default:
		return fmt.Sprintf("DirectionMode(%d)", int(m))
	}
}

// ParseDirectionMode converts the output of DirectionMode.String back
// into a DirectionMode.
func ParseDirectionMode(s string) (DirectionMode, error) {
	switch s {
	case "gauss", "gaussian":
		return Gaussian, nil
	case "golden", "goldenratio":
		return GoldenRatio, nil
	}
	return 0, fmt.Errorf("%w: unknown direction mode %q", ErrConfig, s)
}

// Sampler returns the direction sampler for mode m.
func (m DirectionMode) Sampler(seed uint64) (DirectionSampler, error) {
	switch m {
	case Gaussian:
		return GaussianDirections{Seed: seed}, nil
	case GoldenRatio:
		return GoldenRatioDirections{Seed: seed}, nil
	}
	return nil, fmt.Errorf("%w: unknown direction mode %d", ErrConfig, int(m))
}

// Stream identifiers, mixed into the run seed so that every consumer of
// random numbers draws from its own stream.
const (
	streamPoints uint64 = iota + 1
	streamDirections
	streamJitter
	streamGolden
)

// GaussianDirections normalizes pairs of independent standard normal
// values, which gives directions uniformly distributed on the circle.
// Every (iteration, batch) pair uses its own random stream.
type GaussianDirections struct {
	Seed uint64
}

// Direction implements the [DirectionSampler] interface.
func (g GaussianDirections) Direction(iteration, batch, batchSize int) vec.Vec2 {
	r := rand.Stream(rand.Derive(g.Seed, streamDirections), uint64(iteration*batchSize+batch))
	for {
		x, y := r.NormPair()
		if d, ok := Normalize(vec.Vec2{X: x, Y: y}); ok {
			return d
		}
	}
}

// GoldenRatioDirections gives every batch slot a random starting angle and
// advances it by the golden ratio conjugate (modulo one full turn) in every
// iteration.  For a fixed slot this spreads directions more evenly over
// iterations than independent draws.
type GoldenRatioDirections struct {
	Seed uint64
}

// Direction implements the [DirectionSampler] interface.
func (g GoldenRatioDirections) Direction(iteration, batch, batchSize int) vec.Vec2 {
	r := rand.Stream(rand.Derive(g.Seed, streamGolden), uint64(batch))
	v := r.Float64()
	for range iteration {
		v = Fract(v + goldenRatioConjugate)
	}
	sin, cos := sincos(2 * math.Pi * v)
	return vec.Vec2{X: cos, Y: sin}
}

// EvenDirections returns k unit directions with angles evenly spaced over
// a half turn.  Directions differing by a half turn give the same
// projections up to sign, so these cover all distinct projections.
func EvenDirections(k int) []vec.Vec2 {
	res := make([]vec.Vec2, k)
	for i := range res {
		sin, cos := sincos(math.Pi * (float64(i) + 0.5) / float64(k))
		res[i] = vec.Vec2{X: cos, Y: sin}
	}
	return res
}
