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

// Package rand provides deterministic pseudo-random number streams.
//
// All generators are PCG32 instances.  A stream is identified by a 64-bit
// seed; related streams (one per iteration, per batch, ...) are obtained by
// mixing a parent seed with a stream index using [Derive].  Given the same
// seed, a stream produces the same sequence on every platform.
//
// A Rand is not safe for concurrent use.  Parallel workers each derive
// their own stream.
package rand

import (
	"math"

	"github.com/MichaelTJones/pcg"
)

// sequence selects the PCG32 output sequence.  All streams share it;
// independence comes from the seed.
const sequence = 0xda3e39cb94b95bdb

// Rand is a PCG32 random number generator.
type Rand struct {
	r *pcg.PCG32
}

// New returns a generator seeded with seed.
func New(seed uint64) *Rand {
	r := pcg.NewPCG32()
	r.Seed(seed, sequence)
	return &Rand{r: r}
}

// Stream returns a generator for sub-stream index of seed.
// This is shorthand for New(Derive(seed, index)).
func Stream(seed, index uint64) *Rand {
	return New(Derive(seed, index))
}

// Uint32 returns 32 uniformly distributed random bits.
func (r *Rand) Uint32() uint32 {
	return r.r.Random()
}

// Float64 returns a uniformly distributed value in [0, 1) with 53 bits of
// precision.
func (r *Rand) Float64() float64 {
	a := r.r.Random() >> 5 // 27 bits
	b := r.r.Random() >> 6 // 26 bits
	return (float64(a)*67108864 + float64(b)) / 9007199254740992
}

// Uniform returns a uniformly distributed value in [lo, hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + float64((hi-lo)*r.Float64())
}

// NormPair returns two independent standard normal values, using the
// Marsaglia polar method.
func (r *Rand) NormPair() (float64, float64) {
	for {
		x := 2*r.Float64() - 1
		y := 2*r.Float64() - 1
		s := float64(x*x) + float64(y*y)
		if s == 0 || s >= 1 {
			continue
		}
		f := math.Sqrt(-2 * log(s) / s)
		return x * f, y * f
	}
}

// Derive mixes a parent seed and a stream index into a new seed.
// Small changes in either input produce unrelated outputs.
func Derive(parent, index uint64) uint64 {
	// SplitMix64 finalizer
	x := parent ^ (index + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Next returns the seed following seed in a chain of seeds.
// It is used to give every point set of a run its own seed while keeping
// the whole run reproducible from the first one.
func Next(seed uint64) uint64 {
	return Derive(seed, 0)
}
