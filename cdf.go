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
	"fmt"
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// CDF is a tabulated cumulative distribution function.
//
// Each sample holds a projection coordinate in X and the cumulative
// probability up to that coordinate in Y.  Both fields are non-decreasing.
// Tables produced by this package start at Y=0 and end at Y=1.
type CDF struct {
	Samples []vec.Vec2
}

// InverseCDF returns the coordinate at which the CDF reaches y.
//
// The first sample with Y >= y is located by binary search and X is
// interpolated linearly between it and its predecessor.  Values of y
// below the first sample return the first X, values above the last sample
// return the last X.  There is no extrapolation.
func (c *CDF) InverseCDF(y float64) float64 {
	s := c.Samples
	i, _ := slices.BinarySearchFunc(s, y, func(e vec.Vec2, y float64) int {
		return cmp.Compare(e.Y, y)
	})
	switch i {
	case 0:
		return s[0].X
	case len(s):
		return s[len(s)-1].X
	}
	lo, hi := s[i-1], s[i]
	t := (y - lo.Y) / (hi.Y - lo.Y)
	return Lerp(lo.X, hi.X, t)
}

// Validate checks that the table is usable for inversion: at least two
// samples, finite values, non-decreasing in both fields, first Y exactly
// 0 and last Y exactly 1.
func (c *CDF) Validate() error {
	s := c.Samples
	if len(s) < 2 {
		return fmt.Errorf("%w: %d samples", ErrMalformedCDF, len(s))
	}
	for i, p := range s {
		if !isFinite(p) {
			return fmt.Errorf("%w: sample %d is (%g, %g)", ErrMalformedCDF, i, p.X, p.Y)
		}
		if i > 0 && (p.X < s[i-1].X || p.Y < s[i-1].Y) {
			return fmt.Errorf("%w: sample %d decreases", ErrMalformedCDF, i)
		}
	}
	if s[0].Y != 0 || s[len(s)-1].Y != 1 {
		return fmt.Errorf("%w: range [%g, %g] instead of [0, 1]",
			ErrMalformedCDF, s[0].Y, s[len(s)-1].Y)
	}
	return nil
}

// CDFFromFunc tabulates the function cdf at n evenly spaced points from
// minX to maxX, both ends included.  The values of cdf are stored as they
// are; the caller is responsible for them being normalized.
func CDFFromFunc(minX, maxX float64, n int, cdf func(x float64) float64) *CDF {
	n = max(n, 2)
	res := &CDF{Samples: make([]vec.Vec2, n)}
	for i := range n {
		x := Lerp(minX, maxX, float64(i)/float64(n-1))
		res.Samples[i] = vec.Vec2{X: x, Y: cdf(x)}
	}
	return res
}

// CDFBuilder projects density maps onto directions and turns the result
// into CDF tables.  Internal buffers grow as needed but never shrink, so
// a builder reused for many directions allocates nothing in steady state.
//
// A CDFBuilder is not safe for concurrent use.
type CDFBuilder struct {
	weights []float64 // per-bucket projected weight
	cdf     CDF
}

// Build computes the CDF of the density m projected onto direction d.
// It uses n buckets and returns n+1 samples: the buckets have equal width
// and span the support [-(|d.x|+|d.y|)/2, (|d.x|+|d.y|)/2] of the
// projected unit square, and there is one sample at each bucket boundary.
// The first sample has Y = 0, the last has Y = 1.
//
// The weight of every cell is spread over the buckets which its projected
// interval overlaps, in proportion to the length of the overlap.
//
// The returned table is owned by the builder and remains valid until the
// next call to Build.
func (b *CDFBuilder) Build(m *DensityMap, n int, d vec.Vec2) (*CDF, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d CDF buckets", ErrConfig, n)
	}
	if err := checkDirection(d); err != nil {
		return nil, err
	}

	maxX := SquareSupport(d)
	minX := -maxX
	scale := float64(n) / (maxX - minX)

	b.weights = slices.Grow(b.weights[:0], n)[:n]
	clear(b.weights)

	for iy := range m.Height {
		y0 := float64(iy)/float64(m.Height) - 0.5
		y1 := float64(iy+1)/float64(m.Height) - 0.5
		yLo, yHi := minMax(y0*d.Y, y1*d.Y)

		for ix := range m.Width {
			w := m.Pixels[iy*m.Width+ix]
			if w == 0 {
				continue
			}

			x0 := float64(ix)/float64(m.Width) - 0.5
			x1 := float64(ix+1)/float64(m.Width) - 0.5
			xLo, xHi := minMax(x0*d.X, x1*d.X)

			// the cell's corners project onto [xLo+yLo, xHi+yHi]
			lo := Clamp((xLo+yLo-minX)*scale, 0, float64(n))
			hi := Clamp((xHi+yHi-minX)*scale, 0, float64(n))
			b.spread(w, lo, hi)
		}
	}

	s := slices.Grow(b.cdf.Samples[:0], n+1)[:n+1]
	var sum float64
	s[0] = vec.Vec2{X: minX, Y: 0}
	for i := 1; i <= n; i++ {
		sum += b.weights[i-1]
		s[i] = vec.Vec2{X: Lerp(minX, maxX, float64(i)/float64(n)), Y: sum}
	}
	if !(sum > 0) {
		return nil, ErrZeroDensity
	}
	for i := range s {
		s[i].Y /= sum
	}
	b.cdf.Samples = s

	if err := b.cdf.Validate(); err != nil {
		return nil, err
	}
	return &b.cdf, nil
}

// BucketWeights returns the projected weight of each bucket from the most
// recent call to Build.  The slice is valid until the next call to Build.
func (b *CDFBuilder) BucketWeights() []float64 {
	return b.weights
}

// spread distributes weight w over the bucket range [lo, hi), given in
// bucket units.
func (b *CDFBuilder) spread(w, lo, hi float64) {
	n := len(b.weights)
	length := hi - lo
	if length <= 0 {
		b.weights[min(int(lo), n-1)] += w
		return
	}
	for lo < hi {
		i := int(math.Floor(lo))
		if i >= n {
			break
		}
		end := min(float64(i+1), hi)
		b.weights[i] += w * (end - lo) / length
		lo = float64(i + 1)
	}
}

func minMax(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
