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
	"slices"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"seehuhn.de/go/geom/vec"
)

// Target is a distribution on the square (-1, 1)² which point sets are
// relaxed towards.
//
// Begin is called once per batch with the batch's projection direction.
// The returned Quantiles maps cumulative probabilities to projection
// coordinates for that direction.  The caller invokes Release once it has
// finished with the Quantiles.  Begin must be safe for concurrent use.
type Target interface {
	Begin(d vec.Vec2) (Quantiles, error)
}

// Quantiles is the inverse CDF of a target projected onto one direction.
type Quantiles interface {
	// At returns the projection coordinate, in point space, below which a
	// fraction u in [0, 1] of the target mass lies.
	At(u float64) float64

	// Release frees any resources held.  At must not be called afterwards.
	Release()
}

// SquareTarget is the uniform distribution on (-1, 1)².
// Quantiles are computed in closed form; no table is built.
type SquareTarget struct{}

// Begin implements the [Target] interface.
func (SquareTarget) Begin(d vec.Vec2) (Quantiles, error) {
	if err := checkDirection(d); err != nil {
		return nil, err
	}
	return squareQuantiles(d), nil
}

type squareQuantiles vec.Vec2

func (q squareQuantiles) At(u float64) float64 {
	// the unit square is (-0.5, 0.5)², points live in (-1, 1)²
	return 2 * SquareInverseCDF(u-0.5, vec.Vec2(q))
}

func (squareQuantiles) Release() {}

// DefaultCDFSamples is the default resolution of the CDF tables built by
// a [DensityTarget].
const DefaultCDFSamples = 1000

// DensityTarget is the distribution described by a [DensityMap], stretched
// over (-1, 1)².  For every direction a CDF table of the projected density
// is built by a [CDFBuilder]; builders are recycled between batches.
type DensityTarget struct {
	m       *DensityMap
	samples int
	pool    sync.Pool
}

// NewDensityTarget returns a target for the density m, using CDF tables
// with the given number of buckets.  If samples is zero,
// [DefaultCDFSamples] is used.
func NewDensityTarget(m *DensityMap, samples int) (*DensityTarget, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil density map", ErrDensity)
	}
	if m.Total() <= 0 {
		return nil, ErrZeroDensity
	}
	if samples == 0 {
		samples = DefaultCDFSamples
	}
	if samples < 1 {
		return nil, fmt.Errorf("%w: %d CDF samples", ErrConfig, samples)
	}
	t := &DensityTarget{m: m, samples: samples}
	t.pool.New = func() any { return new(CDFBuilder) }
	return t, nil
}

// Density returns the density map of the target.
func (t *DensityTarget) Density() *DensityMap {
	return t.m
}

// Begin implements the [Target] interface.
func (t *DensityTarget) Begin(d vec.Vec2) (Quantiles, error) {
	b := t.pool.Get().(*CDFBuilder)
	cdf, err := b.Build(t.m, t.samples, d)
	if err != nil {
		t.pool.Put(b)
		return nil, err
	}
	return &densityQuantiles{cdf: cdf, b: b, pool: &t.pool}, nil
}

type densityQuantiles struct {
	cdf  *CDF
	b    *CDFBuilder
	pool *sync.Pool
}

func (q *densityQuantiles) At(u float64) float64 {
	return 2 * q.cdf.InverseCDF(u)
}

func (q *densityQuantiles) Release() {
	q.pool.Put(q.b)
	q.cdf, q.b = nil, nil
}

// CachedTarget wraps a [DensityTarget] and keeps the CDF tables of the
// most recently used directions.  This pays off when the same directions
// are used again and again, for example by [SlicedDistance] with a fixed
// direction set.  Relaxation draws fresh directions for every batch and
// gains nothing from the cache.
type CachedTarget struct {
	t     *DensityTarget
	cache *expirable.LRU[vec.Vec2, *CDF]
}

// NewCachedTarget returns a target which caches up to size CDF tables of t.
func NewCachedTarget(t *DensityTarget, size int) *CachedTarget {
	return &CachedTarget{
		t:     t,
		cache: expirable.NewLRU[vec.Vec2, *CDF](max(size, 1), nil, 0),
	}
}

// Begin implements the [Target] interface.
func (c *CachedTarget) Begin(d vec.Vec2) (Quantiles, error) {
	if cdf, ok := c.cache.Get(d); ok {
		return tableQuantiles{cdf}, nil
	}

	b := c.t.pool.Get().(*CDFBuilder)
	defer c.t.pool.Put(b)
	cdf, err := b.Build(c.t.m, c.t.samples, d)
	if err != nil {
		return nil, err
	}
	cdf = &CDF{Samples: slices.Clone(cdf.Samples)}
	c.cache.Add(d, cdf)
	return tableQuantiles{cdf}, nil
}

// Len returns the number of cached tables.
func (c *CachedTarget) Len() int {
	return c.cache.Len()
}

// tableQuantiles reads quantiles from an immutable table.
type tableQuantiles struct {
	cdf *CDF
}

func (q tableQuantiles) At(u float64) float64 {
	return 2 * q.cdf.InverseCDF(u)
}

func (tableQuantiles) Release() {}
