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

package sot_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sot"
	"seehuhn.de/go/sot/testcases"
)

// densityMap builds the density map of a registered test case.
func densityMap(t testing.TB, name string) *sot.DensityMap {
	t.Helper()
	tc, ok := testcases.Lookup(name)
	require.True(t, ok, "unknown test case %q", name)
	m, err := sot.NewDensityMap(tc.Width, tc.Height, tc.Pixels())
	require.NoError(t, err)
	return m
}

func TestBuildAllCases(t *testing.T) {
	dirs := append(sot.EvenDirections(7),
		vec.Vec2{X: 1, Y: 0},
		vec.Vec2{X: 0, Y: 1},
		vec.Vec2{X: -0.5, Y: 2})

	for category, cases := range testcases.All {
		for _, tc := range cases {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				m := densityMap(t, name)
				var b sot.CDFBuilder
				for _, d := range dirs {
					const n = 200
					cdf, err := b.Build(m, n, d)
					require.NoError(t, err)
					require.NoError(t, cdf.Validate())

					s := cdf.Samples
					require.Len(t, s, n+1)
					assert.Equal(t, 0.0, s[0].Y)
					assert.Equal(t, 1.0, s[n].Y)
					assert.InDelta(t, -sot.SquareSupport(d), s[0].X, 1e-12)
					assert.InDelta(t, sot.SquareSupport(d), s[n].X, 1e-12)

					var sum float64
					for _, w := range b.BucketWeights() {
						sum += w
					}
					assert.InDelta(t, m.Total(), sum, 1e-9*m.Total(), "d=%v", d)
				}
			})
		}
	}
}

// TestBuildUniform compares the tabulated CDF of a flat density with the
// closed form for the square.
func TestBuildUniform(t *testing.T) {
	m := densityMap(t, "uniform_flat")
	var b sot.CDFBuilder
	for _, d := range sot.EvenDirections(9) {
		cdf, err := b.Build(m, sot.DefaultCDFSamples, d)
		require.NoError(t, err)
		for i := 5; i <= 95; i++ {
			u := float64(i) / 100
			want := sot.SquareInverseCDF(u-0.5, d)
			assert.InDelta(t, want, cdf.InverseCDF(u), 0.01, "d=%v u=%g", d, u)
		}
	}
}

func TestBuildSingleCell(t *testing.T) {
	// a single cell covering the whole square projects onto the full
	// support, spread evenly
	m := densityMap(t, "uniform_single")
	var b sot.CDFBuilder
	d := vec.Vec2{X: 1, Y: 0}
	cdf, err := b.Build(m, 4, d)
	require.NoError(t, err)
	for i, s := range cdf.Samples {
		assert.InDelta(t, float64(i)/4, s.Y, 1e-12)
		assert.InDelta(t, -0.5+float64(i)/4, s.X, 1e-12)
	}
}

func TestBuildReuse(t *testing.T) {
	m := densityMap(t, "gradient_radial")
	d1 := vec.Vec2{X: 0.6, Y: 0.8}
	d2 := vec.Vec2{X: -1, Y: 0}

	var reused sot.CDFBuilder
	_, err := reused.Build(m, 300, d1)
	require.NoError(t, err)
	got, err := reused.Build(m, 100, d2)
	require.NoError(t, err)

	var fresh sot.CDFBuilder
	want, err := fresh.Build(m, 100, d2)
	require.NoError(t, err)

	assert.Equal(t, want.Samples, got.Samples)
	assert.Equal(t, fresh.BucketWeights(), reused.BucketWeights())
}

func TestBuildErrors(t *testing.T) {
	m := densityMap(t, "uniform_flat")
	var b sot.CDFBuilder

	_, err := b.Build(m, 100, vec.Vec2{})
	assert.ErrorIs(t, err, sot.ErrDegenerateDirection)
	_, err = b.Build(m, 100, vec.Vec2{X: math.NaN(), Y: 1})
	assert.ErrorIs(t, err, sot.ErrDegenerateDirection)
	_, err = b.Build(m, 0, vec.Vec2{X: 1})
	assert.ErrorIs(t, err, sot.ErrConfig)

	zero := &sot.DensityMap{Width: 2, Height: 2, Pixels: make([]float64, 4)}
	_, err = b.Build(zero, 100, vec.Vec2{X: 1})
	assert.ErrorIs(t, err, sot.ErrZeroDensity)
}

func TestInverseCDF(t *testing.T) {
	cdf := sot.CDFFromFunc(-1, 1, 3, func(x float64) float64 {
		return (x + 1) / 2
	})
	require.NoError(t, cdf.Validate())

	assert.Equal(t, -1.0, cdf.InverseCDF(0))
	assert.Equal(t, -0.5, cdf.InverseCDF(0.25))
	assert.Equal(t, 0.0, cdf.InverseCDF(0.5))
	assert.Equal(t, 1.0, cdf.InverseCDF(1))

	// no extrapolation beyond the table
	assert.Equal(t, -1.0, cdf.InverseCDF(-0.2))
	assert.Equal(t, 1.0, cdf.InverseCDF(1.7))
}

func TestInverseCDFPlateau(t *testing.T) {
	cdf := &sot.CDF{Samples: []vec.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0.5},
		{X: 2, Y: 0.5},
		{X: 3, Y: 1},
	}}
	require.NoError(t, cdf.Validate())
	assert.Equal(t, 1.0, cdf.InverseCDF(0.5))
	assert.Equal(t, 2.5, cdf.InverseCDF(0.75))
}

func TestCDFFromFuncMatchesSquare(t *testing.T) {
	d := vec.Vec2{X: 0.8, Y: -0.6}
	support := sot.SquareSupport(d)
	cdf := sot.CDFFromFunc(-support, support, 1001, func(x float64) float64 {
		return sot.SquareCDF(x, d) + 0.5
	})
	require.NoError(t, cdf.Validate())
	for i := 1; i < 100; i++ {
		u := float64(i) / 100
		assert.InDelta(t, sot.SquareInverseCDF(u-0.5, d), cdf.InverseCDF(u), 1e-3, "u=%g", u)
	}
}

func TestValidate(t *testing.T) {
	bad := map[string][]vec.Vec2{
		"short":      {{X: 0, Y: 0}},
		"decreasing": {{X: 0, Y: 0}, {X: 1, Y: 0.6}, {X: 2, Y: 0.4}, {X: 3, Y: 1}},
		"backwards":  {{X: 0, Y: 0}, {X: -1, Y: 1}},
		"start":      {{X: 0, Y: 0.1}, {X: 1, Y: 1}},
		"end":        {{X: 0, Y: 0}, {X: 1, Y: 0.9}},
		"nan":        {{X: 0, Y: 0}, {X: math.NaN(), Y: 0.5}, {X: 1, Y: 1}},
	}
	for name, samples := range bad {
		t.Run(name, func(t *testing.T) {
			cdf := &sot.CDF{Samples: samples}
			assert.ErrorIs(t, cdf.Validate(), sot.ErrMalformedCDF)
		})
	}
}

func TestSquareTarget(t *testing.T) {
	_, err := sot.SquareTarget{}.Begin(vec.Vec2{})
	assert.ErrorIs(t, err, sot.ErrDegenerateDirection)

	q, err := sot.SquareTarget{}.Begin(vec.Vec2{X: 1, Y: 0})
	require.NoError(t, err)
	defer q.Release()
	assert.InDelta(t, -1, q.At(0), 1e-12)
	assert.InDelta(t, 0, q.At(0.5), 1e-12)
	assert.InDelta(t, 0.5, q.At(0.75), 1e-12)
	assert.InDelta(t, 1, q.At(1), 1e-12)
}

func TestDensityTarget(t *testing.T) {
	m := densityMap(t, "uniform_flat")
	target, err := sot.NewDensityTarget(m, 0)
	require.NoError(t, err)
	assert.Same(t, m, target.Density())

	for _, d := range sot.EvenDirections(5) {
		want, err := sot.SquareTarget{}.Begin(d)
		require.NoError(t, err)
		got, err := target.Begin(d)
		require.NoError(t, err)
		for i := 5; i <= 95; i += 5 {
			u := float64(i) / 100
			assert.InDelta(t, want.At(u), got.At(u), 0.02, "d=%v u=%g", d, u)
		}
		got.Release()
		want.Release()
	}

	_, err = target.Begin(vec.Vec2{})
	assert.ErrorIs(t, err, sot.ErrDegenerateDirection)
}

func TestNewDensityTargetErrors(t *testing.T) {
	_, err := sot.NewDensityTarget(nil, 0)
	assert.ErrorIs(t, err, sot.ErrDensity)

	m := densityMap(t, "uniform_single")
	_, err = sot.NewDensityTarget(m, -3)
	assert.ErrorIs(t, err, sot.ErrConfig)

	zero := &sot.DensityMap{Width: 1, Height: 1, Pixels: []float64{0}}
	_, err = sot.NewDensityTarget(zero, 0)
	assert.ErrorIs(t, err, sot.ErrZeroDensity)
}

func TestCachedTarget(t *testing.T) {
	m := densityMap(t, "shape_dipole")
	target, err := sot.NewDensityTarget(m, 300)
	require.NoError(t, err)
	cached := sot.NewCachedTarget(target, 4)

	dirs := sot.EvenDirections(3)
	for range 2 {
		for _, d := range dirs {
			want, err := target.Begin(d)
			require.NoError(t, err)
			got, err := cached.Begin(d)
			require.NoError(t, err)
			for i := 0; i <= 20; i++ {
				u := float64(i) / 20
				assert.Equal(t, want.At(u), got.At(u))
			}
			want.Release()
			got.Release()
		}
	}
	assert.Equal(t, 3, cached.Len())

	// older entries are evicted
	for _, d := range sot.EvenDirections(5) {
		q, err := cached.Begin(d)
		require.NoError(t, err)
		q.Release()
	}
	assert.Equal(t, 4, cached.Len())

	points := sot.InitialPoints(100, 1)
	check := sot.EvenDirections(16)
	d1, err := sot.SlicedDistance(points, target, check)
	require.NoError(t, err)
	d2, err := sot.SlicedDistance(points, cached, check)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	_, err = cached.Begin(vec.Vec2{})
	assert.ErrorIs(t, err, sot.ErrDegenerateDirection)
}
