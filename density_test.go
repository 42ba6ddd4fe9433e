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
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/sot"
)

func TestNewDensityMap(t *testing.T) {
	m, err := sot.NewDensityMap(2, 2, []float64{0, 1, 2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, 3.5, m.Total())
	assert.Equal(t, 2.0, m.At(0, 1))
	assert.Equal(t, 1.0, m.At(1, 0))
}

func TestNewDensityMapErrors(t *testing.T) {
	type testCase struct {
		width, height int
		pixels        []float64
		want          error
	}
	cases := map[string]testCase{
		"zero size":   {0, 3, nil, sot.ErrDensity},
		"short":       {2, 2, []float64{1, 1, 1}, sot.ErrDensity},
		"negative":    {2, 1, []float64{1, -0.1}, sot.ErrDensity},
		"nan":         {1, 2, []float64{math.NaN(), 1}, sot.ErrDensity},
		"inf":         {1, 1, []float64{math.Inf(1)}, sot.ErrDensity},
		"overflow":    {2, 1, []float64{1e308, 1e308}, sot.ErrDensity},
		"all zero":    {2, 2, []float64{0, 0, 0, 0}, sot.ErrZeroDensity},
		"single zero": {1, 1, []float64{0}, sot.ErrZeroDensity},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := sot.NewDensityMap(tc.width, tc.height, tc.pixels)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDensityFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 255})
	img.SetGray(0, 1, color.Gray{Y: 51})
	img.SetGray(1, 1, color.Gray{Y: 255})

	m, err := sot.DensityFromImage(img, false, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Width)
	assert.Equal(t, 2, m.Height)
	assert.InDelta(t, 1, m.At(0, 0), 1e-12)
	assert.InDelta(t, 0, m.At(1, 0), 1e-12)
	assert.InDelta(t, 0.8, m.At(0, 1), 1e-12)
	assert.InDelta(t, 0, m.At(1, 1), 1e-12)

	inv, err := sot.DensityFromImage(img, true, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, inv.At(0, 0), 1e-12)
	assert.InDelta(t, 1, inv.At(1, 0), 1e-12)
	assert.InDelta(t, 0.2, inv.At(0, 1), 1e-12)
}

func TestDensityFromImageColor(t *testing.T) {
	// bounds which do not start at the origin
	img := image.NewRGBA(image.Rect(10, 20, 13, 21))
	img.Set(10, 20, color.Black)
	img.Set(11, 20, color.White)
	img.Set(12, 20, color.RGBA{R: 255, A: 255})

	m, err := sot.DensityFromImage(img, false, 0)
	require.NoError(t, err)
	require.Equal(t, 3, m.Width)
	require.Equal(t, 1, m.Height)
	assert.InDelta(t, 1, m.At(0, 0), 1e-12)
	assert.InDelta(t, 0, m.At(1, 0), 1e-12)
	assert.Greater(t, m.At(2, 0), 0.5) // pure red is fairly dark
}

func TestDensityFromImageResample(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 100))
	m, err := sot.DensityFromImage(img, false, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, m.Width)
	assert.Equal(t, 25, m.Height)
	assert.InDelta(t, 50*25, m.Total(), 1e-9)

	// images which already fit are used as they are
	m, err = sot.DensityFromImage(img, false, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, m.Width)
}

func TestDensityFromImageErrors(t *testing.T) {
	white := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range white.Pix {
		white.Pix[i] = 255
	}
	_, err := sot.DensityFromImage(white, false, 0)
	assert.ErrorIs(t, err, sot.ErrZeroDensity)

	_, err = sot.DensityFromImage(white, true, 0)
	assert.NoError(t, err)

	empty := image.NewGray(image.Rectangle{})
	_, err = sot.DensityFromImage(empty, false, 0)
	assert.ErrorIs(t, err, sot.ErrDensity)
}
