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
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// DensityMap is a grid of non-negative weights covering the unit square.
// Cell (ix, iy) covers [ix/W, (ix+1)/W] × [iy/H, (iy+1)/H] of the square
// (before centring), and row 0 corresponds to the smallest y.
//
// A DensityMap is not modified after construction and may be shared
// between goroutines.
type DensityMap struct {
	Width  int
	Height int

	// Pixels holds Width*Height weights in row-major order.
	Pixels []float64

	total float64
}

// NewDensityMap validates the given weights and wraps them in a
// DensityMap.  The pixels slice is used directly, not copied.
//
// An all-zero map is rejected with ErrZeroDensity, since its CDF cannot be
// normalized.  Weights whose sum overflows are rejected with ErrDensity.
func NewDensityMap(width, height int, pixels []float64) (*DensityMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrDensity, width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for size %dx%d",
			ErrDensity, len(pixels), width, height)
	}
	var total float64
	for i, w := range pixels {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: pixel %d has weight %g", ErrDensity, i, w)
		}
		total += w
	}
	if math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: total weight overflows", ErrDensity)
	}
	if total == 0 {
		return nil, ErrZeroDensity
	}
	return &DensityMap{
		Width:  width,
		Height: height,
		Pixels: pixels,
		total:  total,
	}, nil
}

// Total returns the sum of all weights.
func (m *DensityMap) Total() float64 {
	return m.total
}

// At returns the weight of cell (ix, iy).
func (m *DensityMap) At(ix, iy int) float64 {
	return m.Pixels[iy*m.Width+ix]
}

// DensityFromImage converts an image into a density map.
//
// Pixels are converted to 8-bit gray.  Dark pixels receive high weight:
// weight = 1 - gray/255.  If invert is set, light pixels receive high
// weight instead: weight = gray/255.
//
// If maxSize is positive and the image is larger than maxSize in either
// direction, the image is first scaled down (keeping its aspect ratio) so
// that it fits into maxSize × maxSize.
func DensityFromImage(img image.Image, invert bool, maxSize int) (*DensityMap, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDensity)
	}
	if maxSize > 0 && (bounds.Dx() > maxSize || bounds.Dy() > maxSize) {
		scaled := resample(img, maxSize)
		Logger().Warn("density image resampled",
			"from", bounds.Size().String(),
			"to", scaled.Bounds().Size().String())
		img = scaled
		bounds = img.Bounds()
	}

	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]float64, w*h)
	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			v := float64(c.Y) / 255
			if !invert {
				v = 1 - v
			}
			pixels[y*w+x] = v
		}
	}
	return NewDensityMap(w, h, pixels)
}

// resample scales img down to fit into maxSize × maxSize.
func resample(img image.Image, maxSize int) *image.Gray {
	b := img.Bounds()
	scale := float64(maxSize) / float64(max(b.Dx(), b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
