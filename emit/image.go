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

package emit

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sot"
)

// DefaultSigma is the standard deviation, in pixels, of the Gaussian
// splats drawn by [Splat].
const DefaultSigma = 1.5

// splatCutoff is the kernel value at which a splat is truncated.
const splatCutoff = 0.005

// pixel returns the image column or row for coordinate x in (-1, 1) on an
// image of the given size.
func pixel(x float64, size int) int {
	return int(ToUnit(x) * float64(size-1))
}

// newWhite allocates a white size×size gray image.
func newWhite(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// Scatter draws every point as a single black pixel on a white
// size×size image.  Image row 0 corresponds to y = -1.
func Scatter(points []vec.Vec2, size int) *image.Gray {
	img := newWhite(size)
	for _, p := range points {
		img.SetGray(pixel(p.X, size), pixel(p.Y, size), color.Gray{})
	}
	return img
}

// KernelRadius returns the radius, in whole pixels, beyond which a
// Gaussian with standard deviation sigma falls below 0.5% of its peak.
func KernelRadius(sigma float64) int {
	return int(math.Sqrt(-2 * sigma * sigma * math.Log(splatCutoff)))
}

// Splat draws every point as a dark Gaussian blob with standard deviation
// sigma pixels on a white size×size image.  Each blob darkens the pixels
// under it by the kernel value, so overlapping blobs accumulate.
func Splat(points []vec.Vec2, size int, sigma float64) *image.Gray {
	img := newWhite(size)
	if sigma <= 0 {
		sigma = DefaultSigma
	}
	radius := KernelRadius(sigma)

	kernel := make([]float64, radius+1)
	for k := range kernel {
		kernel[k] = math.Exp(-float64(k*k) / (2 * sigma * sigma))
	}

	for _, p := range points {
		x, y := pixel(p.X, size), pixel(p.Y, size)
		x0, x1 := max(x-radius, 0), min(x+radius, size-1)
		y0, y1 := max(y-radius, 0), min(y+radius, size-1)
		for iy := y0; iy <= y1; iy++ {
			ky := kernel[abs(iy-y)]
			row := img.Pix[iy*img.Stride:]
			for ix := x0; ix <= x1; ix++ {
				k := kernel[abs(ix-x)] * ky
				row[ix] = uint8(sot.Lerp(float64(row[ix]), 0, k))
			}
		}
	}
	return img
}

// Discs draws every point as an anti-aliased black disc of the given
// radius (in pixels) on a white size×size image.  Each disc is centred on
// the pixel which Scatter would set for the point.
func Discs(points []vec.Vec2, size int, radius float64) *image.Gray {
	img := newWhite(size)
	r := vector.NewRasterizer(size, size)
	rad := float32(radius)
	for _, p := range points {
		cx := float32(pixel(p.X, size)) + 0.5
		cy := float32(pixel(p.Y, size)) + 0.5
		addDisc(r, cx, cy, rad)
	}
	r.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})
	return img
}

// addDisc adds a counter-clockwise circle made of four cubic Bézier
// segments to the rasterizer.
func addDisc(r *vector.Rasterizer, cx, cy, radius float32) {
	const k = float32(0.5522847498)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
	r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
	r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// WritePNG encodes img as a PNG file.
func WritePNG(w io.Writer, img image.Image) error {
	return pngEncoder.Encode(w, img)
}
