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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
)

// circleK is the control point distance for approximating a quarter
// circle of radius 1 by a cubic Bézier curve.
const circleK = 0.5522847498

// WritePDF writes a single-page PDF file showing every point as a black
// disc on a white background.  The page is size×size PDF points, the disc
// radius is given in the same units.  As in the raster images, y = -1 is
// at the top of the page.
func WritePDF(path string, points []vec.Vec2, size, radius float64) error {
	paper := &pdf.Rectangle{URx: size, URy: size}
	page, err := document.CreateSinglePage(path, paper, pdf.V1_7, nil)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	page.SetFillColor(color.DeviceGray(1))
	page.Rectangle(0, 0, size, size)
	page.Fill()

	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, size})
	page.SetFillColor(color.DeviceGray(0))
	kr := circleK * radius
	for _, p := range points {
		cx, cy := ToUnit(p.X)*size, ToUnit(p.Y)*size
		page.MoveTo(cx, cy-radius)
		page.CurveTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		page.CurveTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		page.CurveTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		page.CurveTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
		page.ClosePath()
	}
	if len(points) > 0 {
		page.Fill()
	}

	if err := page.Close(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
