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
	"math"

	"seehuhn.de/go/geom/vec"
)

// The functions in this file describe the distribution of x·d for x
// uniformly distributed in the square (-0.5, 0.5)².  The distribution is
// centred at 0: the CDF runs from -0.5 to 0.5 instead of from 0 to 1.
//
// With c = max(|d.x|, |d.y|) and s = min(|d.x|, |d.y|), the density is a
// trapezoid: constant 1/c on |x| < (c-s)/2, falling linearly to 0 at
// |x| = (c+s)/2.  The direction d need not have unit length, but must not
// be zero.

// squareExtents returns c = max(|d.x|, |d.y|) and s = min(|d.x|, |d.y|).
func squareExtents(d vec.Vec2) (c, s float64) {
	ax, ay := math.Abs(d.X), math.Abs(d.Y)
	return max(ax, ay), min(ax, ay)
}

// SquarePDF returns the density of the projected square at x.
func SquarePDF(x float64, d vec.Vec2) float64 {
	c, s := squareExtents(d)
	ax := math.Abs(x)
	switch {
	case ax < 0.5*(c-s):
		return 1 / c
	case ax < 0.5*(c+s):
		fromEnd := float64(0.5*(c+s)) - ax
		return fromEnd / (c * s)
	default:
		return 0
	}
}

// SquareCDF returns the centred cumulative distribution of the projected
// square at x.  The result lies in [-0.5, 0.5].
func SquareCDF(x float64, d vec.Vec2) float64 {
	c, s := squareExtents(d)
	ax := math.Abs(x)
	var u float64
	switch {
	case ax >= 0.5*(c+s):
		// also covers the boundary when s == 0, where the ramp is empty
		u = 0.5
	case ax < 0.5*(c-s):
		u = ax / c
	default:
		fromEnd := float64(0.5*(c+s)) - ax
		u = 0.5 - 0.5*fromEnd*fromEnd/(c*s)
	}
	if x < 0 {
		return -u
	}
	return u
}

// SquareInverseCDF returns the x with SquareCDF(x, d) = u, for
// u in [-0.5, 0.5].
func SquareInverseCDF(u float64, d vec.Vec2) float64 {
	c, s := squareExtents(d)
	au := math.Abs(u)
	if 2*c*au < c-s {
		return c * u
	}
	t := float64(0.5*(c+s)) - math.Sqrt(2*s*c*(0.5-au))
	if u < 0 {
		return -t
	}
	return t
}

// SquareSupport returns the half-width (|d.x|+|d.y|)/2 of the interval
// onto which the square projects.
func SquareSupport(d vec.Vec2) float64 {
	return 0.5 * (math.Abs(d.X) + math.Abs(d.Y))
}
