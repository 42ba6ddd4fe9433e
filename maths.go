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
	"math"

	"seehuhn.de/go/geom/vec"
)

// goldenRatioConjugate is 1/φ, which is also the fractional part of φ.
const goldenRatioConjugate = 0.6180339887498949

// Lerp interpolates linearly between a (t=0) and b (t=1).
func Lerp(a, b, t float64) float64 {
	return float64(a*(1-t)) + float64(b*t)
}

// LerpVec interpolates linearly between two vectors.
func LerpVec(a, b vec.Vec2, t float64) vec.Vec2 {
	return vec.Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// Clamp limits x to the range [lo, hi].
func Clamp[T cmp.Ordered](x, lo, hi T) T {
	if x <= lo {
		return lo
	}
	if x >= hi {
		return hi
	}
	return x
}

// Fract returns the fractional part x - ⌊x⌋, which lies in [0, 1).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Normalize returns v scaled to unit length.
// The second return value is false if v has zero length or is not finite.
func Normalize(v vec.Vec2) (vec.Vec2, bool) {
	l := length(v)
	if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return vec.Vec2{}, false
	}
	return vec.Vec2{X: v.X / l, Y: v.Y / l}, true
}

// The helpers below convert every product back to float64 before it is
// added, so that the compiler cannot fuse x*y+z into a single FMA
// instruction.  This keeps results bit-identical between architectures
// which fuse (arm64, ppc64le, s390x) and those which don't.

// dot returns the scalar product of a and b.
func dot(a, b vec.Vec2) float64 {
	return float64(a.X*b.X) + float64(a.Y*b.Y)
}

// length returns the Euclidean length of v.
func length(v vec.Vec2) float64 {
	return math.Sqrt(dot(v, v))
}

// Coefficients of the sin and cos kernels on [-π/4, π/4], from Cephes.
var (
	sinCoeff = [...]float64{
		1.58962301576546568060e-10,
		-2.50507477628578072866e-8,
		2.75573136213857245213e-6,
		-1.98412698295895385996e-4,
		8.33333333332211858878e-3,
		-1.66666666666666307295e-1,
	}
	cosCoeff = [...]float64{
		-1.13585365213876817300e-11,
		2.08757008419747316778e-9,
		-2.75573141792967388112e-7,
		2.48015872888517045348e-5,
		-1.38888888888730564116e-3,
		4.16666666666665929218e-2,
	}
)

// horner evaluates the polynomial with coefficients c (highest degree
// first) at z.
func horner(c []float64, z float64) float64 {
	p := c[0]
	for _, ci := range c[1:] {
		p = float64(p*z) + ci
	}
	return p
}

// sincos returns sin(x) and cos(x) for |x| < 2^29.  It follows the
// algorithm of math.Sincos, but rounds every intermediate product.
func sincos(x float64) (sin, cos float64) {
	const (
		pi4A = 7.85398125648498535156e-1 // π/4 split into three parts
		pi4B = 3.77489470793079817668e-8
		pi4C = 2.69515142907905952645e-15
	)
	if x == 0 {
		return x, 1
	}

	sinSign, cosSign := false, false
	if x < 0 {
		x = -x
		sinSign = true
	}

	j := uint64(x * (4 / math.Pi)) // octant
	y := float64(j)
	if j&1 == 1 {
		j++
		y++
	}
	j &= 7
	z := float64(x-float64(y*pi4A)) - float64(y*pi4B)
	z -= float64(y * pi4C)

	if j > 3 {
		j -= 4
		sinSign, cosSign = !sinSign, !cosSign
	}
	if j > 1 {
		cosSign = !cosSign
	}

	zz := z * z
	cos = 1.0 - float64(0.5*zz) + float64(float64(zz*zz)*horner(cosCoeff[:], zz))
	sin = z + float64(float64(z*zz)*horner(sinCoeff[:], zz))
	if j == 1 || j == 2 {
		sin, cos = cos, sin
	}
	if cosSign {
		cos = -cos
	}
	if sinSign {
		sin = -sin
	}
	return sin, cos
}

// isFinite reports whether both coordinates of v are finite.
func isFinite(v vec.Vec2) bool {
	return !math.IsInf(v.X, 0) && !math.IsNaN(v.X) &&
		!math.IsInf(v.Y, 0) && !math.IsNaN(v.Y)
}

// checkDirection verifies that d can be used as a projection direction.
func checkDirection(d vec.Vec2) error {
	if !isFinite(d) || (d.X == 0 && d.Y == 0) {
		return errDirection(d)
	}
	return nil
}
