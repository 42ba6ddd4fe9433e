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
	"slices"

	"seehuhn.de/go/geom/vec"
)

// SlicedDistance estimates how far points are from the target
// distribution.  For every direction in dirs, the projections of the
// points are sorted and compared with the target's quantiles at the bucket
// centres (i+0.5)/N.  The result is the mean absolute difference, averaged
// over all directions: an estimate of the sliced Wasserstein-1 distance.
func SlicedDistance(points []vec.Vec2, target Target, dirs []vec.Vec2) (float64, error) {
	if len(points) == 0 || len(dirs) == 0 {
		return 0, nil
	}
	if target == nil {
		target = SquareTarget{}
	}

	proj := make([]float64, len(points))
	n := float64(len(points))
	var total float64
	for _, d := range dirs {
		for i, p := range points {
			proj[i] = dot(d, p)
		}
		slices.Sort(proj)

		q, err := target.Begin(d)
		if err != nil {
			return 0, err
		}
		var sum float64
		for i, x := range proj {
			sum += math.Abs(q.At((float64(i)+0.5)/n) - x)
		}
		q.Release()
		total += sum / n
	}
	return total / float64(len(dirs)), nil
}
