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
	"errors"
	"fmt"

	"seehuhn.de/go/geom/vec"
)

var (
	// ErrConfig indicates an invalid run configuration.
	ErrConfig = errors.New("sot: invalid configuration")

	// ErrDensity indicates a malformed density map.
	ErrDensity = errors.New("sot: invalid density map")

	// ErrZeroDensity indicates a density map whose weights are all zero.
	// Such a map has no normalizable CDF.
	ErrZeroDensity = errors.New("sot: density map has zero total weight")

	// ErrDegenerateDirection indicates a zero or non-finite projection
	// direction.
	ErrDegenerateDirection = errors.New("sot: degenerate projection direction")

	// ErrMalformedCDF indicates a CDF table which is not monotonic or not
	// normalized to [0, 1].
	ErrMalformedCDF = errors.New("sot: malformed CDF table")

	// ErrDone is returned when a Relaxer is asked to iterate after all
	// configured iterations have been performed.
	ErrDone = errors.New("sot: all iterations done")

	// ErrFinalized is returned when a finalized Relaxer is asked to iterate.
	ErrFinalized = errors.New("sot: relaxation already finalized")
)

func errDirection(d vec.Vec2) error {
	return fmt.Errorf("%w: (%g, %g)", ErrDegenerateDirection, d.X, d.Y)
}

// NumericalError reports a non-finite value produced during relaxation.
// This always indicates a defect in the target distribution (for example a
// broken CDF table), never a legitimate outcome.
type NumericalError struct {
	Iteration int      // iteration in which the value appeared
	Batch     int      // batch index, or -1 for the combined update
	Point     int      // index of the affected point
	Value     vec.Vec2 // the offending value
	What      string   // which quantity was not finite
}

func (e *NumericalError) Error() string {
	if e.Batch < 0 {
		return fmt.Sprintf("sot: iteration %d: point %d: non-finite %s (%g, %g)",
			e.Iteration, e.Point, e.What, e.Value.X, e.Value.Y)
	}
	return fmt.Sprintf("sot: iteration %d, batch %d: point %d: non-finite %s (%g, %g)",
		e.Iteration, e.Batch, e.Point, e.What, e.Value.X, e.Value.Y)
}
