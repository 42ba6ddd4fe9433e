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

// Package sot generates two-dimensional point sets by sliced optimal
// transport.
//
// Starting from uniformly random points in the square (-1, 1)², a [Relaxer]
// repeatedly projects the points onto random directions, sorts the
// projections, and moves every point towards the quantile of the target
// distribution that its rank corresponds to.  Over many iterations the
// one-dimensional marginals of the point set along all directions approach
// those of the target.  Targets are either the uniform square
// ([SquareTarget]) or an arbitrary [DensityMap] ([DensityTarget]).
//
// Output of the resulting point sets is handled by package
// seehuhn.de/go/sot/emit.
package sot
