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

package testcases

import "math"

var uniformCases = []TestCase{
	{
		Name:   "single",
		Width:  1,
		Height: 1,
		Weight: constant(1),
	},
	{
		Name:   "flat",
		Width:  64,
		Height: 64,
		Weight: constant(1),
	},
	{
		Name:   "wide",
		Width:  48,
		Height: 12,
		Weight: constant(0.5),
	},
}

var spotCases = []TestCase{
	{
		// a single bright pixel (weight 0) in the centre of a 3x3 grid
		Name:   "bright_centre",
		Width:  3,
		Height: 3,
		Weight: func(x, y float64) float64 {
			if x > 1.0/3 && x < 2.0/3 && y > 1.0/3 && y < 2.0/3 {
				return 0
			}
			return 1
		},
	},
	{
		Name:   "dark_centre",
		Width:  3,
		Height: 3,
		Weight: func(x, y float64) float64 {
			if x > 1.0/3 && x < 2.0/3 && y > 1.0/3 && y < 2.0/3 {
				return 1
			}
			return 0
		},
	},
	{
		Name:   "bright_disc",
		Width:  64,
		Height: 64,
		Weight: func(x, y float64) float64 {
			if math.Hypot(x-0.5, y-0.5) < 0.25 {
				return 0
			}
			return 1
		},
	},
}

var gradientCases = []TestCase{
	{
		Name:   "linear_x",
		Width:  64,
		Height: 64,
		Weight: func(x, y float64) float64 { return x },
	},
	{
		Name:   "linear_y",
		Width:  16,
		Height: 128,
		Weight: func(x, y float64) float64 { return y },
	},
	{
		Name:   "radial",
		Width:  64,
		Height: 64,
		Weight: func(x, y float64) float64 {
			return max(0, 1-2*math.Hypot(x-0.5, y-0.5))
		},
	},
}

var shapeCases = []TestCase{
	{
		Name:   "dipole",
		Width:  128,
		Height: 128,
		Weight: func(x, y float64) float64 {
			return blob(x, y, 0.3, 0.5, 0.1) + blob(x, y, 0.7, 0.5, 0.1)
		},
	},
	{
		Name:   "ring",
		Width:  128,
		Height: 128,
		Weight: func(x, y float64) float64 {
			r := math.Hypot(x-0.5, y-0.5)
			if r > 0.25 && r < 0.4 {
				return 1
			}
			return 0
		},
	},
	{
		Name:   "checker",
		Width:  8,
		Height: 8,
		Weight: func(x, y float64) float64 {
			if (int(x*8)+int(y*8))%2 == 0 {
				return 1
			}
			return 0
		},
	},
}

// blob is an isotropic Gaussian bump centred at (cx, cy).
func blob(x, y, cx, cy, sigma float64) float64 {
	dx, dy := x-cx, y-cy
	return math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
}
