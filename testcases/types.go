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

import "strings"

// TestCase defines a synthetic density map.
type TestCase struct {
	Name   string // lowercase a-z, digits and _ only
	Width  int    // grid width in cells
	Height int    // grid height in cells

	// Weight returns the non-negative weight of the cell whose centre is
	// at (x, y) in the unit square [0, 1]².  Row 0 has the smallest y.
	Weight func(x, y float64) float64
}

// Pixels evaluates the weight function at all cell centres and returns the
// weights in row-major order.
func (tc TestCase) Pixels() []float64 {
	pix := make([]float64, tc.Width*tc.Height)
	for iy := range tc.Height {
		y := (float64(iy) + 0.5) / float64(tc.Height)
		for ix := range tc.Width {
			x := (float64(ix) + 0.5) / float64(tc.Width)
			pix[iy*tc.Width+ix] = tc.Weight(x, y)
		}
	}
	return pix
}

// Lookup finds a test case by its full name "category_name".
func Lookup(fullName string) (TestCase, bool) {
	for category, cases := range All {
		name, ok := strings.CutPrefix(fullName, category+"_")
		if !ok {
			continue
		}
		for _, tc := range cases {
			if tc.Name == name {
				return tc, true
			}
		}
	}
	return TestCase{}, false
}

// constant returns a weight function with the same value everywhere.
func constant(w float64) func(x, y float64) float64 {
	return func(x, y float64) float64 { return w }
}
