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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sot"
)

// WriteText writes points as a C array literal:
//
//	float points[2][2] =
//	{
//	    { 0.250000f, 0.750000f },
//	    { 0.500000f, 0.125000f },
//	};
func WriteText(w io.Writer, points []vec.Vec2) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "float points[%d][2] =\n{\n", len(points))
	for _, p := range points {
		fmt.Fprintf(bw, "    { %ff, %ff },\n", float32(ToUnit(p.X)), float32(ToUnit(p.Y)))
	}
	fmt.Fprint(bw, "};\n")
	return bw.Flush()
}

// WriteBinary writes every point as four little-endian float32 values
// (x, y, 0, 1), suitable for uploading as a four-component texture.
func WriteBinary(w io.Writer, points []vec.Vec2) error {
	buf := make([]float32, 0, 4*len(points))
	for _, p := range points {
		buf = append(buf, float32(ToUnit(p.X)), float32(ToUnit(p.Y)), 0, 1)
	}
	return binary.Write(w, binary.LittleEndian, buf)
}

// WriteConvergence writes the convergence history as CSV, with a header
// line and every field quoted.
func WriteConvergence(w io.Writer, history []sot.Sample) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "\"Iteration\",\"Avg. Movement\"\n")
	for _, s := range history {
		fmt.Fprintf(bw, "\"%d\",\"%f\"\n", s.Iteration, float32(s.AvgMovement))
	}
	return bw.Flush()
}
