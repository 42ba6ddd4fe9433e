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

// Package emit writes relaxed point sets to disk.
//
// Points are stored in the coordinates of the unit square: a relaxed
// coordinate x in (-1, 1) is written as x/2+1/2, clamped to [0, 1].
// The supported outputs are a C array literal, a stream of float32
// quadruples, a convergence table in CSV form, raster previews (single
// pixels, Gaussian splats and anti-aliased discs), a vector PDF, a
// convergence chart and a compressed archive of a whole run.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sot"
)

// IOError reports a failure to write or read an output file.
type IOError struct {
	Op   string // the operation which failed, e.g. "create"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("emit: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ToUnit maps a coordinate from (-1, 1) to [0, 1].
func ToUnit(x float64) float64 {
	return sot.Clamp(x*0.5+0.5, 0, 1)
}

// UnitPoints returns a copy of points with both coordinates mapped to
// [0, 1] by [ToUnit].
func UnitPoints(points []vec.Vec2) []vec.Vec2 {
	res := make([]vec.Vec2, len(points))
	for i, p := range points {
		res[i] = vec.Vec2{X: ToUnit(p.X), Y: ToUnit(p.Y)}
	}
	return res
}

// writeFile opens path with the given flags and passes a buffered writer
// for the file to write.  All errors are reported as *IOError.
func writeFile(path string, flag int, write func(w io.Writer) error) (err error) {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

const (
	createFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	appendFlags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
)
