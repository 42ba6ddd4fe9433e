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
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sot"
)

// pdfPageSize is the edge length of PDF scatter plots, in PDF points.
const pdfPageSize = 432

// Writer stores the point sets of a run under a common file name prefix.
// For set number N, WriteSet creates
//
//	Base.N.txt           C array literal
//	Base.N.csv           convergence history
//	Base.N.pixel.png     one pixel per point   (if Size > 0)
//	Base.N.gauss.png     Gaussian splats       (if Size > 0)
//	Base.N.disc.png      anti-aliased discs    (if Size > 0 and DiscRadius > 0)
//	Base.N.pdf           vector scatter plot   (if PDF is set)
//	Base.N.convergence.png                     (if Plot is set)
//
// and appends the points to Base.dat, which is truncated by set 0.
// If Archive is set, Close writes all sets to Base.msgpack.zst.
type Writer struct {
	Base string

	Size       int     // edge length of raster images, in pixels
	Sigma      float64 // standard deviation of Gaussian splats, in pixels
	DiscRadius float64 // radius of discs, in pixels

	PDF     bool
	Plot    bool
	Archive bool

	// Description is stored in the archive.
	Description string

	archive Archive
}

// NewWriter returns a Writer with raster images of the given size and
// the default splat width.
func NewWriter(base string, size int) *Writer {
	return &Writer{
		Base:  base,
		Size:  size,
		Sigma: DefaultSigma,
	}
}

func (w *Writer) setPath(set int, suffix string) string {
	return fmt.Sprintf("%s.%d.%s", w.Base, set, suffix)
}

// WriteSet writes the files for point set number set.  The points are in
// relaxed coordinates (-1, 1).
func (w *Writer) WriteSet(set int, seed uint64, points []vec.Vec2, history []sot.Sample) error {
	if dir := filepath.Dir(w.Base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	err := writeFile(w.setPath(set, "txt"), createFlags, func(out io.Writer) error {
		return WriteText(out, points)
	})
	if err != nil {
		return err
	}

	datFlags := appendFlags
	if set == 0 {
		datFlags = createFlags
	}
	err = writeFile(w.Base+".dat", datFlags, func(out io.Writer) error {
		return WriteBinary(out, points)
	})
	if err != nil {
		return err
	}

	err = writeFile(w.setPath(set, "csv"), createFlags, func(out io.Writer) error {
		return WriteConvergence(out, history)
	})
	if err != nil {
		return err
	}

	if w.Size > 0 {
		type raster struct {
			suffix string
			render func() *image.Gray
		}
		rasters := []raster{
			{"pixel.png", func() *image.Gray { return Scatter(points, w.Size) }},
			{"gauss.png", func() *image.Gray { return Splat(points, w.Size, w.Sigma) }},
		}
		if w.DiscRadius > 0 {
			rasters = append(rasters, raster{"disc.png", func() *image.Gray {
				return Discs(points, w.Size, w.DiscRadius)
			}})
		}
		for _, r := range rasters {
			err := writeFile(w.setPath(set, r.suffix), createFlags, func(out io.Writer) error {
				return WritePNG(out, r.render())
			})
			if err != nil {
				return err
			}
		}
	}

	if w.PDF {
		radius := pdfPageSize / (4 * math.Sqrt(float64(max(len(points), 1))))
		if err := WritePDF(w.setPath(set, "pdf"), points, pdfPageSize, radius); err != nil {
			return err
		}
	}

	if w.Plot && len(history) > 0 {
		title := fmt.Sprintf("%s, set %d", filepath.Base(w.Base), set)
		if err := PlotConvergence(w.setPath(set, "convergence.png"), title, history); err != nil {
			return err
		}
	}

	if w.Archive {
		w.archive.Sets = append(w.archive.Sets, NewArchiveSet(set, seed, points, history))
	}

	sot.Logger().Info("point set written", "set", set, "base", w.Base, "points", len(points))
	return nil
}

// Close writes the run archive, if enabled.
func (w *Writer) Close() error {
	if !w.Archive || len(w.archive.Sets) == 0 {
		return nil
	}
	w.archive.Description = w.Description
	return writeFile(w.Base+".msgpack.zst", createFlags, func(out io.Writer) error {
		return WriteArchive(out, &w.archive)
	})
}
