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
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"seehuhn.de/go/sot"
)

// PlotConvergence draws the average movement per point against the
// iteration number and saves the chart to path.  The image format is
// chosen by the file name extension.
func PlotConvergence(path, title string, history []sot.Sample) error {
	pts := make(plotter.XYs, len(history))
	for i, s := range history {
		pts[i] = plotter.XY{X: float64(s.Iteration), Y: s.AvgMovement}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Avg. Movement"
	l, err := plotter.NewLine(pts)
	if err != nil {
		return &IOError{Op: "plot", Path: path, Err: err}
	}
	if err := plotutil.AddLines(p, l); err != nil {
		return &IOError{Op: "plot", Path: path, Err: err}
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return &IOError{Op: "plot", Path: path, Err: err}
	}
	return nil
}
