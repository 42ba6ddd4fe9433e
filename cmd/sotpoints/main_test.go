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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/sot"
	"seehuhn.de/go/sot/emit"
)

// setFlags sets command line flags for the duration of a test.
func setFlags(t *testing.T, values map[string]string) {
	t.Helper()
	for name, value := range values {
		f := flag.Lookup(name)
		require.NotNil(t, f, name)
		old := f.Value.String()
		require.NoError(t, flag.Set(name, value))
		t.Cleanup(func() { flag.Set(name, old) })
	}
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	setFlags(t, map[string]string{
		"out":        dir,
		"points":     "40",
		"sets":       "2",
		"iterations": "10",
		"batch":      "4",
		"size":       "32",
		"seed":       "7",
		"scenario":   "spot_bright_centre",
		"archive":    "true",
	})
	require.NoError(t, run(context.Background()))

	base := filepath.Join(dir, "spot_bright_centre")
	for set := range 2 {
		for _, suffix := range []string{"txt", "csv", "pixel.png", "gauss.png"} {
			_, err := os.Stat(fmt.Sprintf("%s.%d.%s", base, set, suffix))
			assert.NoError(t, err)
		}
	}

	f, err := os.Open(base + ".msgpack.zst")
	require.NoError(t, err)
	defer f.Close()
	a, err := emit.ReadArchive(f)
	require.NoError(t, err)
	require.Len(t, a.Sets, 2)
	assert.Equal(t, uint64(7), a.Sets[0].Seed)
	assert.NotEqual(t, a.Sets[0].Seed, a.Sets[1].Seed)
}

func TestRunImage(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "ramp.png")
	img := image.NewGray(image.Rect(0, 0, 16, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 2)
	}
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	require.NoError(t, flag.CommandLine.Parse([]string{imgPath}))
	t.Cleanup(func() { flag.CommandLine.Parse(nil) })
	setFlags(t, map[string]string{
		"out":        dir,
		"points":     "30",
		"iterations": "5",
		"batch":      "2",
		"size":       "0",
		"seed":       "1",
		"invert":     "true",
	})
	require.NoError(t, run(context.Background()))

	_, err = os.Stat(filepath.Join(dir, "ramp.0.txt"))
	assert.NoError(t, err)
}

func TestLoadTargetErrors(t *testing.T) {
	setFlags(t, map[string]string{"target": "density"})
	_, _, err := loadTarget()
	assert.ErrorIs(t, err, sot.ErrConfig)

	setFlags(t, map[string]string{"target": "triangle"})
	_, _, err = loadTarget()
	assert.ErrorIs(t, err, sot.ErrConfig)

	setFlags(t, map[string]string{"target": "", "scenario": "no_such_case"})
	_, _, err = loadTarget()
	assert.ErrorIs(t, err, sot.ErrConfig)

	setFlags(t, map[string]string{"scenario": ""})
	target, name, err := loadTarget()
	require.NoError(t, err)
	assert.Equal(t, "square", name)
	assert.Equal(t, sot.SquareTarget{}, target)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitConfig, exitCode(sot.ErrConfig))
	assert.Equal(t, exitConfig, exitCode(context.Canceled))
	assert.Equal(t, exitNumerical, exitCode(fmt.Errorf("wrapped: %w", &sot.NumericalError{})))
	assert.Equal(t, exitIO, exitCode(&emit.IOError{Op: "create", Path: "x", Err: errors.New("boom")}))
}

func TestScenarioNames(t *testing.T) {
	names := scenarioNames()
	assert.Contains(t, names, "spot_bright_centre")
	assert.Contains(t, names, "uniform_flat")
}
