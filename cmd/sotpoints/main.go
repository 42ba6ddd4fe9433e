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

// Command sotpoints generates point sets by sliced optimal transport.
//
// Usage:
//
//	sotpoints [flags] [image]
//
// If an image is given, points are distributed with a density which is
// high in dark image areas (or in light areas, with -invert).  Without an
// image, points are distributed uniformly over the unit square, unless a
// built-in density is selected with -scenario.
//
// All output files are written to the directory given by -out and are
// named after the image file, the scenario, or "square".
package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"maps"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/sot"
	"seehuhn.de/go/sot/emit"
	"seehuhn.de/go/sot/rand"
	"seehuhn.de/go/sot/testcases"
)

var (
	numPoints  = flag.Int("points", 1000, "number of points per set")
	numSets    = flag.Int("sets", 1, "number of point sets to generate")
	iterations = flag.Int("iterations", 1000, "number of relaxation steps")
	batchSize  = flag.Int("batch", 64, "number of directions averaged per step")
	imageSize  = flag.Int("size", 256, "edge length of preview images in pixels, 0 disables them")
	seedFlag   = flag.Uint64("seed", 0, "seed of the first set (default random)")
	invert     = flag.Bool("invert", false, "place more points in light image areas")
	stratify   = flag.Bool("stratify", false, "jitter target quantiles within their buckets")
	directions = flag.String("directions", "gauss", "direction sampler: gauss or golden")
	targetKind = flag.String("target", "", "target distribution: density or square (default density if an image or scenario is given)")
	cdfSamples = flag.Int("samples", sot.DefaultCDFSamples, "resolution of projected density CDFs")
	numWorkers = flag.Int("workers", 0, "number of concurrent batches, 0 means one per CPU")
	sigma      = flag.Float64("sigma", emit.DefaultSigma, "standard deviation of Gaussian splats in pixels")
	discRadius = flag.Float64("discs", 0, "disc radius in pixels for the disc preview, 0 disables it")
	maxRes     = flag.Int("maxres", 512, "scale down density images larger than this")
	scenario   = flag.String("scenario", "", "use a built-in density map, e.g. spot_bright_centre")
	outDir     = flag.String("out", "out", "output directory")
	writePDF   = flag.Bool("pdf", false, "write a PDF scatter plot for every set")
	writePlot  = flag.Bool("plot", false, "write a convergence chart for every set")
	archive    = flag.Bool("archive", false, "write all sets to a compressed archive")
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn or error")
)

// Exit codes.
const (
	exitConfig    = 1
	exitNumerical = 2
	exitIO        = 3
)

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "usage: %s [flags] [image]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(out, "\nscenarios: %s\n", strings.Join(scenarioNames(), ", "))
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(exitConfig)
	}

	lg, err := newLogger(*outDir, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sotpoints:", err)
		os.Exit(exitConfig)
	}
	logArgs(lg)
	sot.SetLogger(lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx)
	stop()
	if err != nil {
		lg.Error("run failed", "error", err)
		fmt.Fprintln(os.Stderr, "\nsotpoints:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var numErr *sot.NumericalError
	var ioErr *emit.IOError
	switch {
	case errors.As(err, &numErr):
		return exitNumerical
	case errors.As(err, &ioErr):
		return exitIO
	default:
		return exitConfig
	}
}

func run(ctx context.Context) error {
	dirMode, err := sot.ParseDirectionMode(*directions)
	if err != nil {
		return err
	}
	if *numSets < 1 {
		return fmt.Errorf("%w: %d sets", sot.ErrConfig, *numSets)
	}

	target, name, err := loadTarget()
	if err != nil {
		return err
	}

	seed := *seedFlag
	if !flagSet("seed") {
		var buf [8]byte
		crand.Read(buf[:])
		seed = binary.LittleEndian.Uint64(buf[:])
	}

	w := emit.NewWriter(filepath.Join(*outDir, name), *imageSize)
	w.Sigma = *sigma
	w.DiscRadius = *discRadius
	w.PDF = *writePDF
	w.Plot = *writePlot
	w.Archive = *archive
	w.Description = strings.Join(os.Args[1:], " ")

	checkDirs := sot.EvenDirections(64)
	checkTarget := target
	if dt, ok := target.(*sot.DensityTarget); ok {
		checkTarget = sot.NewCachedTarget(dt, len(checkDirs))
	}
	for set := range *numSets {
		cfg := sot.Config{
			Points:     *numPoints,
			Iterations: *iterations,
			BatchSize:  *batchSize,
			Seed:       seed,
			Stratify:   *stratify,
			Directions: dirMode,
			Target:     target,
			Workers:    *numWorkers,
		}
		r, err := sot.New(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("%s.%d\n", w.Base, set)
		start := time.Now()
		err = r.Run(ctx, func(p sot.Progress) bool {
			if p.Sampled {
				fmt.Printf("\r[%d%%] %f", p.Percent, p.AvgMovement)
			}
			return true
		})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Printf("\n%s\n\n", elapsed.Round(time.Millisecond))

		points := r.Finalize()
		dist, err := sot.SlicedDistance(points, checkTarget, checkDirs)
		if err != nil {
			return err
		}
		sot.Logger().Info("set finished",
			"set", set,
			"seed", seed,
			"elapsed", elapsed,
			"slicedDistance", dist)

		if err := w.WriteSet(set, seed, points, r.History()); err != nil {
			return err
		}
		seed = rand.Next(seed)
	}
	return w.Close()
}

// loadTarget selects the target distribution from the command line and
// returns it together with the base name for the output files.
func loadTarget() (sot.Target, string, error) {
	imagePath := flag.Arg(0)
	if imagePath != "" && *scenario != "" {
		return nil, "", fmt.Errorf("%w: both an image and a scenario given", sot.ErrConfig)
	}

	kind := *targetKind
	if kind == "" {
		kind = "square"
		if imagePath != "" || *scenario != "" {
			kind = "density"
		}
	}

	switch kind {
	case "square":
		return sot.SquareTarget{}, "square", nil
	case "density":
		// handled below
	default:
		return nil, "", fmt.Errorf("%w: unknown target %q", sot.ErrConfig, kind)
	}

	var m *sot.DensityMap
	var name string
	var err error
	switch {
	case imagePath != "":
		m, err = loadImage(imagePath)
		name = strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	case *scenario != "":
		m, err = loadScenario(*scenario)
		name = *scenario
	default:
		err = fmt.Errorf("%w: density target needs an image or a scenario", sot.ErrConfig)
	}
	if err != nil {
		return nil, "", err
	}

	sot.Logger().Info("density loaded",
		"name", name,
		"width", m.Width,
		"height", m.Height,
		"total", m.Total())

	target, err := sot.NewDensityTarget(m, *cdfSamples)
	if err != nil {
		return nil, "", err
	}
	return target, name, nil
}

func loadImage(path string) (*sot.DensityMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sot.Logger().Info("image decoded",
		"path", path,
		"format", format,
		"size", img.Bounds().Size().String())

	m, err := sot.DensityFromImage(img, *invert, *maxRes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func loadScenario(name string) (*sot.DensityMap, error) {
	tc, ok := testcases.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown scenario %q", sot.ErrConfig, name)
	}
	return sot.NewDensityMap(tc.Width, tc.Height, tc.Pixels())
}

func scenarioNames() []string {
	var names []string
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			names = append(names, category+"_"+tc.Name)
		}
	}
	return names
}

// flagSet reports whether the named flag was given on the command line.
func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
