// Command export writes every synthetic density map to an 8-bit gray PNG,
// suitable as input for sotpoints.  Dark pixels mark dense regions.
// Run from the module root directory.
package main

import (
	"image"
	"image/color"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/sot/testcases"
)

const outDir = "testdata/densities"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := writePNG(filepath.Join(outDir, name+".png"), tc); err != nil {
				panic(err)
			}
		}
	}
}

func writePNG(fname string, tc testcases.TestCase) (err error) {
	pix := tc.Pixels()
	peak := slices.Max(pix)
	if peak == 0 {
		peak = 1
	}

	img := image.NewGray(image.Rect(0, 0, tc.Width, tc.Height))
	for y := range tc.Height {
		for x := range tc.Width {
			w := pix[y*tc.Width+x] / peak
			img.SetGray(x, y, color.Gray{Y: uint8(255 * (1 - w))})
		}
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
