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
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sot"
)

const archiveVersion = 1

// ErrArchiveVersion is returned by [ReadArchive] for archives written by an
// incompatible version of this package.
var ErrArchiveVersion = errors.New("emit: unsupported archive version")

// Archive collects all point sets of a run, in relaxed coordinates, so
// that a run can be inspected or re-rendered without repeating it.
type Archive struct {
	Version     int          `msgpack:"version"`
	Description string       `msgpack:"description"`
	Sets        []ArchiveSet `msgpack:"sets"`
}

// ArchiveSet is one point set of an [Archive].
type ArchiveSet struct {
	Index   int          `msgpack:"index"`
	Seed    uint64       `msgpack:"seed"`
	Points  [][2]float64 `msgpack:"points"`
	History []sot.Sample `msgpack:"history"`
}

// NewArchiveSet copies points into an ArchiveSet.
func NewArchiveSet(index int, seed uint64, points []vec.Vec2, history []sot.Sample) ArchiveSet {
	pp := make([][2]float64, len(points))
	for i, p := range points {
		pp[i] = [2]float64{p.X, p.Y}
	}
	return ArchiveSet{
		Index:   index,
		Seed:    seed,
		Points:  pp,
		History: history,
	}
}

// Vec returns the points of the set.
func (s *ArchiveSet) Vec() []vec.Vec2 {
	res := make([]vec.Vec2, len(s.Points))
	for i, p := range s.Points {
		res[i] = vec.Vec2{X: p[0], Y: p[1]}
	}
	return res
}

// WriteArchive encodes a as zstd-compressed MessagePack.
func WriteArchive(w io.Writer, a *Archive) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}

	a.Version = archiveVersion
	if err := msgpack.NewEncoder(zw).Encode(a); err != nil {
		zw.Close()
		return err
	} else if err := zw.Close(); err != nil {
		return err
	}
	return nil
}

// ReadArchive decodes an archive written by [WriteArchive].
func ReadArchive(r io.Reader) (*Archive, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	a := &Archive{}
	if err := msgpack.NewDecoder(zr).Decode(a); err != nil {
		return nil, err
	}
	if a.Version != archiveVersion {
		return nil, fmt.Errorf("%w: %d", ErrArchiveVersion, a.Version)
	}
	return a, nil
}
