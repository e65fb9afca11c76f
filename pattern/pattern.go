// This file is part of Hearth.
//
// Hearth is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Hearth is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Hearth.  If not, see <https://www.gnu.org/licenses/>.

// Package pattern loads an initial temperature field from disk. A pattern
// file is plain text: one row of cells per line, each cell a single hex
// digit scaled to the chip's cell width on load. Blank lines and lines
// beginning with # are ignored. For example, a warm plume on a 6x6 grid:
//
//	000000
//	001100
//	01ff10
//	01ff10
//	001100
//	000000
//
// The pattern is poked into the chip through the ordinary WRITE protocol,
// one cell per tick, the same way an external controller would load it.
package pattern

import (
	"crypto/sha1"
	"fmt"
	"os"
	"strings"

	"github.com/hearth-emu/hearth/curated"
	"github.com/hearth-emu/hearth/hardware"
	"github.com/hearth-emu/hearth/hardware/control"
	"github.com/hearth-emu/hearth/logger"
)

// sentinal errors returned by the pattern package.
const (
	// the file could not be read
	FileError = "pattern: %v"

	// the file does not fit the chip model
	ShapeError = "pattern: %v: wrong shape for %s (want %dx%d)"
)

// Pattern is an initial temperature field read from a pattern file.
type Pattern struct {
	Filename string

	// the hash of the file as loaded. useful for logging and regression
	// records
	Hash string

	// cell values in row major order, one hex digit's worth each. scaling
	// to the chip's cell width happens at Poke() time
	Cells []uint8

	Width  int
	Height int
}

// Load a pattern from a file.
func Load(filename string) (*Pattern, error) {
	d, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}

	pat := &Pattern{
		Filename: filename,
		Hash:     fmt.Sprintf("%x", sha1.Sum(d)),
	}

	for _, line := range strings.Split(string(d), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if pat.Width == 0 {
			pat.Width = len(line)
		} else if len(line) != pat.Width {
			return nil, curated.Errorf(FileError, fmt.Sprintf("%s: ragged row %d", filename, pat.Height))
		}

		for _, c := range line {
			var v uint8
			switch {
			case c >= '0' && c <= '9':
				v = uint8(c - '0')
			case c >= 'a' && c <= 'f':
				v = uint8(c-'a') + 10
			case c >= 'A' && c <= 'F':
				v = uint8(c-'A') + 10
			default:
				return nil, curated.Errorf(FileError, fmt.Sprintf("%s: bad cell %q", filename, c))
			}
			pat.Cells = append(pat.Cells, v)
		}
		pat.Height++
	}

	if pat.Width == 0 {
		return nil, curated.Errorf(FileError, fmt.Sprintf("%s: empty pattern", filename))
	}

	logger.Logf("pattern", "%s (%dx%d) hash=%s", filename, pat.Width, pat.Height, pat.Hash)

	return pat, nil
}

// Poke the pattern into a chip through the WRITE protocol, one cell per
// tick. The pattern's hex digits are scaled to the chip's cell width: a
// pattern 'f' is the hottest cell any model can represent.
//
// The pattern must be the same shape as the chip's grid.
func (pat *Pattern) Poke(ch *hardware.Chip) error {
	if pat.Width != ch.Model.Width || pat.Height != ch.Model.Height {
		return curated.Errorf(ShapeError, pat.Filename, ch.Model.ID, ch.Model.Width, ch.Model.Height)
	}

	for i, v := range pat.Cells {
		// scale the 4 bit pattern digit to the model's cell width
		if ch.Model.TempBits > 4 {
			v <<= ch.Model.TempBits - 4
		} else {
			v >>= 4 - ch.Model.TempBits
		}
		ch.Step(ch.Codec.Pack(control.Write, uint16(i)), v)
	}

	return nil
}
