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

package digest

import (
	"crypto/sha1"
	"fmt"
)

// Grid is an implementation of the hardware.CellRenderer interface. It
// generates a SHA-1 value of the cell data at the end of every sweep,
// chained with the previous sweep's value. It does not display the grid
// anywhere.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
type Grid struct {
	digest [sha1.Size]byte

	// cell data preceded by enough room for the previous sweep's digest
	// value
	cells []byte

	width  int
	height int

	sweepNum int
}

// NewGrid is the preferred method of initialisation for the digest Grid
// type. The dimensions must match the chip model the renderer is attached
// to.
func NewGrid(width, height int) *Grid {
	return &Grid{
		cells:  make([]byte, sha1.Size+width*height),
		width:  width,
		height: height,
	}
}

// Hash implements the Digest interface.
func (dig *Grid) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Grid) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.sweepNum = 0
}

// SweepNum returns the number of sweeps folded into the fingerprint so far.
func (dig *Grid) SweepNum() int {
	return dig.sweepNum
}

// SetCell implements the hardware.CellRenderer interface.
func (dig *Grid) SetCell(x, y int, v uint8, max uint8) error {
	i := sha1.Size + y*dig.width + x
	if i < len(dig.cells) {
		dig.cells[i] = v
	}
	return nil
}

// NewSweep implements the hardware.CellRenderer interface.
func (dig *Grid) NewSweep(iteration uint8) error {
	// chain fingerprints by copying the value of the last fingerprint to
	// the head of the cell data
	n := copy(dig.cells, dig.digest[:])
	if n != len(dig.digest) {
		return fmt.Errorf("digest: error chaining fingerprint")
	}
	dig.digest = sha1.Sum(dig.cells)
	dig.sweepNum++
	return nil
}

// EndRendering implements the hardware.CellRenderer interface.
func (dig *Grid) EndRendering() error {
	return nil
}
