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

package hardware

import (
	"fmt"
	"strings"

	"github.com/hearth-emu/hearth/hardware/stencil"
)

// Model describes one member of the heat solver chip family. The members
// differ in grid size, cell precision, coefficient precision, update rule
// and buffering discipline but are otherwise the same machine.
type Model struct {
	ID string

	Width  int
	Height int

	// width of a temperature cell in bits
	TempBits uint

	// width of the diffusion coefficient in bits, and the fixed-point scale
	// it is interpreted with. the coefficient represents a fraction in the
	// range [0,1)
	AlphaBits  uint
	AlphaShift uint

	// power-on coefficient. mid-range for every catalogued model
	AlphaDefault uint8

	// the update rule the model commits to
	Rule stencil.Rule

	// true for the Jacobi (double-buffered) models. false for the
	// Gauss-Seidel like (in-place) models
	DoubleBuffered bool
}

func (mod Model) String() string {
	b := "in-place"
	if mod.DoubleBuffered {
		b = "double-buffered"
	}
	return fmt.Sprintf("%s: %dx%d, %d bit cells, %s rule, %s", mod.ID, mod.Width, mod.Height, mod.TempBits, mod.Rule, b)
}

// NumCells returns the number of cells in the model's grid.
func (mod Model) NumCells() int {
	return mod.Width * mod.Height
}

// The catalogued chip models.
var (
	// HS4 is the smallest member. Blend rule, three bit cells, in-place.
	HS4 = Model{
		ID:           "HS4",
		Width:        4,
		Height:       4,
		TempBits:     3,
		AlphaBits:    2,
		AlphaShift:   2,
		AlphaDefault: 2,
		Rule:         stencil.Blend,
	}

	// HS6 is the original 6x6 tapeout and the default model.
	HS6 = Model{
		ID:           "HS6",
		Width:        6,
		Height:       6,
		TempBits:     4,
		AlphaBits:    3,
		AlphaShift:   3,
		AlphaDefault: 4,
		Rule:         stencil.Laplacian,
	}

	// HS16 scales the HS6 design to a 16x16 grid with six bit cells.
	HS16 = Model{
		ID:           "HS16",
		Width:        16,
		Height:       16,
		TempBits:     6,
		AlphaBits:    3,
		AlphaShift:   3,
		AlphaDefault: 4,
		Rule:         stencil.Laplacian,
	}

	// HS32 is the large double-buffered member: 32x32, eight bit cells and
	// an eight bit coefficient scaled by 1/1024.
	HS32 = Model{
		ID:             "HS32",
		Width:          32,
		Height:         32,
		TempBits:       8,
		AlphaBits:      8,
		AlphaShift:     10,
		AlphaDefault:   128,
		Rule:           stencil.Laplacian,
		DoubleBuffered: true,
	}
)

// ModelList is a list of all the catalogued models.
var ModelList = []Model{HS4, HS6, HS16, HS32}

// GetModel returns the catalogued model with the given ID. Matching is case
// insensitive. The second return value is false if the ID is not recognised.
func GetModel(id string) (Model, bool) {
	for _, mod := range ModelList {
		if strings.EqualFold(mod.ID, id) {
			return mod, true
		}
	}
	return Model{}, false
}
