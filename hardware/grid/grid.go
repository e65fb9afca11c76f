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

// Package grid implements the temperature field of the heat solver chips. A
// grid is a linear array of narrow unsigned values addressed in row major
// order, the same memory layout as the single-port cell RAM in the hardware.
//
// A grid can be created with an alternate buffer for the double-buffered
// (Jacobi) chip variants. In that arrangement all reads come from the live
// buffer, Commit() writes go to the alternate buffer, and Swap() exchanges
// the two at the end of a sweep. For the single-buffered (Gauss-Seidel like)
// variants Commit() writes directly to the live buffer.
//
// Values are stored as given. Saturation to the chip's temperature width is
// the caller's responsibility, as it is in the hardware where the saturation
// logic sits in front of the RAM write port.
package grid

import (
	"fmt"
	"strings"
)

// Grid is the temperature field. One or two buffers of Width*Height cells.
type Grid struct {
	Width  int
	Height int

	// the live buffer. all reads come from here
	cells []uint8

	// the alternate buffer for double-buffered variants. nil for
	// single-buffered variants
	shadow []uint8
}

// NewGrid is the preferred method of initialisation for the Grid type.
func NewGrid(width, height int, doubleBuffered bool) *Grid {
	gr := &Grid{
		Width:  width,
		Height: height,
		cells:  make([]uint8, width*height),
	}
	if doubleBuffered {
		gr.shadow = make([]uint8, width*height)
	}
	return gr
}

// NumCells returns the number of cells in the grid.
func (gr *Grid) NumCells() int {
	return gr.Width * gr.Height
}

// DoubleBuffered returns true if the grid carries an alternate buffer.
func (gr *Grid) DoubleBuffered() bool {
	return gr.shadow != nil
}

// Get returns the value of the cell at the (x,y) coordinate. Reads always
// come from the live buffer.
func (gr *Grid) Get(x, y int) uint8 {
	return gr.cells[y*gr.Width+x]
}

// GetIdx returns the value of the cell at the linear index.
func (gr *Grid) GetIdx(idx int) uint8 {
	return gr.cells[idx]
}

// Set writes a value to the live buffer at the (x,y) coordinate. The value
// must be pre-clamped by the caller.
func (gr *Grid) Set(x, y int, v uint8) {
	gr.cells[y*gr.Width+x] = v
}

// SetIdx writes a value to the live buffer at the linear index. The value
// must be pre-clamped by the caller.
func (gr *Grid) SetIdx(idx int, v uint8) {
	gr.cells[idx] = v
}

// Commit writes a computed cell value. For single-buffered grids the write
// goes to the live buffer and is immediately visible to later cells in the
// same sweep. For double-buffered grids the write goes to the alternate
// buffer and only becomes visible after Swap().
func (gr *Grid) Commit(idx int, v uint8) {
	if gr.shadow != nil {
		gr.shadow[idx] = v
		return
	}
	gr.cells[idx] = v
}

// Swap exchanges the live and alternate buffers. A no-op for single-buffered
// grids.
func (gr *Grid) Swap() {
	if gr.shadow == nil {
		return
	}
	gr.cells, gr.shadow = gr.shadow, gr.cells
}

// Reset returns every cell in every buffer to zero.
func (gr *Grid) Reset() {
	for i := range gr.cells {
		gr.cells[i] = 0
	}
	for i := range gr.shadow {
		gr.shadow[i] = 0
	}
}

// Fill sets every cell in the live buffer to the same value. The value must
// be pre-clamped by the caller.
func (gr *Grid) Fill(v uint8) {
	for i := range gr.cells {
		gr.cells[i] = v
	}
}

func (gr *Grid) String() string {
	s := strings.Builder{}
	for y := 0; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			s.WriteString(fmt.Sprintf("%3d", gr.Get(x, y)))
		}
		s.WriteString("\n")
	}
	return s.String()
}
