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

package grid_test

import (
	"testing"

	"github.com/hearth-emu/hearth/hardware/grid"
	"github.com/hearth-emu/hearth/test"
)

func TestRowMajorAddressing(t *testing.T) {
	gr := grid.NewGrid(6, 6, false)

	gr.Set(2, 3, 9)
	test.Equate(t, gr.GetIdx(3*6+2), 9)

	gr.SetIdx(14, 5)
	test.Equate(t, gr.Get(2, 2), 5)
}

func TestSingleBufferCommit(t *testing.T) {
	gr := grid.NewGrid(4, 4, false)

	// commits to a single-buffered grid are visible immediately
	gr.Commit(5, 7)
	test.Equate(t, gr.GetIdx(5), 7)
	test.Equate(t, gr.DoubleBuffered(), false)

	// swap is a no-op
	gr.Swap()
	test.Equate(t, gr.GetIdx(5), 7)
}

func TestDoubleBufferCommit(t *testing.T) {
	gr := grid.NewGrid(4, 4, true)
	test.Equate(t, gr.DoubleBuffered(), true)

	gr.SetIdx(5, 3)

	// commits go to the alternate buffer and are not visible until Swap()
	gr.Commit(5, 9)
	test.Equate(t, gr.GetIdx(5), 3)

	gr.Swap()
	test.Equate(t, gr.GetIdx(5), 9)
}

func TestReset(t *testing.T) {
	gr := grid.NewGrid(4, 4, true)
	gr.Fill(8)
	gr.Commit(0, 8)
	gr.Reset()

	for i := 0; i < gr.NumCells(); i++ {
		test.Equate(t, gr.GetIdx(i), 0)
	}
	gr.Swap()
	for i := 0; i < gr.NumCells(); i++ {
		test.Equate(t, gr.GetIdx(i), 0)
	}
}
