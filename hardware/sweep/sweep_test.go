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

package sweep_test

import (
	"testing"

	"github.com/hearth-emu/hearth/hardware/boundary"
	"github.com/hearth-emu/hearth/hardware/control"
	"github.com/hearth-emu/hearth/hardware/grid"
	"github.com/hearth-emu/hearth/hardware/stencil"
	"github.com/hearth-emu/hearth/hardware/sweep"
	"github.com/hearth-emu/hearth/test"
)

// a 4x4 4-bit laplacian rig, the smallest useful test chip.
func newRig(doubleBuffered bool) (*grid.Grid, *control.Registers, *sweep.Scheduler) {
	gr := grid.NewGrid(4, 4, doubleBuffered)
	eng := stencil.Engine{Rule: stencil.Laplacian, AlphaShift: 3, TempBits: 4}
	reg := &control.Registers{
		AlphaBits:    3,
		TempBits:     4,
		AlphaDefault: 4,
		NumCells:     gr.NumCells(),
	}
	reg.Reset()
	sch := sweep.NewScheduler(gr, eng, reg)
	return gr, reg, sch
}

func sweepOnce(sch *sweep.Scheduler, numCells int) {
	for i := 0; i < numCells; i++ {
		sch.Step()
	}
}

func TestSweepCompletion(t *testing.T) {
	gr, _, sch := newRig(false)

	// after exactly width*height ticks from cursor zero the iteration count
	// increments by exactly one and the cursor returns to zero
	sweepOnce(sch, gr.NumCells())
	test.Equate(t, sch.Cursor, 0)
	test.Equate(t, sch.Iteration, 1)
	test.Equate(t, sch.Running, true)
}

func TestSteadyState(t *testing.T) {
	gr, reg, sch := newRig(false)

	// a uniform grid with no boundary override is a fixed point of the
	// update law. zero laplacian everywhere means no drift
	reg.BoundaryType = boundary.Neumann
	reg.Alpha = 7
	gr.Fill(6)

	for s := 0; s < 5; s++ {
		sweepOnce(sch, gr.NumCells())
	}
	for i := 0; i < gr.NumCells(); i++ {
		test.Equate(t, gr.GetIdx(i), 6)
	}
}

func TestDirichletPinning(t *testing.T) {
	gr, reg, sch := newRig(false)

	reg.BoundaryTemp = 5
	gr.SetIdx(5, 15)

	sweepOnce(sch, gr.NumCells())
	sweepOnce(sch, gr.NumCells())

	// every edge cell is pinned to the boundary temperature exactly
	for y := 0; y < gr.Height; y++ {
		for x := 0; x < gr.Width; x++ {
			if x == 0 || y == 0 || x == gr.Width-1 || y == gr.Height-1 {
				test.Equate(t, gr.Get(x, y), 5)
			}
		}
	}
}

func TestInPlaceOrdering(t *testing.T) {
	gr, reg, sch := newRig(false)

	// in a single-buffered sweep, later cells see this sweep's values for
	// already-visited cells. cell (2,1) reads the already-cooled (1,1)
	reg.BoundaryType = boundary.Neumann
	reg.Alpha = 7
	gr.Set(1, 1, 8)

	sweepOnce(sch, gr.NumCells())
	test.Equate(t, gr.Get(2, 1), 0)
}

func TestDoubleBufferOrdering(t *testing.T) {
	gr, reg, sch := newRig(true)

	// same arrangement as TestInPlaceOrdering but double-buffered: every
	// cell reads the previous sweep's values, so (2,1) sees the still-hot
	// (1,1) and warms
	reg.BoundaryType = boundary.Neumann
	reg.Alpha = 7
	gr.Set(1, 1, 8)

	sweepOnce(sch, gr.NumCells())
	test.Equate(t, gr.Get(2, 1), 1)
}

func TestPeriodicWrap(t *testing.T) {
	gr, reg, sch := newRig(true)

	// heat at the left edge reaches the right edge through the periodic
	// boundary. (3,1)'s right neighbour wraps to (0,1)
	reg.BoundaryType = boundary.Periodic
	reg.Alpha = 7
	gr.Set(0, 1, 8)

	sweepOnce(sch, gr.NumCells())
	test.Equate(t, gr.Get(3, 1), 1)
}

func TestMonotoneSmoothing(t *testing.T) {
	gr, reg, sch := newRig(false)

	// one hot interior cell amongst cold cells: after one sweep the hot
	// cell has not risen and no neighbour exceeds it
	const hot = 12
	reg.Alpha = 4
	gr.Set(1, 1, hot)

	sweepOnce(sch, gr.NumCells())

	if gr.Get(1, 1) > hot {
		t.Errorf("hot cell rose above its starting value: %d", gr.Get(1, 1))
	}
	for _, v := range []uint8{gr.Get(0, 1), gr.Get(2, 1), gr.Get(1, 0), gr.Get(1, 2)} {
		if v > hot {
			t.Errorf("neighbour exceeds the hot cell's starting value: %d", v)
		}
	}
}

func TestHeatSource(t *testing.T) {
	gr, reg, sch := newRig(false)

	reg.SourceAddr = 5
	reg.SourceValue = 15
	reg.SourceEnabled = true

	for s := 0; s < 3; s++ {
		sweepOnce(sch, gr.NumCells())
	}

	// the source cell is forced on every visit
	test.Equate(t, gr.GetIdx(5), 15)

	// the source takes precedence over the boundary pin
	reg.SourceAddr = 0
	sweepOnce(sch, gr.NumCells())
	test.Equate(t, gr.GetIdx(0), 15)
}

func TestIdlePreservesProgress(t *testing.T) {
	gr, _, sch := newRig(false)

	// moving away from RUN mid-sweep freezes the cursor and iteration so
	// the sweep can be resumed
	for i := 0; i < 10; i++ {
		sch.Step()
	}
	sch.Idle()
	test.Equate(t, sch.Running, false)
	test.Equate(t, sch.Cursor, 10)
	test.Equate(t, sch.Iteration, 0)

	for i := 0; i < gr.NumCells()-10; i++ {
		sch.Step()
	}
	test.Equate(t, sch.Cursor, 0)
	test.Equate(t, sch.Iteration, 1)
}

func TestIterationWrap(t *testing.T) {
	gr, reg, sch := newRig(false)
	reg.BoundaryType = boundary.Neumann

	// the iteration counter is 8 bits wide and wraps at its width
	for s := 0; s < 256; s++ {
		sweepOnce(sch, gr.NumCells())
	}
	test.Equate(t, sch.Iteration, 0)
}

func TestCallbacks(t *testing.T) {
	gr, _, sch := newRig(false)

	commits := 0
	sweeps := 0
	sch.OnCommit = func(x, y int, v uint8) { commits++ }
	sch.OnSweep = func(iteration uint8) { sweeps++ }

	sweepOnce(sch, gr.NumCells())
	test.Equate(t, commits, gr.NumCells())
	test.Equate(t, sweeps, 1)
}

func TestReset(t *testing.T) {
	_, _, sch := newRig(false)

	for i := 0; i < 20; i++ {
		sch.Step()
	}
	sch.Reset()
	test.Equate(t, sch.Cursor, 0)
	test.Equate(t, sch.Iteration, 0)
	test.Equate(t, sch.Running, false)
}
