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

// Package sweep implements the cell update scheduler of the heat solver
// chips. The cell RAM has a single port so the chip updates exactly one cell
// per tick, visiting cells in ascending linear order. One full pass over the
// grid is a sweep and the iteration counter increments when the cursor wraps
// back to cell zero.
//
// The scheduler has two states. It is Running while the external mode is
// RUN and idle otherwise. Moving away from RUN freezes the cursor and the
// iteration counter rather than resetting them, so a RUN can be resumed
// mid-sweep after a burst of WRITE/READ/CONFIGURE commands. That mid-sweep
// observability is part of the chip's contract, not an accident.
package sweep

import (
	"fmt"

	"github.com/hearth-emu/hearth/hardware/boundary"
	"github.com/hearth-emu/hearth/hardware/control"
	"github.com/hearth-emu/hearth/hardware/fixpoint"
	"github.com/hearth-emu/hearth/hardware/grid"
	"github.com/hearth-emu/hearth/hardware/stencil"
)

// Scheduler drives one stencil update per tick in raster order.
type Scheduler struct {
	gr  *grid.Grid
	eng stencil.Engine
	reg *control.Registers

	// Cursor is the linear index of the next cell to be updated. always in
	// the range 0 <= Cursor < NumCells
	Cursor int

	// Iteration counts completed sweeps. an 8 bit counter in the hardware,
	// wrapping at its width
	Iteration uint8

	// Running is true while the external mode remains RUN
	Running bool

	// OnCommit is called after every cell commit. may be nil
	OnCommit func(x, y int, v uint8)

	// OnSweep is called when the cursor wraps, after any buffer swap. may
	// be nil
	OnSweep func(iteration uint8)
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler(gr *grid.Grid, eng stencil.Engine, reg *control.Registers) *Scheduler {
	return &Scheduler{
		gr:  gr,
		eng: eng,
		reg: reg,
	}
}

func (sch *Scheduler) String() string {
	return fmt.Sprintf("cursor=%d iteration=%d running=%v", sch.Cursor, sch.Iteration, sch.Running)
}

// Reset returns the scheduler to cursor zero and iteration zero. The grid is
// not touched. Chip level reset zeroes the grid separately.
func (sch *Scheduler) Reset() {
	sch.Cursor = 0
	sch.Iteration = 0
	sch.Running = false
}

// ClearIteration zeroes the iteration counter without disturbing the cursor.
// Reached through the configuration protocol.
func (sch *Scheduler) ClearIteration() {
	sch.Iteration = 0
}

// Idle marks the scheduler as not running. Used when the external mode moves
// away from RUN. The cursor and iteration counter are deliberately
// preserved.
func (sch *Scheduler) Idle() {
	sch.Running = false
}

// Step updates the cell under the cursor and advances the cursor. Exactly
// one grid read-modify-write happens per call, honouring the single-port
// memory of the hardware.
func (sch *Scheduler) Step() {
	sch.Running = true

	w := sch.gr.Width
	h := sch.gr.Height
	x := sch.Cursor % w
	y := sch.Cursor / w
	p := sch.reg.BoundaryType

	// each neighbour address is resolved separately, per axis
	left := sch.gr.Get(boundary.Resolve(x-1, w, p), y)
	right := sch.gr.Get(boundary.Resolve(x+1, w, p), y)
	up := sch.gr.Get(x, boundary.Resolve(y-1, h, p))
	down := sch.gr.Get(x, boundary.Resolve(y+1, h, p))

	v := sch.eng.Update(sch.gr.Get(x, y), left, right, up, down, sch.reg.Alpha)

	// fixed-value boundary: edge cells are pinned to the boundary
	// temperature after the stencil has run
	if p.Override() && (x == 0 || y == 0 || x == w-1 || y == h-1) {
		v = sch.reg.BoundaryTemp & fixpoint.Mask(sch.eng.TempBits)
	}

	// the heat source takes precedence over the boundary pin
	if sch.reg.SourceEnabled && sch.Cursor == int(sch.reg.SourceAddr) {
		v = sch.reg.SourceValue & fixpoint.Mask(sch.eng.TempBits)
	}

	sch.gr.Commit(sch.Cursor, v)

	if sch.OnCommit != nil {
		sch.OnCommit(x, y, v)
	}

	sch.Cursor++
	if sch.Cursor >= sch.gr.NumCells() {
		sch.Cursor = 0
		sch.Iteration++

		// the double-buffered variants swap before the next tick begins so
		// that sweep N+1 reads only sweep N's values
		sch.gr.Swap()

		if sch.OnSweep != nil {
			sch.OnSweep(sch.Iteration)
		}
	}
}
