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

// Package hardware assembles the emulated heat solver chip from its
// sub-systems: the cell grid, the stencil engine, the sweep scheduler and
// the control protocol.
//
// The chip is driven one tick at a time through the Step() function, which
// accepts a command word and a data bus value and returns the output bus
// value, exactly as the silicon is driven by its input pins. Exactly one
// grid access happens per tick. The single-port memory of the hardware is
// the defining resource limit of the design and the emulation preserves it
// even though software has no such constraint: it determines the observable
// interleaving of RUN and WRITE/READ/CONFIGURE operations.
//
// All chip state is owned by the Chip instance. Nothing in this package or
// below it starts a goroutine. Callers that want to run the chip in the
// background must serialise every access through the same per-tick dispatch.
package hardware

import (
	"fmt"

	"github.com/hearth-emu/hearth/hardware/control"
	"github.com/hearth-emu/hearth/hardware/fixpoint"
	"github.com/hearth-emu/hearth/hardware/grid"
	"github.com/hearth-emu/hearth/hardware/stencil"
	"github.com/hearth-emu/hearth/hardware/sweep"
)

// CellRenderer implementations display, or otherwise work with, cell values
// as they are committed. For example, digest.Grid.
type CellRenderer interface {
	// SetCell is called for every cell commit, including external WRITEs.
	// max is the largest representable value for the chip model
	SetCell(x, y int, v uint8, max uint8) error

	// NewSweep is called when a sweep completes
	NewSweep(iteration uint8) error

	// EndRendering is called when the emulation is finished with the
	// renderer
	EndRendering() error
}

// SweepMixer implementations consume the sweep beat: the iteration counter
// and the running flag, nothing else. For example, the audio tone generator.
type SweepMixer interface {
	SetSweep(iteration uint8, running bool) error

	// EndMixing is called when the emulation is finished with the mixer
	EndMixing() error
}

// Chip is the main container for the emulated heat solver.
type Chip struct {
	Model Model

	Grid  *grid.Grid
	Regs  *control.Registers
	Sched *sweep.Scheduler

	// the command word codec for this model's grid size
	Codec control.Codec

	// the IO latch behind the one cycle READ latency
	latch control.Latch

	renderers []CellRenderer
	mixers    []SweepMixer
}

// NewChip is the preferred method of initialisation for the Chip type. The
// result is in the documented power-on state.
func NewChip(mod Model) *Chip {
	ch := &Chip{
		Model: mod,
		Grid:  grid.NewGrid(mod.Width, mod.Height, mod.DoubleBuffered),
		Codec: control.NewCodec(mod.NumCells()),
	}

	ch.Regs = &control.Registers{
		AlphaBits:    mod.AlphaBits,
		TempBits:     mod.TempBits,
		AlphaDefault: mod.AlphaDefault,
		NumCells:     mod.NumCells(),
	}
	ch.Regs.Reset()

	eng := stencil.Engine{
		Rule:       mod.Rule,
		AlphaShift: mod.AlphaShift,
		TempBits:   mod.TempBits,
	}

	ch.Sched = sweep.NewScheduler(ch.Grid, eng, ch.Regs)
	ch.Sched.OnCommit = ch.commit
	ch.Sched.OnSweep = ch.newSweep

	return ch
}

func (ch *Chip) String() string {
	return fmt.Sprintf("%v\n%v\n%v", ch.Model, ch.Regs, ch.Sched)
}

// AttachRenderer registers an (additional) implementation of CellRenderer.
func (ch *Chip) AttachRenderer(rend CellRenderer) {
	ch.renderers = append(ch.renderers, rend)
}

// AttachMixer registers an (additional) implementation of SweepMixer.
func (ch *Chip) AttachMixer(mix SweepMixer) {
	ch.mixers = append(ch.mixers, mix)
}

func (ch *Chip) commit(x, y int, v uint8) {
	for _, rend := range ch.renderers {
		_ = rend.SetCell(x, y, v, fixpoint.MaxVal(ch.Model.TempBits))
	}
}

func (ch *Chip) newSweep(iteration uint8) {
	for _, rend := range ch.renderers {
		_ = rend.NewSweep(iteration)
	}
	for _, mix := range ch.mixers {
		_ = mix.SetSweep(iteration, ch.Sched.Running)
	}
}

// Reset the chip synchronously: grid to all zero, scheduler to cursor zero
// and iteration zero, configuration to the documented defaults, IO latch
// cleared.
func (ch *Chip) Reset() {
	ch.Grid.Reset()
	ch.Sched.Reset()
	ch.Regs.Reset()
	ch.latch.Reset()
}

// Step advances the chip by one tick. The command word selects the
// operation, the data argument is the input data bus, and the return value
// is the output bus.
//
// In RUN mode the output bus carries the status byte: the running flag in
// the top bit and the low seven bits of the iteration counter below it. In
// READ mode the output bus carries the cell addressed on the previous tick.
func (ch *Chip) Step(word control.Word, data uint8) uint8 {
	switch ch.Codec.Mode(word) {
	case control.Run:
		ch.Sched.Step()
		return ch.status()

	case control.Write:
		ch.Sched.Idle()
		addr := ch.Codec.Addr(word)
		v := data & fixpoint.Mask(ch.Model.TempBits)
		ch.Grid.SetIdx(int(addr), v)
		ch.commit(int(addr)%ch.Grid.Width, int(addr)/ch.Grid.Width, v)
		ch.latch.Addr = addr
		ch.latch.Data = v
		return v

	case control.Read:
		ch.Sched.Idle()
		// present the previously latched address. the newly supplied
		// address is visible on the next tick
		out := ch.Grid.GetIdx(int(ch.latch.Addr))
		ch.latch.Addr = ch.Codec.Addr(word)
		ch.latch.Data = out
		return out

	case control.Configure:
		ch.Sched.Idle()
		if ch.Regs.Apply(ch.Codec.RawAddr(word), data) {
			ch.Sched.ClearIteration()
		}
		return ch.status()
	}

	return 0
}

func (ch *Chip) status() uint8 {
	s := ch.Sched.Iteration & 0x7f
	if ch.Sched.Running {
		s |= 0x80
	}
	return s
}

// Run the chip in RUN mode for the given number of complete sweeps. The
// check function, which may be nil, is consulted between ticks and any
// error it returns stops the run and is passed on.
//
// A convenience for driving the chip from emulator code. Each sweep is
// width*height ticks, exactly as if the RUN command word were presented on
// every one of them.
func (ch *Chip) Run(sweeps int, check func() error) error {
	run := ch.Codec.Pack(control.Run, 0)
	ticks := sweeps * ch.Model.NumCells()

	for i := 0; i < ticks; i++ {
		ch.Step(run, 0)
		if check != nil {
			if err := check(); err != nil {
				return err
			}
		}
	}

	return nil
}

// EndRendering calls EndRendering() and EndMixing() on every attached
// renderer and mixer. The first error encountered is returned but every
// attachment is always visited.
func (ch *Chip) EndRendering() error {
	var rerr error
	for _, rend := range ch.renderers {
		if err := rend.EndRendering(); err != nil && rerr == nil {
			rerr = err
		}
	}
	for _, mix := range ch.mixers {
		if err := mix.EndMixing(); err != nil && rerr == nil {
			rerr = err
		}
	}
	return rerr
}
