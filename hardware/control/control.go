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

// Package control implements the memory-mapped command protocol of the heat
// solver chips: the command word layout, the configuration register file and
// the IO latch.
//
// A command word packs a 2-bit mode and an address field. The address field
// is the narrowest field that covers every cell of the chip's grid. The
// original 6x6 part packs the word into 8 bits (mode in the top two bits, a
// 6 bit address below) and the larger parts simply widen the word. The Codec
// type captures that packing convention and nothing else.
package control

import (
	"fmt"

	"github.com/hearth-emu/hearth/hardware/boundary"
	"github.com/hearth-emu/hearth/hardware/fixpoint"
)

// Mode is the 2-bit operation selector at the top of every command word.
type Mode uint8

// List of valid Mode values.
const (
	// advance the simulation by one cell update
	Run Mode = 0b00

	// write the data bus value to the addressed cell
	Write Mode = 0b01

	// present the addressed cell on the output bus (one cycle of latency)
	Read Mode = 0b10

	// write the data bus value to the configuration register selected by the
	// address field
	Configure Mode = 0b11
)

func (m Mode) String() string {
	switch m {
	case Run:
		return "run"
	case Write:
		return "write"
	case Read:
		return "read"
	case Configure:
		return "configure"
	}
	return "unknown"
}

// Word is a command word. Only the low AddrBits+2 bits are significant.
type Word uint16

// Codec packs and unpacks command words for a particular grid size.
type Codec struct {
	// width of the address field
	AddrBits uint

	// number of cells in the grid. addresses are reduced modulo this value
	numCells int
}

// NewCodec is the preferred method of initialisation for the Codec type. The
// address field is sized to the narrowest width that covers numCells-1.
func NewCodec(numCells int) Codec {
	bits := uint(1)
	for (1 << bits) < numCells {
		bits++
	}
	return Codec{
		AddrBits: bits,
		numCells: numCells,
	}
}

func (cod Codec) String() string {
	return fmt.Sprintf("%d bit address field, %d cells", cod.AddrBits, cod.numCells)
}

// Pack a mode and address into a command word.
func (cod Codec) Pack(mode Mode, addr uint16) Word {
	return Word(uint16(mode&0b11)<<cod.AddrBits | addr&cod.addrMask())
}

// Mode extracts the operation selector from a command word.
func (cod Codec) Mode(w Word) Mode {
	return Mode(uint16(w) >> cod.AddrBits & 0b11)
}

// Addr extracts the address field from a command word and reduces it into
// grid range. Reduction applies uniformly to every mode: an out-of-range
// address is never an error and never a no-op.
func (cod Codec) Addr(w Word) uint16 {
	return (uint16(w) & cod.addrMask()) % uint16(cod.numCells)
}

// RawAddr extracts the address field without reducing it into grid range.
// Used by Configure, where the field is a register selector rather than a
// cell address.
func (cod Codec) RawAddr(w Word) uint16 {
	return uint16(w) & cod.addrMask()
}

func (cod Codec) addrMask() uint16 {
	return uint16((1 << cod.AddrBits) - 1)
}

// Latch is the IO latch. It remembers the address and data of the most
// recent external access. The READ operation presents the cell addressed on
// the previous cycle, so the latch is the source of the protocol's one cycle
// read latency.
type Latch struct {
	Addr uint16
	Data uint8
}

// Reset returns the latch to its power-on state.
func (lt *Latch) Reset() {
	lt.Addr = 0
	lt.Data = 0
}

// List of configuration register selectors. The address field of a Configure
// command selects the register, the data bus carries the value. Selectors
// not listed here are no-ops.
const (
	CfgAlpha          uint16 = 0x00
	CfgBoundaryTemp   uint16 = 0x01
	CfgBoundaryType   uint16 = 0x02
	CfgSourceAddr     uint16 = 0x03
	CfgSourceValue    uint16 = 0x04
	CfgSourceEnable   uint16 = 0x05
	CfgClearIteration uint16 = 0x06
)

// Registers is the configuration register file. Mutated only by Configure
// commands and by Reset(). Persists across RUN sweeps.
type Registers struct {
	// the diffusion coefficient, masked to AlphaBits on write
	Alpha uint8

	// boundary handling for the whole grid
	BoundaryType boundary.Policy

	// the pinned edge temperature. only meaningful for the fixed-value
	// boundary policy
	BoundaryTemp uint8

	// the optional heat source: a single cell forced to a fixed value
	// whenever the sweep visits it
	SourceAddr    uint16
	SourceValue   uint8
	SourceEnabled bool

	// widths used to mask incoming values
	AlphaBits uint
	TempBits  uint

	// default coefficient restored by Reset()
	AlphaDefault uint8

	// number of cells, for reducing SourceAddr into range
	NumCells int
}

func (reg *Registers) String() string {
	s := fmt.Sprintf("alpha=%d/%d %s boundary=%d", reg.Alpha, 1<<reg.AlphaBits, reg.BoundaryType, reg.BoundaryTemp)
	if reg.SourceEnabled {
		s += fmt.Sprintf(" source=%d@%d", reg.SourceValue, reg.SourceAddr)
	}
	return s
}

// Reset returns the register file to the documented power-on state: a
// mid-range coefficient, fixed-value boundary at zero, source disabled.
func (reg *Registers) Reset() {
	reg.Alpha = reg.AlphaDefault
	reg.BoundaryType = boundary.Dirichlet
	reg.BoundaryTemp = 0
	reg.SourceAddr = 0
	reg.SourceValue = 0
	reg.SourceEnabled = false
}

// Apply a Configure command to the register file. Returns true if the
// command asks for the iteration counter to be cleared, a piece of scheduler
// state this package has no access to. Unknown selectors are no-ops, not
// errors.
func (reg *Registers) Apply(selector uint16, data uint8) bool {
	switch selector {
	case CfgAlpha:
		reg.Alpha = data & fixpoint.Mask(reg.AlphaBits)
	case CfgBoundaryTemp:
		reg.BoundaryTemp = data & fixpoint.Mask(reg.TempBits)
	case CfgBoundaryType:
		// values beyond the last policy clamp to the last policy
		p := boundary.Policy(data)
		if p > boundary.Periodic {
			p = boundary.Periodic
		}
		reg.BoundaryType = p
	case CfgSourceAddr:
		reg.SourceAddr = uint16(data) % uint16(reg.NumCells)
	case CfgSourceValue:
		reg.SourceValue = data & fixpoint.Mask(reg.TempBits)
	case CfgSourceEnable:
		reg.SourceEnabled = data&0x01 == 0x01
	case CfgClearIteration:
		return true
	}
	return false
}
