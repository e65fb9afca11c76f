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

package control_test

import (
	"testing"

	"github.com/hearth-emu/hearth/hardware/boundary"
	"github.com/hearth-emu/hearth/hardware/control"
	"github.com/hearth-emu/hearth/test"
)

func TestCodecWidth(t *testing.T) {
	// the address field is the narrowest that covers every cell
	test.Equate(t, int(control.NewCodec(16).AddrBits), 4)
	test.Equate(t, int(control.NewCodec(25).AddrBits), 5)
	test.Equate(t, int(control.NewCodec(36).AddrBits), 6)
	test.Equate(t, int(control.NewCodec(1024).AddrBits), 10)
}

func TestCodecPacking(t *testing.T) {
	cod := control.NewCodec(36)

	// the 6x6 part packs into 8 bits: mode in bits 7:6, address in 5:0
	w := cod.Pack(control.Write, 14)
	test.Equate(t, uint16(w), uint16(0b01<<6|14))
	test.Equate(t, cod.Mode(w).String(), "write")
	test.Equate(t, cod.Addr(w), 14)

	w = cod.Pack(control.Run, 0)
	test.Equate(t, cod.Mode(w).String(), "run")
}

func TestCodecAddressReduction(t *testing.T) {
	cod := control.NewCodec(25)

	// a 5 bit field can express 0..31 but the grid only has 25 cells.
	// out-of-range addresses reduce into range, uniformly for all modes
	w := cod.Pack(control.Read, 30)
	test.Equate(t, cod.Addr(w), 5)

	w = cod.Pack(control.Write, 30)
	test.Equate(t, cod.Addr(w), 5)

	// the raw field is preserved for configure selectors
	test.Equate(t, cod.RawAddr(w), 30)
}

func newRegisters() *control.Registers {
	reg := &control.Registers{
		AlphaBits:    3,
		TempBits:     4,
		AlphaDefault: 4,
		NumCells:     36,
	}
	reg.Reset()
	return reg
}

func TestRegistersReset(t *testing.T) {
	reg := newRegisters()

	test.Equate(t, reg.Alpha, 4)
	test.Equate(t, reg.BoundaryType.String(), "dirichlet")
	test.Equate(t, reg.BoundaryTemp, 0)
	test.Equate(t, reg.SourceEnabled, false)
}

func TestRegistersApply(t *testing.T) {
	reg := newRegisters()

	// alpha masked to coefficient width
	reg.Apply(control.CfgAlpha, 0xff)
	test.Equate(t, reg.Alpha, 7)

	// boundary temperature masked to cell width
	reg.Apply(control.CfgBoundaryTemp, 0x35)
	test.Equate(t, reg.BoundaryTemp, 5)

	reg.Apply(control.CfgBoundaryType, uint8(boundary.Periodic))
	test.Equate(t, reg.BoundaryType.String(), "periodic")

	// source cell
	reg.Apply(control.CfgSourceAddr, 14)
	reg.Apply(control.CfgSourceValue, 15)
	reg.Apply(control.CfgSourceEnable, 1)
	test.Equate(t, reg.SourceAddr, 14)
	test.Equate(t, reg.SourceValue, 15)
	test.Equate(t, reg.SourceEnabled, true)

	reg.Apply(control.CfgSourceEnable, 0)
	test.Equate(t, reg.SourceEnabled, false)
}

func TestRegistersClearIteration(t *testing.T) {
	reg := newRegisters()

	// the clear-iteration selector is relayed to the caller. it doesn't
	// change the register file
	test.ExpectedSuccess(t, reg.Apply(control.CfgClearIteration, 0))
	test.ExpectedFailure(t, reg.Apply(control.CfgAlpha, 1))
}

func TestRegistersUnknownSelector(t *testing.T) {
	reg := newRegisters()
	before := *reg

	// unknown selectors are no-ops, not errors
	test.ExpectedFailure(t, reg.Apply(0x3f, 0xff))
	test.Equate(t, *reg == before, true)
}
