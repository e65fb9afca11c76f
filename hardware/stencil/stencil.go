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

// Package stencil implements the diffusion update law of the heat solver
// chips. Given the centre cell and its four orthogonal neighbours, the
// engine produces the centre cell's next value.
//
// The chip family uses one of two update rules. A chip model commits to one
// rule for its lifetime. The two rules have the same monotone character
// (both move the centre toward the neighbour average) but they are not bit
// identical and must never be mixed within a run.
package stencil

import (
	"fmt"

	"github.com/hearth-emu/hearth/hardware/fixpoint"
)

// Rule selects the update law used by a chip model.
type Rule int

// List of valid Rule values.
const (
	// The general rule. The four neighbours are summed in a widened
	// register, averaged with a truncating shift, and the signed laplacian
	// (average minus centre) is scaled by the diffusion coefficient:
	//
	//	delta = (laplacian * alpha) >> shift
	//	next  = saturate(centre + delta)
	//
	// The neighbour average truncates. It does not round. The steady state
	// is biased slightly low as a consequence and that bias is part of the
	// documented contract.
	Laplacian Rule = iota

	// The low-resource rule. A fixed-weight blend of centre and neighbour
	// average:
	//
	//	next = (centre*(4-alpha) + average*alpha) >> 2
	//
	// using only the low two bits of the coefficient, so alpha is one of
	// {0, 1, 2, 3} meaning centre weights 1.0, 0.75, 0.5, 0.25.
	Blend
)

// RuleList is a list of all valid string representations of the Rule type.
var RuleList = []string{"laplacian", "blend"}

func (r Rule) String() string {
	switch r {
	case Laplacian:
		return "laplacian"
	case Blend:
		return "blend"
	}
	return "unknown"
}

// Engine computes new cell values. It holds no mutable state and is safe to
// copy.
type Engine struct {
	// which update law to apply
	Rule Rule

	// the fixed-point scale of the diffusion coefficient. 3 for the small
	// coefficient variants, 10 for the 8-bit coefficient variant. unused by
	// the Blend rule
	AlphaShift uint

	// width of a temperature cell in bits
	TempBits uint
}

func (e Engine) String() string {
	return fmt.Sprintf("%s rule, %d bit cells, alpha scale 1/%d", e.Rule, e.TempBits, 1<<e.AlphaShift)
}

// Update produces the next value of the centre cell from its current value,
// its four neighbours and the diffusion coefficient. The function is total:
// any combination of inputs produces an in-range result.
func (e Engine) Update(centre, left, right, up, down, alpha uint8) uint8 {
	// widen before summing. four 8 bit values cannot overflow an int but the
	// explicit intermediate mirrors the hardware's widened adder
	sum := int(left) + int(right) + int(up) + int(down)

	// truncating average. the low two bits are deliberately discarded
	avg := sum >> 2

	if e.Rule == Blend {
		k := 4 - int(alpha&0x03)
		v := (int(centre)*k + avg*(4-k)) >> 2
		return fixpoint.Saturate(v, e.TempBits)
	}

	// the laplacian is signed. without the sign a hot cell could never cool
	laplacian := avg - int(centre)
	delta := fixpoint.Scale(laplacian, alpha, e.AlphaShift)

	return fixpoint.Saturate(int(centre)+delta, e.TempBits)
}
