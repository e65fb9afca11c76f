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

// Package fixpoint implements the saturating fixed-point arithmetic used by
// the heat solver chips. The chip family stores temperatures as narrow
// unsigned values but the intermediate stencil arithmetic is signed and wider
// by several bits. The functions in this package reproduce the hardware
// behaviour exactly: intermediate values are widened before the operation so
// that overflow can never occur, and results are clamped to the storage width
// on the way out.
//
// All functions are total. There are no error conditions.
package fixpoint

// Mask returns the bit mask for an unsigned value of the given width. The
// chip family never uses more than 8 bits per temperature cell.
func Mask(bits uint) uint8 {
	return uint8((1 << bits) - 1)
}

// MaxVal returns the largest representable value for the given width.
func MaxVal(bits uint) uint8 {
	return Mask(bits)
}

// Saturate clamps a signed intermediate value to the unsigned range implied
// by the given bit width. Negative values map to zero and values exceeding
// the maximum map to the maximum. Values already in range pass through
// unchanged.
//
// This is the single numeric safety net for the entire engine and is applied
// everywhere a computed delta could drive a temperature out of range.
func Saturate(v int, bits uint) uint8 {
	if v < 0 {
		return 0
	}
	max := int(Mask(bits))
	if v > max {
		return uint8(max)
	}
	return uint8(v)
}

// Scale multiplies a signed laplacian by the unsigned diffusion coefficient
// and reduces the product by the coefficient's fixed-point scale. The right
// shift is arithmetic (sign extending), exactly as the hardware's signed
// shifter behaves, so negative deltas correctly diffuse heat away from a hot
// cell.
//
// Note that Go's >> operator on a signed operand is already an arithmetic
// shift. The function exists so the operation has one authoritative home.
func Scale(laplacian int, alpha uint8, shift uint) int {
	return (laplacian * int(alpha)) >> shift
}
