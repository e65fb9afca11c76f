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

// Package display maps temperatures to colours for the visual front ends.
// The chip itself knows nothing about colour. Display hardware for the chip
// family is an external collaborator that maps pixel coordinates to grid
// addresses and reads cell values, and the packages below this one do the
// same through the hardware.CellRenderer interface.
package display

// Heat maps a cell value to an RGB colour on a black-red-yellow-white ramp.
// The value is normalised against the largest representable value for the
// chip model, so the ramp looks the same for every member of the chip
// family.
func Heat(v uint8, max uint8) (red, green, blue byte) {
	if max == 0 {
		return 0, 0, 0
	}

	// position on the ramp, 0..765 (three segments of 255)
	p := int(v) * 765 / int(max)

	switch {
	case p < 255:
		// black to red
		return byte(p), 0, 0
	case p < 510:
		// red to yellow
		return 255, byte(p - 255), 0
	default:
		// yellow to white
		return 255, 255, byte(p - 510)
	}
}
