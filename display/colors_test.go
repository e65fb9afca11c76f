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

package display_test

import (
	"testing"

	"github.com/hearth-emu/hearth/display"
)

func TestHeatEndpoints(t *testing.T) {
	// cold is black, hot is white, for every cell width in the family
	for _, max := range []uint8{7, 15, 63, 255} {
		r, g, b := display.Heat(0, max)
		if r != 0 || g != 0 || b != 0 {
			t.Errorf("cold cell not black (max %d): %d %d %d", max, r, g, b)
		}

		r, g, b = display.Heat(max, max)
		if r != 255 || g != 255 || b != 255 {
			t.Errorf("hot cell not white (max %d): %d %d %d", max, r, g, b)
		}
	}
}

func TestHeatMonotonic(t *testing.T) {
	// warmer cells are never darker
	prev := 0
	for v := 0; v <= 255; v++ {
		r, g, b := display.Heat(uint8(v), 255)
		lum := int(r) + int(g) + int(b)
		if lum < prev {
			t.Fatalf("ramp not monotonic at %d", v)
		}
		prev = lum
	}
}
