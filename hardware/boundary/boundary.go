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

// Package boundary implements the edge handling policies of the heat solver
// chips. The policy answers one question: when the stencil asks for a
// neighbour that falls off the grid, which cell should it read instead?
//
// The policy is evaluated independently per axis per neighbour request. The
// left and right neighbours resolve on the x axis, the up and down neighbours
// on the y axis. It is never evaluated just once per cell.
package boundary

// Policy is the boundary condition of the simulation.
type Policy int

// List of valid Policy values.
const (
	// Fixed-value boundary. Off-grid neighbours clamp to the edge cell
	// itself and, additionally, every computed edge cell is overridden with
	// the configured boundary temperature at commit time.
	Dirichlet Policy = iota

	// Zero-gradient boundary. Off-grid neighbours clamp to the edge cell
	// itself, which makes the gradient at the edge zero by construction. The
	// computed value is kept as-is.
	Neumann

	// Wrap-around boundary. Off-grid neighbours wrap to the opposite edge.
	Periodic
)

// PolicyList is a list of all valid string representations of the Policy type.
var PolicyList = []string{"dirichlet", "neumann", "periodic"}

func (p Policy) String() string {
	switch p {
	case Dirichlet:
		return "dirichlet"
	case Neumann:
		return "neumann"
	case Periodic:
		return "periodic"
	}
	return "unknown"
}

// ParsePolicy converts a string representation to a Policy value. The second
// return value is false if the string is not recognised.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "dirichlet":
		return Dirichlet, true
	case "neumann":
		return Neumann, true
	case "periodic":
		return Periodic, true
	}
	return Dirichlet, false
}

// Resolve maps a (possibly off-grid) neighbour coordinate component to the
// coordinate that should actually be read. The coord argument may be one
// less than zero or one more than extent-1, which is as far off the grid as
// a 5-point stencil can reach.
func Resolve(coord int, extent int, p Policy) int {
	if coord >= 0 && coord < extent {
		return coord
	}

	if p == Periodic {
		if coord < 0 {
			return extent - 1
		}
		return 0
	}

	// Dirichlet and Neumann both clamp to the edge cell. the difference
	// between the two policies is the commit-time override, not the read
	if coord < 0 {
		return 0
	}
	return extent - 1
}

// Override returns true if computed edge cells should be replaced with the
// configured boundary temperature at commit time. Only true for the
// fixed-value policy.
func (p Policy) Override() bool {
	return p == Dirichlet
}
