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

// Package digest fingerprints the evolving temperature field. It is a
// CellRenderer that displays nothing: instead it folds every completed sweep
// into a chained SHA-1 value. Two runs that produce the same fingerprint
// walked through the same sequence of grid states, which makes the digest a
// compact oracle for regression tests.
package digest

// Digest is implemented by types that fingerprint the simulation in some way.
type Digest interface {
	Hash() string
	ResetDigest()
}
