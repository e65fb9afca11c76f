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

package digest_test

import (
	"testing"

	"github.com/hearth-emu/hearth/digest"
	"github.com/hearth-emu/hearth/hardware"
	"github.com/hearth-emu/hearth/hardware/control"
	"github.com/hearth-emu/hearth/test"
)

func runChip(t *testing.T, poke uint8) string {
	t.Helper()

	ch := hardware.NewChip(hardware.HS6)
	dig := digest.NewGrid(ch.Model.Width, ch.Model.Height)
	ch.AttachRenderer(dig)

	ch.Step(ch.Codec.Pack(control.Write, 14), poke)
	if err := ch.Run(5, nil); err != nil {
		t.Fatal(err)
	}

	test.Equate(t, dig.SweepNum(), 5)
	return dig.Hash()
}

func TestDeterministicFingerprint(t *testing.T) {
	// identical runs produce identical fingerprints
	a := runChip(t, 15)
	b := runChip(t, 15)
	test.Equate(t, a, b)
}

func TestFingerprintSensitivity(t *testing.T) {
	// a one-cell difference in the initial state changes the fingerprint
	a := runChip(t, 15)
	b := runChip(t, 14)
	if a == b {
		t.Errorf("different runs produced the same fingerprint (%s)", a)
	}
}

func TestResetDigest(t *testing.T) {
	dig := digest.NewGrid(6, 6)
	_ = dig.SetCell(0, 0, 9, 15)
	_ = dig.NewSweep(1)

	h := dig.Hash()
	dig.ResetDigest()
	if dig.Hash() == h {
		t.Errorf("fingerprint survived ResetDigest()")
	}
	test.Equate(t, dig.SweepNum(), 0)
}
