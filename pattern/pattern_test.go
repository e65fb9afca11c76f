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

package pattern_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hearth-emu/hearth/hardware"
	"github.com/hearth-emu/hearth/pattern"
	"github.com/hearth-emu/hearth/test"
)

func writePattern(t *testing.T, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "pattern.txt")
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

const plume = `# a warm plume
000000
001100
01ff10
01ff10
001100
000000
`

func TestLoad(t *testing.T) {
	pat, err := pattern.Load(writePattern(t, plume))
	test.ExpectedSuccess(t, err)

	test.Equate(t, pat.Width, 6)
	test.Equate(t, pat.Height, 6)
	test.Equate(t, len(pat.Cells), 36)
	test.Equate(t, pat.Cells[14], 15)
	test.Equate(t, pat.Cells[0], 0)

	if pat.Hash == "" {
		t.Errorf("no hash recorded for loaded pattern")
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := pattern.Load(writePattern(t, "00\n000\n"))
	test.ExpectedFailure(t, err)

	_, err = pattern.Load(writePattern(t, "00\n0x\n"))
	test.ExpectedFailure(t, err)

	_, err = pattern.Load(writePattern(t, "# nothing here\n"))
	test.ExpectedFailure(t, err)

	_, err = pattern.Load(filepath.Join(t.TempDir(), "missing.txt"))
	test.ExpectedFailure(t, err)
}

func TestPoke(t *testing.T) {
	pat, err := pattern.Load(writePattern(t, plume))
	test.ExpectedSuccess(t, err)

	ch := hardware.NewChip(hardware.HS6)
	test.ExpectedSuccess(t, pat.Poke(ch))

	test.Equate(t, ch.Grid.GetIdx(14), 15)
	test.Equate(t, ch.Grid.GetIdx(0), 0)

	test.Equate(t, ch.Grid.Get(2, 2), 15)
}

func TestPokeShape(t *testing.T) {
	pat, err := pattern.Load(writePattern(t, "00\n00\n"))
	test.ExpectedSuccess(t, err)

	ch := hardware.NewChip(hardware.HS6)
	test.ExpectedFailure(t, pat.Poke(ch))
}
