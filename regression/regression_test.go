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

package regression_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hearth-emu/hearth/regression"
	"github.com/hearth-emu/hearth/test"
)

// the regression database lives in a directory relative to the working
// directory so each test runs in its own temporary directory.
func chdirTemp(t *testing.T) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

func writePattern(t *testing.T) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "pattern.txt")
	err := os.WriteFile(fn, []byte("000000\n001100\n01ff10\n01ff10\n001100\n000000\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestSweepRegression(t *testing.T) {
	chdirTemp(t)

	reg := regression.NewSweepRegression("HS6", writePattern(t), 10)

	tw := &test.Writer{}
	test.ExpectedSuccess(t, regression.RegressAdd(tw, reg))

	if reg.Digest == "" {
		t.Errorf("no digest recorded for new regression entry")
	}

	// the entry just added should succeed when re-run
	tw.Clear()
	test.ExpectedSuccess(t, regression.RegressRunTests(tw, false, false, nil))
	if !strings.Contains(tw.String(), "1 succeed, 0 fail, 0 skipped") {
		t.Errorf("unexpected summary: %s", tw.String())
	}
}

func TestSweepRegressionFailure(t *testing.T) {
	chdirTemp(t)

	reg := regression.NewSweepRegression("HS6", writePattern(t), 10)

	tw := &test.Writer{}
	test.ExpectedSuccess(t, regression.RegressAdd(tw, reg))

	// run against a deliberately wrong digest
	reg.Digest = "0000000000000000000000000000000000000000"

	ok, err := regression.Regress(reg, tw)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ok, false)
}

func TestRegressList(t *testing.T) {
	chdirTemp(t)

	tw := &test.Writer{}
	test.ExpectedSuccess(t, regression.RegressList(tw))
	test.Equate(t, tw.Compare("database is empty\n"), true)

	reg := regression.NewSweepRegression("HS4", "", 5)
	test.ExpectedSuccess(t, regression.RegressAdd(tw, reg))

	tw.Clear()
	test.ExpectedSuccess(t, regression.RegressList(tw))
	if !strings.Contains(tw.String(), "[sweep] HS4 sweeps=5") {
		t.Errorf("unexpected list output: %s", tw.String())
	}
}
