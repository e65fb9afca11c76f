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

// Package regression is a record of known-good simulation results. A
// regression entry names a chip model, its configuration and a number of
// sweeps, along with the digest of the temperature field at the end of the
// run. Re-running the entry and comparing digests tells us whether the
// simulation still behaves the way it did when the entry was added.
package regression

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/hearth-emu/hearth/curated"
	"github.com/hearth-emu/hearth/database"
)

// the location of the regression database.
const regressionDir = ".hearth"
const regressionDBFile = ".hearth/regressionDB"

// sentinal errors returned by the regression package.
const (
	RegressionError = "regression: %v"
)

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the
	// newRegression flag causes the result to be recorded rather than
	// compared
	regress(newRegression bool, output io.Writer, message string) (bool, error)
}

// when starting a database session we need to register what entries we will
// find in the database.
func initDBSession(db *database.Session) error {
	if err := db.RegisterEntryType(sweepEntryID, deserialiseSweepEntry); err != nil {
		return err
	}

	if err := os.MkdirAll(regressionDir, 0755); err != nil {
		return curated.Errorf(RegressionError, err)
	}

	return nil
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	db, err := database.StartSession(regressionDBFile, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the regression database. the
// confirmation reader is consulted before anything is deleted.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf(RegressionError, fmt.Sprintf("invalid key [%s]", key))
	}

	db, err := database.StartSession(regressionDBFile, database.ActivityModifying, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	ent, err := db.Get(v)
	if err != nil {
		return err
	}

	output.Write([]byte(fmt.Sprintf("%s\ndelete? (y/n): ", ent)))

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return err
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return err
		}
		output.Write([]byte(fmt.Sprintf("deleted test #%s from regression database\n", key)))
	}

	return nil
}

// Regress runs a single regression entry without touching the database.
func Regress(reg Regressor, output io.Writer) (bool, error) {
	return reg.regress(false, output, fmt.Sprintf("running: %s", reg))
}

// RegressAdd runs a new regression entry, records the result and adds the
// entry to the database.
func RegressAdd(output io.Writer, reg Regressor) error {
	db, err := database.StartSession(regressionDBFile, database.ActivityCreating, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	msg := fmt.Sprintf("adding: %s", reg)
	ok, err := reg.regress(true, output, msg)
	if !ok || err != nil {
		return err
	}

	output.Write([]byte(fmt.Sprintf("\radded: %s\n", reg)))

	return db.Add(reg)
}

// RegressRunTests runs the tests in the regression database. an empty
// filterKeys list means that every entry should be tested.
func RegressRunTests(output io.Writer, verbose bool, failOnError bool, filterKeys []string) error {
	db, err := database.StartSession(regressionDBFile, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	// make sure any supplied keys list is in order
	keysV := make([]int, 0, len(filterKeys))
	for k := range filterKeys {
		v, err := strconv.Atoi(filterKeys[k])
		if err != nil {
			return curated.Errorf(RegressionError, fmt.Sprintf("invalid key [%s]", filterKeys[k]))
		}
		keysV = append(keysV, v)
	}
	sort.Ints(keysV)
	filterIdx := 0

	numSucceed := 0
	numFail := 0
	numError := 0
	numSkipped := 0

	defer func() {
		output.Write([]byte(fmt.Sprintf("regression tests: %d succeed, %d fail, %d skipped", numSucceed, numFail, numSkipped)))

		if numError > 0 {
			output.Write([]byte(" [with errors]"))
		}
		output.Write([]byte("\n"))
	}()

	// sentinal error to stop the selection early without propagating an
	// error to the caller
	const stopSelection = "stop selection"

	err = db.SelectAll(func(key int, ent database.Entry) error {
		// if a list of keys has been supplied then check key in the database
		// against that list (both lists are sorted)
		if len(keysV) > 0 {
			if filterIdx >= len(keysV) {
				return curated.Errorf(stopSelection)
			}
			if keysV[filterIdx] != key {
				numSkipped++
				return nil
			}
			filterIdx++
		}

		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf(RegressionError, "database entry is not a regression test")
		}

		msg := fmt.Sprintf("running: %s", reg)
		ok, err := reg.regress(false, output, msg)

		if err != nil {
			numError++
			output.Write([]byte(fmt.Sprintf("\r  ERROR: %s\n", reg)))
			if verbose {
				output.Write([]byte(fmt.Sprintf("%s\n", err)))
			}
			if failOnError {
				return curated.Errorf(stopSelection)
			}
		} else if !ok {
			numFail++
			output.Write([]byte(fmt.Sprintf("\rfailure: %s\n", reg)))
		} else {
			numSucceed++
			output.Write([]byte(fmt.Sprintf("\rsucceed: %s\n", reg)))
		}

		return nil
	})
	if err != nil && !curated.Is(err, stopSelection) {
		return err
	}

	return nil
}
