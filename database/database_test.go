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

package database_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/hearth-emu/hearth/database"
	"github.com/hearth-emu/hearth/test"
)

// a minimal entry type for testing the session machinery.
type testEntry struct {
	name  string
	value string
}

func deserialiseTestEntry(fields []string) (database.Entry, error) {
	if len(fields) != 2 {
		return nil, fmt.Errorf("wrong number of fields in test entry")
	}
	return &testEntry{name: fields[0], value: fields[1]}, nil
}

func (ent testEntry) ID() string {
	return "test"
}

func (ent testEntry) String() string {
	return fmt.Sprintf("%s=%s", ent.name, ent.value)
}

func (ent testEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{ent.name, ent.value}, nil
}

func (ent testEntry) CleanUp() error {
	return nil
}

func initTestSession(db *database.Session) error {
	return db.RegisterEntryType("test", deserialiseTestEntry)
}

func TestSessionRoundTrip(t *testing.T) {
	dbfile := filepath.Join(t.TempDir(), "testDB")

	// create a database with two entries
	db, err := database.StartSession(dbfile, database.ActivityCreating, initTestSession)
	test.ExpectedSuccess(t, err)
	test.Equate(t, db.NumEntries(), 0)

	test.ExpectedSuccess(t, db.Add(&testEntry{name: "foo", value: "1"}))
	test.ExpectedSuccess(t, db.Add(&testEntry{name: "bar", value: "2"}))
	test.ExpectedSuccess(t, db.EndSession(true))

	// read it back
	db, err = database.StartSession(dbfile, database.ActivityReading, initTestSession)
	test.ExpectedSuccess(t, err)
	test.Equate(t, db.NumEntries(), 2)

	ent, err := db.Get(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "foo=1")

	// read-only sessions cannot commit
	test.ExpectedFailure(t, db.EndSession(true))
	test.ExpectedSuccess(t, db.EndSession(false))
}

func TestSessionDelete(t *testing.T) {
	dbfile := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(dbfile, database.ActivityCreating, initTestSession)
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, db.Add(&testEntry{name: "foo", value: "1"}))
	test.ExpectedSuccess(t, db.Delete(0))
	test.ExpectedFailure(t, db.Delete(0))
	test.Equate(t, db.NumEntries(), 0)

	test.ExpectedSuccess(t, db.EndSession(true))
}

func TestSessionList(t *testing.T) {
	dbfile := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(dbfile, database.ActivityCreating, initTestSession)
	test.ExpectedSuccess(t, err)

	tw := &test.Writer{}
	test.ExpectedSuccess(t, db.List(tw))
	test.Equate(t, tw.Compare("database is empty\n"), true)

	test.ExpectedSuccess(t, db.Add(&testEntry{name: "foo", value: "1"}))

	tw.Clear()
	test.ExpectedSuccess(t, db.List(tw))
	test.Equate(t, tw.Compare("000 foo=1\nTotal: 1\n"), true)
}

func TestUnrecognisedEntryType(t *testing.T) {
	dbfile := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(dbfile, database.ActivityCreating, initTestSession)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.Add(&testEntry{name: "foo", value: "1"}))
	test.ExpectedSuccess(t, db.EndSession(true))

	// a session that has not registered the entry type should fail to open
	_, err = database.StartSession(dbfile, database.ActivityReading, nil)
	test.ExpectedFailure(t, err)
}
