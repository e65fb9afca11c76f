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

package database

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hearth-emu/hearth/curated"
)

// sentinal errors returned by the database package.
const (
	SessionError = "database: %v"

	// a key does not exist in the database
	KeyError = "database: key not available (%d)"
)

// Activity describes the kind of access required of a database session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session is an open database.
type Session struct {
	path     string
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]deserialiser
}

// StartSession opens the database file at path and deserialises every entry.
// The init function, which may be nil, is called before the file is read and
// will typically register the entry types the session expects.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]deserialiser),
	}

	if init != nil {
		if err := init(db); err != nil {
			return nil, err
		}
	}

	d, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && activity == ActivityCreating {
			return db, nil
		}
		return nil, curated.Errorf(SessionError, err)
	}

	for i, line := range strings.Split(string(d), entrySep) {
		if line == "" {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) < numLeaderFields {
			return nil, curated.Errorf(SessionError, fmt.Sprintf("%s: malformed line %d", path, i+1))
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return nil, curated.Errorf(SessionError, fmt.Sprintf("%s: bad key on line %d", path, i+1))
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return nil, curated.Errorf(SessionError, fmt.Sprintf("%s: unrecognised entry type [%s]", path, fields[leaderFieldID]))
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return nil, err
		}

		db.entries[key] = ent
	}

	return db, nil
}

// EndSession closes the database, writing any changes to disk if commit is
// true. A session opened with ActivityReading cannot commit.
func (db *Session) EndSession(commit bool) error {
	if !commit {
		return nil
	}

	if db.activity == ActivityReading {
		return curated.Errorf(SessionError, "cannot commit a read-only session")
	}

	s := strings.Builder{}
	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return err
		}

		s.WriteString(recordHeader(key, ent.ID()))
		for _, f := range ser {
			s.WriteString(fieldSep)
			s.WriteString(f)
		}
		s.WriteString(entrySep)
	}

	if err := os.WriteFile(db.path, []byte(s.String()), 0644); err != nil {
		return curated.Errorf(SessionError, err)
	}

	return nil
}
