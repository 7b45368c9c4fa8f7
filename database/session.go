// This file is part of Gatesim.
//
// Gatesim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gatesim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gatesim.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/jetsetilly/gatesim/curated"
)

// Activity is used to specify the type of activity that will be performed
// during the database session.
type Activity int

// List of valid Activity values. Activities are ordered: an activity
// implicitly permits the activities that come before it.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Sentinal error patterns.
const (
	NotAvailable  = "database: file not available (%s)"
	NotPermitted  = "database: activity not permitted (%s)"
	Malformed     = "database: malformed entry at line %d (%v)"
	UnknownEntry  = "database: unrecognised entry type at line %d (%s)"
	DuplicateKey  = "database: duplicate key at line %d (%d)"
	DuplicateType = "database: duplicate entry type (%s)"
	KeyNotFound   = "database: key not available (%d)"
	DatabaseFull  = "database: maximum entries exceeded (max %d)"
	DatabaseError = "database: %v"
)

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]Deserialiser
}

// StartSession starts/initialises a new DB session. The init function is
// called before the file is read and should register the entry types that
// the database will contain.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	var err error

	db := &Session{
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]Deserialiser),
	}

	var flags int

	switch activity {
	case ActivityReading:
		flags = os.O_RDONLY
	case ActivityModifying:
		flags = os.O_RDWR
	case ActivityCreating:
		flags = os.O_RDWR | os.O_CREATE
	}

	db.dbfile, err = os.OpenFile(path, flags, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(NotAvailable, path)
		}
		return nil, curated.Errorf(DatabaseError, err)
	}

	if init != nil {
		if err := init(db); err != nil {
			db.dbfile.Close()
			return nil, err
		}
	}

	if err := db.readDBFile(); err != nil {
		db.dbfile.Close()
		return nil, err
	}

	return db, nil
}

// EndSession closes the database. If commitChanges is true the entries are
// written back to the file, replacing the previous contents.
func (db *Session) EndSession(commitChanges bool) error {
	if db.dbfile == nil {
		return nil
	}

	defer func() {
		db.dbfile.Close()
		db.dbfile = nil
	}()

	if !commitChanges {
		return nil
	}

	if db.activity == ActivityReading {
		return curated.Errorf(NotPermitted, "commit")
	}

	if err := db.dbfile.Truncate(0); err != nil {
		return curated.Errorf(DatabaseError, err)
	}
	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	w := csv.NewWriter(db.dbfile)

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		fields, err := ent.Serialise()
		if err != nil {
			return curated.Errorf(DatabaseError, err)
		}

		rec := make([]string, 0, numLeaderFields+len(fields))
		rec = append(rec, recordKey(key), ent.EntryType())
		rec = append(rec, fields...)

		if err := w.Write(rec); err != nil {
			return curated.Errorf(DatabaseError, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	return nil
}

func (db *Session) readDBFile() error {
	r := csv.NewReader(db.dbfile)

	// entry types have a varying number of fields
	r.FieldsPerRecord = -1

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return curated.Errorf(DatabaseError, err)
		}

		line, _ := r.FieldPos(0)

		if len(rec) < numLeaderFields {
			return curated.Errorf(Malformed, line, "too few fields")
		}

		key, err := strconv.Atoi(rec[leaderFieldKey])
		if err != nil {
			return curated.Errorf(Malformed, line, err)
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf(DuplicateKey, line, key)
		}

		des, ok := db.entryTypes[rec[leaderFieldID]]
		if !ok {
			return curated.Errorf(UnknownEntry, line, rec[leaderFieldID])
		}

		ent, err := des(rec[numLeaderFields:])
		if err != nil {
			return curated.Errorf(Malformed, line, err)
		}

		db.entries[key] = ent
	}

	return nil
}
