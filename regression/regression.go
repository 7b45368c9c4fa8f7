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

package regression

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/database"
	"github.com/jetsetilly/gatesim/paths"
)

// Sentinal error patterns.
const (
	InvalidKey     = "regression: invalid key (%s)"
	RegressionFail = "regression: %d of %d tests failed"
)

// Regressor is the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. if newRegression
	// is true the results of the test are stored in the entry. otherwise the
	// results are compared with the stored results and the reason for any
	// mismatch is returned
	regress(newRegression bool) (ok bool, reason string, err error)
}

// DefaultDBPath returns the path to the regression database in the resource
// directory.
func DefaultDBPath() (string, error) {
	return paths.ResourcePath("", "regressionDB")
}

// when starting a database session we need to register what entries we will
// find in the database.
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(runEntryType, deserialiseRunEntry)
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer, dbPath string) error {
	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the regression database. The user is
// asked for confirmation.
func RegressDelete(output io.Writer, confirmation io.Reader, dbPath string, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf(InvalidKey, key)
	}

	db, err := database.StartSession(dbPath, database.ActivityModifying, initDBSession)
	if err != nil {
		return err
	}

	ent, err := db.Get(v)
	if err != nil {
		db.EndSession(false)
		return err
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm, err := bufio.NewReader(confirmation).ReadString('\n')
	if err != nil && err != io.EOF {
		db.EndSession(false)
		return curated.Errorf("regression: %v", err)
	}

	confirm = strings.TrimSpace(confirm)
	if confirm != "y" && confirm != "Y" {
		return db.EndSession(false)
	}

	if err := db.Delete(v); err != nil {
		db.EndSession(false)
		return err
	}

	fmt.Fprintf(output, "deleted test #%s from regression database\n", key)

	return db.EndSession(true)
}

// RegressAdd runs the regression and adds it to the database. The database
// is created if it does not already exist.
func RegressAdd(output io.Writer, dbPath string, reg Regressor) error {
	db, err := database.StartSession(dbPath, database.ActivityCreating, initDBSession)
	if err != nil {
		return err
	}

	ok, _, err := reg.regress(true)
	if !ok || err != nil {
		db.EndSession(false)
		return err
	}

	key, err := db.Add(reg)
	if err != nil {
		db.EndSession(false)
		return err
	}

	fmt.Fprintf(output, "added: %03d %s\n", key, reg)

	return db.EndSession(true)
}

// RegressRun runs the tests in the regression database. The filterKeys list
// specifies which entries to test. An empty list means that every entry is
// tested.
//
// A summary is written to output and an error is returned if any test fails.
// Errors during a test count as a failure and stop the run if failOnError is
// true. The error message is written to output if verbose is true.
func RegressRun(output io.Writer, dbPath string, verbose bool, failOnError bool, filterKeys []string) error {
	db, err := database.StartSession(dbPath, database.ActivityReading, initDBSession)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}

	keys := make([]int, 0, len(filterKeys))
	for _, k := range filterKeys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return curated.Errorf(InvalidKey, k)
		}
		keys = append(keys, v)
	}
	sort.Ints(keys)

	numSucceed := 0
	numFail := 0
	numError := 0

	// stops the select process. not reported to the caller
	const stopped = "regression: stopped"

	onSelect := func(key int, ent database.Entry) error {
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: database entry is not a Regressor (%03d)", key)
		}

		ok, reason, err := reg.regress(false)

		if err != nil {
			numError++
			fmt.Fprintf(output, "  ERROR: %03d %s\n", key, reg)
			if verbose {
				fmt.Fprintf(output, "  %v\n", err)
			}
			if failOnError {
				return curated.Errorf(stopped)
			}
		} else if !ok {
			numFail++
			fmt.Fprintf(output, "failure: %03d %s\n", key, reg)
			if verbose {
				fmt.Fprintf(output, "  %s\n", reason)
			}
		} else {
			numSucceed++
			fmt.Fprintf(output, "succeed: %03d %s\n", key, reg)
		}

		return nil
	}

	_, err = db.SelectKeys(onSelect, keys...)
	if err != nil && !curated.Is(err, stopped) {
		return err
	}

	fmt.Fprintf(output, "regression tests: %d succeed, %d fail", numSucceed, numFail+numError)
	if numError > 0 {
		fmt.Fprintf(output, " [with errors]")
	}
	fmt.Fprintf(output, "\n")

	if numFail+numError > 0 {
		return curated.Errorf(RegressionFail, numFail+numError, numSucceed+numFail+numError)
	}

	return nil
}
