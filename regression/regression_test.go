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

package regression_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/database"
	"github.com/jetsetilly/gatesim/regression"
	"github.com/jetsetilly/gatesim/test"
)

func TestDigestMode(t *testing.T) {
	for _, m := range []regression.DigestMode{
		regression.DigestVideo,
		regression.DigestSerial,
		regression.DigestAudio,
		regression.DigestAll,
	} {
		p, err := regression.ParseDigestMode(strings.ToUpper(m.String()))
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, m)
	}

	_, err := regression.ParseDigestMode("both")
	test.ExpectSuccess(t, curated.Is(err, regression.UnknownDigestMode))
}

func TestAddAndRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")
	w := &strings.Builder{}

	// nothing to list or run before the first entry is added
	err := regression.RegressList(w, db)
	test.ExpectSuccess(t, curated.Is(err, database.NotAvailable))

	reg := &regression.RunRegression{
		Profile: "selftest",
		Budget:  20000,
		Mode:    regression.DigestAll,
		Notes:   "short run, with notes",
	}
	test.DemandSuccess(t, regression.RegressAdd(w, db, reg))
	test.ExpectEquality(t, w.String(), "added: 000 [run] selftest budget=20000 [all] \"short run, with notes\"\n")

	w.Reset()
	test.ExpectSuccess(t, regression.RegressList(w, db))
	test.ExpectEquality(t, w.String(), "000 [run] selftest budget=20000 [all] \"short run, with notes\"\nTotal: 1\n")

	w.Reset()
	test.ExpectSuccess(t, regression.RegressRun(w, db, true, false, nil))
	test.ExpectEquality(t, w.String(), "succeed: 000 [run] selftest budget=20000 [all] \"short run, with notes\"\nregression tests: 1 succeed, 0 fail\n")

	w.Reset()
	err = regression.RegressRun(w, db, false, false, []string{"1"})
	test.ExpectSuccess(t, curated.Is(err, database.KeyNotFound))

	w.Reset()
	err = regression.RegressRun(w, db, false, false, []string{"x"})
	test.ExpectSuccess(t, curated.Is(err, regression.InvalidKey))
}

func TestFailure(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")

	// the video digest is wrong but only the audio digest of the first entry
	// is compared
	reg := &regression.RunRegression{Profile: "selftest", Budget: 10000, Mode: regression.DigestAudio}
	test.DemandSuccess(t, regression.RegressAdd(&strings.Builder{}, db, reg))

	b, err := os.ReadFile(db)
	test.DemandSuccess(t, err)
	fields := strings.Split(strings.TrimSpace(string(b)), ",")
	test.DemandEquality(t, len(fields), 10)
	fields[6] = "bogus"

	entries := strings.Join(fields, ",") + "\n"
	fields[0] = "001"
	fields[5] = "video"
	entries += strings.Join(fields, ",") + "\n"
	test.DemandSuccess(t, os.WriteFile(db, []byte(entries), 0600))

	w := &strings.Builder{}
	err = regression.RegressRun(w, db, true, false, nil)
	test.ExpectSuccess(t, curated.Is(err, regression.RegressionFail))
	test.ExpectEquality(t, w.String(), "succeed: 000 [run] selftest budget=10000 [audio]\n"+
		"failure: 001 [run] selftest budget=10000 [video]\n"+
		"  video digest mismatch\n"+
		"regression tests: 1 succeed, 1 fail\n")

	w.Reset()
	test.ExpectSuccess(t, regression.RegressRun(w, db, false, false, []string{"0"}))
}

func TestError(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")
	entries := "000,run,nosuchprofile,,1000,all,,,,\n001,run,selftest,,1000,all,,,,\n"
	test.DemandSuccess(t, os.WriteFile(db, []byte(entries), 0600))

	w := &strings.Builder{}
	err := regression.RegressRun(w, db, false, true, nil)
	test.ExpectSuccess(t, curated.Is(err, regression.RegressionFail))
	test.ExpectEquality(t, w.String(), "  ERROR: 000 [run] nosuchprofile budget=1000 [all]\nregression tests: 0 succeed, 1 fail [with errors]\n")
}

func TestDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")
	reg := &regression.RunRegression{Profile: "selftest", Budget: 1000, Mode: regression.DigestVideo}
	test.DemandSuccess(t, regression.RegressAdd(&strings.Builder{}, db, reg))

	w := &strings.Builder{}
	test.ExpectSuccess(t, regression.RegressDelete(w, strings.NewReader("n\n"), db, "0"))
	test.ExpectEquality(t, w.String(), "[run] selftest budget=1000 [video]\ndelete? (y/n): ")

	w.Reset()
	test.ExpectSuccess(t, regression.RegressDelete(w, strings.NewReader("y\n"), db, "0"))
	test.ExpectEquality(t, w.String(), "[run] selftest budget=1000 [video]\ndelete? (y/n): deleted test #0 from regression database\n")

	w.Reset()
	test.ExpectSuccess(t, regression.RegressList(w, db))
	test.ExpectEquality(t, w.String(), "database is empty\n")

	err := regression.RegressDelete(w, strings.NewReader("y\n"), db, "0")
	test.ExpectSuccess(t, curated.Is(err, database.KeyNotFound))

	err = regression.RegressDelete(w, strings.NewReader("y\n"), db, "zero")
	test.ExpectSuccess(t, curated.Is(err, regression.InvalidKey))
}
