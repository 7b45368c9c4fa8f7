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

package firmwareloader_test

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/firmwareloader"
	"github.com/jetsetilly/gatesim/test"
)

var image = []byte("gatesim firmware\x00\x01\x02\x03")

func writeImage(t *testing.T) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "firmware.bin")
	test.DemandSuccess(t, os.WriteFile(fn, image, 0o644))
	return fn
}

func TestLoadFile(t *testing.T) {
	ld := firmwareloader.NewLoader(writeImage(t))
	test.ExpectEquality(t, ld.ShortName(), "firmware")
	test.ExpectFailure(t, ld.HasLoaded())

	test.DemandSuccess(t, ld.Load())
	test.ExpectSuccess(t, ld.HasLoaded())
	test.ExpectEquality(t, string(ld.Data), string(image))
	test.ExpectEquality(t, ld.Hash, fmt.Sprintf("%x", sha1.Sum(image)))

	b, err := io.ReadAll(ld.Reader())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), string(image))
}

func TestMissingFile(t *testing.T) {
	ld := firmwareloader.NewLoader(filepath.Join(t.TempDir(), "missing.bin"))
	err := ld.Load()
	test.ExpectSuccess(t, curated.Is(err, firmwareloader.LoaderError))
	test.ExpectFailure(t, ld.HasLoaded())
	test.ExpectEquality(t, ld.Reader() == nil, true)

	ld = firmwareloader.NewLoader("")
	test.ExpectSuccess(t, curated.Is(ld.Load(), firmwareloader.NoFilename))
}

func TestHash(t *testing.T) {
	ld := firmwareloader.NewLoader(writeImage(t))
	ld.Hash = "0000"
	test.ExpectSuccess(t, curated.Is(ld.Load(), firmwareloader.UnexpectedHash))

	ld = firmwareloader.NewLoader(writeImage(t))
	ld.Hash = fmt.Sprintf("%x", sha1.Sum(image))
	test.ExpectSuccess(t, ld.Load())
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/firmware.bin" {
			http.NotFound(w, r)
			return
		}
		w.Write(image)
	}))
	defer srv.Close()

	ld := firmwareloader.NewLoader(srv.URL + "/firmware.bin")
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, string(ld.Data), string(image))

	ld = firmwareloader.NewLoader(srv.URL + "/missing.bin")
	test.ExpectSuccess(t, curated.Is(ld.Load(), firmwareloader.LoaderError))
}

func TestUnsupportedScheme(t *testing.T) {
	ld := firmwareloader.NewLoader("ftp://example.com/firmware.bin")
	test.ExpectSuccess(t, curated.Is(ld.Load(), firmwareloader.UnsupportedScheme))
}
