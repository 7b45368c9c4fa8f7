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

package firmwareloader

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/jetsetilly/gatesim/curated"
)

// Sentinal error patterns.
const (
	LoaderError       = "firmwareloader: %v"
	UnsupportedScheme = "firmwareloader: unsupported URL scheme (%s)"
	UnexpectedHash    = "firmwareloader: unexpected hash value (%s)"
	NoFilename        = "firmwareloader: no filename"
)

// Loader specifies the image to load.
type Loader struct {
	// filename or URL of the image
	Filename string

	// expected hash of the loaded image. empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() will not reload
	// the data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: strings.TrimSpace(filename),
	}
}

// ShortName returns the filename of the image without the path or extension.
func (ld Loader) ShortName() string {
	n := path.Base(ld.Filename)
	return strings.TrimSuffix(n, path.Ext(ld.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return ld.Data != nil
}

// Load the image data. Filenames with a URL scheme of http or https are
// fetched over the network. All other filenames are loaded from the local
// filesystem.
func (ld *Loader) Load() error {
	if ld.Data != nil {
		return nil
	}

	if ld.Filename == "" {
		return curated.Errorf(NoFilename)
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil && len(u.Scheme) > 1 {
		// a single letter scheme is a windows drive letter
		scheme = u.Scheme
	}

	var data []byte

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf(LoaderError, resp.Status)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}

	case "file":
		data, err = os.ReadFile(ld.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}

	default:
		return curated.Errorf(UnsupportedScheme, scheme)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf(UnexpectedHash, hash)
	}

	// make sure an empty file still counts as loaded
	if data == nil {
		data = []byte{}
	}

	ld.Hash = hash
	ld.Data = data

	return nil
}

// Reader returns a new io.ReadSeeker for the loaded data. Returns nil if the
// data has not been loaded.
func (ld Loader) Reader() *bytes.Reader {
	if ld.Data == nil {
		return nil
	}
	return bytes.NewReader(ld.Data)
}
