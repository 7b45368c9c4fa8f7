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
	"strings"

	"github.com/jetsetilly/gatesim/curated"
)

// DigestMode specifies which digests are compared when the regression entry
// is run.
type DigestMode int

// Valid digest modes. Use String() and ParseDigestMode() to convert to and
// from string representations.
const (
	DigestUndefined DigestMode = iota
	DigestVideo
	DigestSerial
	DigestAudio
	DigestAll
)

// UnknownDigestMode is returned by ParseDigestMode().
const UnknownDigestMode = "regression: invalid digest mode (%s)"

func (mode DigestMode) String() string {
	switch mode {
	case DigestVideo:
		return "video"
	case DigestSerial:
		return "serial"
	case DigestAudio:
		return "audio"
	case DigestAll:
		return "all"
	}
	return "undefined"
}

// ParseDigestMode converts string to DigestMode represenation.
func ParseDigestMode(mode string) (DigestMode, error) {
	switch strings.ToLower(mode) {
	case "video":
		return DigestVideo, nil
	case "serial":
		return DigestSerial, nil
	case "audio":
		return DigestAudio, nil
	case "all":
		return DigestAll, nil
	}
	return DigestUndefined, curated.Errorf(UnknownDigestMode, mode)
}

// compares video digests.
func (mode DigestMode) video() bool {
	return mode == DigestVideo || mode == DigestAll
}

// compares serial digests.
func (mode DigestMode) serial() bool {
	return mode == DigestSerial || mode == DigestAll
}

// compares audio digests.
func (mode DigestMode) audio() bool {
	return mode == DigestAudio || mode == DigestAll
}
