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

//go:build !unix

package easyterm

import (
	"errors"
	"os"
)

// Terminal is not supported on this platform.
type Terminal struct{}

// NewTerminal always returns an error on this platform.
func NewTerminal(input *os.File) (*Terminal, error) {
	return nil, errors.New("easyterm: terminal modes not supported on this platform")
}

// CanonicalMode is a stub.
func (pt *Terminal) CanonicalMode() error { return nil }

// CBreakMode is a stub.
func (pt *Terminal) CBreakMode() error { return nil }

// RawMode is a stub.
func (pt *Terminal) RawMode() error { return nil }

// Flush is a stub.
func (pt *Terminal) Flush() error { return nil }
