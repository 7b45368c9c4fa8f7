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

package core

import "github.com/jetsetilly/gatesim/curated"

// Bank is a list of named signals with fixed widths. It is intended to be
// embedded in implementations of the Core interface and supplies the Lookup(),
// Set(), Get() and Signals() functions.
type Bank struct {
	names  []string
	index  map[string]Signal
	values []uint64
	masks  []uint64
}

// NewBank is the preferred method of initialisation for the Bank type.
func NewBank() *Bank {
	return &Bank{
		index: make(map[string]Signal),
	}
}

// Define a new signal of the specified width. Defining a name for a second
// time returns the existing signal.
func (b *Bank) Define(name string, width int) Signal {
	if s, ok := b.index[name]; ok {
		return s
	}
	s := Signal(len(b.names))
	b.names = append(b.names, name)
	b.values = append(b.values, 0)
	b.masks = append(b.masks, Mask(width))
	b.index[name] = s
	return s
}

// Lookup implements the Core interface.
func (b *Bank) Lookup(name string) (Signal, error) {
	if s, ok := b.index[name]; ok {
		return s, nil
	}
	return NoSignal, curated.Errorf(UnknownSignal, name)
}

// Set implements the Core interface. Setting NoSignal does nothing.
func (b *Bank) Set(sig Signal, value uint64) {
	if sig == NoSignal {
		return
	}
	b.values[sig] = value & b.masks[sig]
}

// Get implements the Core interface. NoSignal is always zero.
func (b *Bank) Get(sig Signal) uint64 {
	if sig == NoSignal {
		return 0
	}
	return b.values[sig]
}

// Signals implements the Core interface.
func (b *Bank) Signals() []string {
	return b.names
}
