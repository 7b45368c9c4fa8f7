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

// Package core defines the interface between the harness and the digital core
// being simulated. The core is opaque. The harness only knows the names of the
// signals the core exposes and that calling Evaluate() propagates any changed
// inputs through the design.
//
// Signal names are resolved once, at harness creation, into Signal handles.
// An unknown name is therefore a configuration error that is reported before
// simulation starts rather than on some later clock edge.
package core

import "github.com/jetsetilly/gatesim/curated"

// Signal is a handle to a named port of the core. Signal values are only
// meaningful to the Core that returned them.
type Signal int

// NoSignal is the zero value of an optional signal that has not been
// configured.
const NoSignal Signal = -1

// Sentinal error patterns.
const (
	UnknownSignal = "core: unknown signal (%s)"
	EvaluateError = "core: evaluate: %v"
)

// Core is the interface to the opaque model of the digital core.
//
// Evaluate() is the only state changing function. It must be idempotent when
// inputs have not changed since the previous call. Implementations need not
// be safe for concurrent use: the harness never calls any of these functions
// concurrently.
type Core interface {
	// Lookup a signal by name
	Lookup(name string) (Signal, error)

	// Set the value of an input signal. The value is truncated to the width
	// of the signal.
	Set(sig Signal, value uint64)

	// Get the value of a signal.
	Get(sig Signal) uint64

	// Evaluate the core with the current input values.
	Evaluate() error

	// Finished returns true if the core has reached a terminal condition. The
	// equivalent of $finish in an HDL testbench.
	Finished() bool

	// Signals returns the names of every observable signal in the core. The
	// order of the list is stable for the lifetime of the core.
	Signals() []string
}

// Resolve looks up a list of signal names. Empty names resolve to NoSignal,
// which allows peripherals to have optional signals.
func Resolve(c Core, names ...string) ([]Signal, error) {
	sigs := make([]Signal, len(names))
	for i, n := range names {
		if n == "" {
			sigs[i] = NoSignal
			continue
		}
		s, err := c.Lookup(n)
		if err != nil {
			return nil, err
		}
		sigs[i] = s
	}
	return sigs, nil
}

// SetBool is a convenience function for setting single bit signals.
func SetBool(c Core, sig Signal, v bool) {
	if v {
		c.Set(sig, 1)
	} else {
		c.Set(sig, 0)
	}
}

// GetBool is a convenience function for reading single bit signals.
func GetBool(c Core, sig Signal) bool {
	return c.Get(sig) != 0
}

// SetSigned sets a two's complement value of the specified width.
func SetSigned(c Core, sig Signal, v int64, width int) {
	c.Set(sig, uint64(v)&Mask(width))
}

// Mask returns the bit mask for a signal of the specified width.
func Mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// Evaluate calls the Evaluate() function of the core and curates any error.
func Evaluate(c Core) error {
	if err := c.Evaluate(); err != nil {
		return curated.Errorf(EvaluateError, err)
	}
	return nil
}
