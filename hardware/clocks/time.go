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

package clocks

import (
	"fmt"
	"time"
)

// Time is simulated time in units of the scheduler's Resolution.
type Time uint64

// Resolution is the number of time units in one second of simulated time.
type Resolution uint64

// List of common resolutions.
const (
	Nanosecond Resolution = 1e9
	Picosecond Resolution = 1e12
)

// FromDuration converts a wall clock duration into simulated time.
func (r Resolution) FromDuration(d time.Duration) Time {
	// time.Duration is in nanoseconds
	switch {
	case r == Nanosecond:
		return Time(d)
	case r > Nanosecond:
		return Time(uint64(d) * uint64(r/Nanosecond))
	}
	return Time(uint64(d) / uint64(Nanosecond/r))
}

// Seconds converts simulated time into seconds.
func (r Resolution) Seconds(t Time) float64 {
	return float64(t) / float64(r)
}

func (r Resolution) String() string {
	switch r {
	case Nanosecond:
		return "ns"
	case Picosecond:
		return "ps"
	}
	return fmt.Sprintf("1/%ds", uint64(r))
}

// Freq is a frequency in Hz.
type Freq uint64

// Units of frequency.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
)

func (f Freq) String() string {
	return fmt.Sprintf("%.3fMHz", float64(f)/float64(MHz))
}

// HalfPeriod returns the number of time units in half a cycle of the
// frequency. The value is truncated. A zero return value means that the
// frequency is too high to be represented at the resolution.
func HalfPeriod(r Resolution, f Freq) Time {
	if f == 0 {
		return 0
	}
	return Time(uint64(r) / (2 * uint64(f)))
}
