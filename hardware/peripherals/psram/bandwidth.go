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

package psram

import "fmt"

// Bandwidth counts the number of active edges on which the memory controller
// of the core was idle and the number on which it was busy. The sum of the two
// is the number of samples taken.
type Bandwidth struct {
	Idle uint64
	Busy uint64
}

func (b *Bandwidth) sample(idle bool) {
	if idle {
		b.Idle++
	} else {
		b.Busy++
	}
}

// Samples returns the total number of samples.
func (b Bandwidth) Samples() uint64 {
	return b.Idle + b.Busy
}

// PercentUsed returns the percentage of samples for which the memory
// controller was busy. Zero if no samples have been taken.
func (b Bandwidth) PercentUsed() float64 {
	if b.Samples() == 0 {
		return 0
	}
	return 100.0 * float64(b.Busy) / float64(b.Samples())
}

func (b Bandwidth) String() string {
	return fmt.Sprintf("RAM bandwidth: idle: %d, !idle: %d, percent_used: %f", b.Idle, b.Busy, b.PercentUsed())
}
