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

import (
	"fmt"
)

// Fault is raised by a peripheral when the core drives the bus in a way that
// cannot be serviced. For example, an address outside of the backing store.
//
// A fault is recoverable in the sense that the peripheral has not altered any
// state as a result of the access. The harness stops the current run and
// returns the fault to the caller.
type Fault struct {
	// the peripheral that raised the fault
	Peripheral string

	// the offending address
	Address uint32

	// simulated time at which the fault happened
	Time uint64

	Detail string
}

func (f Fault) Error() string {
	return fmt.Sprintf("%s: fault at address %#08x (time %d): %s", f.Peripheral, f.Address, f.Time, f.Detail)
}
