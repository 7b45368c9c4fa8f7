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

package hardware

import (
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
)

// DomainState is the state of a clock domain at the time of a snapshot.
type DomainState struct {
	Name    string
	Level   bool
	Toggles uint64
}

// Signal is the value of a core signal at the time of a snapshot.
type Signal struct {
	Name  string
	Value uint64
}

// PeripheralState records the activity of the peripherals at the time of a
// snapshot.
type PeripheralState struct {
	Reads       uint64
	Writes      uint64
	Frames      int
	SerialBytes uint64
	Samples     uint64
}

// State is a copy of the observable state of the harness. It is produced by
// the Snapshot() function and shares no memory with the harness.
type State struct {
	Time        clocks.Time
	State       govern.State
	Domains     []DomainState
	Peripherals PeripheralState
	Signals     []Signal
	Faults      []core.Fault
}

// Snapshot the observable state of the harness.
func (h *Harness) Snapshot() *State {
	s := &State{
		Time:  h.Scheduler.Now(),
		State: h.state,
	}

	for _, d := range h.Scheduler.Domains() {
		s.Domains = append(s.Domains, DomainState{
			Name:    d.Name,
			Level:   d.Level(),
			Toggles: d.Toggles(),
		})
	}

	if h.PSRAM != nil {
		s.Peripherals.Reads = h.PSRAM.Reads
		s.Peripherals.Writes = h.PSRAM.Writes
	}
	if h.DVI != nil {
		s.Peripherals.Frames = h.DVI.Frames()
	}
	if h.UART != nil {
		s.Peripherals.SerialBytes = h.UART.Bytes
	}
	if h.I2S != nil {
		s.Peripherals.Samples = h.I2S.Samples()
	}

	for _, n := range h.Core.Signals() {
		sig, err := h.Core.Lookup(n)
		if err != nil {
			continue
		}
		s.Signals = append(s.Signals, Signal{Name: n, Value: h.Core.Get(sig)})
	}

	s.Faults = make([]core.Fault, len(h.Faults))
	copy(s.Faults, h.Faults)

	return s
}
