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

// Package hardware is the base package for the co-simulation harness. The
// Harness type drives a core through simulated time, connecting the
// peripheral emulators found in the peripherals sub-packages to the core's
// signals.
//
// A Harness is created from a Config. The Config lists the clock domains of
// the core and the peripherals that are to be emulated. Any peripheral that is
// not configured is simply not emulated. Creating the Harness allocates every
// backing store, loads the firmware image and resolves every signal name, so
// configuration errors are reported before any simulated time has elapsed.
//
// The life of a harness is:
//
//	h, err := hardware.NewHarness(env, cfg, core, sinks)
//	err = h.Reset()
//	err = h.Run(nil)
//	report, err := h.Finish()
//
// Run() stops when the time budget is exhausted or when the core reports that
// it has finished. Neither condition is an error. An access by the core
// outside of a peripheral's backing store causes Run() to return a
// core.Fault. The harness remains in the Running state and Run() can be called
// again if the fault is not considered fatal.
package hardware
