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
	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/debugger/govern"
)

// It can be expensive to do a full continue check every tick.
//
// It depends on context whether it is used or not but the PerformanceBrake is
// a standard value that can be used to filter out expensive code paths within
// a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 1000

// Done returns true if the time budget has been exhausted or if the core has
// reported that it has finished.
func (h *Harness) Done() bool {
	if h.cfg.Budget > 0 && h.Scheduler.Now() >= h.cfg.Budget {
		return true
	}
	return h.Core.Finished()
}

// Run the harness until Done() is true or until the continueCheck function
// returns the Ending state. The continueCheck function is called after every
// tick and can be nil.
//
// If the harness is still in the Reset state then Reset() is called first.
func (h *Harness) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	if h.state == govern.Reset {
		if err := h.Reset(); err != nil {
			return err
		}
	}

	if h.state != govern.Running {
		return curated.Errorf(InvalidState, "run", h.state)
	}

	var err error

	state := govern.Running

	for state != govern.Ending {
		switch state {
		case govern.Running, govern.Stepping:
			if h.Done() {
				return nil
			}
			if err := h.Step(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf(UnsupportedState, state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}
