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
	"errors"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/logger"
)

// Step advances the harness by a single tick. If tracing is enabled the core
// is snapshotted once the tick is complete.
//
// A fault in a peripheral is recorded and returned. The tick is still
// completed and the harness remains in the Running state.
func (h *Harness) Step() error {
	if h.state != govern.Running {
		return curated.Errorf(InvalidState, "step", h.state)
	}

	_, err := h.Scheduler.Step()
	if err != nil {
		var f core.Fault
		if !errors.As(err, &f) {
			return err
		}
		h.Faults = append(h.Faults, f)
		logger.Log(h.env, logTag, f.Error())
	}

	if h.Tracer != nil {
		if terr := h.Tracer.Snapshot(h.Scheduler.Now()); terr != nil {
			return terr
		}
	}

	return err
}
