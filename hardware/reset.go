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
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/logger"
)

// Reset the core. Every domain's reset signal is asserted and the core is
// evaluated. If configured, the reset pulse domain is clocked while the
// resets are held. The resets are then deasserted together and the core is
// evaluated again.
//
// The harness must be in the Reset state and is left in the Running state.
func (h *Harness) Reset() error {
	if h.state != govern.Reset {
		return curated.Errorf(InvalidState, "reset", h.state)
	}

	if h.env.IsMain() {
		logger.Logf(h.env, logTag, "profile %s (%s mode)", h.env.Profile, h.env.Mode)
	} else if h.env != nil {
		logger.Logf(h.env, logTag, "profile %s (%s)", h.env.Profile, h.env.Label)
	}
	for _, d := range h.Scheduler.Domains() {
		logger.Logf(h.env, logTag, "%s: %.3f KHz, half period %d %s",
			d.Name, float64(d.Freq)/1000, d.HalfPeriod, h.Scheduler.Resolution())
	}

	h.Scheduler.SetResets(true)
	if err := core.Evaluate(h.Core); err != nil {
		return err
	}

	for i := 0; i < h.cfg.ResetPulses; i++ {
		if err := h.Scheduler.Pulse(h.cfg.ResetPulseDomain); err != nil {
			return err
		}
	}

	h.Scheduler.SetResets(false)
	if err := core.Evaluate(h.Core); err != nil {
		return err
	}

	h.state = govern.Running

	return nil
}
