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
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/logger"
	"github.com/shirou/gopsutil/v3/mem"
)

// Required returns the number of bytes of host memory needed for the backing
// stores of the configured peripherals.
func (cfg Config) Required() uint64 {
	var n uint64
	if cfg.PSRAM != nil {
		n += uint64(cfg.PSRAM.Size)
	}
	if cfg.SPIFlash != nil {
		n += uint64(cfg.SPIFlash.Size)
	}
	if cfg.DVI != nil && cfg.DVI.Width > 0 && cfg.DVI.Height > 0 {
		n += uint64(cfg.DVI.Width) * uint64(cfg.DVI.Height) * uint64(len(cfg.DVI.Signals.Channels))
	}
	return n
}

// checkMemory makes sure the host has enough memory available for the
// backing stores. if the amount of available memory can not be determined the
// check passes.
func checkMemory(env *environment.Environment, cfg Config) error {
	required := cfg.Required()

	vm, err := mem.VirtualMemory()
	if err != nil {
		logger.Logf(env, logTag, "cannot determine available memory: %v", err)
		return nil
	}

	if required > vm.Available {
		return curated.Errorf(ResourceExhausted, required, vm.Available)
	}

	logger.Logf(env, logTag, "%d bytes required for backing stores (%d available)", required, vm.Available)

	return nil
}
