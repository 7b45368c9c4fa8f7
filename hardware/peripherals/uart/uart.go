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

// Package uart captures the serial output of the core. Every byte the core
// strobes onto its UART write port is forwarded immediately, and in order, to
// an io.Writer.
package uart

import (
	"io"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/logger"
)

const logTag = "uart"

// Signals names the core signals used by the emulator.
type Signals struct {
	Strobe string
	Data   string
}

// DefaultSignals returns the signal names used by the SoC designs.
func DefaultSignals() Signals {
	return Signals{
		Strobe: "uart0_w_stb",
		Data:   "uart0_w_data",
	}
}

// Config for the serial capture.
type Config struct {
	// the clock domain of the UART write port
	Domain string

	Signals Signals
}

// Sentinal error patterns.
const (
	WriteError = "uart: %v"
)

// Capture is the serial capture emulator.
type Capture struct {
	env *environment.Environment
	c   core.Core

	strobe core.Signal
	data   core.Signal

	out []io.Writer
	buf [1]byte

	// number of bytes captured
	Bytes uint64
}

// NewCapture is the preferred method of initialisation for the Capture type.
// Captured bytes are written to every writer in the list.
func NewCapture(env *environment.Environment, cfg Config, c core.Core, out ...io.Writer) (*Capture, error) {
	sigs, err := core.Resolve(c, cfg.Signals.Strobe, cfg.Signals.Data)
	if err != nil {
		return nil, curated.Errorf("uart: %v", err)
	}

	logger.Logf(env, logTag, "capturing serial output on domain (%s)", cfg.Domain)

	return &Capture{
		env:    env,
		c:      c,
		strobe: sigs[0],
		data:   sigs[1],
		out:    out,
	}, nil
}

// Service the write port. Should be attached to the active edge of the UART's
// clock domain.
func (u *Capture) Service(_ clocks.Transition) error {
	if !core.GetBool(u.c, u.strobe) {
		return nil
	}

	u.buf[0] = uint8(u.c.Get(u.data))
	u.Bytes++

	for _, w := range u.out {
		if _, err := w.Write(u.buf[:]); err != nil {
			return curated.Errorf(WriteError, err)
		}
	}

	return nil
}
