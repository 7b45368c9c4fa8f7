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

package uart_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/hardware/peripherals/uart"
	"github.com/jetsetilly/gatesim/test"
)

func newCore() *core.Passive {
	return core.NewPassive(map[string]int{"uart0_w_stb": 1, "uart0_w_data": 8}, "uart0_w_stb", "uart0_w_data")
}

func TestCapture(t *testing.T) {
	c := newCore()
	var a, b test.CompareWriter
	u, err := uart.NewCapture(nil, uart.Config{Domain: "sync", Signals: uart.DefaultSignals()}, c, &a, &b)
	test.DemandSuccess(t, err)

	stb := c.MustLookup("uart0_w_stb")
	data := c.MustLookup("uart0_w_data")

	for _, ch := range []byte("hello\n") {
		c.Set(data, uint64(ch))
		core.SetBool(c, stb, true)
		test.DemandSuccess(t, u.Service(clocks.Transition{}))

		// data without the strobe is not captured
		c.Set(data, 'x')
		core.SetBool(c, stb, false)
		test.DemandSuccess(t, u.Service(clocks.Transition{}))
	}

	test.ExpectSuccess(t, a.Compare("hello\n"))
	test.ExpectSuccess(t, b.Compare("hello\n"))
	test.ExpectEquality(t, u.Bytes, uint64(6))
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWriteError(t *testing.T) {
	c := newCore()
	u, err := uart.NewCapture(nil, uart.Config{Signals: uart.DefaultSignals()}, c, failWriter{})
	test.DemandSuccess(t, err)
	core.SetBool(c, c.MustLookup("uart0_w_stb"), true)
	test.ExpectSuccess(t, curated.Is(u.Service(clocks.Transition{}), uart.WriteError))
}

func TestUnknownSignal(t *testing.T) {
	c := newCore()
	_, err := uart.NewCapture(nil, uart.Config{Signals: uart.Signals{Strobe: "stb", Data: "uart0_w_data"}}, c)
	test.ExpectSuccess(t, curated.Has(err, core.UnknownSignal))
}
