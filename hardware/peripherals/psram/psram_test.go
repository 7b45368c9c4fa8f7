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

package psram_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/hardware/peripherals/psram"
	"github.com/jetsetilly/gatesim/test"
)

var widths = map[string]int{
	"clk_sync":    1,
	"read_ready":  1,
	"write_ready": 1,
	"idle":        1,
}

func newCore() *core.Passive {
	return core.NewPassive(widths, "clk_sync", "read_ready", "write_ready",
		"address_ptr", "read_data_view", "write_data", "idle")
}

func newPSRAM(t *testing.T, c core.Core, size uint32) *psram.PSRAM {
	t.Helper()
	env := environment.NewEnvironment("test", "")
	env.Quiet = true
	p, err := psram.NewPSRAM(env, psram.Config{
		Domain:    "sync",
		Size:      size,
		Signals:   psram.DefaultSignals(),
		Bandwidth: true,
	}, c)
	test.DemandSuccess(t, err)
	return p
}

// write word W to address A on one active edge and read it back on the next
func roundTrip(t *testing.T, c *core.Passive, p *psram.PSRAM, addr uint32, w uint32) uint32 {
	t.Helper()

	c.Set(c.MustLookup("address_ptr"), uint64(addr))
	c.Set(c.MustLookup("write_data"), uint64(w))
	core.SetBool(c, c.MustLookup("write_ready"), true)
	core.SetBool(c, c.MustLookup("read_ready"), false)
	test.DemandSuccess(t, p.Service(clocks.Transition{Time: 1}))

	core.SetBool(c, c.MustLookup("write_ready"), false)
	core.SetBool(c, c.MustLookup("read_ready"), true)
	test.DemandSuccess(t, p.Service(clocks.Transition{Time: 2}))

	return uint32(c.Get(c.MustLookup("read_data_view")))
}

func TestRoundTrip(t *testing.T) {
	c := newCore()
	p := newPSRAM(t, c, 1024)

	for _, w := range []uint32{0, 1, 0xff, 0x100, 0xdeadbeef, 0x7fffffff, 0x80000000, 0xffffffff} {
		for _, a := range []uint32{0, 4, 512, 1020} {
			test.ExpectEquality(t, roundTrip(t, c, p, a, w), w)
		}
	}

	rnd := rand.New(rand.NewSource(2600))
	for i := 0; i < 1000; i++ {
		w := rnd.Uint32()
		a := uint32(rnd.Intn(256)) * 4
		test.ExpectEquality(t, roundTrip(t, c, p, a, w), w)
	}
}

func TestLittleEndian(t *testing.T) {
	c := newCore()
	p := newPSRAM(t, c, 16)

	roundTrip(t, c, p, 4, 0x11223344)

	// reading from an unaligned address shows the byte order
	test.DemandSuccess(t, p.Poke(8, 0x55667788))
	w, err := p.Peek(5)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, w, uint32(0x88112233))
}

func TestEvaluateAfterAccess(t *testing.T) {
	c := newCore()
	p := newPSRAM(t, c, 16)

	core.SetBool(c, c.MustLookup("write_ready"), true)
	core.SetBool(c, c.MustLookup("read_ready"), true)
	n := c.Evaluations
	test.DemandSuccess(t, p.Service(clocks.Transition{}))
	test.ExpectEquality(t, c.Evaluations, n+2)
	test.ExpectEquality(t, p.Reads, uint64(1))
	test.ExpectEquality(t, p.Writes, uint64(1))

	// no access, no evaluation
	core.SetBool(c, c.MustLookup("write_ready"), false)
	core.SetBool(c, c.MustLookup("read_ready"), false)
	test.DemandSuccess(t, p.Service(clocks.Transition{}))
	test.ExpectEquality(t, c.Evaluations, n+2)
}

func TestOutOfRange(t *testing.T) {
	c := newCore()
	p := newPSRAM(t, c, 16)
	test.DemandSuccess(t, p.Poke(12, 0xaabbccdd))

	c.Set(c.MustLookup("address_ptr"), 14)
	c.Set(c.MustLookup("write_data"), 0x12345678)
	core.SetBool(c, c.MustLookup("write_ready"), true)

	err := p.Service(clocks.Transition{Time: 1000})
	var f core.Fault
	test.DemandSuccess(t, errors.As(err, &f))
	test.ExpectEquality(t, f.Address, uint32(14))
	test.ExpectEquality(t, f.Time, uint64(1000))
	test.ExpectEquality(t, f.Peripheral, "psram")

	// memory is unchanged
	w, err := p.Peek(12)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, w, uint32(0xaabbccdd))

	// address beyond 32bit boundary arithmetic
	c.Set(c.MustLookup("address_ptr"), 0xfffffffe)
	test.ExpectFailure(t, p.Service(clocks.Transition{}))
}

func TestZeroSize(t *testing.T) {
	_, err := psram.NewPSRAM(nil, psram.Config{Signals: psram.DefaultSignals()}, newCore())
	test.ExpectFailure(t, err)
}

func TestBandwidth(t *testing.T) {
	for _, ticks := range []int{0, 1, 7, 100, 1234} {
		c := newCore()
		p := newPSRAM(t, c, 16)
		idle := c.MustLookup("idle")

		s, err := clocks.NewScheduler(c, clocks.Nanosecond, 1)
		test.DemandSuccess(t, err)
		d, err := s.AddDomain(clocks.Spec{Name: "sync", Freq: 50 * clocks.MHz, Clock: "clk_sync"})
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, s.Attach("sync", p.Service))

		// the core is idle on every third tick
		for i := 0; i < ticks; i++ {
			core.SetBool(c, idle, i%3 == 0)
			_, err := s.Step()
			test.DemandSuccess(t, err)
		}

		activeEdges := (d.Toggles() + 1) / 2
		test.ExpectEquality(t, p.Bandwidth.Idle+p.Bandwidth.Busy, activeEdges, ticks)
		test.ExpectEquality(t, p.Bandwidth.Samples(), activeEdges, ticks)
	}

	b := psram.Bandwidth{Idle: 3, Busy: 1}
	test.ExpectApproximate(t, b.PercentUsed(), 25.0, 0.0001)
	test.ExpectEquality(t, psram.Bandwidth{}.PercentUsed(), 0.0)
}
