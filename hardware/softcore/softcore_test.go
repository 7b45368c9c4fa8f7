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

package softcore_test

import (
	"testing"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/hardware/softcore"
	"github.com/jetsetilly/gatesim/test"
)

func lookup(t *testing.T, c core.Core, name string) core.Signal {
	t.Helper()
	s, err := c.Lookup(name)
	test.DemandSuccess(t, err)
	return s
}

// cycle the named clock through a full period. the core is evaluated after
// each toggle
func cycle(t *testing.T, c core.Core, clk core.Signal) {
	t.Helper()
	for i := 0; i < 2; i++ {
		core.SetBool(c, clk, !core.GetBool(c, clk))
		test.DemandSuccess(t, c.Evaluate())
	}
}

func TestConfiguration(t *testing.T) {
	_, err := softcore.New(softcore.Config{Width: 0, Height: 10, RingWords: 1})
	test.ExpectSuccess(t, curated.Is(err, softcore.InvalidDisplay))

	_, err = softcore.New(softcore.Config{Width: 10, Height: 10, HTotal: 5, RingWords: 1})
	test.ExpectSuccess(t, curated.Is(err, softcore.InvalidDisplay))

	_, err = softcore.New(softcore.Config{Width: 10, Height: 10})
	test.ExpectSuccess(t, curated.Is(err, softcore.InvalidRing))
}

func TestTimingGenerator(t *testing.T) {
	sc, err := softcore.New(softcore.Config{
		Width: 4, Height: 3, HTotal: 6, VTotal: 5,
		Frames:    2,
		RingWords: 1,
	})
	test.DemandSuccess(t, err)

	clk := lookup(t, sc, "clk_dvi")
	x := lookup(t, sc, "dvi_x")
	y := lookup(t, sc, "dvi_y")

	for f := 0; f < 2; f++ {
		for yy := 0; yy < 5; yy++ {
			for xx := 0; xx < 6; xx++ {
				test.ExpectFailure(t, sc.Finished())
				cycle(t, sc, clk)
				test.ExpectEquality(t, sc.Get(x), uint64(xx))
				test.ExpectEquality(t, sc.Get(y), uint64(yy))
			}
		}
	}
	test.ExpectEquality(t, sc.Frames(), 2)
	test.ExpectSuccess(t, sc.Finished())

	// reset restarts the timing generator
	rst := lookup(t, sc, "rst_dvi")
	core.SetBool(sc, rst, true)
	test.DemandSuccess(t, sc.Evaluate())
	core.SetBool(sc, rst, false)
	test.DemandSuccess(t, sc.Evaluate())
	test.ExpectEquality(t, sc.Frames(), 0)
	test.ExpectFailure(t, sc.Finished())
}

func TestFallingEdge(t *testing.T) {
	sc, err := softcore.New(softcore.Config{
		ActiveEdge: clocks.Falling,
		Width:      4, Height: 3,
		RingWords: 1,
	})
	test.DemandSuccess(t, err)

	clk := lookup(t, sc, "clk_dvi")
	x := lookup(t, sc, "dvi_x")

	// rising edge does nothing
	core.SetBool(sc, clk, true)
	test.DemandSuccess(t, sc.Evaluate())
	core.SetBool(sc, clk, false)
	test.DemandSuccess(t, sc.Evaluate())
	core.SetBool(sc, clk, true)
	test.DemandSuccess(t, sc.Evaluate())
	test.ExpectEquality(t, sc.Get(x), uint64(0))

	// second falling edge moves the coordinate on
	core.SetBool(sc, clk, false)
	test.DemandSuccess(t, sc.Evaluate())
	test.ExpectEquality(t, sc.Get(x), uint64(1))
}

func TestEvaluateIdempotent(t *testing.T) {
	sc, err := softcore.New(softcore.Config{Width: 4, Height: 3, RingWords: 1})
	test.DemandSuccess(t, err)

	clk := lookup(t, sc, "clk_dvi")
	x := lookup(t, sc, "dvi_x")

	cycle(t, sc, clk)
	cycle(t, sc, clk)
	test.ExpectEquality(t, sc.Get(x), uint64(1))
	for i := 0; i < 10; i++ {
		test.DemandSuccess(t, sc.Evaluate())
	}
	test.ExpectEquality(t, sc.Get(x), uint64(1))
}

func TestMemoryEngine(t *testing.T) {
	sc, err := softcore.New(softcore.Config{Width: 4, Height: 3, RingBase: 0x100, RingWords: 2})
	test.DemandSuccess(t, err)

	clk := lookup(t, sc, "clk_sync")
	strobe := lookup(t, sc, "fs_strobe")
	inject0 := lookup(t, sc, "fs_inject0")
	inject1 := lookup(t, sc, "fs_inject1")
	writeReady := lookup(t, sc, "write_ready")
	readReady := lookup(t, sc, "read_ready")
	writeData := lookup(t, sc, "write_data")
	readData := lookup(t, sc, "read_data_view")
	address := lookup(t, sc, "address_ptr")
	idle := lookup(t, sc, "idle")

	test.DemandSuccess(t, sc.Evaluate())
	test.ExpectSuccess(t, core.GetBool(sc, idle))

	for i, addr := range []uint64{0x100, 0x104, 0x100} {
		sc.Set(inject0, uint64(0x1000+i))
		sc.Set(inject1, uint64(0x2000+i))
		core.SetBool(sc, strobe, true)
		cycle(t, sc, clk)
		core.SetBool(sc, strobe, false)

		// write of the sample to the ring
		test.ExpectSuccess(t, core.GetBool(sc, writeReady))
		test.ExpectFailure(t, core.GetBool(sc, readReady))
		test.ExpectFailure(t, core.GetBool(sc, idle))
		test.ExpectEquality(t, sc.Get(address), addr)
		test.ExpectEquality(t, sc.Get(writeData), uint64((0x1000+i)<<16|(0x2000+i)))

		// read back from the same address
		cycle(t, sc, clk)
		test.ExpectFailure(t, core.GetBool(sc, writeReady))
		test.ExpectSuccess(t, core.GetBool(sc, readReady))
		test.ExpectEquality(t, sc.Get(address), addr)
		sc.Set(readData, sc.Get(writeData))

		cycle(t, sc, clk)
		test.ExpectFailure(t, core.GetBool(sc, readReady))
		test.ExpectSuccess(t, core.GetBool(sc, idle))
		test.ExpectEquality(t, uint64(sc.LastRead()), sc.Get(writeData))
	}
}

func TestBanner(t *testing.T) {
	sc, err := softcore.New(softcore.Config{Width: 4, Height: 3, RingWords: 1, BannerAddr: 16})
	test.DemandSuccess(t, err)

	flash := map[uint64]uint32{
		16: 'g' | 'a'<<8 | 't'<<16 | 'e'<<24,
		17: 's' | 'i'<<8 | 'm'<<16,
	}

	clk := lookup(t, sc, "clk_sync")
	addr := lookup(t, sc, "spiflash_addr")
	data := lookup(t, sc, "spiflash_data")
	stb := lookup(t, sc, "uart0_w_stb")
	udata := lookup(t, sc, "uart0_w_data")

	var out []byte
	for i := 0; i < 50; i++ {
		// the flash emulator publishes the word every tick
		sc.Set(data, uint64(flash[sc.Get(addr)]))
		cycle(t, sc, clk)
		if core.GetBool(sc, stb) {
			out = append(out, byte(sc.Get(udata)))
		}
	}
	test.ExpectEquality(t, string(out), "gatesim")
}
