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

package spiflash_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/hardware/peripherals/spiflash"
	"github.com/jetsetilly/gatesim/test"
)

func newCore() *core.Passive {
	return core.NewPassive(nil, "spiflash_addr", "spiflash_data")
}

var firmware = []byte{0x01, 0x02, 0x03, 0x04, 0xaa, 0xbb, 0xcc, 0xdd, 0x7f}

const (
	size   = 1024
	offset = 0x100
)

func TestFirmwareLoad(t *testing.T) {
	c := newCore()
	fl, err := spiflash.NewFlash(nil, spiflash.Config{
		Size:    size,
		Offset:  offset,
		Signals: spiflash.DefaultSignals(),
	}, c, firmware)
	test.DemandSuccess(t, err)

	// everything outside of the image is zero
	mem := fl.Bytes()
	for i, b := range mem {
		if i >= offset && i < offset+len(firmware) {
			test.ExpectEquality(t, b, firmware[i-offset])
		} else {
			test.ExpectEquality(t, b, byte(0), i)
		}
	}

	// reading a word reflects the image exactly
	w, err := fl.Peek(offset / 4)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, w, uint32(0x04030201))
	w, err = fl.Peek(offset/4 + 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, w, uint32(0xddccbbaa))
	w, err = fl.Peek(offset/4 + 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, w, uint32(0x0000007f))
}

func TestService(t *testing.T) {
	c := newCore()
	fl, err := spiflash.NewFlash(nil, spiflash.Config{
		Size:    size,
		Offset:  offset,
		Signals: spiflash.DefaultSignals(),
	}, c, firmware)
	test.DemandSuccess(t, err)

	addr := c.MustLookup("spiflash_addr")
	data := c.MustLookup("spiflash_data")

	c.Set(addr, offset/4+1)
	test.DemandSuccess(t, fl.Service(10))
	test.ExpectEquality(t, c.Get(data), uint64(0xddccbbaa))

	// the published word follows the address on every tick
	c.Set(addr, 0)
	test.DemandSuccess(t, fl.Service(11))
	test.ExpectEquality(t, c.Get(data), uint64(0))

	// last word of the flash is in range. the word after is not
	c.Set(addr, size/4-1)
	test.ExpectSuccess(t, fl.Service(12))
	c.Set(addr, size/4)
	c.Set(data, 0xffffffff)
	err = fl.Service(13)
	var f core.Fault
	test.DemandSuccess(t, errors.As(err, &f))
	test.ExpectEquality(t, f.Address, uint32(size/4))
	test.ExpectEquality(t, f.Time, uint64(13))

	// an out of range address publishes zero rather than a stale word
	test.ExpectEquality(t, c.Get(data), uint64(0))
}

func TestByteAddress(t *testing.T) {
	c := newCore()
	fl, err := spiflash.NewFlash(nil, spiflash.Config{
		Size:        size,
		Offset:      offset,
		ByteAddress: true,
		Signals:     spiflash.DefaultSignals(),
	}, c, firmware)
	test.DemandSuccess(t, err)

	c.Set(c.MustLookup("spiflash_addr"), offset+2)
	test.DemandSuccess(t, fl.Service(1))
	test.ExpectEquality(t, c.Get(c.MustLookup("spiflash_data")), uint64(0xbbaa0403))

	c.Set(c.MustLookup("spiflash_addr"), size-3)
	test.ExpectFailure(t, fl.Service(2))
}

func TestConfiguration(t *testing.T) {
	c := newCore()
	_, err := spiflash.NewFlash(nil, spiflash.Config{Signals: spiflash.DefaultSignals()}, c, nil)
	test.ExpectSuccess(t, curated.Is(err, spiflash.ZeroSize))

	_, err = spiflash.NewFlash(nil, spiflash.Config{Size: 8, Offset: 4, Signals: spiflash.DefaultSignals()}, c, firmware)
	test.ExpectSuccess(t, curated.Is(err, spiflash.FirmwareTooLarge))

	// firmware that exactly fills the flash
	_, err = spiflash.NewFlash(nil, spiflash.Config{Size: 9, Signals: spiflash.DefaultSignals()}, c, firmware)
	test.ExpectSuccess(t, err)

	_, err = spiflash.NewFlash(nil, spiflash.Config{Size: 8, Signals: spiflash.Signals{Address: "addr", Data: "data"}}, c, nil)
	test.ExpectSuccess(t, curated.Has(err, core.UnknownSignal))
}
