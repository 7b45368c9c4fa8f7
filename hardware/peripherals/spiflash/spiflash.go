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

// Package spiflash emulates the firmware flash of the SoC designs. The
// emulated bus is not a serial protocol. It is a combinational read port:
// on every tick the word at the address presented by the core is placed on
// the core's read data input. There is no write path.
//
// The backing store is zero filled and the firmware image is copied into it
// at a configurable byte offset when the emulator is created.
package spiflash

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/logger"
)

const logTag = "spiflash"

// DefaultSize is the size of the flash in the SoC designs.
const DefaultSize = 32 * 1024 * 1024

// DefaultOffset is the byte offset of the firmware image in the SoC designs.
const DefaultOffset = 0x00100000

// Signals names the core signals used by the emulator.
type Signals struct {
	Address string
	Data    string
}

// DefaultSignals returns the signal names used by the SoC designs.
func DefaultSignals() Signals {
	return Signals{
		Address: "spiflash_addr",
		Data:    "spiflash_data",
	}
}

// Config for the flash emulator.
type Config struct {
	// size of the backing store in bytes
	Size uint32

	// byte offset of the firmware image in the backing store
	Offset uint32

	// the address presented by the core is a byte address rather than a
	// word index
	ByteAddress bool

	Signals Signals
}

// Sentinal error patterns.
const (
	ZeroSize         = "spiflash: backing store size must be greater than zero"
	FirmwareTooLarge = "spiflash: firmware (%d bytes at offset %#08x) does not fit in flash (%d bytes)"
)

// Flash is the firmware flash emulator.
type Flash struct {
	env *environment.Environment
	c   core.Core

	mem []byte

	byteAddress bool

	address core.Signal
	data    core.Signal

	// the number of bytes of firmware copied into the backing store
	firmware int
	offset   uint32
}

// NewFlash is the preferred method of initialisation for the Flash type. The
// firmware argument can be nil, in which case the flash is entirely zero.
func NewFlash(env *environment.Environment, cfg Config, c core.Core, firmware []byte) (*Flash, error) {
	if cfg.Size == 0 {
		return nil, curated.Errorf(ZeroSize)
	}
	if uint64(cfg.Offset)+uint64(len(firmware)) > uint64(cfg.Size) {
		return nil, curated.Errorf(FirmwareTooLarge, len(firmware), cfg.Offset, cfg.Size)
	}

	sigs, err := core.Resolve(c, cfg.Signals.Address, cfg.Signals.Data)
	if err != nil {
		return nil, curated.Errorf("spiflash: %v", err)
	}

	fl := &Flash{
		env:         env,
		c:           c,
		mem:         make([]byte, cfg.Size),
		byteAddress: cfg.ByteAddress,
		address:     sigs[0],
		data:        sigs[1],
		firmware:    len(firmware),
		offset:      cfg.Offset,
	}
	copy(fl.mem[cfg.Offset:], firmware)

	logger.Logf(env, logTag, "%d bytes allocated", cfg.Size)
	if len(firmware) > 0 {
		logger.Logf(env, logTag, "%d bytes of firmware at %#08x", len(firmware), cfg.Offset)
	}

	return fl, nil
}

// byte address of the word referred to by addr.
func (fl *Flash) resolve(addr uint32) (uint64, bool) {
	a := uint64(addr)
	if !fl.byteAddress {
		a *= 4
	}
	return a, a+4 <= uint64(len(fl.mem))
}

// Service publishes the word at the core's address to the core. Should be
// attached to every tick of the scheduler.
//
// An address outside the backing store publishes zero and returns a Fault.
func (fl *Flash) Service(now clocks.Time) error {
	addr := uint32(fl.c.Get(fl.address))
	a, ok := fl.resolve(addr)
	if !ok {
		fl.c.Set(fl.data, 0)
		return core.Fault{
			Peripheral: logTag,
			Address:    addr,
			Time:       uint64(now),
			Detail:     "read out of range",
		}
	}
	fl.c.Set(fl.data, uint64(binary.LittleEndian.Uint32(fl.mem[a:])))
	return nil
}

// Peek returns the word at the address, interpreted in the same way as an
// address presented by the core.
func (fl *Flash) Peek(addr uint32) (uint32, error) {
	a, ok := fl.resolve(addr)
	if !ok {
		return 0, core.Fault{
			Peripheral: logTag,
			Address:    addr,
			Detail:     "peek out of range",
		}
	}
	return binary.LittleEndian.Uint32(fl.mem[a:]), nil
}

// Size of the backing store in bytes.
func (fl *Flash) Size() uint32 {
	return uint32(len(fl.mem))
}

// Bytes returns the backing store. The returned slice should not be modified.
func (fl *Flash) Bytes() []byte {
	return fl.mem
}

// Release the backing store. The Flash should not be used after this call.
func (fl *Flash) Release() {
	fl.mem = nil
}

func (fl *Flash) String() string {
	return fmt.Sprintf("%d bytes, firmware %d bytes at %#08x", len(fl.mem), fl.firmware, fl.offset)
}
