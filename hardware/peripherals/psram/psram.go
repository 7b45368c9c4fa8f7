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

// Package psram emulates an external burst memory behind a simple
// address/data/ready handshake.
//
// On the active edge of its clock domain the emulator looks at the read and
// write ready signals of the core. A read places the little-endian word at the
// address onto the read data signal. A write stores the write data signal as
// four little-endian bytes at the address. The core is evaluated after each
// access so that the result is visible before the edge is complete.
//
// Accesses outside of the backing store are reported as a core.Fault and the
// store is left untouched.
package psram

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/logger"
)

const logTag = "psram"

// Signals names the core signals used by the emulator. The Idle signal is
// optional.
type Signals struct {
	ReadReady  string
	WriteReady string
	Address    string
	ReadData   string
	WriteData  string
	Idle       string
}

// DefaultSignals returns the signal names used by the SoC designs.
func DefaultSignals() Signals {
	return Signals{
		ReadReady:  "read_ready",
		WriteReady: "write_ready",
		Address:    "address_ptr",
		ReadData:   "read_data_view",
		WriteData:  "write_data",
		Idle:       "idle",
	}
}

// Config for the PSRAM emulator.
type Config struct {
	// the clock domain the memory bus belongs to
	Domain string

	// size of the backing store in bytes
	Size uint32

	Signals Signals

	// sample the idle signal on every active edge
	Bandwidth bool
}

// Sentinal error patterns.
const (
	ZeroSize = "psram: backing store size must be greater than zero"
)

// PSRAM is the burst memory emulator.
type PSRAM struct {
	env *environment.Environment
	c   core.Core

	mem []byte

	readReady  core.Signal
	writeReady core.Signal
	address    core.Signal
	readData   core.Signal
	writeData  core.Signal
	idle       core.Signal

	// bandwidth counters are only updated if the Idle signal has been
	// configured and Config.Bandwidth is true
	Bandwidth Bandwidth
	bandwidth bool

	// number of serviced accesses
	Reads  uint64
	Writes uint64
}

// NewPSRAM is the preferred method of initialisation for the PSRAM type. The
// backing store is allocated and zero filled.
func NewPSRAM(env *environment.Environment, cfg Config, c core.Core) (*PSRAM, error) {
	if cfg.Size == 0 {
		return nil, curated.Errorf(ZeroSize)
	}

	sigs, err := core.Resolve(c,
		cfg.Signals.ReadReady,
		cfg.Signals.WriteReady,
		cfg.Signals.Address,
		cfg.Signals.ReadData,
		cfg.Signals.WriteData,
		cfg.Signals.Idle,
	)
	if err != nil {
		return nil, curated.Errorf("psram: %v", err)
	}

	p := &PSRAM{
		env:        env,
		c:          c,
		mem:        make([]byte, cfg.Size),
		readReady:  sigs[0],
		writeReady: sigs[1],
		address:    sigs[2],
		readData:   sigs[3],
		writeData:  sigs[4],
		idle:       sigs[5],
		bandwidth:  cfg.Bandwidth && sigs[5] != core.NoSignal,
	}

	logger.Logf(env, logTag, "%d bytes allocated on domain (%s)", cfg.Size, cfg.Domain)

	return p, nil
}

// Size of the backing store in bytes.
func (p *PSRAM) Size() uint32 {
	return uint32(len(p.mem))
}

func (p *PSRAM) fault(addr uint32, t clocks.Time, detail string) error {
	return core.Fault{
		Peripheral: logTag,
		Address:    addr,
		Time:       uint64(t),
		Detail:     detail,
	}
}

func (p *PSRAM) inRange(addr uint32) bool {
	return uint64(addr)+4 <= uint64(len(p.mem))
}

// Service the memory bus. Should be attached to the active edge of the
// memory's clock domain.
func (p *PSRAM) Service(tr clocks.Transition) error {
	if p.bandwidth {
		p.Bandwidth.sample(core.GetBool(p.c, p.idle))
	}

	if core.GetBool(p.c, p.readReady) {
		addr := uint32(p.c.Get(p.address))
		if !p.inRange(addr) {
			return p.fault(addr, tr.Time, "read out of range")
		}
		p.c.Set(p.readData, uint64(binary.LittleEndian.Uint32(p.mem[addr:])))
		p.Reads++
		if err := core.Evaluate(p.c); err != nil {
			return err
		}
	}

	if core.GetBool(p.c, p.writeReady) {
		addr := uint32(p.c.Get(p.address))
		if !p.inRange(addr) {
			return p.fault(addr, tr.Time, "write out of range")
		}
		binary.LittleEndian.PutUint32(p.mem[addr:], uint32(p.c.Get(p.writeData)))
		p.Writes++
		if err := core.Evaluate(p.c); err != nil {
			return err
		}
	}

	return nil
}

// Peek returns the word at the address without involving the core.
func (p *PSRAM) Peek(addr uint32) (uint32, error) {
	if !p.inRange(addr) {
		return 0, p.fault(addr, 0, "peek out of range")
	}
	return binary.LittleEndian.Uint32(p.mem[addr:]), nil
}

// Poke stores a word at the address without involving the core.
func (p *PSRAM) Poke(addr uint32, data uint32) error {
	if !p.inRange(addr) {
		return p.fault(addr, 0, "poke out of range")
	}
	binary.LittleEndian.PutUint32(p.mem[addr:], data)
	return nil
}

// Release the backing store. The PSRAM should not be used after this call.
func (p *PSRAM) Release() {
	p.mem = nil
}

func (p *PSRAM) String() string {
	return fmt.Sprintf("reads: %d, writes: %d, %s", p.Reads, p.Writes, p.Bandwidth)
}
