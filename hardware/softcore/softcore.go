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

// Package softcore is a small reference core written in Go. It implements the
// Core interface with the same port names as the SoC designs the harness was
// built for, and is used when no generated core is available. It is also the
// core that the harness tests are run against.
//
// The core has four clock domains:
//
//	sync:  memory engine, frame sync detection and boot banner
//	dvi:   display timing generator
//	audio: no logic. the codec emulator drives fs_strobe and the injection
//	       ports from the audio domain and the core samples them in the
//	       sync domain
//	fast:  no logic. the ports exist so that profiles for designs with a
//	       fast DSP clock can be run
//
// On every rising edge of fs_strobe the memory engine writes the first two
// injection channels as a single word to the next slot of a ring in external
// memory. The word is then read back and the display plots the value read as
// a point, vectorscope fashion. Errors in the memory emulation are therefore
// visible in the captured frames.
//
// Once out of reset the boot engine reads words from the flash, starting at
// the banner address, and writes the bytes to the UART until it meets a zero
// byte.
//
// Reset is level sensitive. Holding a domain's reset signal high clears the
// state of that domain on every call to Evaluate().
package softcore

import (
	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
)

// Config for the reference core.
type Config struct {
	// the edge on which all domains of the core are clocked
	ActiveEdge clocks.Edge

	// active display area and total scanline/frame lengths including
	// blanking. a zero total means the default blanking is added to the
	// active area
	Width  int
	Height int
	HTotal int
	VTotal int

	// Finished() returns true after this number of frames. a value of
	// zero means the core never finishes
	Frames int

	// byte address and number of words of the ring in external memory
	RingBase  uint32
	RingWords uint32

	// word index of the banner in flash
	BannerAddr uint32

	// maximum number of banner bytes written to the UART
	BannerLimit int
}

// Sentinal error patterns.
const (
	InvalidDisplay = "softcore: invalid display geometry (%dx%d in %dx%d)"
	InvalidRing    = "softcore: ring must have at least one word"
)

type memState int

const (
	memIdle memState = iota
	memWrite
	memRead
)

type bootState int

const (
	bootFetch bootState = iota
	bootWait
	bootEmit
	bootDone
)

// Core is the reference core.
type Core struct {
	*core.Bank
	cfg Config

	// port handles
	clkSync, rstSync   core.Signal
	clkDVI, rstDVI     core.Signal
	clkAudio, rstAudio core.Signal

	addressPtr, readReady, writeReady core.Signal
	writeData, readDataView, idle     core.Signal

	dviX, dviY, dviR, dviG, dviB core.Signal

	fsStrobe core.Signal
	inject   [4]core.Signal

	spiflashAddr, spiflashData core.Signal
	uartStb, uartData          core.Signal

	// clock levels at the previous evaluation
	prevSync bool
	prevDVI  bool

	// sync domain
	prevStrobe bool
	pending    bool
	sample     uint32
	mem        memState
	slot       uint32
	lastRead   uint32

	boot      bootState
	bootWord  uint32
	bootData  uint32
	bootByte  int
	bootCount int

	// dvi domain
	x, y   int
	frames int

	finished bool
}

// New is the preferred method of initialisation for the Core type.
func New(cfg Config) (*Core, error) {
	if cfg.HTotal == 0 {
		cfg.HTotal = cfg.Width + 160
	}
	if cfg.VTotal == 0 {
		cfg.VTotal = cfg.Height + 45
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.HTotal < cfg.Width || cfg.VTotal < cfg.Height {
		return nil, curated.Errorf(InvalidDisplay, cfg.Width, cfg.Height, cfg.HTotal, cfg.VTotal)
	}
	if cfg.RingWords == 0 {
		return nil, curated.Errorf(InvalidRing)
	}
	if cfg.BannerLimit == 0 {
		cfg.BannerLimit = 256
	}

	sc := &Core{
		Bank: core.NewBank(),
		cfg:  cfg,
	}

	sc.clkSync = sc.Define("clk_sync", 1)
	sc.rstSync = sc.Define("rst_sync", 1)
	sc.clkDVI = sc.Define("clk_dvi", 1)
	sc.rstDVI = sc.Define("rst_dvi", 1)
	sc.clkAudio = sc.Define("clk_audio", 1)
	sc.rstAudio = sc.Define("rst_audio", 1)
	sc.Define("clk_fast", 1)
	sc.Define("rst_fast", 1)

	sc.addressPtr = sc.Define("address_ptr", 32)
	sc.readReady = sc.Define("read_ready", 1)
	sc.writeReady = sc.Define("write_ready", 1)
	sc.writeData = sc.Define("write_data", 32)
	sc.readDataView = sc.Define("read_data_view", 32)
	sc.idle = sc.Define("idle", 1)

	sc.dviX = sc.Define("dvi_x", 12)
	sc.dviY = sc.Define("dvi_y", 12)
	sc.dviR = sc.Define("dvi_r", 8)
	sc.dviG = sc.Define("dvi_g", 8)
	sc.dviB = sc.Define("dvi_b", 8)

	sc.fsStrobe = sc.Define("fs_strobe", 1)
	sc.inject[0] = sc.Define("fs_inject0", 16)
	sc.inject[1] = sc.Define("fs_inject1", 16)
	sc.inject[2] = sc.Define("fs_inject2", 16)
	sc.inject[3] = sc.Define("fs_inject3", 16)

	sc.spiflashAddr = sc.Define("spiflash_addr", 32)
	sc.spiflashData = sc.Define("spiflash_data", 32)
	sc.uartStb = sc.Define("uart0_w_stb", 1)
	sc.uartData = sc.Define("uart0_w_data", 8)

	// the clocks of a new core are low
	sc.prevSync = false
	sc.prevDVI = false

	sc.resetSync()
	sc.resetDVI()

	return sc, nil
}

// edge returns true if the clock has moved to the active level since the
// previous evaluation.
func (sc *Core) edge(clk core.Signal, prev *bool) bool {
	level := core.GetBool(sc, clk)
	changed := level != *prev
	*prev = level
	return changed && level == (sc.cfg.ActiveEdge == clocks.Rising)
}

// Evaluate implements the Core interface.
func (sc *Core) Evaluate() error {
	if core.GetBool(sc, sc.rstSync) {
		sc.resetSync()
	} else if sc.edge(sc.clkSync, &sc.prevSync) {
		sc.tickSync()
	}

	if core.GetBool(sc, sc.rstDVI) {
		sc.resetDVI()
	} else if sc.edge(sc.clkDVI, &sc.prevDVI) {
		sc.tickDVI()
	}

	// the clock levels are tracked while in reset so that coming out of
	// reset does not look like an edge
	sc.prevSync = core.GetBool(sc, sc.clkSync)
	sc.prevDVI = core.GetBool(sc, sc.clkDVI)

	core.SetBool(sc, sc.idle, sc.mem == memIdle && !sc.pending)

	return nil
}

// Finished implements the Core interface.
func (sc *Core) Finished() bool {
	return sc.finished
}

// Frames returns the number of frames generated by the display timing
// generator.
func (sc *Core) Frames() int {
	return sc.frames
}

// LastRead returns the most recent word read back from external memory.
func (sc *Core) LastRead() uint32 {
	return sc.lastRead
}

func (sc *Core) resetSync() {
	sc.prevStrobe = false
	sc.pending = false
	sc.mem = memIdle
	sc.slot = 0
	sc.lastRead = 0
	sc.boot = bootFetch
	sc.bootWord = 0
	sc.bootByte = 0
	sc.bootCount = 0
	sc.Set(sc.readReady, 0)
	sc.Set(sc.writeReady, 0)
	sc.Set(sc.addressPtr, 0)
	sc.Set(sc.writeData, 0)
	sc.Set(sc.uartStb, 0)
	sc.Set(sc.uartData, 0)
	sc.Set(sc.spiflashAddr, uint64(sc.cfg.BannerAddr))
}

func (sc *Core) resetDVI() {
	sc.x = 0
	sc.y = 0
	sc.frames = 0
	sc.finished = false
	sc.Set(sc.dviX, 0)
	sc.Set(sc.dviY, 0)
	sc.Set(sc.dviR, 0)
	sc.Set(sc.dviG, 0)
	sc.Set(sc.dviB, 0)
}

func (sc *Core) tickSync() {
	// frame sync detection
	strobe := core.GetBool(sc, sc.fsStrobe)
	if strobe && !sc.prevStrobe {
		sc.pending = true
		sc.sample = uint32(sc.Get(sc.inject[0]))<<16 | uint32(sc.Get(sc.inject[1]))
	}
	sc.prevStrobe = strobe

	// memory engine
	switch sc.mem {
	case memWrite:
		// the write has been serviced. read the word back from the same
		// address
		sc.Set(sc.writeReady, 0)
		sc.Set(sc.readReady, 1)
		sc.mem = memRead
	case memRead:
		sc.lastRead = uint32(sc.Get(sc.readDataView))
		sc.Set(sc.readReady, 0)
		sc.mem = memIdle
	case memIdle:
		if sc.pending {
			sc.pending = false
			sc.Set(sc.addressPtr, uint64(sc.cfg.RingBase+(sc.slot%sc.cfg.RingWords)*4))
			sc.Set(sc.writeData, uint64(sc.sample))
			sc.Set(sc.writeReady, 1)
			sc.slot++
			sc.mem = memWrite
		}
	}

	// boot banner
	switch sc.boot {
	case bootFetch:
		sc.Set(sc.uartStb, 0)
		sc.Set(sc.spiflashAddr, uint64(sc.cfg.BannerAddr+sc.bootWord))
		sc.boot = bootWait
	case bootWait:
		sc.bootData = uint32(sc.Get(sc.spiflashData))
		sc.bootByte = 0
		sc.boot = bootEmit
	case bootEmit:
		b := uint8(sc.bootData >> (sc.bootByte * 8))
		if b == 0 || sc.bootCount >= sc.cfg.BannerLimit {
			sc.Set(sc.uartStb, 0)
			sc.boot = bootDone
			break
		}
		sc.Set(sc.uartStb, 1)
		sc.Set(sc.uartData, uint64(b))
		sc.bootCount++
		sc.bootByte++
		if sc.bootByte == 4 {
			sc.bootWord++
			sc.boot = bootFetch
		}
	case bootDone:
		sc.Set(sc.uartStb, 0)
	}
}

func (sc *Core) tickDVI() {
	sc.Set(sc.dviX, uint64(sc.x))
	sc.Set(sc.dviY, uint64(sc.y))

	if sc.x < sc.cfg.Width && sc.y < sc.cfg.Height {
		r, g, b := sc.pixel()
		sc.Set(sc.dviR, uint64(r))
		sc.Set(sc.dviG, uint64(g))
		sc.Set(sc.dviB, uint64(b))
	} else {
		sc.Set(sc.dviR, 0)
		sc.Set(sc.dviG, 0)
		sc.Set(sc.dviB, 0)
	}

	sc.x++
	if sc.x >= sc.cfg.HTotal {
		sc.x = 0
		sc.y++
		if sc.y >= sc.cfg.VTotal {
			sc.y = 0
			sc.frames++
			if sc.cfg.Frames > 0 && sc.frames >= sc.cfg.Frames {
				sc.finished = true
			}
		}
	}
}

// pixel colour at the current coordinate. the word most recently read back
// from memory is plotted as a point. the first channel is the horizontal
// position and the second channel the vertical position
func (sc *Core) pixel() (uint8, uint8, uint8) {
	px := sc.cfg.Width/2 + int(int16(sc.lastRead>>16))*sc.cfg.Width/65536
	py := sc.cfg.Height/2 - int(int16(sc.lastRead))*sc.cfg.Height/65536

	dx := sc.x - px
	dy := sc.y - py
	if dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 {
		return 0xff, 0xff, 0xff
	}

	// background is a dim grid
	if sc.x%32 == 0 || sc.y%32 == 0 {
		return 0x20, 0x20, uint8(sc.frames)
	}
	return 0, 0, uint8(sc.frames)
}
