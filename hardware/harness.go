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
	"io"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/digest"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/firmwareloader"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/hardware/peripherals/dvi"
	"github.com/jetsetilly/gatesim/hardware/peripherals/i2s"
	"github.com/jetsetilly/gatesim/hardware/peripherals/psram"
	"github.com/jetsetilly/gatesim/hardware/peripherals/spiflash"
	"github.com/jetsetilly/gatesim/hardware/peripherals/uart"
	"github.com/jetsetilly/gatesim/logger"
	"github.com/jetsetilly/gatesim/tracer"
)

const logTag = "harness"

// Config is the complete description of a harness. Peripherals with a nil
// configuration are not emulated.
type Config struct {
	// simulated time resolution. the default is clocks.Nanosecond
	Resolution clocks.Resolution

	// the amount of simulated time advanced by each tick. the default is one
	// time unit
	Tick clocks.Time

	// the simulated time budget. zero means no budget, in which case the run
	// only ends when the core reports that it has finished
	Budget clocks.Time

	Domains []clocks.Spec

	PSRAM    *psram.Config
	DVI      *dvi.Config
	I2S      *i2s.Config
	SPIFlash *spiflash.Config
	UART     *uart.Config

	// firmware image loaded into the flash. the filename can be a URL
	Firmware string

	// a missing firmware image is a configuration error if this is true
	FirmwareRequired bool

	// expected SHA-1 of the firmware image. can be empty
	FirmwareHash string

	// number of clock pulses on the named domain while the resets are held
	ResetPulses      int
	ResetPulseDomain string

	// take a snapshot of the core at the end of every tick. the trace sink
	// must be supplied in the Sinks type
	Trace bool
}

// Sinks are the external collaborators that receive the output of the
// harness. Any of the fields can be nil.
type Sinks struct {
	// completed frames from the display capture
	Frames dvi.Sink

	// bytes captured from the UART
	Serial io.Writer

	// snapshots of the core
	Trace tracer.Sink

	// the injected audio stimulus
	Audio i2s.Recorder
}

// Sentinal error patterns.
const (
	NoDomains          = "harness: no clock domains configured"
	FirmwareMissing    = "harness: firmware required but not loaded: %v"
	FirmwareNoFlash    = "harness: firmware specified but flash is not configured"
	TraceNoSink        = "harness: tracing enabled but no trace sink"
	InvalidState       = "harness: %s not possible in the %s state"
	UnsupportedState   = "harness: unsupported state (%s) in Run() function"
	ResetPulseNoDomain = "harness: reset pulses require a domain"
	ResourceExhausted  = "harness: not enough host memory (%d bytes required, %d available)"
)

// Harness is the session driver. It owns the scheduler and every peripheral
// emulator.
type Harness struct {
	env *environment.Environment
	cfg Config

	// the core being simulated
	Core core.Core

	Scheduler *clocks.Scheduler

	// peripherals. a nil value indicates the peripheral is not emulated
	PSRAM *psram.PSRAM
	DVI   *dvi.Capture
	I2S   *i2s.Codec
	Flash *spiflash.Flash
	UART  *uart.Capture

	Tracer *tracer.Tracer

	Firmware firmwareloader.Loader

	// fingerprints of the output
	VideoDigest  *digest.Video
	SerialDigest *digest.Serial
	AudioDigest  *digest.Audio

	sinks Sinks
	state govern.State

	// every fault returned by Step()
	Faults []core.Fault
}

// NewHarness is the preferred method of initialisation for the Harness type.
// The harness is left in the Reset state.
func NewHarness(env *environment.Environment, cfg Config, c core.Core, sinks Sinks) (*Harness, error) {
	if cfg.Resolution == 0 {
		cfg.Resolution = clocks.Nanosecond
	}
	if cfg.Tick == 0 {
		cfg.Tick = 1
	}

	if len(cfg.Domains) == 0 {
		return nil, curated.Errorf(NoDomains)
	}
	if cfg.Trace && sinks.Trace == nil {
		return nil, curated.Errorf(TraceNoSink)
	}
	if cfg.Firmware != "" && cfg.SPIFlash == nil {
		return nil, curated.Errorf(FirmwareNoFlash)
	}
	if cfg.ResetPulses > 0 && cfg.ResetPulseDomain == "" {
		return nil, curated.Errorf(ResetPulseNoDomain)
	}

	if err := checkMemory(env, cfg); err != nil {
		return nil, err
	}

	h := &Harness{
		env:          env,
		cfg:          cfg,
		Core:         c,
		VideoDigest:  digest.NewVideo(),
		SerialDigest: digest.NewSerial(),
		AudioDigest:  digest.NewAudio(),
		sinks:        sinks,
		state:        govern.Uninitialised,
	}

	var err error

	h.Scheduler, err = clocks.NewScheduler(c, cfg.Resolution, cfg.Tick)
	if err != nil {
		return nil, err
	}
	for _, spec := range cfg.Domains {
		if _, err := h.Scheduler.AddDomain(spec); err != nil {
			return nil, err
		}
	}
	if cfg.ResetPulses > 0 {
		if _, err := h.Scheduler.Domain(cfg.ResetPulseDomain); err != nil {
			return nil, err
		}
	}

	if err := h.loadFirmware(); err != nil {
		return nil, err
	}

	if err := h.attachPeripherals(); err != nil {
		h.release()
		return nil, err
	}

	if cfg.Trace {
		h.Tracer, err = tracer.NewTracer(c, sinks.Trace)
		if err != nil {
			h.release()
			return nil, err
		}
	}

	h.state = govern.Reset

	return h, nil
}

func (h *Harness) loadFirmware() error {
	if h.cfg.Firmware == "" {
		if h.cfg.FirmwareRequired {
			return curated.Errorf(FirmwareMissing, "no firmware specified")
		}
		return nil
	}

	h.Firmware = firmwareloader.NewLoader(h.cfg.Firmware)
	h.Firmware.Hash = h.cfg.FirmwareHash
	if err := h.Firmware.Load(); err != nil {
		if h.cfg.FirmwareRequired {
			return curated.Errorf(FirmwareMissing, err)
		}
		logger.Logf(h.env, logTag, "continuing without firmware: %v", err)
		return nil
	}

	logger.Logf(h.env, logTag, "firmware %s (%d bytes, sha1 %s)", h.Firmware.ShortName(), len(h.Firmware.Data), h.Firmware.Hash)

	return nil
}

func (h *Harness) attachPeripherals() error {
	var err error

	if h.cfg.SPIFlash != nil {
		h.Flash, err = spiflash.NewFlash(h.env, *h.cfg.SPIFlash, h.Core, h.Firmware.Data)
		if err != nil {
			return err
		}
		h.Scheduler.AttachEveryTick(h.Flash.Service)
	}

	if h.cfg.PSRAM != nil {
		h.PSRAM, err = psram.NewPSRAM(h.env, *h.cfg.PSRAM, h.Core)
		if err != nil {
			return err
		}
		if err := h.Scheduler.Attach(h.cfg.PSRAM.Domain, h.PSRAM.Service); err != nil {
			return err
		}
	}

	if h.cfg.DVI != nil {
		frames := frameSinks{h.VideoDigest}
		if h.sinks.Frames != nil {
			frames = append(frames, h.sinks.Frames)
		}
		h.DVI, err = dvi.NewCapture(h.env, *h.cfg.DVI, h.Core, frames)
		if err != nil {
			return err
		}
		if err := h.Scheduler.Attach(h.cfg.DVI.Domain, h.DVI.Service); err != nil {
			return err
		}
	}

	if h.cfg.I2S != nil {
		h.I2S, err = i2s.NewCodec(h.env, *h.cfg.I2S, h.Core)
		if err != nil {
			return err
		}
		recorders := recorders{h.AudioDigest}
		if h.sinks.Audio != nil {
			recorders = append(recorders, h.sinks.Audio)
		}
		h.I2S.SetRecorder(recorders)
		if err := h.Scheduler.Attach(h.cfg.I2S.Domain, h.I2S.Service); err != nil {
			return err
		}
	}

	if h.cfg.UART != nil {
		out := []io.Writer{h.SerialDigest}
		if h.sinks.Serial != nil {
			out = append(out, h.sinks.Serial)
		}
		h.UART, err = uart.NewCapture(h.env, *h.cfg.UART, h.Core, out...)
		if err != nil {
			return err
		}
		if err := h.Scheduler.Attach(h.cfg.UART.Domain, h.UART.Service); err != nil {
			return err
		}
	}

	return nil
}

// release every backing store.
func (h *Harness) release() {
	if h.PSRAM != nil {
		h.PSRAM.Release()
	}
	if h.Flash != nil {
		h.Flash.Release()
	}
	if h.DVI != nil {
		h.DVI.Release()
	}
}

// State returns the current state of the harness.
func (h *Harness) State() govern.State {
	return h.state
}

// Env returns the environment of the harness.
func (h *Harness) Env() *environment.Environment {
	return h.env
}

// Config returns a copy of the harness configuration. Default values have
// been applied.
func (h *Harness) Config() Config {
	return h.cfg
}
