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

// Package dvi captures the pixel stream of the core's display PHY.
//
// The emulator samples the pixel coordinate and colour channels on every
// active edge of the pixel clock. Pixels inside the active display area are
// written into the frame buffer. When the coordinate reaches the last pixel of
// the active area the frame buffer is handed to the Sink.
//
// The frame buffer is never cleared. Every pixel in the active area is
// expected to be overwritten every frame by the core's own timing generator.
// Nor does the emulator reset the coordinate; a frame only ends when the core
// reaches the final pixel. A frame that is never completed is never emitted.
package dvi

import (
	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/logger"
)

const logTag = "dvi"

// Sink receives completed frames. The pixel data is only valid for the
// duration of the call.
type Sink interface {
	Frame(pix []byte, width, height, channels int, index int) error
}

// Signals names the core signals used by the emulator. Channels lists the
// colour channel signals in the order they are written to the frame buffer.
type Signals struct {
	X        string
	Y        string
	Channels []string
}

// DefaultSignals returns the signal names used by the SoC designs.
func DefaultSignals() Signals {
	return Signals{
		X:        "dvi_x",
		Y:        "dvi_y",
		Channels: []string{"dvi_r", "dvi_g", "dvi_b"},
	}
}

// Config for the display capture.
type Config struct {
	// the pixel clock domain
	Domain string

	// active display area
	Width  int
	Height int

	Signals Signals
}

// Sentinal error patterns.
const (
	InvalidArea = "dvi: invalid active area (%dx%d)"
	NoChannels  = "dvi: no colour channels"
	SinkError   = "dvi: frame %d: %v"
)

// Capture is the display capture emulator.
type Capture struct {
	env  *environment.Environment
	c    core.Core
	sink Sink

	width    int
	height   int
	channels []core.Signal

	x core.Signal
	y core.Signal

	// row-major frame buffer
	frame []byte

	// number of frames emitted to the sink
	frames int
}

// NewCapture is the preferred method of initialisation for the Capture type.
// The sink can be nil, in which case frames are counted but not emitted.
func NewCapture(env *environment.Environment, cfg Config, c core.Core, sink Sink) (*Capture, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, curated.Errorf(InvalidArea, cfg.Width, cfg.Height)
	}
	if len(cfg.Signals.Channels) == 0 {
		return nil, curated.Errorf(NoChannels)
	}

	sigs, err := core.Resolve(c, cfg.Signals.X, cfg.Signals.Y)
	if err != nil {
		return nil, curated.Errorf("dvi: %v", err)
	}
	chans, err := core.Resolve(c, cfg.Signals.Channels...)
	if err != nil {
		return nil, curated.Errorf("dvi: %v", err)
	}

	cpt := &Capture{
		env:      env,
		c:        c,
		sink:     sink,
		width:    cfg.Width,
		height:   cfg.Height,
		channels: chans,
		x:        sigs[0],
		y:        sigs[1],
		frame:    make([]byte, cfg.Width*cfg.Height*len(chans)),
	}

	logger.Logf(env, logTag, "capturing %dx%d (%d channels) on domain (%s)", cfg.Width, cfg.Height, len(chans), cfg.Domain)

	return cpt, nil
}

// Service samples the pixel signals. Should be attached to the active edge of
// the pixel clock domain.
func (cpt *Capture) Service(tr clocks.Transition) error {
	x := cpt.c.Get(cpt.x)
	y := cpt.c.Get(cpt.y)

	if x >= uint64(cpt.width) || y >= uint64(cpt.height) {
		return nil
	}

	idx := (int(y)*cpt.width + int(x)) * len(cpt.channels)
	for i, ch := range cpt.channels {
		cpt.frame[idx+i] = uint8(cpt.c.Get(ch))
	}

	if int(x) == cpt.width-1 && int(y) == cpt.height-1 {
		return cpt.emit()
	}

	return nil
}

func (cpt *Capture) emit() error {
	idx := cpt.frames
	cpt.frames++
	logger.Logf(cpt.env, logTag, "frame %d complete", idx)
	if cpt.sink == nil {
		return nil
	}
	if err := cpt.sink.Frame(cpt.frame, cpt.width, cpt.height, len(cpt.channels), idx); err != nil {
		return curated.Errorf(SinkError, idx, err)
	}
	return nil
}

// Frames returns the number of completed frames.
func (cpt *Capture) Frames() int {
	return cpt.frames
}

// Pixel returns the channel values of the pixel at x, y in the frame buffer.
func (cpt *Capture) Pixel(x, y int) []byte {
	if x < 0 || y < 0 || x >= cpt.width || y >= cpt.height {
		return nil
	}
	idx := (y*cpt.width + x) * len(cpt.channels)
	return cpt.frame[idx : idx+len(cpt.channels)]
}

// Release the frame buffer. The partially completed frame is discarded.
func (cpt *Capture) Release() {
	cpt.frame = nil
}
