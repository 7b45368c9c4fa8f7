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

// Package i2s emulates the stimulus side of an audio codec. Rather than
// decoding a serial bit stream the emulator writes whole samples directly into
// the injection ports of the core, which is how the SoC test benches feed
// audio into the design.
//
// A frame sync divider decides which active edges of the audio clock are
// sample boundaries. On a sample boundary the sample counter is incremented,
// the strobe is asserted and every injection channel is given the value of its
// Source for the new counter value. The strobe is deasserted once it has been
// held for the configured number of active edges.
//
// The emulator has no state other than the two counters, so the stimulus is
// entirely determined by the configuration and the number of edges seen.
package i2s

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/logger"
)

const logTag = "i2s"

// Channel is a single injection port of the core.
type Channel struct {
	Signal string
	Source Source
}

// Recorder is given the values injected at every sample boundary.
type Recorder interface {
	Record(k uint64, values []int64) error
}

// Config for the audio codec emulator.
type Config struct {
	// the audio clock domain
	Domain string

	// the number of active edges per sample. 256 and 312 are typical values
	Divider uint64

	// name of the frame sync strobe signal
	Strobe string

	// number of active edges the strobe is held for. a value of zero is
	// treated as one
	StrobeWidth uint64

	// bit width of the injection ports. a value of zero is treated as 16
	SampleWidth int

	Channels []Channel
}

// DefaultChannels returns the four test tones used by the DSP test benches.
func DefaultChannels() []Channel {
	return []Channel{
		{Signal: "fs_inject0", Source: Synth{Fn: Sine, Amplitude: 10000, Period: 50}},
		{Signal: "fs_inject1", Source: Synth{Fn: Cosine, Amplitude: 10000, Period: 10}},
		{Signal: "fs_inject2", Source: Synth{Fn: Sine, Amplitude: 10000, Period: 30}},
		{Signal: "fs_inject3", Source: Synth{Fn: Cosine, Amplitude: 10000, Period: 5}},
	}
}

// Sentinal error patterns.
const (
	ZeroDivider   = "i2s: frame sync divider must be greater than zero"
	StrobeTooWide = "i2s: strobe width (%d) must be less than the divider (%d)"
	NoSource      = "i2s: channel (%s) has no source"
	RecorderError = "i2s: recorder: %v"
)

type channel struct {
	sig    core.Signal
	source Source
}

// Codec is the audio codec emulator.
type Codec struct {
	env *environment.Environment
	c   core.Core

	divider     uint64
	strobeWidth uint64
	sampleWidth int

	strobe   core.Signal
	channels []channel
	values   []int64

	recorder Recorder

	// the number of active edges seen
	edges uint64

	// the number of sample boundaries seen. also the value of k passed to
	// the channel sources
	samples uint64

	// number of active edges the strobe must remain asserted for
	strobeRemaining uint64
}

// NewCodec is the preferred method of initialisation for the Codec type.
func NewCodec(env *environment.Environment, cfg Config, c core.Core) (*Codec, error) {
	if cfg.Divider == 0 {
		return nil, curated.Errorf(ZeroDivider)
	}

	cdc := &Codec{
		env:         env,
		c:           c,
		divider:     cfg.Divider,
		strobeWidth: cfg.StrobeWidth,
		sampleWidth: cfg.SampleWidth,
	}

	if cdc.strobeWidth == 0 {
		cdc.strobeWidth = 1
	}
	if cdc.strobeWidth >= cdc.divider {
		return nil, curated.Errorf(StrobeTooWide, cdc.strobeWidth, cdc.divider)
	}
	if cdc.sampleWidth == 0 {
		cdc.sampleWidth = 16
	}

	sigs, err := core.Resolve(c, cfg.Strobe)
	if err != nil {
		return nil, curated.Errorf("i2s: %v", err)
	}
	cdc.strobe = sigs[0]

	for _, ch := range cfg.Channels {
		if ch.Source == nil {
			return nil, curated.Errorf(NoSource, ch.Signal)
		}
		sig, err := c.Lookup(ch.Signal)
		if err != nil {
			return nil, curated.Errorf("i2s: %v", err)
		}
		cdc.channels = append(cdc.channels, channel{sig: sig, source: ch.Source})
	}
	cdc.values = make([]int64, len(cdc.channels))

	logger.Logf(env, logTag, "divider %d, strobe width %d, %d channels on domain (%s)",
		cdc.divider, cdc.strobeWidth, len(cdc.channels), cfg.Domain)
	for _, ch := range cfg.Channels {
		logger.Logf(env, logTag, "%s: %v", ch.Signal, ch.Source)
	}

	return cdc, nil
}

// SetRecorder sets the recorder that is given the injected values at every
// sample boundary. A nil value removes any existing recorder.
func (cdc *Codec) SetRecorder(r Recorder) {
	cdc.recorder = r
}

// NumChannels returns the number of injection channels.
func (cdc *Codec) NumChannels() int {
	return len(cdc.channels)
}

// Divider returns the number of active edges per sample.
func (cdc *Codec) Divider() uint64 {
	return cdc.divider
}

// Samples returns the number of sample boundaries seen.
func (cdc *Codec) Samples() uint64 {
	return cdc.samples
}

// Values returns the values injected at the most recent sample boundary. The
// returned slice should not be modified.
func (cdc *Codec) Values() []int64 {
	return cdc.values
}

// Service the codec. Should be attached to the active edge of the audio clock
// domain.
func (cdc *Codec) Service(_ clocks.Transition) error {
	boundary := cdc.edges%cdc.divider == 0
	cdc.edges++

	if !boundary {
		if cdc.strobeRemaining > 0 {
			cdc.strobeRemaining--
			if cdc.strobeRemaining == 0 {
				core.SetBool(cdc.c, cdc.strobe, false)
			}
		}
		return nil
	}

	cdc.samples++
	core.SetBool(cdc.c, cdc.strobe, true)
	cdc.strobeRemaining = cdc.strobeWidth

	for i, ch := range cdc.channels {
		v := clamp(ch.source.Sample(cdc.samples), cdc.sampleWidth)
		cdc.values[i] = v
		core.SetSigned(cdc.c, ch.sig, v, cdc.sampleWidth)
	}

	if cdc.recorder != nil {
		if err := cdc.recorder.Record(cdc.samples, cdc.values); err != nil {
			return curated.Errorf(RecorderError, err)
		}
	}

	return nil
}

// clamp value to the signed range of the bit width.
func clamp(v int64, width int) int64 {
	if width >= 64 {
		return v
	}
	max := int64(1)<<(width-1) - 1
	min := -max - 1
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}

func (cdc *Codec) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("samples: %d", cdc.samples))
	for i, v := range cdc.values {
		s.WriteString(fmt.Sprintf(", ch%d: %d", i, v))
	}
	return s.String()
}
