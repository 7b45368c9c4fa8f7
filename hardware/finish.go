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
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/peripherals/psram"
	"github.com/jetsetilly/gatesim/logger"
)

// DomainReport summarises the activity of a clock domain.
type DomainReport struct {
	Name    string
	Freq    clocks.Freq
	Toggles uint64
}

// Report is the summary of a completed run.
type Report struct {
	Profile string

	// simulated time at the end of the run
	Time       clocks.Time
	Resolution clocks.Resolution

	// the core reported that it had finished. if this is false the run was
	// ended by the time budget or by the continue check
	CoreFinished bool

	Domains []DomainReport

	// number of complete frames emitted by the display capture
	Frames int

	// number of bytes captured from the UART
	SerialBytes uint64

	// number of audio sample boundaries
	Samples uint64

	// burst memory utilisation. only valid if HasBandwidth is true
	Bandwidth    psram.Bandwidth
	HasBandwidth bool

	// number of faults raised during the run
	Faults int

	VideoDigest  string
	SerialDigest string
	AudioDigest  string
}

func (r Report) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("time: %d%s (%.6fs)\n", r.Time, r.Resolution, r.Resolution.Seconds(r.Time)))
	for _, d := range r.Domains {
		s.WriteString(fmt.Sprintf("%s: %s, %d toggles\n", d.Name, d.Freq, d.Toggles))
	}
	s.WriteString(fmt.Sprintf("frames: %d\n", r.Frames))
	s.WriteString(fmt.Sprintf("serial bytes: %d\n", r.SerialBytes))
	s.WriteString(fmt.Sprintf("audio samples: %d\n", r.Samples))
	if r.Faults > 0 {
		s.WriteString(fmt.Sprintf("faults: %d\n", r.Faults))
	}
	s.WriteString(fmt.Sprintf("video digest: %s\n", r.VideoDigest))
	s.WriteString(fmt.Sprintf("serial digest: %s\n", r.SerialDigest))
	s.WriteString(fmt.Sprintf("audio digest: %s\n", r.AudioDigest))
	if r.HasBandwidth {
		s.WriteString(r.Bandwidth.String())
		s.WriteString("\n")
	}
	return s.String()
}

type flusher interface {
	Flush() error
}

// Finish the run. External sinks are flushed, the bandwidth figures are
// finalised and the backing stores are released. A partially completed frame
// is not sent to the frame sink.
//
// The harness is left in the Finished state.
func (h *Harness) Finish() (Report, error) {
	if h.state == govern.Finished || h.state == govern.Uninitialised {
		return Report{}, curated.Errorf(InvalidState, "finish", h.state)
	}

	r := Report{
		Time:         h.Scheduler.Now(),
		Resolution:   h.Scheduler.Resolution(),
		CoreFinished: h.Core.Finished(),
		Faults:       len(h.Faults),
		VideoDigest:  h.VideoDigest.Hash(),
		SerialDigest: h.SerialDigest.Hash(),
		AudioDigest:  h.AudioDigest.Hash(),
	}
	if h.env != nil {
		r.Profile = h.env.Profile
	}

	for _, d := range h.Scheduler.Domains() {
		r.Domains = append(r.Domains, DomainReport{
			Name:    d.Name,
			Freq:    d.Freq,
			Toggles: d.Toggles(),
		})
	}

	if h.DVI != nil {
		r.Frames = h.DVI.Frames()
	}
	if h.UART != nil {
		r.SerialBytes = h.UART.Bytes
	}
	if h.I2S != nil {
		r.Samples = h.I2S.Samples()
	}
	if h.PSRAM != nil && h.cfg.PSRAM.Bandwidth {
		r.Bandwidth = h.PSRAM.Bandwidth
		r.HasBandwidth = true
		logger.Log(h.env, logTag, r.Bandwidth.String())
	}

	var err error

	if f, ok := h.sinks.Trace.(flusher); ok {
		if e := f.Flush(); e != nil && err == nil {
			err = curated.Errorf("harness: trace: %v", e)
		}
	}
	if f, ok := h.sinks.Serial.(flusher); ok {
		if e := f.Flush(); e != nil && err == nil {
			err = curated.Errorf("harness: serial: %v", e)
		}
	}
	if c, ok := h.sinks.Audio.(io.Closer); ok {
		if e := c.Close(); e != nil && err == nil {
			err = curated.Errorf("harness: audio: %v", e)
		}
	}

	h.release()
	h.state = govern.Finished

	return r, err
}
