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

// Package wavwriter allows writing of the injected audio stimulus to disk as
// a WAV file. Note that audio data is buffered in memory in its entirety and
// written to disk when the writer is closed. It is therefore only suitable
// for testing purposes.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/logger"
)

const logTag = "wavwriter"

// bit depth of the WAV file
const bitDepth = 16

// WAV format value for PCM data
const pcmFormat = 1

// Sentinal error patterns.
const (
	WriteError      = "wavwriter: %v"
	BadSampleRate   = "wavwriter: sample rate must be greater than zero"
	BadChannels     = "wavwriter: number of channels must be between 1 and 8 (%d)"
	ChannelMismatch = "wavwriter: sample has %d channels, expected %d"
)

// WavWriter implements the recorder interface of the audio codec emulator.
type WavWriter struct {
	env      *environment.Environment
	filename string

	sampleRate int
	channels   int

	// interleaved sample data
	buffer []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(env *environment.Environment, filename string, sampleRate int, channels int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf(BadSampleRate)
	}
	if channels < 1 || channels > 8 {
		return nil, curated.Errorf(BadChannels, channels)
	}

	return &WavWriter{
		env:        env,
		filename:   filename,
		sampleRate: sampleRate,
		channels:   channels,
		buffer:     make([]int, 0, sampleRate*channels),
	}, nil
}

// Record implements the recorder interface of the audio codec emulator.
func (aw *WavWriter) Record(_ uint64, values []int64) error {
	if len(values) != aw.channels {
		return curated.Errorf(ChannelMismatch, len(values), aw.channels)
	}
	for _, v := range values {
		aw.buffer = append(aw.buffer, int(int16(v)))
	}
	return nil
}

// Samples returns the number of samples recorded so far.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer) / aw.channels
}

// Close writes the buffered samples to disk.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WriteError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(WriteError, err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, bitDepth, aw.channels, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: aw.channels,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	logger.Logf(aw.env, logTag, "writing %d samples to %s", aw.Samples(), aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(WriteError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(WriteError, err)
	}

	return nil
}
