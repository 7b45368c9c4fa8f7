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

package i2s

import (
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/logger"
)

// Sentinal error patterns.
const (
	UnsupportedReplay = "i2s: replay: unsupported file type (%s)"
	ReplayError       = "i2s: replay: %v"
	EmptyReplay       = "i2s: replay: no sample data"
)

// Replay is a Source that plays back recorded sample data. Only the first
// channel of the recording is used. Samples are 16 bit and are looped if the
// run outlasts the recording.
type Replay struct {
	Filename   string
	SampleRate int

	data []int16
}

// NewReplay decodes a WAV or MP3 stream. The file type is decided by the
// extension of the filename.
func NewReplay(env *environment.Environment, filename string, r io.ReadSeeker) (*Replay, error) {
	rp := &Replay{
		Filename: filename,
	}

	var err error

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".wav":
		err = rp.decodeWAV(r)
	case ".mp3":
		err = rp.decodeMP3(r)
	default:
		return nil, curated.Errorf(UnsupportedReplay, ext)
	}
	if err != nil {
		return nil, curated.Errorf(ReplayError, err)
	}

	if len(rp.data) == 0 {
		return nil, curated.Errorf(EmptyReplay)
	}

	logger.Logf(env, logTag, "replay %s: %d samples at %dHz", filepath.Base(filename), len(rp.data), rp.SampleRate)

	return rp, nil
}

func (rp *Replay) decodeWAV(r io.ReadSeeker) error {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return fmt.Errorf("not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return err
	}

	chans := int(dec.NumChans)
	if chans == 0 {
		chans = 1
	}

	// reduce or extend the bit depth of the source to 16 bits
	shift := int(dec.BitDepth) - 16

	rp.data = make([]int16, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		v := buf.Data[i]
		if shift > 0 {
			v >>= shift
		} else if shift < 0 {
			v <<= -shift
		}
		rp.data = append(rp.data, int16(v))
	}

	rp.SampleRate = int(dec.SampleRate)

	return nil
}

func (rp *Replay) decodeMP3(r io.Reader) error {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return err
	}

	// the decoded stream is always 16 bit little endian and two channels, so
	// each sample is four bytes long. we only want the left channel
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			rp.data = append(rp.data, int16(binary.LittleEndian.Uint16(chunk[i:])))
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return err
		}
	}

	rp.SampleRate = dec.SampleRate()

	return nil
}

// Len returns the number of samples in the recording.
func (rp *Replay) Len() int {
	return len(rp.data)
}

// Sample implements the Source interface.
func (rp *Replay) Sample(k uint64) int64 {
	if k == 0 {
		return 0
	}
	return int64(rp.data[(k-1)%uint64(len(rp.data))])
}

func (rp *Replay) String() string {
	return fmt.Sprintf("replay(%s)", filepath.Base(rp.Filename))
}
