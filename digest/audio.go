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

package digest

import "encoding/binary"

// Audio is a chained digest of injected audio samples. It implements the
// recorder interface of the audio codec emulator.
type Audio struct {
	stream
	sample []byte
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{stream: newStream()}
}

// Hash implements the Digest interface.
func (dig *Audio) Hash() string {
	return dig.hash()
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	dig.reset()
}

// Record adds the values of every channel at sample k to the digest. Values
// are added as 64 bit little-endian numbers.
func (dig *Audio) Record(k uint64, values []int64) error {
	dig.sample = dig.sample[:0]
	dig.sample = binary.LittleEndian.AppendUint64(dig.sample, k)
	for _, v := range values {
		dig.sample = binary.LittleEndian.AppendUint64(dig.sample, uint64(v))
	}
	dig.write(dig.sample)
	return nil
}
