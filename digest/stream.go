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

import (
	"crypto/sha1"
	"fmt"
)

// length of buffer before the digest is chained. the head of the buffer is
// reserved for the previous digest value
const streamBufferLength = 1024 + sha1.Size

// stream is a chained digest of an arbitrary byte stream.
type stream struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int

	// total number of bytes written to the stream
	length int
}

func newStream() stream {
	return stream{
		buffer:   make([]uint8, streamBufferLength),
		bufferCt: sha1.Size,
	}
}

// the hash is of every byte so far, including bytes that have not been
// flushed. the stream itself is not altered by calling hash()
func (s *stream) hash() string {
	if s.bufferCt == sha1.Size {
		return fmt.Sprintf("%x", s.digest)
	}
	b := make([]byte, s.bufferCt)
	copy(b, s.digest[:])
	copy(b[sha1.Size:], s.buffer[sha1.Size:s.bufferCt])
	return fmt.Sprintf("%x", sha1.Sum(b))
}

func (s *stream) reset() {
	for i := range s.digest {
		s.digest[i] = 0
	}
	s.bufferCt = sha1.Size
	s.length = 0
}

func (s *stream) write(p []byte) {
	for _, b := range p {
		s.buffer[s.bufferCt] = b
		s.bufferCt++
		if s.bufferCt >= len(s.buffer) {
			s.flush()
		}
	}
	s.length += len(p)
}

func (s *stream) flush() {
	copy(s.buffer, s.digest[:])
	s.digest = sha1.Sum(s.buffer[:s.bufferCt])
	s.bufferCt = sha1.Size
}
