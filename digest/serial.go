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

// Serial is a chained digest of a serial byte stream. It implements the
// io.Writer interface.
type Serial struct {
	stream
}

// NewSerial is the preferred method of initialisation for the Serial type.
func NewSerial() *Serial {
	return &Serial{stream: newStream()}
}

// Hash implements the Digest interface.
func (dig *Serial) Hash() string {
	return dig.hash()
}

// ResetDigest implements the Digest interface.
func (dig *Serial) ResetDigest() {
	dig.reset()
}

// Len returns the number of bytes included in the digest.
func (dig *Serial) Len() int {
	return dig.length
}

// Write implements the io.Writer interface.
func (dig *Serial) Write(p []byte) (int, error) {
	dig.write(p)
	return len(p), nil
}
