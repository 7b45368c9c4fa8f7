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

// Package digest creates chained SHA-1 fingerprints of the output of a run.
// Two runs with identical configuration must produce identical digests, so
// comparing digests is a quick way of checking that a run is reproducible.
//
// Video fingerprints every frame emitted by the display capture. Serial
// fingerprints the byte stream of the UART and Audio fingerprints the
// injected audio stimulus. In each case the previous digest value is part of
// the data that is hashed, so the final digest depends on every frame, byte
// or sample, and on the order in which they arrived.
package digest

// Digest implementations compute a fingerprint of a stream of data.
type Digest interface {
	Hash() string
	ResetDigest()
}
