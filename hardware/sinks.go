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
	"github.com/jetsetilly/gatesim/hardware/peripherals/dvi"
	"github.com/jetsetilly/gatesim/hardware/peripherals/i2s"
)

// frameSinks sends a frame to every sink in the list.
type frameSinks []dvi.Sink

func (s frameSinks) Frame(pix []byte, width, height, channels int, index int) error {
	for _, f := range s {
		if err := f.Frame(pix, width, height, channels, index); err != nil {
			return err
		}
	}
	return nil
}

// recorders sends sample values to every recorder in the list.
type recorders []i2s.Recorder

func (r recorders) Record(k uint64, values []int64) error {
	for _, rec := range r {
		if err := rec.Record(k, values); err != nil {
			return err
		}
	}
	return nil
}
