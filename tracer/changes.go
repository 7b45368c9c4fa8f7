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

package tracer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/jetsetilly/gatesim/hardware/clocks"
)

// Changes is a Sink that writes the signals that have changed since the
// previous snapshot. The first snapshot writes every signal.
//
//	#1250 clk_sync=1 read_data_view=0xdeadbeef
type Changes struct {
	w    *bufio.Writer
	prev []uint64
}

// NewChanges is the preferred method of initialisation for the Changes type.
// The output is buffered and Flush() must be called when tracing is complete.
func NewChanges(w io.Writer) *Changes {
	return &Changes{
		w: bufio.NewWriter(w),
	}
}

// Trace implements the Sink interface.
func (ch *Changes) Trace(now clocks.Time, names []string, values []uint64) error {
	first := ch.prev == nil
	if first {
		ch.prev = make([]uint64, len(values))
	}

	var written bool
	for i, v := range values {
		if !first && ch.prev[i] == v {
			continue
		}
		ch.prev[i] = v

		if !written {
			if _, err := fmt.Fprintf(ch.w, "#%d", now); err != nil {
				return err
			}
			written = true
		}
		if _, err := fmt.Fprintf(ch.w, " %s=%#x", names[i], v); err != nil {
			return err
		}
	}

	if written {
		if err := ch.w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return nil
}

// Flush buffered output to the underlying io.Writer.
func (ch *Changes) Flush() error {
	return ch.w.Flush()
}
