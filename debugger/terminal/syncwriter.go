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

package terminal

import (
	"io"
	"sync"
)

// SyncWriter serialises writes to an io.Writer. The console writes to its
// output from its own goroutine while the harness is running, so a writer
// shared with the serial capture of the harness must be wrapped.
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSyncWriter is the preferred method of initialisation for the SyncWriter
// type.
func NewSyncWriter(w io.Writer) *SyncWriter {
	return &SyncWriter{w: w}
}

// Write implements the io.Writer interface.
func (sw *SyncWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}
