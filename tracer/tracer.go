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

// Package tracer takes a snapshot of every observable signal of the core once
// per completed tick and hands it to a Sink. Serialising the snapshots into a
// waveform format is the responsibility of the Sink.
//
// The Changes type is a simple Sink that writes a line of text for every tick
// in which at least one signal changed value.
package tracer

import (
	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
)

// Sentinal error patterns.
const (
	SinkError = "tracer: %v"
)

// Sink implementations receive a snapshot of the core after every tick. The
// names slice is the same for every call and is in the same order as the
// values slice. Neither slice should be retained after the call.
type Sink interface {
	Trace(now clocks.Time, names []string, values []uint64) error
}

// Tracer takes snapshots of the core.
type Tracer struct {
	c    core.Core
	sink Sink

	names  []string
	sigs   []core.Signal
	values []uint64

	// number of snapshots taken
	Snapshots uint64
}

// NewTracer is the preferred method of initialisation for the Tracer type.
// Signal handles for every observable signal in the core are resolved
// immediately.
func NewTracer(c core.Core, sink Sink) (*Tracer, error) {
	names := c.Signals()
	sigs, err := core.Resolve(c, names...)
	if err != nil {
		return nil, curated.Errorf(SinkError, err)
	}
	return &Tracer{
		c:      c,
		sink:   sink,
		names:  names,
		sigs:   sigs,
		values: make([]uint64, len(sigs)),
	}, nil
}

// Snapshot the core at the end of a tick.
func (tr *Tracer) Snapshot(now clocks.Time) error {
	for i, s := range tr.sigs {
		tr.values[i] = tr.c.Get(s)
	}
	tr.Snapshots++
	if err := tr.sink.Trace(now, tr.names, tr.values); err != nil {
		return curated.Errorf(SinkError, err)
	}
	return nil
}
