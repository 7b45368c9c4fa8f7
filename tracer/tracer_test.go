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

package tracer_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/test"
	"github.com/jetsetilly/gatesim/tracer"
)

func TestChanges(t *testing.T) {
	c := core.NewPassive(nil, "clk", "data")
	var w test.CompareWriter
	ch := tracer.NewChanges(&w)
	tr, err := tracer.NewTracer(c, ch)
	test.DemandSuccess(t, err)

	c.Set(c.MustLookup("data"), 0xbeef)
	test.DemandSuccess(t, tr.Snapshot(1))

	// nothing changed
	test.DemandSuccess(t, tr.Snapshot(2))

	c.Set(c.MustLookup("clk"), 1)
	test.DemandSuccess(t, tr.Snapshot(3))
	test.DemandSuccess(t, ch.Flush())

	test.ExpectEquality(t, w.String(), "#1 clk=0x0 data=0xbeef\n#3 clk=0x1\n")
	test.ExpectEquality(t, tr.Snapshots, uint64(3))
}

type failSink struct{}

func (failSink) Trace(_ clocks.Time, _ []string, _ []uint64) error {
	return errors.New("full")
}

func TestSinkError(t *testing.T) {
	c := core.NewPassive(nil, "clk")
	tr, err := tracer.NewTracer(c, failSink{})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, curated.Is(tr.Snapshot(1), tracer.SinkError))
}
