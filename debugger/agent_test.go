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

package debugger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/gatesim/debugger"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/hardware/peripherals/psram"
	"github.com/jetsetilly/gatesim/test"
)

// a 1MHz domain has a half period of 500 time units
const halfPeriod = 500

func newHarness(t *testing.T, budget clocks.Time) (*hardware.Harness, *core.Passive) {
	t.Helper()

	env := environment.NewEnvironment("test", "test")
	env.Quiet = true

	c := core.NewPassive(nil, "clk_sync", "read_ready", "write_ready",
		"address_ptr", "read_data_view", "write_data", "idle")

	h, err := hardware.NewHarness(env, hardware.Config{
		Budget: budget,
		Domains: []clocks.Spec{
			{Name: "sync", Freq: clocks.MHz, Clock: "clk_sync"},
		},
		PSRAM: &psram.Config{
			Domain:  "sync",
			Size:    64,
			Signals: psram.DefaultSignals(),
		},
	}, c, hardware.Sinks{})
	test.DemandSuccess(t, err)

	return h, c
}

func drive(agent *debugger.Agent) chan error {
	result := make(chan error, 1)
	go func() {
		result <- agent.Drive()
	}()
	return result
}

func TestStepping(t *testing.T) {
	h, _ := newHarness(t, 0)
	agent := debugger.NewAgent(h)
	result := drive(agent)

	r := agent.Step(10)
	test.ExpectSuccess(t, r.Err)
	test.ExpectEquality(t, r.State, govern.Paused)
	test.ExpectEquality(t, r.Time, clocks.Time(10))

	r = agent.Step(halfPeriod - 10)
	test.ExpectEquality(t, r.Time, clocks.Time(halfPeriod))

	// the clock has risen exactly once
	r = agent.Inspect("clk_sync")
	test.ExpectSuccess(t, r.Err)
	test.ExpectEquality(t, r.Text, "clk_sync = 0x1\n")

	r = agent.Inspect("no_such_signal")
	test.ExpectFailure(t, r.Err)
	test.ExpectEquality(t, r.State, govern.Paused)

	// zero steps is treated as one step
	r = agent.Step(0)
	test.ExpectEquality(t, r.Time, clocks.Time(halfPeriod+1))

	r = agent.Quit()
	test.ExpectEquality(t, r.State, govern.Ending)

	test.ExpectSuccess(t, <-result)
	<-agent.Done()

	// requests after the end of the run are answered immediately
	r = agent.Status()
	test.ExpectEquality(t, r.State, govern.Finished)
	test.ExpectEquality(t, r.Time, clocks.Time(halfPeriod+1))

	_, err := h.Finish()
	test.ExpectSuccess(t, err)
}

func TestContinueToBudget(t *testing.T) {
	h, _ := newHarness(t, 5*hardware.PerformanceBrake)
	agent := debugger.NewAgent(h)
	result := drive(agent)

	r := agent.Continue()
	test.ExpectEquality(t, r.State, govern.Running)

	test.ExpectSuccess(t, <-result)

	r = agent.Pause()
	test.ExpectEquality(t, r.State, govern.Finished)
	test.ExpectEquality(t, r.Time, clocks.Time(5*hardware.PerformanceBrake))
}

func TestPause(t *testing.T) {
	h, _ := newHarness(t, 0)
	agent := debugger.NewAgent(h)
	result := drive(agent)

	agent.Continue()
	r := agent.Pause()
	test.ExpectEquality(t, r.State, govern.Paused)

	// the command channel is only polled every PerformanceBrake ticks
	test.ExpectEquality(t, r.Time%hardware.PerformanceBrake, clocks.Time(0))

	r = agent.Status()
	test.ExpectSuccess(t, strings.HasPrefix(r.Text, "time: "))
	test.ExpectSuccess(t, strings.Contains(r.Text, "sync: level"))

	agent.Quit()
	test.ExpectSuccess(t, <-result)
}

func TestFaultPauses(t *testing.T) {
	h, c := newHarness(t, 0)

	// write outside of the 64 byte memory on the first rising edge
	c.Set(c.MustLookup("address_ptr"), 0x100)
	c.Set(c.MustLookup("write_ready"), 1)

	agent := debugger.NewAgent(h)
	result := drive(agent)

	r := agent.Step(halfPeriod * 4)
	var f core.Fault
	test.DemandSuccess(t, errors.As(r.Err, &f))
	test.ExpectEquality(t, f.Address, uint32(0x100))
	test.ExpectEquality(t, r.Time, clocks.Time(halfPeriod))
	test.ExpectEquality(t, r.State, govern.Paused)

	// the fault is visible in the status
	r = agent.Status()
	test.ExpectSuccess(t, strings.Contains(r.Text, "fault: "))

	r = agent.Quit()
	test.ExpectEquality(t, r.State, govern.Ending)
	test.ExpectSuccess(t, <-result)
}

func TestDump(t *testing.T) {
	h, _ := newHarness(t, 0)
	agent := debugger.NewAgent(h)
	result := drive(agent)

	r := agent.Dump(nil)
	test.ExpectFailure(t, r.Err)

	w := &strings.Builder{}
	r = agent.Dump(w)
	test.ExpectSuccess(t, r.Err)
	test.ExpectSuccess(t, strings.Contains(w.String(), "digraph"))

	agent.Quit()
	test.ExpectSuccess(t, <-result)
}
