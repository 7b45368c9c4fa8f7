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

package debugger

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/hardware"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/logger"
)

const logTag = "debugger"

// Sentinal error patterns.
const (
	NoDumpWriter = "debugger: dump requires a writer"
)

// Response is the reply to a Request.
type Response struct {
	// the state of the agent after the request was dealt with
	State govern.State

	// simulated time at the point the reply was made
	Time clocks.Time

	// output of the Inspect, Status and Help commands
	Text string

	Err error
}

type message struct {
	req   Request
	w     io.Writer
	reply chan Response
}

// Agent is the synchronous rendezvous between the simulation loop and a
// debugging client.
type Agent struct {
	h *hardware.Harness

	messages chan message
	done     chan struct{}

	// the following fields are only accessed by the goroutine running the
	// Drive() function
	state     govern.State
	remaining int
	stepping  *message
	brake     int

	// set before the done channel is closed
	err     error
	endTime clocks.Time
}

// NewAgent is the preferred method of initialisation for the Agent type. The
// agent starts in the paused state.
func NewAgent(h *hardware.Harness) *Agent {
	return &Agent{
		h:        h,
		messages: make(chan message),
		done:     make(chan struct{}),
		state:    govern.Paused,
	}
}

// Drive the harness until a Quit command is received or until the harness is
// done. Faults pause the agent rather than ending the run. Drive() returns
// the error that ended the run, if any.
//
// The harness should not be used by any other goroutine while Drive() is
// running. It is safe to call Finish() on the harness once Drive() has
// returned.
func (a *Agent) Drive() error {
	var err error
	defer func() {
		a.finish(err)
	}()

	if a.h.State() == govern.Reset {
		if err = a.h.Reset(); err != nil {
			return err
		}
	}

	// park before the first tick
	state, _ := a.ContinueCheck()

	for state != govern.Ending {
		err = a.h.Run(a.ContinueCheck)

		var f core.Fault
		if err == nil || !errors.As(err, &f) {
			return err
		}

		logger.Logf(a.h.Env(), logTag, "paused: %v", err)
		a.state = govern.Paused
		if a.stepping != nil {
			a.replyStep(err)
		}
		err = nil

		state, _ = a.ContinueCheck()
	}

	return err
}

// ContinueCheck implements the continue check for the harness's Run()
// function. It blocks while the agent is paused.
func (a *Agent) ContinueCheck() (govern.State, error) {
	switch a.state {
	case govern.Stepping:
		a.remaining--
		if a.remaining <= 0 {
			a.state = govern.Paused
			a.replyStep(nil)
		} else {
			a.poll()
		}
	case govern.Running:
		a.poll()
	}

	for a.state == govern.Paused {
		a.handle(<-a.messages)
	}

	return a.state, nil
}

// poll the command channel without blocking. the channel is only looked at
// every PerformanceBrake calls.
func (a *Agent) poll() {
	a.brake++
	if a.brake < hardware.PerformanceBrake {
		return
	}
	a.brake = 0

	select {
	case m := <-a.messages:
		a.handle(m)
	default:
	}
}

func (a *Agent) handle(m message) {
	var text string
	var err error

	switch m.req.Command {
	case Step:
		if a.stepping != nil {
			a.replyStep(nil)
		}
		a.state = govern.Stepping
		a.remaining = m.req.Steps
		if a.remaining < 1 {
			a.remaining = 1
		}
		a.stepping = &m
		return

	case Continue:
		a.state = govern.Running
		a.brake = 0

	case Pause:
		a.state = govern.Paused

	case Quit:
		a.state = govern.Ending

	case Inspect:
		text, err = a.inspect(m.req.Args)

	case Dump:
		err = a.dump(m.w)

	case Status:
		text = a.status()

	case Help:
		var kw string
		if len(m.req.Args) > 0 {
			kw = m.req.Args[0]
		}
		text, err = help(kw)
	}

	// a pending step is complete if the state has changed
	if a.stepping != nil && a.state != govern.Stepping {
		a.replyStep(nil)
	}

	m.reply <- a.response(text, err)
}

func (a *Agent) response(text string, err error) Response {
	return Response{
		State: a.state,
		Time:  a.h.Scheduler.Now(),
		Text:  text,
		Err:   err,
	}
}

func (a *Agent) replyStep(err error) {
	a.stepping.reply <- a.response("", err)
	a.stepping = nil
}

func (a *Agent) finish(err error) {
	a.state = govern.Finished
	if a.stepping != nil {
		a.replyStep(err)
	}
	a.err = err
	a.endTime = a.h.Scheduler.Now()
	close(a.done)
}

func (a *Agent) inspect(names []string) (string, error) {
	if len(names) == 0 {
		names = a.h.Core.Signals()
	}

	s := strings.Builder{}
	for _, n := range names {
		sig, err := a.h.Core.Lookup(n)
		if err != nil {
			return s.String(), err
		}
		s.WriteString(fmt.Sprintf("%s = %#x\n", n, a.h.Core.Get(sig)))
	}

	return s.String(), nil
}

func (a *Agent) dump(w io.Writer) error {
	if w == nil {
		return curated.Errorf(NoDumpWriter)
	}
	memviz.Map(w, a.h.Snapshot())
	return nil
}

func (a *Agent) status() string {
	st := a.h.Snapshot()

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("time: %d (%s)\n", st.Time, a.state))
	for _, d := range st.Domains {
		lvl := 0
		if d.Level {
			lvl = 1
		}
		s.WriteString(fmt.Sprintf("%s: level %d, toggles %d\n", d.Name, lvl, d.Toggles))
	}
	s.WriteString(fmt.Sprintf("psram: %d reads, %d writes\n", st.Peripherals.Reads, st.Peripherals.Writes))
	s.WriteString(fmt.Sprintf("frames: %d\n", st.Peripherals.Frames))
	s.WriteString(fmt.Sprintf("samples: %d\n", st.Peripherals.Samples))
	s.WriteString(fmt.Sprintf("serial: %d bytes\n", st.Peripherals.SerialBytes))
	for _, f := range st.Faults {
		s.WriteString(fmt.Sprintf("fault: %v\n", f))
	}

	return s.String()
}

// Done returns a channel that is closed when the Drive() function has
// returned.
func (a *Agent) Done() <-chan struct{} {
	return a.done
}

func (a *Agent) finished() Response {
	return Response{
		State: govern.Finished,
		Time:  a.endTime,
		Err:   a.err,
	}
}

// Send a request to the agent and wait for the response. The writer is only
// used by the Dump command.
func (a *Agent) Send(req Request, w io.Writer) Response {
	m := message{
		req:   req,
		w:     w,
		reply: make(chan Response, 1),
	}

	select {
	case a.messages <- m:
	case <-a.done:
		return a.finished()
	}

	select {
	case r := <-m.reply:
		return r
	case <-a.done:
		select {
		case r := <-m.reply:
			return r
		default:
			return a.finished()
		}
	}
}

// Step the simulation by n ticks. Returns when the ticks have been simulated.
func (a *Agent) Step(n int) Response {
	return a.Send(Request{Command: Step, Steps: n}, nil)
}

// Continue the simulation.
func (a *Agent) Continue() Response {
	return a.Send(Request{Command: Continue}, nil)
}

// Pause the simulation.
func (a *Agent) Pause() Response {
	return a.Send(Request{Command: Pause}, nil)
}

// Quit the simulation.
func (a *Agent) Quit() Response {
	return a.Send(Request{Command: Quit}, nil)
}

// Inspect the named signals.
func (a *Agent) Inspect(names ...string) Response {
	return a.Send(Request{Command: Inspect, Args: names}, nil)
}

// Dump the harness state to the writer.
func (a *Agent) Dump(w io.Writer) Response {
	return a.Send(Request{Command: Dump}, w)
}

// Status of the harness.
func (a *Agent) Status() Response {
	return a.Send(Request{Command: Status}, nil)
}
