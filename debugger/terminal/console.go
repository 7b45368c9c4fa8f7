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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/gatesim/debugger"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/debugger/terminal/easyterm"
)

// Console reads commands and prints responses.
type Console struct {
	agent  *debugger.Agent
	input  io.Reader
	output io.Writer

	// nil if the console is not attached to a terminal
	term *easyterm.Terminal

	// bytes read from the input. closed when the input is exhausted
	keys chan byte

	last debugger.Response
}

// NewConsole is the preferred method of initialisation for the Console type.
//
// If the output is also written to by the harness, for example by the serial
// capture, then it should be a SyncWriter and the same SyncWriter must be
// given to the harness. Any other writer is wrapped in a new SyncWriter.
func NewConsole(agent *debugger.Agent, input io.Reader, output io.Writer) *Console {
	if _, ok := output.(*SyncWriter); !ok {
		output = NewSyncWriter(output)
	}
	return &Console{
		agent:  agent,
		input:  input,
		output: output,
		keys:   make(chan byte, 256),
		last:   debugger.Response{State: govern.Paused},
	}
}

// AttachTerminal allows single keypresses to be read while the simulation is
// running. The file should be the same file as the console input.
func (con *Console) AttachTerminal(f *os.File) error {
	t, err := easyterm.NewTerminal(f)
	if err != nil {
		return err
	}
	con.term = t
	return nil
}

func (con *Console) read() {
	defer close(con.keys)
	r := bufio.NewReader(con.input)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		con.keys <- b
	}
}

// readLine returns false if the input has been exhausted and no bytes were
// read.
func (con *Console) readLine() (string, bool) {
	var line []byte
	for b := range con.keys {
		if b == '\n' {
			return string(line), true
		}
		line = append(line, b)
	}
	return string(line), len(line) > 0
}

func (con *Console) prompt() string {
	return fmt.Sprintf("[%s %d] > ", con.last.State, con.last.Time)
}

func (con *Console) print(r debugger.Response) {
	con.last = r
	if r.Text != "" {
		fmt.Fprint(con.output, r.Text)
	}
	if r.Err != nil {
		fmt.Fprintf(con.output, "* %v\n", r.Err)
	}
}

// send the request to the agent. the Dump command writes to the named file
// or to the console output if no file is named.
func (con *Console) send(req debugger.Request) debugger.Response {
	if req.Command != debugger.Dump {
		return con.agent.Send(req, nil)
	}

	if len(req.Args) == 0 {
		return con.agent.Send(req, con.output)
	}

	f, err := os.Create(req.Args[0])
	if err != nil {
		return debugger.Response{State: con.last.State, Time: con.last.Time, Err: err}
	}
	r := con.agent.Send(req, f)
	if err := f.Close(); err != nil && r.Err == nil {
		r.Err = err
	}
	if r.Err == nil {
		r.Text = fmt.Sprintf("state written to %s\n", req.Args[0])
	}
	return r
}

// ended returns true if the response indicates that the simulation is over.
func ended(r debugger.Response) bool {
	return r.State == govern.Ending || r.State == govern.Finished
}

// Serve reads commands until the simulation has ended or the input is
// exhausted. If the input is exhausted the QUIT command is sent to the agent.
func (con *Console) Serve() error {
	go con.read()

	for {
		fmt.Fprint(con.output, con.prompt())

		line, ok := con.readLine()
		if !ok {
			con.print(con.agent.Quit())
			return con.last.Err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		req, err := debugger.ParseCommand(line)
		if err != nil {
			fmt.Fprintf(con.output, "* %v\n", err)
			continue
		}

		con.print(con.send(req))
		if ended(con.last) {
			return con.last.Err
		}

		if con.last.State == govern.Running {
			if err := con.running(); err != nil {
				return err
			}
			if ended(con.last) {
				return con.last.Err
			}
		}
	}
}

// running handles input while the simulation is running. it returns when the
// simulation is no longer running.
func (con *Console) running() error {
	if con.term != nil {
		if err := con.term.CBreakMode(); err != nil {
			return err
		}
		defer con.term.CanonicalMode()
	}

	var line []byte

	for {
		select {
		case <-con.agent.Done():
			con.print(con.agent.Status())
			return nil

		case b, ok := <-con.keys:
			if !ok {
				con.print(con.agent.Quit())
				return nil
			}

			if con.term != nil {
				if b == 'q' {
					con.print(con.agent.Quit())
				} else {
					con.print(con.agent.Pause())
				}
				return nil
			}

			if b != '\n' {
				line = append(line, b)
				continue
			}

			req := debugger.Request{Command: debugger.Pause}
			if strings.TrimSpace(string(line)) != "" {
				var err error
				req, err = debugger.ParseCommand(string(line))
				if err != nil {
					fmt.Fprintf(con.output, "* %v\n", err)
					line = line[:0]
					continue
				}
			}
			line = line[:0]

			con.print(con.send(req))
			if con.last.State != govern.Running {
				return nil
			}
		}
	}
}
