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

// Package debugger implements the debug agent for the harness. The agent is
// the only point at which a running harness can be suspended.
//
// The agent's ContinueCheck() function is given to the harness's Run()
// function. When the agent is paused the continue check blocks until a
// command arrives on the agent's command channel. While running, the command
// channel is polled every hardware.PerformanceBrake ticks.
//
//	agent := debugger.NewAgent(harness)
//	go func() {
//		_ = agent.Drive()
//	}()
//	agent.Step(10)
//	agent.Continue()
//	agent.Quit()
//
// Commands can be sent from any goroutine. The functions that send commands
// block until the command has been dealt with. In the case of the Step
// command the reply is sent after the requested number of ticks have been
// simulated.
//
// Command lines, as typed by a user, are converted into a Request with the
// ParseCommand() function. The terminal package provides a console that
// reads command lines and forwards them to the agent.
package debugger
