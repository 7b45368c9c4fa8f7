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

// Package terminal is the debugging console. It reads command lines from the
// user and forwards them to the debugger's Agent.
//
// While the simulation is running, input is still read. If the console has
// been attached to a terminal (with the AttachTerminal() function) then any
// keypress pauses the simulation, except for 'q' which ends it. Otherwise a
// complete command line must be entered, an empty line being the same as the
// PAUSE command.
package terminal
