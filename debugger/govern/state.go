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

package govern

// State indicates the harness's state.
type State int

// List of possible harness states.
//
// Uninitialised is the default state and should never be entered once the
// harness has been created. Reset is the state of a harness that has been
// created but whose core has not yet been reset.
//
// Paused, Stepping and Ending are only seen by the continue check of the
// Run() function.
const (
	Uninitialised State = iota
	Reset
	Running
	Paused
	Stepping
	Ending
	Finished
)

func (s State) String() string {
	switch s {
	case Uninitialised:
		return "Uninitialised"
	case Reset:
		return "Reset"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Stepping:
		return "Stepping"
	case Ending:
		return "Ending"
	case Finished:
		return "Finished"
	}

	return ""
}
