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

// Mode indicates the broad condition of the harness.
type Mode int

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "None"
	case ModeBatch:
		return "Batch"
	case ModeDebugger:
		return "Debugger"
	case ModeRegression:
		return "Regression"
	}

	return ""
}

// List of defined modes.
const (
	ModeNone Mode = iota
	ModeBatch
	ModeDebugger
	ModeRegression
)
