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
	"fmt"
	"strings"
)

var helps = map[string]string{
	cmdStep:     "Advance the simulation by the specified number of ticks (default one).",
	cmdContinue: "Resume the simulation. It will run until paused, the budget is exhausted or the core finishes.",
	cmdPause:    "Suspend the simulation at the next opportunity.",
	cmdQuit:     "End the simulation. Sinks are flushed as normal.",
	cmdInspect:  "Print the current value of the named core signals. All signals are printed if no name is given.",
	cmdDump:     "Write a graph of the harness state, in DOT format, to the named file.",
	cmdStatus:   "Print simulated time, clock domain state and peripheral activity.",
	cmdHelp:     "List commands or describe a single command.",
}

// help returns the help text for a keyword or the list of keywords if
// keyword is empty.
func help(keyword string) (string, error) {
	if keyword == "" {
		s := strings.Builder{}
		for _, k := range Keywords() {
			s.WriteString(fmt.Sprintf("%-10s %s\n", k, helps[k]))
		}
		return s.String(), nil
	}

	kw, err := match(keyword)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\n", helps[kw]), nil
}
