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
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/gatesim/curated"
)

// debugger keywords
const (
	cmdStep     = "STEP"
	cmdContinue = "CONTINUE"
	cmdPause    = "PAUSE"
	cmdQuit     = "QUIT"
	cmdInspect  = "INSPECT"
	cmdDump     = "DUMP"
	cmdStatus   = "STATUS"
	cmdHelp     = "HELP"
)

// single letter abbreviations take precedence over prefix matching.
var abbreviations = map[string]string{
	"S": cmdStep,
	"C": cmdContinue,
	"P": cmdPause,
	"Q": cmdQuit,
	"I": cmdInspect,
}

// Command is the type of request that can be sent to the Agent.
type Command int

// List of valid commands.
const (
	Step Command = iota
	Continue
	Pause
	Quit
	Inspect
	Dump
	Status
	Help
)

var keywords = map[string]Command{
	cmdStep:     Step,
	cmdContinue: Continue,
	cmdPause:    Pause,
	cmdQuit:     Quit,
	cmdInspect:  Inspect,
	cmdDump:     Dump,
	cmdStatus:   Status,
	cmdHelp:     Help,
}

func (cmd Command) String() string {
	switch cmd {
	case Step:
		return cmdStep
	case Continue:
		return cmdContinue
	case Pause:
		return cmdPause
	case Quit:
		return cmdQuit
	case Inspect:
		return cmdInspect
	case Dump:
		return cmdDump
	case Status:
		return cmdStatus
	case Help:
		return cmdHelp
	}
	return ""
}

// Request is a command and its arguments.
type Request struct {
	Command Command

	// number of ticks for the Step command. values less than one are
	// treated as one
	Steps int

	// signal names for the Inspect command, the filename for the Dump
	// command or the keyword for the Help command
	Args []string
}

// Sentinal error patterns.
const (
	NoCommand        = "debugger: no command"
	UnknownCommand   = "debugger: unknown command (%s)"
	AmbiguousCommand = "debugger: ambiguous command (%s)"
	InvalidArgument  = "debugger: invalid argument for %s (%s)"
	TooManyArguments = "debugger: too many arguments for %s"
)

// Keywords returns the sorted list of command keywords.
func Keywords() []string {
	kw := make([]string, 0, len(keywords))
	for k := range keywords {
		kw = append(kw, k)
	}
	sort.Strings(kw)
	return kw
}

// match the user supplied word against the list of keywords. a word can be
// abbreviated to any unique prefix.
func match(word string) (string, error) {
	word = strings.ToUpper(word)

	if k, ok := abbreviations[word]; ok {
		return k, nil
	}
	if _, ok := keywords[word]; ok {
		return word, nil
	}

	var found string
	for _, k := range Keywords() {
		if strings.HasPrefix(k, word) {
			if found != "" {
				return "", curated.Errorf(AmbiguousCommand, word)
			}
			found = k
		}
	}
	if found == "" {
		return "", curated.Errorf(UnknownCommand, word)
	}

	return found, nil
}

// ParseCommand converts a command line into a Request.
func ParseCommand(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Request{}, curated.Errorf(NoCommand)
	}

	kw, err := match(fields[0])
	if err != nil {
		return Request{}, err
	}
	args := fields[1:]

	req := Request{Command: keywords[kw]}

	switch req.Command {
	case Step:
		req.Steps = 1
		if len(args) > 1 {
			return Request{}, curated.Errorf(TooManyArguments, kw)
		}
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return Request{}, curated.Errorf(InvalidArgument, kw, args[0])
			}
			req.Steps = n
		}

	case Continue, Pause, Quit, Status:
		if len(args) > 0 {
			return Request{}, curated.Errorf(TooManyArguments, kw)
		}

	case Dump, Help:
		if len(args) > 1 {
			return Request{}, curated.Errorf(TooManyArguments, kw)
		}
		req.Args = args

	case Inspect:
		req.Args = args
	}

	return req, nil
}
