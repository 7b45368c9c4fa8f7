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

package environment

import "github.com/jetsetilly/gatesim/debugger/govern"

// Label is used to name the environment
type Label string

// MainHarness is the label used for the harness driven from the command line.
const MainHarness = Label("main")

// RegressionHarness is the label used for harnesses created by the
// regression database.
const RegressionHarness = Label("regression")

// Environment is used to provide context for a harness. Particularly useful
// when more than one harness is running in the same process, for example
// when comparing the output of two runs for determinism.
type Environment struct {
	Label Label

	// the name of the deployment profile the harness was built from
	Profile string

	// how the harness is being driven
	Mode govern.Mode

	// Quiet suppresses log entries made through this environment
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the Environment type.
func NewEnvironment(label Label, profile string) *Environment {
	return &Environment{
		Label:   label,
		Profile: profile,
		Mode:    govern.ModeNone,
	}
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	if env == nil {
		return true
	}
	return !env.Quiet
}

// IsMain returns true if the environment is for the harness driven from the
// command line.
func (env *Environment) IsMain() bool {
	return env != nil && env.Label == MainHarness
}
