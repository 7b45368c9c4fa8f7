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

package regression

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/database"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/profiles"
)

const runEntryType = "run"

const (
	runFieldProfile int = iota
	runFieldOverrides
	runFieldBudget
	runFieldMode
	runFieldVideoDigest
	runFieldSerialDigest
	runFieldAudioDigest
	runFieldNotes
	numRunFields
)

// RunRegression runs a profile for a fixed time budget and records the
// digests of the output.
type RunRegression struct {
	Profile string

	// path to a TOML file of profile overrides. can be empty
	Overrides string

	// the time budget. if zero the budget of the profile is used
	Budget clocks.Time

	Mode  DigestMode
	Notes string

	videoDigest  string
	serialDigest string
	audioDigest  string
}

func deserialiseRunEntry(fields []string) (database.Entry, error) {
	if len(fields) != numRunFields {
		return nil, curated.Errorf("regression: run entry: wrong number of fields (%d)", len(fields))
	}

	reg := &RunRegression{
		Profile:      fields[runFieldProfile],
		Overrides:    fields[runFieldOverrides],
		Notes:        fields[runFieldNotes],
		videoDigest:  fields[runFieldVideoDigest],
		serialDigest: fields[runFieldSerialDigest],
		audioDigest:  fields[runFieldAudioDigest],
	}

	budget, err := strconv.ParseUint(fields[runFieldBudget], 10, 64)
	if err != nil {
		return nil, curated.Errorf("regression: run entry: invalid budget (%s)", fields[runFieldBudget])
	}
	reg.Budget = clocks.Time(budget)

	reg.Mode, err = ParseDigestMode(fields[runFieldMode])
	if err != nil {
		return nil, err
	}

	return reg, nil
}

// EntryType implements the database.Entry interface.
func (reg *RunRegression) EntryType() string {
	return runEntryType
}

// Serialise implements the database.Entry interface.
func (reg *RunRegression) Serialise() ([]string, error) {
	return []string{
		reg.Profile,
		reg.Overrides,
		strconv.FormatUint(uint64(reg.Budget), 10),
		reg.Mode.String(),
		reg.videoDigest,
		reg.serialDigest,
		reg.audioDigest,
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg *RunRegression) CleanUp() error {
	return nil
}

func (reg *RunRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s] %s", runEntryType, reg.Profile))
	if reg.Overrides != "" {
		s.WriteString(fmt.Sprintf(" (%s)", reg.Overrides))
	}
	if reg.Budget > 0 {
		s.WriteString(fmt.Sprintf(" budget=%d", reg.Budget))
	}
	s.WriteString(fmt.Sprintf(" [%s]", reg.Mode))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" \"%s\"", reg.Notes))
	}
	return s.String()
}

// create the harness for the entry. a regression harness produces no
// output other than the digests.
func (reg *RunRegression) harness() (*hardware.Harness, error) {
	p, err := profiles.Lookup(reg.Profile)
	if err != nil {
		return nil, err
	}

	if reg.Overrides != "" {
		f, err := os.Open(reg.Overrides)
		if err != nil {
			return nil, curated.Errorf("regression: %v", err)
		}
		o, err := profiles.LoadOverrides(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		if err := p.Apply(o); err != nil {
			return nil, err
		}
	}

	if reg.Budget > 0 {
		p.Harness.Budget = reg.Budget
	}

	env := environment.NewEnvironment(environment.RegressionHarness, p.Name)
	env.Mode = govern.ModeRegression
	env.Quiet = true

	return p.NewHarness(env, hardware.Sinks{})
}

func (reg *RunRegression) regress(newRegression bool) (bool, string, error) {
	h, err := reg.harness()
	if err != nil {
		return false, "", err
	}

	// faults do not end a run. they are counted in the report
	for {
		err := h.Run(nil)
		if err == nil {
			break
		}
		var f core.Fault
		if !errors.As(err, &f) {
			return false, "", err
		}
	}

	r, err := h.Finish()
	if err != nil {
		return false, "", err
	}

	if newRegression {
		reg.videoDigest = r.VideoDigest
		reg.serialDigest = r.SerialDigest
		reg.audioDigest = r.AudioDigest
		return true, "", nil
	}

	if reg.Mode.video() && r.VideoDigest != reg.videoDigest {
		return false, "video digest mismatch", nil
	}
	if reg.Mode.serial() && r.SerialDigest != reg.serialDigest {
		return false, "serial digest mismatch", nil
	}
	if reg.Mode.audio() && r.AudioDigest != reg.audioDigest {
		return false, "audio digest mismatch", nil
	}

	return true, "", nil
}
