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

package profiles_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/profiles"
	"github.com/jetsetilly/gatesim/test"
)

func newEnv(profile string) *environment.Environment {
	env := environment.NewEnvironment("test", profile)
	env.Quiet = true
	return env
}

func TestList(t *testing.T) {
	l := profiles.List()
	names := make([]string, len(l))
	for i := range l {
		names[i] = l[i].Name
	}
	test.ExpectEquality(t, strings.Join(names, " "), "dsp selftest soc vectorscope")

	_, err := profiles.Lookup(profiles.Default)
	test.ExpectSuccess(t, err)

	_, err = profiles.Lookup("atari")
	test.ExpectSuccess(t, curated.Is(err, profiles.UnknownProfile))
}

func TestIndependence(t *testing.T) {
	a, err := profiles.Lookup("soc")
	test.DemandSuccess(t, err)
	a.Harness.PSRAM.Size = 1
	a.Harness.Domains[0].Freq = 1

	b, err := profiles.Lookup("soc")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Harness.PSRAM.Size, uint32(32*1024*1024))
	test.ExpectEquality(t, b.Harness.Domains[0].Freq, 60*clocks.MHz)
}

func TestEdgeConvention(t *testing.T) {
	for _, p := range profiles.List() {
		for _, d := range p.Harness.Domains {
			test.ExpectEquality(t, d.ActiveEdge, p.Core.ActiveEdge, p.Name, d.Name)
		}
	}

	p, _ := profiles.Lookup("vectorscope")
	test.ExpectEquality(t, p.Core.ActiveEdge, clocks.Falling)
}

func TestHarnesses(t *testing.T) {
	for _, p := range profiles.List() {
		h, err := p.NewHarness(newEnv(p.Name), hardware.Sinks{})
		if !test.ExpectSuccess(t, err, p.Name) {
			continue
		}
		test.ExpectSuccess(t, h.Reset(), p.Name)
		_, err = h.Finish()
		test.ExpectSuccess(t, err, p.Name)
	}
}

func TestSelftest(t *testing.T) {
	p, err := profiles.Lookup("selftest")
	test.DemandSuccess(t, err)

	h, err := p.NewHarness(newEnv(p.Name), hardware.Sinks{})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, h.Run(nil))

	r, err := h.Finish()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, r.CoreFinished)
	test.ExpectEquality(t, r.Frames, 2)
	test.ExpectEquality(t, r.Profile, "selftest")
	test.ExpectEquality(t, r.Faults, 0)
	test.ExpectSuccess(t, r.HasBandwidth)
	test.ExpectInequality(t, r.Samples, uint64(0))
}

const overrides = `
budget = 1000
edge = "falling"
frames = 1
firmware_offset = 0x200

[domains.dvi]
freq = 50000000

[display]
width = 32
height = 24

[memory]
psram = 0x8000
`

func TestOverrides(t *testing.T) {
	o, err := profiles.LoadOverrides(strings.NewReader(overrides))
	test.DemandSuccess(t, err)

	p, _ := profiles.Lookup("selftest")
	test.DemandSuccess(t, p.Apply(o))

	test.ExpectEquality(t, p.Harness.Budget, clocks.Time(1000))
	test.ExpectEquality(t, p.Core.ActiveEdge, clocks.Falling)
	for _, d := range p.Harness.Domains {
		test.ExpectEquality(t, d.ActiveEdge, clocks.Falling, d.Name)
	}
	test.ExpectEquality(t, p.Core.Frames, 1)
	test.ExpectEquality(t, p.Harness.SPIFlash.Offset, uint32(0x200))
	test.ExpectEquality(t, p.Core.BannerAddr, uint32(0x80))
	test.ExpectEquality(t, p.Harness.Domains[1].Freq, 50*clocks.MHz)
	test.ExpectEquality(t, p.Harness.DVI.Width, 32)
	test.ExpectEquality(t, p.Core.Height, 24)
	test.ExpectEquality(t, p.Core.HTotal, 0)
	test.ExpectEquality(t, p.Harness.PSRAM.Size, uint32(0x8000))

	// the changed profile is still valid
	h, err := p.NewHarness(newEnv(p.Name), hardware.Sinks{})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, h.Run(nil))
	test.ExpectEquality(t, h.Scheduler.Now(), clocks.Time(1000))
}

func TestOverrideErrors(t *testing.T) {
	_, err := profiles.LoadOverrides(strings.NewReader("budget = 10\ncolour = true\n"))
	test.ExpectSuccess(t, curated.Is(err, profiles.UnknownKeys))

	_, err = profiles.LoadOverrides(strings.NewReader("budget = "))
	test.ExpectSuccess(t, curated.Is(err, profiles.OverrideError))

	apply := func(name string, data string) error {
		o, err := profiles.LoadOverrides(strings.NewReader(data))
		test.DemandSuccess(t, err)
		p, err := profiles.Lookup(name)
		test.DemandSuccess(t, err)
		return p.Apply(o)
	}

	err = apply("selftest", `edge = "both"`)
	test.ExpectSuccess(t, curated.Is(err, profiles.UnknownEdge))

	err = apply("selftest", "[domains.fast]\nfreq = 1\n")
	test.ExpectSuccess(t, curated.Is(err, profiles.UnknownDomain))

	err = apply("dsp", "[display]\nwidth = 1\nheight = 1\n")
	test.ExpectSuccess(t, curated.Is(err, profiles.NoPeripheral))

	err = apply("vectorscope", `firmware = "fw.bin"`)
	test.ExpectSuccess(t, curated.Is(err, profiles.NoPeripheral))
}
