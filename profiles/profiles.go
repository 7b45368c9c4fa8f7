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

package profiles

import (
	"sort"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/peripherals/dvi"
	"github.com/jetsetilly/gatesim/hardware/peripherals/i2s"
	"github.com/jetsetilly/gatesim/hardware/peripherals/psram"
	"github.com/jetsetilly/gatesim/hardware/peripherals/spiflash"
	"github.com/jetsetilly/gatesim/hardware/peripherals/uart"
	"github.com/jetsetilly/gatesim/hardware/softcore"
)

// Profile is the configuration of the harness and the reference core for a
// single design.
type Profile struct {
	Name        string
	Description string
	Harness     hardware.Config
	Core        softcore.Config
}

// Sentinal error patterns.
const (
	UnknownProfile = "profiles: unknown profile (%s)"
)

// Default is the name of the profile used when none is specified.
const Default = "vectorscope"

// frequencies of the clock domains used by the profiles
const (
	syncFreq  = 60 * clocks.MHz
	dviFreq   = 74250 * clocks.KHz
	vgaFreq   = 25175 * clocks.KHz
	audioFreq = 12288 * clocks.KHz
	fastFreq  = 120 * clocks.MHz
)

// the original test patterns of the vectorscope design
func vectorscopeChannels() []i2s.Channel {
	return []i2s.Channel{
		{Signal: "fs_inject0", Source: i2s.Synth{Fn: i2s.Sine, Amplitude: 20000, Period: 6000}},
		{Signal: "fs_inject1", Source: i2s.Synth{Fn: i2s.Cosine, Amplitude: 20000, Period: 300}},
		{Signal: "fs_inject3", Source: i2s.Synth{Fn: i2s.Cosine, Amplitude: 20000, Period: 600}},
	}
}

func domain(name string, freq clocks.Freq, edge clocks.Edge) clocks.Spec {
	return clocks.Spec{
		Name:       name,
		Freq:       freq,
		ActiveEdge: edge,
		Clock:      "clk_" + name,
		Reset:      "rst_" + name,
	}
}

func vectorscope() Profile {
	const edge = clocks.Falling
	return Profile{
		Name:        "vectorscope",
		Description: "vectorscope without SoC. PSRAM, DVI and I2S on the falling edge",
		Harness: hardware.Config{
			Budget: 100000000,
			Domains: []clocks.Spec{
				domain("sync", syncFreq, edge),
				domain("dvi", dviFreq, edge),
				domain("audio", audioFreq, edge),
			},
			PSRAM: &psram.Config{
				Domain:    "sync",
				Size:      16 * 1024 * 1024,
				Signals:   psram.DefaultSignals(),
				Bandwidth: true,
			},
			DVI: &dvi.Config{
				Domain:  "dvi",
				Width:   1280,
				Height:  720,
				Signals: dvi.DefaultSignals(),
			},
			I2S: &i2s.Config{
				Domain:   "audio",
				Divider:  256,
				Strobe:   "fs_strobe",
				Channels: vectorscopeChannels(),
			},
		},
		Core: softcore.Config{
			ActiveEdge: edge,
			Width:      1280,
			Height:     720,
			HTotal:     1650,
			VTotal:     750,
			RingBase:   0,
			RingWords:  4096,
		},
	}
}

func soc() Profile {
	const edge = clocks.Rising
	return Profile{
		Name:        "soc",
		Description: "SoC with firmware in SPI flash, PSRAM, DVI and UART on the rising edge",
		Harness: hardware.Config{
			Budget: 5000000000,
			Domains: []clocks.Spec{
				domain("sync", syncFreq, edge),
				domain("dvi", dviFreq, edge),
			},
			PSRAM: &psram.Config{
				Domain:    "sync",
				Size:      32 * 1024 * 1024,
				Signals:   psram.DefaultSignals(),
				Bandwidth: true,
			},
			DVI: &dvi.Config{
				Domain:  "dvi",
				Width:   1280,
				Height:  720,
				Signals: dvi.DefaultSignals(),
			},
			SPIFlash: &spiflash.Config{
				Size:    spiflash.DefaultSize,
				Offset:  spiflash.DefaultOffset,
				Signals: spiflash.DefaultSignals(),
			},
			UART: &uart.Config{
				Domain:  "sync",
				Signals: uart.DefaultSignals(),
			},
			ResetPulses:      4,
			ResetPulseDomain: "sync",
		},
		Core: softcore.Config{
			ActiveEdge: edge,
			Width:      1280,
			Height:     720,
			HTotal:     1650,
			VTotal:     750,
			Frames:     4,
			RingBase:   0,
			RingWords:  4096,
			BannerAddr: spiflash.DefaultOffset / 4,
		},
	}
}

func dsp() Profile {
	const edge = clocks.Rising
	return Profile{
		Name:        "dsp",
		Description: "DSP core. PSRAM and I2S with a fast clock domain on the rising edge",
		Harness: hardware.Config{
			Budget: 100000000,
			Domains: []clocks.Spec{
				domain("sync", syncFreq, edge),
				domain("audio", audioFreq, edge),
				domain("fast", fastFreq, edge),
			},
			PSRAM: &psram.Config{
				Domain:    "sync",
				Size:      16 * 1024 * 1024,
				Signals:   psram.DefaultSignals(),
				Bandwidth: true,
			},
			I2S: &i2s.Config{
				Domain:   "audio",
				Divider:  256,
				Strobe:   "fs_strobe",
				Channels: i2s.DefaultChannels(),
			},
		},
		Core: softcore.Config{
			ActiveEdge: edge,
			Width:      16,
			Height:     16,
			RingBase:   0,
			RingWords:  4096,
		},
	}
}

// selftest is small enough to complete in a fraction of a second.
func selftest() Profile {
	const edge = clocks.Rising
	return Profile{
		Name:        "selftest",
		Description: "small display and memories at 60MHz, 25.175MHz and 12MHz. finishes after two frames",
		Harness: hardware.Config{
			Domains: []clocks.Spec{
				domain("sync", syncFreq, edge),
				domain("dvi", vgaFreq, edge),
				domain("audio", 12*clocks.MHz, edge),
			},
			PSRAM: &psram.Config{
				Domain:    "sync",
				Size:      64 * 1024,
				Signals:   psram.DefaultSignals(),
				Bandwidth: true,
			},
			DVI: &dvi.Config{
				Domain:  "dvi",
				Width:   64,
				Height:  48,
				Signals: dvi.DefaultSignals(),
			},
			I2S: &i2s.Config{
				Domain:   "audio",
				Divider:  16,
				Strobe:   "fs_strobe",
				Channels: i2s.DefaultChannels(),
			},
			SPIFlash: &spiflash.Config{
				Size:    64 * 1024,
				Offset:  0x100,
				Signals: spiflash.DefaultSignals(),
			},
			UART: &uart.Config{
				Domain:  "sync",
				Signals: uart.DefaultSignals(),
			},
		},
		Core: softcore.Config{
			ActiveEdge: edge,
			Width:      64,
			Height:     48,
			HTotal:     80,
			VTotal:     52,
			Frames:     2,
			RingBase:   0x1000,
			RingWords:  256,
			BannerAddr: 0x100 / 4,
		},
	}
}

// List returns every profile, sorted by name. The returned values share no
// memory with each other or with values returned by previous calls.
func List() []Profile {
	l := []Profile{vectorscope(), soc(), dsp(), selftest()}
	sort.Slice(l, func(i, j int) bool {
		return l[i].Name < l[j].Name
	})
	return l
}

// Lookup returns the named profile.
func Lookup(name string) (Profile, error) {
	for _, p := range List() {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, curated.Errorf(UnknownProfile, name)
}

// NewHarness creates the reference core and a harness for the profile.
func (p Profile) NewHarness(env *environment.Environment, sinks hardware.Sinks) (*hardware.Harness, error) {
	c, err := softcore.New(p.Core)
	if err != nil {
		return nil, err
	}
	return hardware.NewHarness(env, p.Harness, c, sinks)
}
