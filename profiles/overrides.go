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
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/hardware/clocks"
)

// DomainOverride changes the frequency of a single clock domain.
type DomainOverride struct {
	Freq *uint64 `toml:"freq"`
}

// DisplayOverride changes the display geometry. Zero totals mean the
// reference core's default blanking.
type DisplayOverride struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	HTotal int `toml:"htotal"`
	VTotal int `toml:"vtotal"`
}

// MemoryOverride changes the size of the backing stores.
type MemoryOverride struct {
	PSRAM    *uint32 `toml:"psram"`
	SPIFlash *uint32 `toml:"spiflash"`
}

// Overrides are the fields of a profile that can be changed by a TOML file.
// A nil field leaves the profile unchanged.
type Overrides struct {
	Budget         *uint64                   `toml:"budget"`
	Edge           *string                   `toml:"edge"`
	Frames         *int                      `toml:"frames"`
	Firmware       *string                   `toml:"firmware"`
	FirmwareHash   *string                   `toml:"firmware_hash"`
	FirmwareOffset *uint32                   `toml:"firmware_offset"`
	Trace          *bool                     `toml:"trace"`
	Domains        map[string]DomainOverride `toml:"domains"`
	Display        *DisplayOverride          `toml:"display"`
	Memory         *MemoryOverride           `toml:"memory"`
}

// Sentinal error patterns.
const (
	OverrideError    = "profiles: override: %v"
	UnknownKeys      = "profiles: override: unknown keys (%s)"
	UnknownEdge      = "profiles: override: unknown edge (%s)"
	UnknownDomain    = "profiles: override: no domain named %s in profile %s"
	NoPeripheral     = "profiles: override: profile %s has no %s"
	OverrideNotValid = "profiles: override: %s not valid (%v)"
)

// LoadOverrides decodes TOML data. Keys that do not correspond to a field
// of the Overrides type are an error.
func LoadOverrides(r io.Reader) (Overrides, error) {
	var o Overrides

	md, err := toml.NewDecoder(r).Decode(&o)
	if err != nil {
		return Overrides{}, curated.Errorf(OverrideError, err)
	}

	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i := range u {
			keys[i] = u[i].String()
		}
		return Overrides{}, curated.Errorf(UnknownKeys, strings.Join(keys, ", "))
	}

	return o, nil
}

// Apply the overrides to the profile.
func (p *Profile) Apply(o Overrides) error {
	if o.Budget != nil {
		p.Harness.Budget = clocks.Time(*o.Budget)
	}

	if o.Edge != nil {
		var edge clocks.Edge
		switch strings.ToLower(*o.Edge) {
		case "rising":
			edge = clocks.Rising
		case "falling":
			edge = clocks.Falling
		default:
			return curated.Errorf(UnknownEdge, *o.Edge)
		}
		for i := range p.Harness.Domains {
			p.Harness.Domains[i].ActiveEdge = edge
		}
		p.Core.ActiveEdge = edge
	}

	if o.Frames != nil {
		if *o.Frames < 0 {
			return curated.Errorf(OverrideNotValid, "frames", *o.Frames)
		}
		p.Core.Frames = *o.Frames
	}

	if o.Trace != nil {
		p.Harness.Trace = *o.Trace
	}

	for name, d := range o.Domains {
		idx := -1
		for i := range p.Harness.Domains {
			if p.Harness.Domains[i].Name == name {
				idx = i
				break
			}
		}
		if idx == -1 {
			return curated.Errorf(UnknownDomain, name, p.Name)
		}
		if d.Freq != nil {
			p.Harness.Domains[idx].Freq = clocks.Freq(*d.Freq)
		}
	}

	if o.Display != nil {
		if p.Harness.DVI == nil {
			return curated.Errorf(NoPeripheral, p.Name, "display")
		}
		p.Harness.DVI.Width = o.Display.Width
		p.Harness.DVI.Height = o.Display.Height
		p.Core.Width = o.Display.Width
		p.Core.Height = o.Display.Height
		p.Core.HTotal = o.Display.HTotal
		p.Core.VTotal = o.Display.VTotal
	}

	if o.Memory != nil {
		if o.Memory.PSRAM != nil {
			if p.Harness.PSRAM == nil {
				return curated.Errorf(NoPeripheral, p.Name, "psram")
			}
			p.Harness.PSRAM.Size = *o.Memory.PSRAM
		}
		if o.Memory.SPIFlash != nil {
			if p.Harness.SPIFlash == nil {
				return curated.Errorf(NoPeripheral, p.Name, "spiflash")
			}
			p.Harness.SPIFlash.Size = *o.Memory.SPIFlash
		}
	}

	if o.Firmware != nil || o.FirmwareOffset != nil || o.FirmwareHash != nil {
		if p.Harness.SPIFlash == nil {
			return curated.Errorf(NoPeripheral, p.Name, "spiflash")
		}
		if o.Firmware != nil {
			p.Harness.Firmware = *o.Firmware
		}
		if o.FirmwareHash != nil {
			p.Harness.FirmwareHash = *o.FirmwareHash
		}
		if o.FirmwareOffset != nil {
			p.Harness.SPIFlash.Offset = *o.FirmwareOffset
			p.Core.BannerAddr = *o.FirmwareOffset / 4
		}
	}

	return nil
}
