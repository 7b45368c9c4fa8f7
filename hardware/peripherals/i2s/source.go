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

package i2s

import (
	"fmt"
	"math"
)

// Source supplies the value injected into a channel at sample boundary k. The
// first sample boundary has a k value of one. Implementations must be
// deterministic: the same k always returns the same value.
type Source interface {
	Sample(k uint64) int64
}

// Waveform is the trigonometric function used by a Synth.
type Waveform int

// List of valid Waveform values.
const (
	Sine Waveform = iota
	Cosine
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sin"
	case Cosine:
		return "cos"
	}
	return "unknown waveform"
}

// Synth is a synthetic test tone. The value at sample k is
//
//	round(Amplitude * fn(k / Period))
type Synth struct {
	Fn        Waveform
	Amplitude float64
	Period    float64
}

// Sample implements the Source interface.
func (s Synth) Sample(k uint64) int64 {
	x := float64(k) / s.Period
	var v float64
	switch s.Fn {
	case Cosine:
		v = math.Cos(x)
	default:
		v = math.Sin(x)
	}
	return int64(math.Round(s.Amplitude * v))
}

func (s Synth) String() string {
	return fmt.Sprintf("%.0f*%s(k/%.0f)", s.Amplitude, s.Fn, s.Period)
}
