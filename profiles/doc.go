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

// Package profiles enumerates the deployment profiles of the harness. A
// profile is the complete configuration for one design: clock domains, the
// peripherals that are emulated, memory sizes, firmware location and the
// configuration of the reference core.
//
// Profiles are Go values. Individual fields can be overridden by a TOML file
// with the LoadOverrides() and Apply() functions. For example:
//
//	budget = 1000000
//	edge = "rising"
//	firmware = "build/firmware.bin"
//	firmware_offset = 0x100000
//
//	[domains.dvi]
//	freq = 25175000
//
//	[display]
//	width = 640
//	height = 480
//
//	[memory]
//	psram = 0x1000000
//
// Edge convention: every domain of a profile, and the reference core, use the
// same active edge. The vectorscope profile services peripherals on the
// falling edge. All other profiles use the rising edge.
package profiles
