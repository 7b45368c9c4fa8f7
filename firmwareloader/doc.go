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

// Package firmwareloader is used to load binary images into the harness. Most
// often this is the firmware image that is copied into the flash emulator but
// the package is also used to load recorded audio stimulus.
//
// Images can be loaded from the local filesystem or over HTTP. Once loaded the
// SHA-1 hash of the data is recorded. If the Hash field is set before loading,
// the loaded data is checked against it and a mismatch is an error.
//
//	ld := firmwareloader.NewLoader("firmware.bin")
//	err := ld.Load()
//	if err != nil {
//		return err
//	}
package firmwareloader
