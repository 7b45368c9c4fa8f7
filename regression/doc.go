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

// Package regression facilitates the regression testing of the harness and
// the reference core. Regression entries are stored in a flat file database
// (see the database package) at a location returned by DefaultDBPath().
//
// A regression entry records a profile, an optional overrides file and a
// time budget, along with the video, serial and audio digests produced when
// the entry was added. Running the regression database runs the harness for
// each entry and compares the new digests with the stored digests. The
// DigestMode of the entry specifies which of the digests are compared.
//
// The RegressAdd(), RegressList(), RegressDelete() and RegressRun()
// functions are the interface to the regression database.
package regression
