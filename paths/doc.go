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

// Package paths contains functions to prepare paths to gatesim resources.
//
// The ResourcePath() function returns the supplied resource name prepended
// with the appropriate config directory. For example, the following returns
// the path to the default regression database.
//
//	p, err := paths.ResourcePath("", "regressionDB")
//
// If the base resource path, ".gatesim", is present in the current directory
// then that is the base path that is used. Otherwise the user's config
// directory (os.UserConfigDir()) is used. On a modern Linux system the path
// returned by the example above will be:
//
//	/home/user/.config/gatesim/regressionDB
//
// The directory part of the resource path is created if it does not exist.
package paths
