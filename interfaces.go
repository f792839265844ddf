/*
 * interfaces.go, part of gophon.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package phon

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds the caller to the trail and returns the trail. An empty string only returns the current trail.
}

// ParseError is an Error produced while reading a file. It knows where
// the problem was found.
type ParseError interface {
	Error
	Critical() bool
	FileName() string
	Line() int
}

// LastSectionError has a useless function to distinguish the harmless errors (i.e. no more sections in a file) so  they can be
// filtered in a typeswitch that looks for this interface.
type LastSectionError interface {
	ParseError
	NormalLastSectionTermination() //does nothing, just to separate this interface from other ParseError's
}
