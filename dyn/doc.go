/*
 * doc.go, part of gophon.
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

/*
Package dyn reads the dynamical-matrix files written by ph.x.

A dyn file is read in one forward pass, in this order:

	header       number of atoms (second field of the third line), species, positions
	q-point      the "q = ( ... )" line
	IFC          nat*nat force-constant blocks, one per atom pair
	dielectric   "Dielectric Tensor:" block, only for Gamma
	charges      "Effective Charges E-U" and "U-E" blocks, only for Gamma
	modes        3*nat frequencies, each with its nat displacement rows

The sections can be obtained one at a time with a Reader, or all at once
with Read, ReadFile or ReadFiles. The dielectric tensor and the effective
charges are only looked for when the q-point is zero within Options.ZeroTol.
A missing optional section is not an error.

Errors are either a *FormatError (something required is missing or malformed)
or a *ConsistencyError (the file has only one of the two effective charge
blocks). Both implement phon.ParseError.

A typical use:

	rec, err := dyn.ReadFile("si.dyn1", nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(rec.Q, rec.Frequencies())
*/
package dyn
