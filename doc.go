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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package phon holds the data obtained from the dynamical-matrix files
written by the phonon code of Quantum ESPRESSO (ph.x), one file per q-point.

	**gophon Capabilities**

	Reads dynamical-matrix ("dyn") files, plain or compressed with gzip or zstd,
	either section by section or as a whole Record (package dyn).

	Keeps the q-point, the interatomic force constants for every atom pair,
	the dielectric tensor and the Born effective charges (only present for
	the Gamma point) and the 3N frequencies with their normal modes.

	Normal modes keep both the real and imaginary parts of the displacements.

	Serializes records to and from JSON.

	Stores parsed records in a SQLite database (package dynstore).

	Plots phonon dispersions along a list of q-points (package dynplot).

	Builds densities of states as frequency histograms (package dos).

	Knows the standard masses of common elements, to check the species masses
	(given in Rydberg units) of a file.

Tensors wrap gonum dense matrices, so everything in gonum.org/v1/gonum/mat
can be used on them directly.
*/
package phon
