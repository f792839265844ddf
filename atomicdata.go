/*
 * atomicdata.go, part of gophon.
 *
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

import (
	"strings"
	"unicode"
)

// AMURy is the atomic mass unit in Rydberg atomic units of mass (half the electron mass),
// the unit of the species masses in dyn files.
const AMURy = 911.44424310865645

//A map for assigning standard atomic masses (amu) to elements.
//Only elements common in solid-state calculations are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Na": 22.990,
	"Mg": 24.305,
	"Al": 26.982,
	"Si": 28.0855,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.098,
	"Ca": 40.078,
	"Ti": 47.867,
	"Cr": 51.996,
	"Mn": 54.938,
	"Fe": 55.845,
	"Co": 58.933,
	"Ni": 58.693,
	"Cu": 63.546,
	"Zn": 65.38,
	"Ga": 69.723,
	"Ge": 72.630,
	"As": 74.922,
	"Se": 78.971,
	"Br": 79.904,
	"Sr": 87.62,
	"Zr": 91.224,
	"Nb": 92.906,
	"Mo": 95.95,
	"Ag": 107.87,
	"Cd": 112.41,
	"In": 114.82,
	"Sn": 118.71,
	"Sb": 121.76,
	"Te": 127.60,
	"I":  126.90,
	"Ba": 137.33,
	"Ta": 180.95,
	"W":  183.84,
	"Au": 196.97,
	"Pb": 207.2,
	"Bi": 208.98,
}

// StandardMass returns the standard atomic mass, in amu, of the element symbol.
// ok is false if the element is not known.
func StandardMass(symbol string) (mass float64, ok bool) {
	mass, ok = symbolMass[symbol]
	return
}

// AMU returns the mass of the species in atomic mass units.
func (S Species) AMU() float64 {
	return S.Mass / AMURy
}

// Element guesses the element symbol from the species name, which often carries
// a suffix, as in "Fe1" or "O_h". It returns an empty string if no known
// element matches.
func (S Species) Element() string {
	name := strings.TrimLeftFunc(S.Name, unicode.IsSpace)
	end := strings.IndexFunc(name, func(r rune) bool { return !unicode.IsLetter(r) })
	if end >= 0 {
		name = name[:end]
	}
	for l := min(2, len(name)); l > 0; l-- {
		s := strings.ToUpper(name[:1]) + strings.ToLower(name[1:l])
		if _, ok := symbolMass[s]; ok {
			return s
		}
	}
	return ""
}
