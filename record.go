/*
 * record.go, part of gophon.
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

package phon

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// QPoint is a wavevector, in the 2pi/alat units used by ph.x.
type QPoint [3]float64

// IsZero returns true if every component of q is within tol of 0.
func (q QPoint) IsZero(tol float64) bool {
	for _, v := range q {
		if !scalar.EqualWithinAbs(v, 0, tol) {
			return false
		}
	}
	return true
}

func (q QPoint) String() string {
	return fmt.Sprintf("(%.9f %.9f %.9f)", q[0], q[1], q[2])
}

// Pair is an ordered pair of 1-based atom indexes.
type Pair struct {
	I, J int
}

// IFC contains the interatomic force constants for every ordered pair of atoms.
// Each block has a real and an imaginary part. When the file only gives real values
// the imaginary part is a zero tensor.
type IFC struct {
	natoms int
	re     map[Pair]*Tensor
	im     map[Pair]*Tensor
}

// NewIFC returns an empty IFC table for natoms atoms.
func NewIFC(natoms int) *IFC {
	return &IFC{natoms: natoms, re: make(map[Pair]*Tensor), im: make(map[Pair]*Tensor)}
}

// NAtoms returns the number of atoms the table was built for.
func (F *IFC) NAtoms() int { return F.natoms }

// Len returns the number of atom pairs stored.
func (F *IFC) Len() int { return len(F.re) }

// Complete returns true if every ordered pair of atoms has a block.
func (F *IFC) Complete() bool { return len(F.re) == F.natoms*F.natoms }

// Set stores the block for atoms i and j (1-based). im can be nil, in which
// case a zero tensor is stored. It fails if the indexes are out of range or
// the pair is already present.
func (F *IFC) Set(i, j int, re, im *Tensor) error {
	if i < 1 || j < 1 || i > F.natoms || j > F.natoms {
		return fmt.Errorf("phon: atom pair (%d, %d) out of range for %d atoms", i, j, F.natoms)
	}
	p := Pair{i, j}
	if _, ok := F.re[p]; ok {
		return fmt.Errorf("phon: atom pair (%d, %d) given twice", i, j)
	}
	if im == nil {
		im = ZeroTensor()
	}
	F.re[p] = re
	F.im[p] = im
	return nil
}

// At returns the real part of the block for atoms i and j (1-based), or nil.
func (F *IFC) At(i, j int) *Tensor {
	return F.re[Pair{i, j}]
}

// Imag returns the imaginary part of the block for atoms i and j (1-based), or nil.
func (F *IFC) Imag(i, j int) *Tensor {
	return F.im[Pair{i, j}]
}

// Pairs returns the stored pairs, sorted by I and then by J.
func (F *IFC) Pairs() []Pair {
	ret := make([]Pair, 0, len(F.re))
	for p := range F.re {
		ret = append(ret, p)
	}
	sort.Slice(ret, func(a, b int) bool {
		if ret[a].I != ret[b].I {
			return ret[a].I < ret[b].I
		}
		return ret[a].J < ret[b].J
	})
	return ret
}

// AtomTensors maps 1-based atom indexes to tensors.
type AtomTensors map[int]*Tensor

// Charges contains the Born effective charges. ZEU is the E-U block
// (from the response to an electric field) and ZUE the U-E block (from
// the polarization induced by atomic displacements).
type Charges struct {
	ZEU AtomTensors
	ZUE AtomTensors
}

// Mode is a vibrational frequency and its displacement pattern.
type Mode struct {
	Index int     //as printed in the file
	THz   float64 //frequency in THz
	CM1   float64 //frequency in cm-1, NaN if the file doesn't give it
	Disp  *mat.CDense
}

// NAtoms returns the number of rows in the displacement pattern.
func (M *Mode) NAtoms() int {
	if M.Disp == nil {
		return 0
	}
	r, _ := M.Disp.Dims()
	return r
}

// Real returns the real part of the displacements as a Nx3 matrix,
// or nil if the mode has no displacements.
func (M *Mode) Real() *mat.Dense {
	if M.Disp == nil {
		return nil
	}
	r, c := M.Disp.Dims()
	ret := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret.Set(i, j, real(M.Disp.At(i, j)))
		}
	}
	return ret
}

// Imag returns the imaginary part of the displacements as a Nx3 matrix,
// or nil if the mode has no displacements.
func (M *Mode) Imag() *mat.Dense {
	if M.Disp == nil {
		return nil
	}
	r, c := M.Disp.Dims()
	ret := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret.Set(i, j, imag(M.Disp.At(i, j)))
		}
	}
	return ret
}

// HasCM1 returns true if the frequency in cm-1 was read.
func (M *Mode) HasCM1() bool {
	return !math.IsNaN(M.CM1)
}

// Species is an atom type as listed in the header of the file.
type Species struct {
	Index int
	Name  string
	Mass  float64
}

// Header contains the system information at the beginning of a file.
type Header struct {
	NTyp      int
	NAt       int
	IBrav     int
	CellDM    [6]float64
	Species   []Species
	Types     []int      //type index for each atom, in file order
	Positions *mat.Dense //NAt x 3, in alat units. nil if not read.
}

// Record is everything read from one dyn file.
type Record struct {
	Header  *Header
	Q       QPoint
	IFC     *IFC
	Epsilon *Tensor  //nil if absent
	Charges *Charges //nil if absent
	Modes   []*Mode
}

// NAtoms returns the number of atoms of the system.
func (R *Record) NAtoms() int {
	if R.Header == nil {
		return 0
	}
	return R.Header.NAt
}

// Gamma returns true if the q-point of the record is zero within tol.
func (R *Record) Gamma(tol float64) bool {
	return R.Q.IsZero(tol)
}

// Frequencies returns the frequencies of all modes in THz, in file order.
func (R *Record) Frequencies() []float64 {
	ret := make([]float64, len(R.Modes))
	for i, v := range R.Modes {
		ret[i] = v.THz
	}
	return ret
}
