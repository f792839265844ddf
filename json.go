/*
 * json.go, part of gophon.
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
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

//The JSON types mirror the Record but use only plain slices, so
//any program can read them. Complex displacements are stored as two
//row-major slices, Re and Im. Absent sections are null.

type jsonHeader struct {
	NTyp      int
	NAt       int
	IBrav     int
	CellDM    [6]float64
	Species   []Species
	Types     []int        `json:",omitempty"`
	Positions [][3]float64 `json:",omitempty"`
}

type jsonBlock struct {
	I, J int
	Re   []float64
	Im   []float64
}

type jsonAtomTensor struct {
	Atom   int
	Tensor []float64
}

type jsonCharges struct {
	ZEU []jsonAtomTensor
	ZUE []jsonAtomTensor
}

type jsonMode struct {
	Index int
	THz   float64
	CM1   *float64 `json:",omitempty"`
	Re    []float64
	Im    []float64
}

type jsonRecord struct {
	Header  *jsonHeader
	Q       [3]float64
	IFC     []jsonBlock
	Epsilon []float64
	Charges *jsonCharges
	Modes   []jsonMode
}

func atomTensors2JSON(a AtomTensors) []jsonAtomTensor {
	keys := make([]int, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	ret := make([]jsonAtomTensor, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, jsonAtomTensor{Atom: k, Tensor: a[k].Data()})
	}
	return ret
}

func json2AtomTensors(j []jsonAtomTensor) (AtomTensors, error) {
	ret := make(AtomTensors, len(j))
	for _, v := range j {
		t, err := NewTensor(v.Tensor)
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w", v.Atom, err)
		}
		ret[v.Atom] = t
	}
	return ret, nil
}

// MarshalJSON implements json.Marshaler.
func (R *Record) MarshalJSON() ([]byte, error) {
	J := new(jsonRecord)
	J.Q = R.Q
	if h := R.Header; h != nil {
		jh := &jsonHeader{NTyp: h.NTyp, NAt: h.NAt, IBrav: h.IBrav, CellDM: h.CellDM, Species: h.Species, Types: h.Types}
		if h.Positions != nil {
			r, _ := h.Positions.Dims()
			for i := 0; i < r; i++ {
				jh.Positions = append(jh.Positions, [3]float64{h.Positions.At(i, 0), h.Positions.At(i, 1), h.Positions.At(i, 2)})
			}
		}
		J.Header = jh
	}
	if R.IFC != nil {
		for _, p := range R.IFC.Pairs() {
			J.IFC = append(J.IFC, jsonBlock{I: p.I, J: p.J, Re: R.IFC.At(p.I, p.J).Data(), Im: R.IFC.Imag(p.I, p.J).Data()})
		}
	}
	if R.Epsilon != nil {
		J.Epsilon = R.Epsilon.Data()
	}
	if R.Charges != nil {
		J.Charges = &jsonCharges{ZEU: atomTensors2JSON(R.Charges.ZEU), ZUE: atomTensors2JSON(R.Charges.ZUE)}
	}
	for _, m := range R.Modes {
		jm := jsonMode{Index: m.Index, THz: m.THz}
		if m.HasCM1() {
			c := m.CM1
			jm.CM1 = &c
		}
		r, c := m.NAtoms(), 3
		for i := 0; i < r; i++ {
			for k := 0; k < c; k++ {
				v := m.Disp.At(i, k)
				jm.Re = append(jm.Re, real(v))
				jm.Im = append(jm.Im, imag(v))
			}
		}
		J.Modes = append(J.Modes, jm)
	}
	return json.Marshal(J)
}

// UnmarshalJSON implements json.Unmarshaler.
func (R *Record) UnmarshalJSON(data []byte) error {
	J := new(jsonRecord)
	if err := json.Unmarshal(data, J); err != nil {
		return err
	}
	*R = Record{Q: J.Q}
	natoms := 0
	if jh := J.Header; jh != nil {
		h := &Header{NTyp: jh.NTyp, NAt: jh.NAt, IBrav: jh.IBrav, CellDM: jh.CellDM, Species: jh.Species, Types: jh.Types}
		if len(jh.Positions) > 0 {
			h.Positions = mat.NewDense(len(jh.Positions), 3, nil)
			for i, v := range jh.Positions {
				h.Positions.SetRow(i, v[:])
			}
		}
		R.Header = h
		natoms = h.NAt
	}
	if natoms == 0 {
		natoms = int(math.Round(math.Sqrt(float64(len(J.IFC)))))
	}
	if J.IFC != nil {
		R.IFC = NewIFC(natoms)
		for _, b := range J.IFC {
			re, err := NewTensor(b.Re)
			if err != nil {
				return fmt.Errorf("phon: IFC block (%d, %d): %w", b.I, b.J, err)
			}
			im, err := NewTensor(b.Im)
			if err != nil {
				return fmt.Errorf("phon: IFC block (%d, %d): %w", b.I, b.J, err)
			}
			if err := R.IFC.Set(b.I, b.J, re, im); err != nil {
				return err
			}
		}
	}
	if J.Epsilon != nil {
		eps, err := NewTensor(J.Epsilon)
		if err != nil {
			return fmt.Errorf("phon: dielectric tensor: %w", err)
		}
		R.Epsilon = eps
	}
	if J.Charges != nil {
		var err error
		R.Charges = new(Charges)
		if R.Charges.ZEU, err = json2AtomTensors(J.Charges.ZEU); err != nil {
			return fmt.Errorf("phon: zeu: %w", err)
		}
		if R.Charges.ZUE, err = json2AtomTensors(J.Charges.ZUE); err != nil {
			return fmt.Errorf("phon: zue: %w", err)
		}
	}
	for _, jm := range J.Modes {
		if len(jm.Re) != len(jm.Im) || len(jm.Re)%3 != 0 {
			return fmt.Errorf("phon: mode %d: malformed displacements", jm.Index)
		}
		m := &Mode{Index: jm.Index, THz: jm.THz, CM1: math.NaN()}
		if jm.CM1 != nil {
			m.CM1 = *jm.CM1
		}
		if len(jm.Re) > 0 {
			disp := make([]complex128, len(jm.Re))
			for i := range disp {
				disp[i] = complex(jm.Re[i], jm.Im[i])
			}
			m.Disp = mat.NewCDense(len(disp)/3, 3, disp)
		}
		R.Modes = append(R.Modes, m)
	}
	return nil
}
