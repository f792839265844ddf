/*
 * reader.go, part of gophon
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package dyn

import (
	"fmt"
	"io"

	phon "github.com/rmera/gophon"
)

// SectionKind identifies the part of a dyn file contained in a Section.
type SectionKind int

//The sections come in this order.
const (
	HeaderSection SectionKind = iota
	IFCSection
	DielectricSection
	ChargesSection
	ModesSection
)

func (S SectionKind) String() string {
	switch S {
	case HeaderSection:
		return "Header"
	case IFCSection:
		return "IFC"
	case DielectricSection:
		return "Dielectric"
	case ChargesSection:
		return "Charges"
	case ModesSection:
		return "Modes"
	}
	return fmt.Sprintf("SectionKind(%d)", int(S))
}

// Section is one part of a dyn file. Only the fields for its Kind are set.
// Dielectric and Charges sections have Absent set when the file doesn't
// contain them, which is normal for any q-point but Gamma.
type Section struct {
	Kind    SectionKind
	Absent  bool
	Header  *phon.Header
	Q       phon.QPoint
	IFC     *phon.IFC
	Epsilon *phon.Tensor
	Charges *phon.Charges
	Modes   []*phon.Mode
}

// Reader reads a dyn file one section at a time. It never closes the underlying reader.
type Reader struct {
	c     *cursor
	opts  *Options
	stage SectionKind
	nat   int
	gamma bool
	err   error //once set, every call to Next returns it
}

// NewReader returns a Reader for the dyn file in r. o can be nil.
func NewReader(r io.Reader, o *Options) *Reader {
	return &Reader{c: newCursor(r), opts: o.fill()}
}

// Next reads and returns the next section. After the last section, it returns an
// error that satisfies phon.LastSectionError (see IsLast). Any other error is a
// *FormatError or a *ConsistencyError, and will also be returned by every later call.
func (R *Reader) Next() (*Section, error) {
	if R.err != nil {
		return nil, R.err
	}
	s := &Section{Kind: R.stage}
	var err error
	var found bool
	switch R.stage {
	case HeaderSection:
		s.Header, s.Q, err = readHeader(R.c)
		if err == nil {
			R.nat = s.Header.NAt
			R.gamma = s.Q.IsZero(R.opts.ZeroTol)
		}
	case IFCSection:
		s.IFC, err = readIFC(R.c, R.nat)
	case DielectricSection:
		if R.gamma {
			s.Epsilon, found, err = readDielectric(R.c)
		}
		s.Absent = !found
	case ChargesSection:
		if R.gamma {
			s.Charges, found, err = readCharges(R.c, R.nat)
		}
		s.Absent = !found
	case ModesSection:
		s.Modes, err = readModes(R.c, R.nat)
	default:
		err = newLastSectionError("", R.c.line, "Reader")
	}
	if err != nil {
		R.err = setFileName(errDecorate(err, "Next"), R.opts.Name)
		return nil, R.err
	}
	R.stage++
	return s, nil
}

// Read reads a whole dyn file from r into a Record. o can be nil.
func Read(r io.Reader, o *Options) (*phon.Record, error) {
	R := NewReader(r, o)
	rec := new(phon.Record)
	for {
		s, err := R.Next()
		if IsLast(err) {
			break
		}
		if err != nil {
			return nil, errDecorate(err, "Read")
		}
		switch s.Kind {
		case HeaderSection:
			rec.Header = s.Header
			rec.Q = s.Q
		case IFCSection:
			rec.IFC = s.IFC
		case DielectricSection:
			rec.Epsilon = s.Epsilon
		case ChargesSection:
			rec.Charges = s.Charges
		case ModesSection:
			rec.Modes = s.Modes
		}
	}
	return rec, nil
}
