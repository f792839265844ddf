package dyn

import (
	"fmt"
	"strconv"
	"strings"

	phon "github.com/rmera/gophon"
	"gonum.org/v1/gonum/mat"
)

// The beginning of a dyn file looks like this:
//
//	Dynamical matrix file
//
//	  1    2  2  10.2000000   0.0000000   0.0000000   0.0000000   0.0000000   0.0000000
//	           1  'Si  '    25598.367099124591
//	    1    1      0.0000000000      0.0000000000      0.0000000000
//	    2    1      0.2500000000      0.2500000000      0.2500000000
//
//	     Dynamical  Matrix in cartesian axes
//
//	     q = (    0.000000000   0.000000000   0.000000000 )
//
//The third line contains ntyp, nat, ibrav and celldm(1:6).
//With ibrav=0 there is also a "Basis vectors" line and the three lattice vectors,
//which are skipped.

const preambleLines = 2

// MaxAtoms is the largest number of atoms accepted in a file. nat*nat, the
// number of force-constant blocks, must fit in a 32-bit int.
const MaxAtoms = 1 << 15

// readHeader reads everything up to, and including, the first q-point line.
func readHeader(c *cursor) (*phon.Header, phon.QPoint, error) {
	var q phon.QPoint
	for i := 0; i < preambleLines; i++ {
		if _, ok := c.next(); !ok {
			return nil, q, c.endError(Truncated+": missing preamble", "readHeader")
		}
	}
	l, ok := c.next()
	if !ok {
		return nil, q, c.endError(Truncated+": missing the line with the number of atoms", "readHeader")
	}
	h, err := parseSystemLine(l, c.line)
	if err != nil {
		return nil, q, err
	}
	var types []int
	var pos []float64
	for {
		l, ok = c.next()
		if !ok {
			return nil, q, c.endError(NoMarker+": "+qMarker, "readHeader")
		}
		if classify(l) == QPointLine {
			break
		}
		if strings.Contains(l, "'") {
			sp, err := parseSpecies(l, c.line)
			if err != nil {
				return nil, q, err
			}
			h.Species = append(h.Species, sp)
			continue
		}
		if t, xyz, ok := parseAtomLine(l); ok && t > 0 && len(types) < h.NAt {
			types = append(types, t)
			pos = append(pos, xyz[:]...)
		}
	}
	q, err = parseQ(l, c.line)
	if err != nil {
		return nil, q, err
	}
	if len(types) == h.NAt {
		h.Types = types
		h.Positions = mat.NewDense(h.NAt, 3, pos)
	}
	return h, q, nil
}

//parseSystemLine reads ntyp, nat, ibrav and celldm. Only nat is required.
func parseSystemLine(l string, line int) (*phon.Header, error) {
	f := strings.Fields(l)
	if len(f) < 2 {
		return nil, newFormatError(WrongFormat+": the number of atoms should be the second field", line, nil, "readHeader")
	}
	h := new(phon.Header)
	var err error
	h.NAt, err = strconv.Atoi(f[1])
	if err != nil {
		return nil, newFormatError(BadNumber+" (number of atoms)", line, err, "readHeader")
	}
	if h.NAt < 1 || h.NAt > MaxAtoms {
		return nil, newFormatError(fmt.Sprintf("%s: %d atoms, should be between 1 and %d", WrongFormat, h.NAt, MaxAtoms), line, nil, "readHeader")
	}
	h.NTyp, err = strconv.Atoi(f[0])
	if err != nil {
		return nil, newFormatError(BadNumber+" (number of types)", line, err, "readHeader")
	}
	if len(f) > 2 {
		h.IBrav, err = strconv.Atoi(f[2])
		if err != nil {
			return nil, newFormatError(BadNumber+" (ibrav)", line, err, "readHeader")
		}
	}
	for i := 3; i < len(f) && i < 9; i++ {
		h.CellDM[i-3], err = strconv.ParseFloat(f[i], 64)
		if err != nil {
			return nil, newFormatError(BadNumber+" (celldm)", line, err, "readHeader")
		}
	}
	return h, nil
}

//parseSpecies reads a line like: 1  'Si  '    25598.367099124591
func parseSpecies(l string, line int) (phon.Species, error) {
	var s phon.Species
	first := strings.Index(l, "'")
	last := strings.LastIndex(l, "'")
	if first == last {
		return s, newFormatError(WrongFormat+": unterminated species name", line, nil, "parseSpecies")
	}
	var err error
	s.Index, err = strconv.Atoi(strings.TrimSpace(l[:first]))
	if err != nil {
		return s, newFormatError(BadNumber+" (species index)", line, err, "parseSpecies")
	}
	s.Name = strings.TrimSpace(l[first+1 : last])
	rest := strings.Fields(l[last+1:])
	if len(rest) < 1 {
		return s, newFormatError(WrongFormat+": species without mass", line, nil, "parseSpecies")
	}
	s.Mass, err = strconv.ParseFloat(rest[0], 64)
	if err != nil {
		return s, newFormatError(BadNumber+" (species mass)", line, err, "parseSpecies")
	}
	return s, nil
}

//parseAtomLine reads a line like: 2    1      0.25  0.25  0.25
//ok is false if the line doesn't have that shape.
func parseAtomLine(l string) (typ int, xyz [3]float64, ok bool) {
	f := strings.Fields(l)
	if len(f) != 5 {
		return 0, xyz, false
	}
	if _, err := strconv.Atoi(f[0]); err != nil {
		return 0, xyz, false
	}
	typ, err := strconv.Atoi(f[1])
	if err != nil {
		return 0, xyz, false
	}
	v, err := parseFloats(f[2:])
	if err != nil {
		return 0, xyz, false
	}
	copy(xyz[:], v)
	return typ, xyz, true
}

//parseQ reads the 3 components of the q-point from a line like:  q = (  0.0  0.0  0.0 )
func parseQ(l string, line int) (phon.QPoint, error) {
	var q phon.QPoint
	f := strings.Fields(strings.Trim(strings.TrimSpace(l), "q=() \t"))
	if len(f) != 3 {
		return q, newFormatError(fmt.Sprintf("%s: q-point with %d components", WrongFormat, len(f)), line, nil, "parseQ")
	}
	v, err := parseFloats(f)
	if err != nil {
		return q, newFormatError(BadNumber+" (q-point)", line, err, "parseQ")
	}
	copy(q[:], v)
	return q, nil
}
