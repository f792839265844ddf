package dyn

import (
	"fmt"
	"strconv"
	"strings"

	phon "github.com/rmera/gophon"
)

// readCharges reads the Born effective charges. They come in two blocks:
//
//	Effective Charges E-U: Z_{alpha}{s,beta}
//
//	 atom #    1
//	  -0.07321   0.00000   0.00000
//	   0.00000  -0.07321   0.00000
//	   0.00000   0.00000  -0.07321
//	 atom #    2
//	 ...
//	Effective Charges U-E: Z_{s,alpha}{beta}
//	 ...
//
//If the "Diagonalizing the dynamical matrix" line or another q-point comes before any
//block, the file has no charges and found is false. That line is not consumed.
//Finding only one of the blocks gives a *ConsistencyError.
func readCharges(c *cursor, nat int) (z *phon.Charges, found bool, err error) {
	var zeu, zue phon.AtomTensors
	inconsistent := func(msg string) error {
		return &ConsistencyError{message: msg, line: c.line, deco: []string{"readCharges"}}
	}
	for zeu == nil || zue == nil {
		l, ok := c.peek()
		if !ok {
			if zeu != nil || zue != nil {
				return nil, false, inconsistent(OnlyOneZ)
			}
			return nil, false, c.endError(NoMarker+": effective charges or "+absenceMarker, "readCharges")
		}
		switch classify(l) {
		case AbsenceHeader, QPointLine:
			if zeu != nil || zue != nil {
				return nil, false, inconsistent(OnlyOneZ)
			}
			return nil, false, nil
		case ZEUHeader:
			if zeu != nil {
				return nil, false, inconsistent(Duplicated + ": E-U block")
			}
			c.next()
			if zeu, err = readZBlock(c, nat); err != nil {
				return nil, false, errDecorate(err, "readCharges")
			}
		case ZUEHeader:
			if zue != nil {
				return nil, false, inconsistent(Duplicated + ": U-E block")
			}
			c.next()
			if zue, err = readZBlock(c, nat); err != nil {
				return nil, false, errDecorate(err, "readCharges")
			}
		default:
			c.next()
		}
	}
	return &phon.Charges{ZEU: zeu, ZUE: zue}, true, nil
}

//readZBlock reads nat "atom #" entries, each followed by a tensor.
//A new block header, or the end of the section, before nat atoms is an error.
func readZBlock(c *cursor, nat int) (phon.AtomTensors, error) {
	z := make(phon.AtomTensors)
	for len(z) < nat {
		l, ok := c.next()
		if !ok {
			return nil, c.endError(fmt.Sprintf("%s: %d of %d atoms in effective charge block", Truncated, len(z), nat), "readZBlock")
		}
		switch classify(l) {
		case AtomHeader:
		case ZEUHeader, ZUEHeader, AbsenceHeader, QPointLine:
			return nil, newFormatError(fmt.Sprintf("%s: %d of %d atoms in effective charge block", Truncated, len(z), nat), c.line, nil, "readZBlock")
		default:
			continue
		}
		line := c.line
		f := strings.Fields(l)
		at, err := strconv.Atoi(strings.TrimPrefix(f[len(f)-1], "#"))
		if err != nil {
			return nil, newFormatError(BadNumber+" (atom index)", line, err, "readZBlock")
		}
		if at < 1 || at > nat {
			return nil, newFormatError(fmt.Sprintf("%s: atom %d with %d atoms", IndexOutOfRange, at, nat), line, nil, "readZBlock")
		}
		if _, ok := z[at]; ok {
			return nil, newFormatError(fmt.Sprintf("%s: atom %d", Duplicated, at), line, nil, "readZBlock")
		}
		t, _, err := readTensor(c)
		if err != nil {
			return nil, errDecorate(err, "readZBlock")
		}
		z[at] = t
	}
	return z, nil
}
