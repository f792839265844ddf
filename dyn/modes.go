package dyn

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	phon "github.com/rmera/gophon"
	"gonum.org/v1/gonum/mat"
)

var parens = strings.NewReplacer("(", " ", ")", " ")

// readModes reads the 3*nat frequencies and normal modes after the line of asterisks:
//
//	**************************************************************************
//	     freq (    1) =      -0.062138 [THz] =      -2.072708 [cm-1]
//	 ( -0.394483  0.000000  0.461493  0.000000 -0.349849  0.000000 )
//	 ( -0.394483  0.000000  0.461493  0.000000 -0.349849  0.000000 )
//
//Each frequency line is followed by nat displacement rows. A row has 3 real numbers
//or 3 (real, imaginary) pairs.
func readModes(c *cursor, nat int) ([]*phon.Mode, error) {
	for {
		l, ok := c.next()
		if !ok {
			return nil, c.endError(NoMarker+": "+separatorMarker, "readModes")
		}
		if classify(l) == Separator {
			break
		}
	}
	total := 3 * nat
	var modes []*phon.Mode
	for len(modes) < total {
		l, ok := c.next()
		if !ok {
			return nil, c.endError(fmt.Sprintf("%s: %d of %d frequencies read", Truncated, len(modes), total), "readModes")
		}
		if classify(l) != FrequencyLine {
			continue
		}
		m, err := parseFreqLine(l, c.line)
		if err != nil {
			return nil, err
		}
		if m.Index == 0 {
			m.Index = len(modes) + 1
		}
		var disp []complex128
		for a := 0; a < nat; a++ {
			l, ok := c.next()
			if !ok {
				return nil, c.endError(fmt.Sprintf("%s: %d of %d displacement rows of mode %d read", Truncated, a, nat, m.Index), "readModes")
			}
			row, err := parseDispRow(l, c.line)
			if err != nil {
				return nil, err
			}
			disp = append(disp, row[:]...)
		}
		m.Disp = mat.NewCDense(nat, 3, disp)
		modes = append(modes, m)
	}
	return modes, nil
}

//parseFreqLine reads the mode index, the frequency in THz and, if present, in cm-1.
func parseFreqLine(l string, line int) (*phon.Mode, error) {
	m := &phon.Mode{CM1: math.NaN()}
	var err error
	thz := thzRe.FindStringSubmatch(l)
	m.THz, err = strconv.ParseFloat(thz[1], 64)
	if err != nil {
		return nil, newFormatError(BadNumber+" (frequency)", line, err, "parseFreqLine")
	}
	if cm := cm1Re.FindStringSubmatch(l); cm != nil {
		m.CM1, err = strconv.ParseFloat(cm[1], 64)
		if err != nil {
			return nil, newFormatError(BadNumber+" (frequency in cm-1)", line, err, "parseFreqLine")
		}
	}
	if id := freqIDs.FindStringSubmatch(l); id != nil {
		m.Index, _ = strconv.Atoi(id[1])
	}
	return m, nil
}

//parseDispRow reads one row of a displacement pattern, after removing the parentheses.
func parseDispRow(l string, line int) ([3]complex128, error) {
	var row [3]complex128
	vals, err := parseFloats(strings.Fields(parens.Replace(l)))
	if err != nil {
		return row, newFormatError(BadNumber+" (displacement)", line, err, "parseDispRow")
	}
	switch len(vals) {
	case 3:
		for k, v := range vals {
			row[k] = complex(v, 0)
		}
	case 6:
		for k := 0; k < 3; k++ {
			row[k] = complex(vals[2*k], vals[2*k+1])
		}
	default:
		return row, newFormatError(fmt.Sprintf("%s: displacement row with %d numbers", WrongFormat, len(vals)), line, nil, "parseDispRow")
	}
	return row, nil
}
