package dyn

import (
	"fmt"
	"strconv"
	"strings"

	phon "github.com/rmera/gophon"
)

//parseFloats parses every field as a float64.
func parseFloats(fields []string) ([]float64, error) {
	ret := make([]float64, len(fields))
	var err error
	for i, v := range fields {
		ret[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// readTensor reads the next 3 non-blank lines as the rows of a 3x3 tensor.
// A row has either 3 real numbers, or 6 numbers read as 3 (real, imaginary) pairs,
// the way force-constant blocks are written. The imaginary tensor is zero for real rows.
func readTensor(c *cursor) (re, im *phon.Tensor, err error) {
	red := make([]float64, 0, 9)
	imd := make([]float64, 0, 9)
	for row := 0; row < 3; {
		l, ok := c.next()
		if !ok {
			return nil, nil, c.endError(fmt.Sprintf("%s: %d of 3 tensor rows read", Truncated, row), "readTensor")
		}
		f := strings.Fields(l)
		if len(f) == 0 {
			continue
		}
		vals, err := parseFloats(f)
		if err != nil {
			return nil, nil, newFormatError(BadNumber, c.line, err, "readTensor")
		}
		switch len(vals) {
		case 3:
			red = append(red, vals...)
			imd = append(imd, 0, 0, 0)
		case 6:
			for k := 0; k < 3; k++ {
				red = append(red, vals[2*k])
				imd = append(imd, vals[2*k+1])
			}
		default:
			return nil, nil, newFormatError(fmt.Sprintf("%s: tensor row with %d numbers", WrongFormat, len(vals)), c.line, nil, "readTensor")
		}
		row++
	}
	re, _ = phon.NewTensor(red)
	im, _ = phon.NewTensor(imd)
	return re, im, nil
}
