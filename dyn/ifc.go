package dyn

import (
	"fmt"
	"strconv"
	"strings"

	phon "github.com/rmera/gophon"
)

// readIFC reads the nat*nat force-constant blocks that follow the q-point line.
// Each block is a line with the atom pair (i, j) and a tensor:
//
//	    1    2
//	 -0.05543120  0.00000000   -0.04929560  0.00000000   -0.04929560  0.00000000
//	 -0.04929560  0.00000000   -0.05543120  0.00000000   -0.04929560  0.00000000
//	 -0.04929560  0.00000000   -0.04929560  0.00000000   -0.05543120  0.00000000
//
//Lines that are not pair headers are skipped between blocks.
func readIFC(c *cursor, nat int) (*phon.IFC, error) {
	F := phon.NewIFC(nat)
	total := nat * nat
	for F.Len() < total {
		l, ok := c.next()
		if !ok {
			return nil, c.endError(fmt.Sprintf("%s: %d of %d atom pairs read", Truncated, F.Len(), total), "readIFC")
		}
		if classify(l) != AtomPairHeader {
			continue
		}
		line := c.line
		f := strings.Fields(l)
		i, err := strconv.Atoi(f[0])
		if err != nil {
			return nil, newFormatError(BadNumber+" (atom pair)", line, err, "readIFC")
		}
		j, err := strconv.Atoi(f[1])
		if err != nil {
			return nil, newFormatError(BadNumber+" (atom pair)", line, err, "readIFC")
		}
		if i < 1 || j < 1 || i > nat || j > nat {
			return nil, newFormatError(fmt.Sprintf("%s: pair (%d, %d) with %d atoms", IndexOutOfRange, i, j, nat), line, nil, "readIFC")
		}
		if F.At(i, j) != nil {
			return nil, newFormatError(fmt.Sprintf("%s: pair (%d, %d)", Duplicated, i, j), line, nil, "readIFC")
		}
		re, im, err := readTensor(c)
		if err != nil {
			return nil, errDecorate(err, "readIFC")
		}
		if err := F.Set(i, j, re, im); err != nil {
			return nil, newFormatError(WrongFormat, line, err, "readIFC")
		}
	}
	return F, nil
}
