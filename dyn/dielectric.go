package dyn

import (
	phon "github.com/rmera/gophon"
)

// readDielectric looks for the dielectric tensor:
//
//	Dielectric Tensor:
//
//	 13.744216  0.000000  0.000000
//	  0.000000 13.744216  0.000000
//	  0.000000  0.000000 13.744216
//
// If the "Diagonalizing the dynamical matrix" line, or an effective charge block,
// comes first, the file has no dielectric tensor and found is false. That line is not consumed.
func readDielectric(c *cursor) (eps *phon.Tensor, found bool, err error) {
	for {
		l, ok := c.peek()
		if !ok {
			return nil, false, c.endError(NoMarker+": "+dielectricMarker+" or "+absenceMarker, "readDielectric")
		}
		switch classify(l) {
		case AbsenceHeader, ZEUHeader, ZUEHeader:
			return nil, false, nil
		case DielectricHeader:
			c.next()
			eps, _, err = readTensor(c)
			if err != nil {
				return nil, false, errDecorate(err, "readDielectric")
			}
			return eps, true, nil
		}
		c.next()
	}
}
