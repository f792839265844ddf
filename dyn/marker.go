package dyn

import (
	"regexp"
	"strings"
)

// Marker is the kind of a line in a dyn file. Every scanner decides what
// to do with a line only based on its Marker.
type Marker int

const (
	Unrecognized     Marker = iota
	Blank                   //empty or only spaces
	QPointLine              //q = ( qx qy qz )
	DielectricHeader        //Dielectric Tensor:
	AbsenceHeader           //Diagonalizing the dynamical matrix
	AtomPairHeader          //i j, the atom pair of a force-constant block
	ZEUHeader               //Effective Charges E-U
	ZUEHeader               //Effective Charges U-E
	AtomHeader              //atom # i
	Separator               //a line of asterisks
	FrequencyLine           //freq ( i) = f [THz] = f [cm-1]
)

var markerNames = []string{
	"Unrecognized",
	"Blank",
	"QPointLine",
	"DielectricHeader",
	"AbsenceHeader",
	"AtomPairHeader",
	"ZEUHeader",
	"ZUEHeader",
	"AtomHeader",
	"Separator",
	"FrequencyLine",
}

func (m Marker) String() string {
	if m < 0 || int(m) >= len(markerNames) {
		return "Unrecognized"
	}
	return markerNames[m]
}

const (
	qMarker          = "q = ("
	dielectricMarker = "Dielectric Tensor:"
	absenceMarker    = "Diagonalizing the dynamical matrix"
	zeuMarker        = "E-U"
	zueMarker        = "U-E"
	atomMarker       = "atom #"
	separatorMarker  = "************"
)

var (
	pairRe  = regexp.MustCompile(`^\d+\s+\d+(\s|$)`)
	thzRe   = regexp.MustCompile(`([+-]?\d+\.\d+)\s\[THz\]`)
	cm1Re   = regexp.MustCompile(`([+-]?\d+\.\d+)\s\[cm-1\]`)
	freqIDs = regexp.MustCompile(`freq\s*\(\s*(\d+)\s*\)`)
)

// classify returns the Marker for line. The order of the checks matters:
// the frequency lines, for instance, would otherwise be taken for nothing.
func classify(line string) Marker {
	t := strings.TrimSpace(line)
	switch {
	case t == "":
		return Blank
	case strings.Contains(t, dielectricMarker):
		return DielectricHeader
	case strings.Contains(t, absenceMarker):
		return AbsenceHeader
	case strings.Contains(t, qMarker):
		return QPointLine
	case thzRe.MatchString(t):
		return FrequencyLine
	case strings.Contains(t, atomMarker):
		return AtomHeader
	case strings.Contains(t, zeuMarker):
		return ZEUHeader
	case strings.Contains(t, zueMarker):
		return ZUEHeader
	case strings.Contains(t, separatorMarker):
		return Separator
	case pairRe.MatchString(t):
		return AtomPairHeader
	}
	return Unrecognized
}
