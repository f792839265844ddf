/*
 * dyn_test.go, part of gophon
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

package dyn

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	phon "github.com/rmera/gophon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//dynOpts describes a synthetic dyn file with real-valued blocks.
type dynOpts struct {
	nat      int
	q        string //the inside of the parentheses
	eps      bool
	zeu, zue bool
	nfreq    int //-1 means 3*nat
	diag     bool
}

func tensorRows(v float64) string {
	return fmt.Sprintf("%.1f -0.0 0.0\n-0.0 %.1f 0.0\n0.0 0.0 %.1f\n", v, v, v)
}

func synthDyn(o dynOpts) string {
	var b strings.Builder
	b.WriteString("Dynamical matrix file\n\n")
	fmt.Fprintf(&b, "  1  %d\n", o.nat)
	fmt.Fprintf(&b, "     q = ( %s ) \n\n", o.q)
	for i := 1; i <= o.nat; i++ {
		for j := 1; j <= o.nat; j++ {
			fmt.Fprintf(&b, "    %d    %d\n", i, j)
			b.WriteString(tensorRows(float64(10*i + j)))
		}
	}
	if o.eps {
		b.WriteString("\n     Dielectric Tensor:\n\n")
		b.WriteString(tensorRows(10))
	}
	for _, z := range []struct {
		on   bool
		head string
		v    float64
	}{{o.zeu, "Effective Charges E-U: Z_{alpha}{s,beta}", 2}, {o.zue, "Effective Charges U-E: Z_{s,alpha}{beta}", 3}} {
		if !z.on {
			continue
		}
		fmt.Fprintf(&b, "\n     %s\n\n", z.head)
		for a := 1; a <= o.nat; a++ {
			fmt.Fprintf(&b, "     atom # %4d\n", a)
			b.WriteString(tensorRows(z.v * float64(a)))
		}
	}
	if o.diag {
		b.WriteString("\n     Diagonalizing the dynamical matrix\n\n")
		fmt.Fprintf(&b, "     q = ( %s ) \n\n", o.q)
	}
	b.WriteString(" **************************************************************************\n")
	nfreq := o.nfreq
	if nfreq < 0 {
		nfreq = 3 * o.nat
	}
	for k := 1; k <= nfreq; k++ {
		fmt.Fprintf(&b, "     freq (%5d) = %14.6f [THz]\n", k, float64(k)*1.5)
		for a := 1; a <= o.nat; a++ {
			fmt.Fprintf(&b, " ( %.1f 0.0 -%.1f )\n", float64(k), float64(a))
		}
	}
	b.WriteString(" **************************************************************************\n")
	return b.String()
}

func gammaOpts() dynOpts {
	return dynOpts{nat: 2, q: "0.0 0.0 0.0", eps: true, zeu: true, zue: true, nfreq: -1, diag: true}
}

func TestTensorBlock(Te *testing.T) {
	c := newCursor(strings.NewReader("10.0 -0.0 0.0\n-0.0 10.0 0.0\n0.0 0.0 10.0\n"))
	re, im, err := readTensor(c)
	require.NoError(Te, err)
	assert.Equal(Te, [3]float64{10, 10, 10}, re.Diag())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j {
				assert.Equal(Te, 0.0, re.At(i, j))
			}
		}
	}
	assert.True(Te, im.IsZero(0))
	assert.True(Te, c.atEnd())
}

func TestTensorBlockPrecision(Te *testing.T) {
	c := newCursor(strings.NewReader("\n\n 10.000000000005 0 0\n\n0 10.000000000005 0\n0 0 10.000000000005"))
	re, _, err := readTensor(c)
	require.NoError(Te, err)
	assert.Equal(Te, [3]float64{10.000000000005, 10.000000000005, 10.000000000005}, re.Diag())
}

func TestTensorBlockComplex(Te *testing.T) {
	c := newCursor(strings.NewReader("1 0.5 2 0 3 -0.5\n4 0 5 0 6 0\n7 0 8 0 9 1\n"))
	re, im, err := readTensor(c)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, re.Data())
	assert.Equal(Te, []float64{0.5, 0, -0.5, 0, 0, 0, 0, 0, 1}, im.Data())
}

func TestTensorBlockErrors(Te *testing.T) {
	for name, in := range map[string]string{
		"short":     "1 2 3\n4 5 6\n",
		"columns":   "1 2 3\n4 5\n7 8 9\n",
		"notnumber": "1 2 3\n4 x 6\n7 8 9\n",
	} {
		_, _, err := readTensor(newCursor(strings.NewReader(in)))
		var fe *FormatError
		assert.True(Te, errors.As(err, &fe), name)
	}
}

func TestClassify(Te *testing.T) {
	cases := map[string]Marker{
		"":                                         Blank,
		"   ":                                      Blank,
		"     q = (    0.000000000   0.000000000   0.000000000 ) ": QPointLine,
		"     Dielectric Tensor:":                  DielectricHeader,
		"     Diagonalizing the dynamical matrix":  AbsenceHeader,
		"    1    2":                               AtomPairHeader,
		"12 3":                                     AtomPairHeader,
		"    1    1      0.00      0.00      0.00": AtomPairHeader,
		"  0.22115004  0.00000000    0.00000000":   Unrecognized,
		"1 2.5":                                    Unrecognized,
		"     Effective Charges E-U: Z_{alpha}{s,beta}": ZEUHeader,
		"     Effective Charges U-E: Z_{s,alpha}{beta}": ZUEHeader,
		"     atom #    2":                         AtomHeader,
		" ***************************************": Separator,
		"     freq (    4) =      15.214516 [THz] =     507.504258 [cm-1]": FrequencyLine,
		"     freq (    1) =      -0.062138 [THz] =      -2.072708 [cm-1]": FrequencyLine,
		" ( -0.394483  0.000000  0.461493  0.000000 -0.349849  0.000000 )": Unrecognized,
		"     Dynamical  Matrix in cartesian axes":                          Unrecognized,
	}
	for l, m := range cases {
		assert.Equal(Te, m, classify(l), "line %q", l)
	}
	assert.Equal(Te, "ZUEHeader", ZUEHeader.String())
}

func TestGammaScenario(Te *testing.T) {
	rec, err := Read(strings.NewReader(synthDyn(gammaOpts())), nil)
	require.NoError(Te, err)
	assert.Equal(Te, 2, rec.NAtoms())
	assert.Equal(Te, phon.QPoint{0, 0, 0}, rec.Q)
	assert.True(Te, rec.Gamma(DefaultZeroTol))
	require.Equal(Te, 4, rec.IFC.Len())
	assert.True(Te, rec.IFC.Complete())
	assert.Equal(Te, []phon.Pair{{I: 1, J: 1}, {I: 1, J: 2}, {I: 2, J: 1}, {I: 2, J: 2}}, rec.IFC.Pairs())
	assert.Equal(Te, 21.0, rec.IFC.At(2, 1).At(1, 1))
	require.NotNil(Te, rec.Epsilon)
	assert.Equal(Te, [3]float64{10, 10, 10}, rec.Epsilon.Diag())
	require.NotNil(Te, rec.Charges)
	assert.Len(Te, rec.Charges.ZEU, 2)
	assert.Len(Te, rec.Charges.ZUE, 2)
	assert.Equal(Te, 4.0, rec.Charges.ZEU[2].At(0, 0))
	assert.Equal(Te, 3.0, rec.Charges.ZUE[1].At(2, 2))
	require.Len(Te, rec.Modes, 6)
	for k, m := range rec.Modes {
		assert.Equal(Te, k+1, m.Index)
		assert.Equal(Te, float64(k+1)*1.5, m.THz)
		assert.False(Te, m.HasCM1())
		assert.Equal(Te, 2, m.NAtoms())
		assert.Equal(Te, complex(-2, 0), m.Disp.At(1, 2))
	}
}

func TestNonGammaScenario(Te *testing.T) {
	o := dynOpts{nat: 2, q: "0.1 0.0 0.0", nfreq: -1}
	rec, err := Read(strings.NewReader(synthDyn(o)), nil)
	require.NoError(Te, err)
	assert.Equal(Te, phon.QPoint{0.1, 0, 0}, rec.Q)
	assert.Equal(Te, 4, rec.IFC.Len())
	assert.Nil(Te, rec.Epsilon)
	assert.Nil(Te, rec.Charges)
	assert.Len(Te, rec.Modes, 6)
}

//Sections present in a non-Gamma file are not looked for.
func TestNonGammaIgnoresSections(Te *testing.T) {
	o := gammaOpts()
	o.q = "0.0 0.0 0.5"
	rec, err := Read(strings.NewReader(synthDyn(o)), nil)
	require.NoError(Te, err)
	assert.Nil(Te, rec.Epsilon)
	assert.Nil(Te, rec.Charges)
	assert.Len(Te, rec.Modes, 6)
}

func TestZeroTol(Te *testing.T) {
	o := gammaOpts()
	o.q = "0.000001 0.0 0.0"
	rec, err := Read(strings.NewReader(synthDyn(o)), &Options{ZeroTol: 1e-5})
	require.NoError(Te, err)
	assert.NotNil(Te, rec.Epsilon)
	assert.NotNil(Te, rec.Charges)
	rec, err = Read(strings.NewReader(synthDyn(o)), nil)
	require.NoError(Te, err)
	assert.Nil(Te, rec.Epsilon)
	assert.Nil(Te, rec.Charges)
}

func TestGammaWithoutSections(Te *testing.T) {
	o := dynOpts{nat: 2, q: "0.0 0.0 0.0", nfreq: -1, diag: true}
	rec, err := Read(strings.NewReader(synthDyn(o)), nil)
	require.NoError(Te, err)
	assert.Nil(Te, rec.Epsilon)
	assert.Nil(Te, rec.Charges)
	assert.Len(Te, rec.Modes, 6)
	//Only the dielectric tensor.
	o.eps = true
	rec, err = Read(strings.NewReader(synthDyn(o)), nil)
	require.NoError(Te, err)
	assert.NotNil(Te, rec.Epsilon)
	assert.Nil(Te, rec.Charges)
}

func TestTruncatedModes(Te *testing.T) {
	o := gammaOpts()
	o.nfreq = 4
	_, err := Read(strings.NewReader(synthDyn(o)), &Options{Name: "trunc.dyn"})
	var fe *FormatError
	require.True(Te, errors.As(err, &fe), "got %v", err)
	assert.Contains(Te, fe.Message(), "4 of 6")
	assert.Equal(Te, "trunc.dyn", fe.FileName())
	assert.Contains(Te, fe.Decorate(""), "readModes")
	assert.Contains(Te, fe.Decorate(""), "Read")
}

func TestNoSeparator(Te *testing.T) {
	in := strings.Replace(synthDyn(gammaOpts()), "****", "----", -1)
	_, err := Read(strings.NewReader(in), nil)
	var fe *FormatError
	require.True(Te, errors.As(err, &fe))
	assert.Contains(Te, fe.Message(), NoMarker)
}

func TestOnlyOneZ(Te *testing.T) {
	for _, diag := range []bool{true, false} {
		for _, zeu := range []bool{true, false} {
			o := gammaOpts()
			o.zeu = zeu
			o.zue = !zeu
			o.diag = diag
			in := synthDyn(o)
			if !diag {
				//the file ends right after the only block
				in = in[:strings.Index(in, " ****")]
			}
			_, err := Read(strings.NewReader(in), nil)
			var ce *ConsistencyError
			assert.True(Te, errors.As(err, &ce), "zeu %v diag %v: %v", zeu, diag, err)
			var fe *FormatError
			assert.False(Te, errors.As(err, &fe))
		}
	}
}

func TestChargesNoMarker(Te *testing.T) {
	in := synthDyn(dynOpts{nat: 1, q: "0 0 0", eps: true, nfreq: -1})
	in = in[:strings.Index(in, " ****")]
	_, err := Read(strings.NewReader(in), nil)
	var fe *FormatError
	assert.True(Te, errors.As(err, &fe), "%v", err)
}

func TestIFCErrors(Te *testing.T) {
	in := synthDyn(dynOpts{nat: 2, q: "0.1 0 0", nfreq: -1})
	//an atom that doesn't exist
	bad := strings.Replace(in, "    2    2\n", "    2    3\n", 1)
	_, err := Read(strings.NewReader(bad), nil)
	var fe *FormatError
	require.True(Te, errors.As(err, &fe))
	assert.Contains(Te, fe.Message(), IndexOutOfRange)
	//the same pair twice
	bad = strings.Replace(in, "    2    2\n", "    1    1\n", 1)
	_, err = Read(strings.NewReader(bad), nil)
	require.True(Te, errors.As(err, &fe))
	assert.Contains(Te, fe.Message(), Duplicated)
	//not enough pairs
	c := newCursor(strings.NewReader(in[strings.Index(in, "    1    1\n"):strings.Index(in, "    2    2\n")]))
	_, err = readIFC(c, 2)
	require.True(Te, errors.As(err, &fe))
	assert.Contains(Te, fe.Message(), "3 of 4")
}

func TestIFCOrder(Te *testing.T) {
	in := "2 2\n" + tensorRows(4) + "\n\n1 2\n" + tensorRows(2) + "2 1\n" + tensorRows(3) + "1 1\n" + tensorRows(1)
	F, err := readIFC(newCursor(strings.NewReader(in)), 2)
	require.NoError(Te, err)
	for k, p := range F.Pairs() {
		assert.Equal(Te, float64(k+1), F.At(p.I, p.J).At(0, 0))
	}
}

func TestDielectricAbsentNotConsumed(Te *testing.T) {
	c := newCursor(strings.NewReader("\n  some text\n     Diagonalizing the dynamical matrix\n"))
	eps, found, err := readDielectric(c)
	require.NoError(Te, err)
	assert.False(Te, found)
	assert.Nil(Te, eps)
	l, ok := c.peek()
	require.True(Te, ok)
	assert.Equal(Te, AbsenceHeader, classify(l))
	//so the effective charges see it too
	z, found, err := readCharges(c, 2)
	require.NoError(Te, err)
	assert.False(Te, found)
	assert.Nil(Te, z)
}

func TestDielectricEOF(Te *testing.T) {
	_, _, err := readDielectric(newCursor(strings.NewReader("nothing\nhere\n")))
	var fe *FormatError
	assert.True(Te, errors.As(err, &fe))
}

func TestHeaderErrors(Te *testing.T) {
	for name, in := range map[string]string{
		"noq":      "a\nb\n1 2\n1 1 0 0 0\n",
		"nonat":    "a\nb\n1\nq = ( 0 0 0 )\n",
		"zeronat":  "a\nb\n1 0\nq = ( 0 0 0 )\n",
		"badq":     "a\nb\n1 2\nq = ( 0 0 )\n",
		"empty":    "",
		"badmass":  "a\nb\n1 2\n1 'Si' heavy\nq = ( 0 0 0 )\n",
		"badcell":  "a\nb\n1 2 2 ten\nq = ( 0 0 0 )\n",
		"notanint": "a\nb\n1 two\nq = ( 0 0 0 )\n",
	} {
		_, _, err := readHeader(newCursor(strings.NewReader(in)))
		var fe *FormatError
		assert.True(Te, errors.As(err, &fe), name)
	}
}

//Absurd atom counts are rejected before anything is sized from them.
func TestHeaderTooManyAtoms(Te *testing.T) {
	for _, nat := range []string{"1000000000000000", "4294967296", "32769", "-3"} {
		in := "Dynamical matrix file\n\n  1 " + nat + "\n     q = ( 0.1 0 0 )\n"
		_, err := Read(strings.NewReader(in), nil)
		var fe *FormatError
		require.True(Te, errors.As(err, &fe), "nat %s: %v", nat, err)
		assert.Equal(Te, 3, fe.Line(), nat)
		assert.Contains(Te, fe.Decorate(""), "readHeader", nat)
	}
	//the largest count is accepted and the file then ends too soon
	in := fmt.Sprintf("Dynamical matrix file\n\n  1 %d\n     q = ( 0.1 0 0 )\n", MaxAtoms)
	_, err := Read(strings.NewReader(in), nil)
	var fe *FormatError
	require.True(Te, errors.As(err, &fe), "%v", err)
	assert.Contains(Te, fe.Message(), Truncated)
}

func TestReaderSections(Te *testing.T) {
	R := NewReader(strings.NewReader(synthDyn(dynOpts{nat: 1, q: "0.5 0.5 0.5", nfreq: -1})), nil)
	kinds := []SectionKind{}
	for {
		s, err := R.Next()
		if IsLast(err) {
			break
		}
		require.NoError(Te, err)
		kinds = append(kinds, s.Kind)
		switch s.Kind {
		case HeaderSection:
			assert.Equal(Te, phon.QPoint{0.5, 0.5, 0.5}, s.Q)
			assert.Equal(Te, 1, s.Header.NAt)
		case DielectricSection, ChargesSection:
			assert.True(Te, s.Absent)
		default:
			assert.False(Te, s.Absent)
		}
	}
	assert.Equal(Te, []SectionKind{HeaderSection, IFCSection, DielectricSection, ChargesSection, ModesSection}, kinds)
	//once done, always done
	_, err := R.Next()
	assert.True(Te, IsLast(err))
	var pe phon.ParseError
	assert.True(Te, errors.As(err, &pe))
	assert.False(Te, pe.Critical())
}

func TestReaderStickyError(Te *testing.T) {
	R := NewReader(strings.NewReader("just\none\nline\n"), nil)
	_, err := R.Next()
	require.Error(Te, err)
	assert.False(Te, IsLast(err))
	_, err2 := R.Next()
	assert.Equal(Te, err, err2)
}

func TestChargesWithoutDielectric(Te *testing.T) {
	o := gammaOpts()
	o.eps = false
	o.zeu = false
	rec, err := Read(strings.NewReader(synthDyn(o)), nil)
	var ce *ConsistencyError
	require.True(Te, errors.As(err, &ce), "%v", err)
	assert.Nil(Te, rec)
	o.zeu = true
	rec, err = Read(strings.NewReader(synthDyn(o)), nil)
	require.NoError(Te, err)
	assert.Nil(Te, rec.Epsilon)
	require.NotNil(Te, rec.Charges)
	assert.Len(Te, rec.Charges.ZEU, 2)
}
