/*
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// Package dynplot plots the frequencies of a series of dyn records, one per q-point,
// as phonon dispersion branches.
package dynplot

import (
	"fmt"
	"math"
	"path/filepath"

	phon "github.com/rmera/gophon"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PathDistances returns, for each record, the length of the path in q-space
// from the first record, going through all the others in order.
func PathDistances(recs []*phon.Record) []float64 {
	ret := make([]float64, len(recs))
	for i := 1; i < len(recs); i++ {
		d := floats.Distance(recs[i].Q[:], recs[i-1].Q[:], 2)
		ret[i] = ret[i-1] + d
	}
	return ret
}

// DispersionData returns one series per phonon branch. The k-th series contains the
// frequency, in THz, of the k-th mode of every record, against the path distance of
// its q-point (see PathDistances). All records must have the same number of modes.
func DispersionData(recs []*phon.Record) ([]plotter.XYs, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("DispersionData: no records given")
	}
	nmodes := len(recs[0].Modes)
	if nmodes == 0 {
		return nil, fmt.Errorf("DispersionData: the first record has no modes")
	}
	x := PathDistances(recs)
	ret := make([]plotter.XYs, nmodes)
	for k := range ret {
		ret[k] = make(plotter.XYs, len(recs))
	}
	for i, r := range recs {
		if len(r.Modes) != nmodes {
			return nil, fmt.Errorf("DispersionData: record %d has %d modes, expected %d", i, len(r.Modes), nmodes)
		}
		for k, m := range r.Modes {
			ret[k][i].X = x[i]
			ret[k][i].Y = m.THz
		}
	}
	return ret, nil
}

func basicDispersionPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "q"
	p.Y.Label.Text = "Frequency (THz)"
	p.Add(plotter.NewGrid())
	return p
}

//qTicks puts a tick on each q-point. q-points zero within tol are labeled as Gamma.
func qTicks(recs []*phon.Record, x []float64, tol float64) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(recs))
	for i, r := range recs {
		label := fmt.Sprintf("%.2f %.2f %.2f", r.Q[0], r.Q[1], r.Q[2])
		if r.Gamma(tol) {
			label = "Γ"
		}
		ticks[i] = plot.Tick{Value: x[i], Label: label}
	}
	return ticks
}

// Dispersion plots the dispersion branches of recs (see DispersionData) and saves
// the plot to filename. The format is taken from the extension. If there is none,
// a png is produced and ".png" is appended to the name. zeroTol is the tolerance
// used to label q-points as Gamma.
func Dispersion(recs []*phon.Record, title, filename string, zeroTol float64) error {
	data, err := DispersionData(recs)
	if err != nil {
		return err
	}
	p := basicDispersionPlot(title)
	x := PathDistances(recs)
	p.X.Tick.Marker = qTicks(recs, x, zeroTol)
	p.X.Min = x[0]
	p.X.Max = math.Max(x[len(x)-1], x[0]+1e-3)
	for k, d := range data {
		l, s, err := plotter.NewLinePoints(d)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(k)
		s.Color = plotutil.Color(k)
		s.Radius = vg.Points(2)
		p.Add(l, s)
	}
	if filepath.Ext(filename) == "" {
		filename = filename + ".png"
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}
