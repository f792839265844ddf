// Package dos builds phonon densities of states as histograms of the mode
// frequencies of one or more dyn records.
package dos

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	phon "github.com/rmera/gophon"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram of frequencies.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

type jsonData struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("dos: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

//String prints a -hopefully- pretty representation of
//the histogram, one bin per line.
func (D *Data) String() string {
	ret := make([]string, 0, len(D.histo)+1)
	ret = append(ret, fmt.Sprintf("Normalized: %v, TotalData: %d", D.normalized, D.total))
	for i, v := range D.histo {
		ret = append(ret, fmt.Sprintf("%8.3f %8.3f %9.3f", D.dividers[i], D.dividers[i+1], v))
	}
	return strings.Join(ret, "\n")
}

// Dividers returns the n+1 limits of n equal bins between lo and hi.
func Dividers(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n+1), lo, hi)
}

//NewData returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
func NewData(dividers []float64, rawdata []float64) *Data {
	d := new(Data)
	//copy, so nobody can change it from outside
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	return d
}

// FromRecords returns the histogram, with bins equal bins, of the frequencies (THz)
// of all the modes of recs.
func FromRecords(recs []*phon.Record, bins int) (*Data, error) {
	if bins < 1 {
		return nil, fmt.Errorf("dos: %d bins", bins)
	}
	var freqs []float64
	for _, r := range recs {
		freqs = append(freqs, r.Frequencies()...)
	}
	if len(freqs) == 0 {
		return nil, fmt.Errorf("dos: no frequencies in %d records", len(recs))
	}
	lo, hi := floats.Min(freqs), floats.Max(freqs)
	//the last divider is excluded, so the highest frequency needs some room.
	pad := 1e-6 * (hi - lo)
	if pad == 0 {
		pad = 1e-6
	}
	return NewData(Dividers(lo, hi+pad, bins), freqs), nil
}

//AddData adds the given frequencies to the histogram.
//Values outside the dividers are omitted.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	for _, v := range point {
		for j := 0; j < len(D.dividers)-1; j++ {
			if D.dividers[j] <= v && v < D.dividers[j+1] {
				D.histo[j]++
				D.total++
				break
			}
		}
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize scales the histogram so it adds up to 1.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize returns the histogram to counts.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	if normalize {
		n = 1 / n
	}
	D.normalized = normalize
	floats.Scale(n, D.histo)
}

// Total returns the number of frequencies in the histogram.
func (D *Data) Total() int {
	return D.total
}

//CopyDividers returns a copy of the bin limits.
func (D *Data) CopyDividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

//Copy returns a copy of the bin values.
func (D *Data) Copy() []float64 {
	return append([]float64(nil), D.histo...)
}

//View returns the bin values themselves, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

//Add puts the sum of the histograms a and b in the receiver. Both
//must have the same dividers and neither can be normalized.
func (D *Data) Add(a, b *Data) error {
	if !floats.Equal(a.dividers, b.dividers) {
		return fmt.Errorf("dos: dividers must match in added histograms")
	}
	if a.normalized || b.normalized {
		return fmt.Errorf("dos: can't add normalized histograms")
	}
	histo := make([]float64, len(a.histo))
	floats.AddTo(histo, a.histo, b.histo)
	D.dividers = a.CopyDividers()
	D.histo = histo
	D.total = a.total + b.total
	D.normalized = false
	return nil
}

func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//ReHisto fills the histogram again with rawdata, using the new dividers.
//rawdata is sorted in place.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	sort.Float64s(rawdata)
	//stat.Histogram just panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(rawdata, dividers[len(dividers)-1])
	mini := sort.SearchFloat64s(rawdata, dividers[0])
	rawdata = rawdata[mini:maxi]
	D.dividers = dividers
	D.total = len(rawdata)
	D.normalized = false
	D.histo = stat.Histogram(nil, dividers, rawdata, nil)
}
