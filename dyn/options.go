package dyn

import "runtime"

// DefaultZeroTol is the default absolute tolerance used to decide whether
// a q-point is Gamma.
const DefaultZeroTol = 1e-8

// Options controls the reading of dyn files. A nil *Options means DefaultOptions().
type Options struct {
	ZeroTol float64 //a q-point with all components within ZeroTol of 0 is Gamma
	Workers int     //maximum number of files read at the same time by ReadFiles
	Name    string  //name used in error messages, usually the file name
}

// DefaultOptions returns the default options.
func DefaultOptions() *Options {
	return &Options{ZeroTol: DefaultZeroTol, Workers: runtime.GOMAXPROCS(0)}
}

//fill returns a copy of o with zero values replaced by defaults.
func (o *Options) fill() *Options {
	d := DefaultOptions()
	if o == nil {
		return d
	}
	r := *o
	if r.ZeroTol <= 0 {
		r.ZeroTol = d.ZeroTol
	}
	if r.Workers <= 0 {
		r.Workers = d.Workers
	}
	return &r
}
