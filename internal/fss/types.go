package fss

import (
	"fmt"
	"math"
)

// Sample is one simulated temperature of one lattice size.
type Sample struct {
	T   float64
	Chi float64
}

// Record holds the samples of one lattice size, sorted ascending by T.
type Record struct {
	L       int
	Samples []Sample
	Source  string
}

// Temperatures returns the T column in sample order.
func (r *Record) Temperatures() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.T
	}
	return out
}

// Susceptibilities returns the Chi column in sample order.
func (r *Record) Susceptibilities() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Chi
	}
	return out
}

// Params are the reference values of one analysis run.
type Params struct {
	Tc    float64
	Gamma float64
	Nu    float64
	Sizes []int
}

func (p Params) Validate() error {
	for _, v := range []float64{p.Tc, p.Gamma, p.Nu} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: tc=%g gamma=%g nu=%g", ErrInvalidParams, p.Tc, p.Gamma, p.Nu)
		}
	}
	seen := make(map[int]bool, len(p.Sizes))
	for _, L := range p.Sizes {
		if L <= 0 {
			return fmt.Errorf("%w: lattice size %d", ErrInvalidParams, L)
		}
		if seen[L] {
			return fmt.Errorf("%w: lattice size %d listed twice", ErrInvalidParams, L)
		}
		seen[L] = true
	}
	return nil
}

// Point is a sample in collapsed coordinates. T and Chi are kept for export.
type Point struct {
	T   float64 `json:"T"`
	Chi float64 `json:"Chi"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// Series is everything drawn for one lattice size.
type Series struct {
	L      int
	Entry  LegendEntry
	Raw    []Sample
	Points []Point
}

// Figure is the outcome of an analysis run. Series follow the order of
// Params.Sizes; Skipped lists sizes whose tables were missing.
type Figure struct {
	Params  Params
	Legend  *Legend
	Series  []Series
	Skipped []int
}

func (f *Figure) Empty() bool {
	return len(f.Series) == 0
}

// Mode selects where a figure goes. A run uses exactly one.
type Mode string

const (
	ModeDisplay Mode = "display"
	ModeSave    Mode = "save"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDisplay, ModeSave:
		return Mode(s), nil
	}
	return "", fmt.Errorf("fss: unknown output mode %q (want display or save)", s)
}
