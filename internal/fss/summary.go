package fss

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Summary describes one table without any fitting.
type Summary struct {
	L       int
	Samples int
	TMin    float64
	TMax    float64
	PeakT   float64
	PeakChi float64
}

// Summarize reports the sampled range and the location of the largest
// susceptibility. An empty record yields a zero summary.
func Summarize(rec *Record) Summary {
	s := Summary{L: rec.L, Samples: len(rec.Samples)}
	if len(rec.Samples) == 0 {
		return s
	}

	temps := rec.Temperatures()
	chis := rec.Susceptibilities()

	s.TMin, _ = stats.Min(temps)
	s.TMax, _ = stats.Max(temps)

	peak := floats.MaxIdx(chis)
	s.PeakT = temps[peak]
	s.PeakChi = chis[peak]
	return s
}
