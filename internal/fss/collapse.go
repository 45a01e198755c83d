package fss

import "math"

// ReducedTemperature returns (T - Tc) / Tc.
func ReducedTemperature(T, Tc float64) float64 {
	return (T - Tc) / Tc
}

// Collapse rescales every sample of rec. It keeps sample order and never
// drops points; restricting the visible window is up to the renderer.
func Collapse(rec *Record, p Params) []Point {
	L := float64(rec.L)
	xScale := math.Pow(L, 1/p.Nu)
	yScale := math.Pow(L, p.Gamma/p.Nu)

	points := make([]Point, len(rec.Samples))
	for i, s := range rec.Samples {
		points[i] = Point{
			T:   s.T,
			Chi: s.Chi,
			X:   ReducedTemperature(s.T, p.Tc) * xScale,
			Y:   s.Chi / yScale,
		}
	}
	return points
}

// XValues and YValues split points into the columns a chart series wants.
func XValues(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.X
	}
	return out
}

func YValues(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Y
	}
	return out
}
