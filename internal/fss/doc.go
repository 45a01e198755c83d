// Package fss implements finite-size-scaling analysis of susceptibility data.
//
// The package takes one observable table per lattice size and rescales it
// with theoretical critical exponents so that curves from different sizes
// collapse onto one another:
//
//   - [Collapse]: maps (T, Chi) samples to (t*L^(1/nu), Chi/L^(gamma/nu))
//   - [NewLegend]: fixed L -> colour/label mapping for a run
//   - [Analyzer]: loads every configured size, skips missing tables, and
//     returns a [Figure] ready for rendering
//   - [Summarize]: peak location and range of a single table
//
// # Example
//
//	params := fss.Params{Tc: 2.269, Gamma: 1.75, Nu: 1.0, Sizes: []int{20, 40}}
//	an := fss.NewAnalyzer(params, palette, storage.New("."))
//	fig, err := an.Run()
package fss
