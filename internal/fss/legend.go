package fss

import "fmt"

// LegendEntry is the colour and label used for one lattice size.
type LegendEntry struct {
	L     int
	Color string
	Label string
}

// Legend maps lattice sizes to entries. It is built once per run and never
// changes afterwards.
type Legend struct {
	entries []LegendEntry
	byL     map[int]int
}

// NewLegend assigns palette[i] to sizes[i]. Colours are never reused: more
// sizes than colours is ErrPaletteExhausted.
func NewLegend(sizes []int, palette []string) (*Legend, error) {
	if len(sizes) > len(palette) {
		return nil, fmt.Errorf("%w: %d sizes, %d colours (no colour for L=%d)",
			ErrPaletteExhausted, len(sizes), len(palette), sizes[len(palette)])
	}
	lg := &Legend{
		entries: make([]LegendEntry, len(sizes)),
		byL:     make(map[int]int, len(sizes)),
	}
	for i, L := range sizes {
		lg.entries[i] = LegendEntry{L: L, Color: palette[i], Label: fmt.Sprintf("L=%d", L)}
		lg.byL[L] = i
	}
	return lg, nil
}

// Entry returns the entry for L and whether L is part of the run.
func (lg *Legend) Entry(L int) (LegendEntry, bool) {
	i, ok := lg.byL[L]
	if !ok {
		return LegendEntry{}, false
	}
	return lg.entries[i], true
}

// Entries returns a copy in size order.
func (lg *Legend) Entries() []LegendEntry {
	out := make([]LegendEntry, len(lg.entries))
	copy(out, lg.entries)
	return out
}

func (lg *Legend) Len() int {
	return len(lg.entries)
}
