package fss_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isingviz/internal/fss"
)

type memLoader struct {
	tables map[int]*fss.Record
	fail   map[int]error
	calls  []int
}

func (m *memLoader) LoadTable(L int) (*fss.Record, error) {
	m.calls = append(m.calls, L)
	if err, ok := m.fail[L]; ok {
		return nil, err
	}
	rec, ok := m.tables[L]
	if !ok {
		return nil, &fss.MissingTableError{
			L:    L,
			File: fmt.Sprintf("ising_L%d.csv", L),
			Dir:  "/runs",
			Err:  errors.New("no such file"),
		}
	}
	return rec, nil
}

var palette = []string{"#0000ff", "#008000", "#ff0000", "#bf00bf"}

var _ = Describe("Analyzer", func() {
	var (
		logs   *bytes.Buffer
		logger *slog.Logger
		params fss.Params
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		logger = slog.New(slog.NewTextHandler(logs, nil))
		params = fss.Params{Tc: 2.269, Gamma: 1.75, Nu: 1.0, Sizes: []int{20, 40}}
	})

	It("skips a missing size with one warning", func() {
		loader := &memLoader{tables: map[int]*fss.Record{
			20: {L: 20, Samples: []fss.Sample{{2.2, 3}, {2.3, 5}}},
		}}

		fig, err := fss.NewAnalyzer(params, palette, loader, fss.WithLogger(logger)).Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(fig.Series).To(HaveLen(1))
		Expect(fig.Series[0].L).To(Equal(20))
		Expect(fig.Series[0].Points).To(HaveLen(2))
		Expect(fig.Skipped).To(Equal([]int{40}))

		Expect(bytes.Count(logs.Bytes(), []byte("level=WARN"))).To(Equal(1))
		Expect(logs.String()).To(ContainSubstring("ising_L40.csv"))
		Expect(logs.String()).To(ContainSubstring("dir=/runs"))
		Expect(logs.String()).NotTo(ContainSubstring("ising_L20.csv"))
	})

	It("keeps series in size order with stable legend entries", func() {
		params.Sizes = []int{40, 20}
		loader := &memLoader{tables: map[int]*fss.Record{
			20: {L: 20, Samples: []fss.Sample{{2.2, 3}}},
			40: {L: 40, Samples: []fss.Sample{{2.2, 9}}},
		}}

		fig, err := fss.NewAnalyzer(params, palette, loader).Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(loader.calls).To(Equal([]int{40, 20}))
		Expect(fig.Series[0].L).To(Equal(40))
		Expect(fig.Series[0].Entry.Color).To(Equal("#0000ff"))
		Expect(fig.Series[1].Entry.Label).To(Equal("L=20"))
	})

	It("succeeds with an empty figure when nothing is found", func() {
		fig, err := fss.NewAnalyzer(params, palette, &memLoader{}, fss.WithLogger(logger)).Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(fig.Empty()).To(BeTrue())
		Expect(fig.Skipped).To(Equal([]int{20, 40}))
		Expect(logs.String()).To(ContainSubstring("no observable tables found"))
	})

	It("fails in strict mode when nothing is found", func() {
		_, err := fss.NewAnalyzer(params, palette, &memLoader{}, fss.WithStrict(true)).Run()
		Expect(err).To(MatchError(fss.ErrNoTables))
	})

	It("aborts on a corrupt table", func() {
		corrupt := errors.New("ising_L40.csv:3: column Chi: invalid syntax")
		loader := &memLoader{
			tables: map[int]*fss.Record{20: {L: 20}},
			fail:   map[int]error{40: corrupt},
		}

		_, err := fss.NewAnalyzer(params, palette, loader).Run()
		Expect(err).To(MatchError(corrupt))
		Expect(err.Error()).To(ContainSubstring("load L=40"))
	})

	It("reports palette exhaustion before loading anything", func() {
		params.Sizes = []int{8, 16, 32, 64, 128}
		loader := &memLoader{}

		_, err := fss.NewAnalyzer(params, palette, loader).Run()
		Expect(err).To(MatchError(fss.ErrPaletteExhausted))
		Expect(err.Error()).To(ContainSubstring("L=128"))
		Expect(loader.calls).To(BeEmpty())
	})

	It("rejects invalid exponents", func() {
		params.Nu = 0
		_, err := fss.NewAnalyzer(params, palette, &memLoader{}).Run()
		Expect(err).To(MatchError(fss.ErrInvalidParams))
	})
})

var _ = Describe("Legend", func() {
	It("indexes colours by position", func() {
		lg, err := fss.NewLegend([]int{80, 20}, palette)
		Expect(err).NotTo(HaveOccurred())
		Expect(lg.Len()).To(Equal(2))

		e, ok := lg.Entry(20)
		Expect(ok).To(BeTrue())
		Expect(e.Color).To(Equal("#008000"))
		Expect(e.Label).To(Equal("L=20"))

		_, ok = lg.Entry(40)
		Expect(ok).To(BeFalse())
	})

	It("returns a defensive copy of its entries", func() {
		lg, _ := fss.NewLegend([]int{20}, palette)
		entries := lg.Entries()
		entries[0].Color = "#ffffff"
		Expect(lg.Entries()[0].Color).To(Equal("#0000ff"))
	})

	It("never wraps the palette", func() {
		_, err := fss.NewLegend([]int{1, 2, 3}, palette[:2])
		Expect(err).To(MatchError(fss.ErrPaletteExhausted))
	})
})

var _ = Describe("Summarize", func() {
	It("locates the susceptibility peak", func() {
		rec := &fss.Record{L: 40, Samples: []fss.Sample{{2.0, 1}, {2.28, 12}, {2.6, 2}}}
		s := fss.Summarize(rec)
		Expect(s.Samples).To(Equal(3))
		Expect(s.TMin).To(Equal(2.0))
		Expect(s.TMax).To(Equal(2.6))
		Expect(s.PeakT).To(Equal(2.28))
		Expect(s.PeakChi).To(Equal(12.0))
	})

	It("returns a zero summary for an empty record", func() {
		s := fss.Summarize(&fss.Record{L: 20})
		Expect(s).To(Equal(fss.Summary{L: 20}))
	})
})
