package fss_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isingviz/internal/fss"
)

var _ = Describe("Collapse", func() {
	onsager := fss.Params{Tc: 2.269, Gamma: 1.75, Nu: 1.0}

	It("matches the scaling formulas", func() {
		cases := []struct {
			T, Chi, Tc, Gamma, Nu float64
			L                     int
		}{
			{2.369, 100, 2.269, 1.75, 1.0, 40},
			{2.0, 0.5, 2.269, 1.75, 1.0, 20},
			{4.2, 12, 4.5115, 1.2372, 0.6301, 16},
			{3.9, 7, 4.0, 1.0, 0.5, 64},
		}
		for _, c := range cases {
			rec := &fss.Record{L: c.L, Samples: []fss.Sample{{T: c.T, Chi: c.Chi}}}
			p := fss.Params{Tc: c.Tc, Gamma: c.Gamma, Nu: c.Nu}
			pts := fss.Collapse(rec, p)
			Expect(pts).To(HaveLen(1))

			L := float64(c.L)
			wantX := ((c.T - c.Tc) / c.Tc) * math.Pow(L, 1/c.Nu)
			wantY := c.Chi / math.Pow(L, c.Gamma/c.Nu)
			Expect(pts[0].X).To(BeNumerically("~", wantX, 1e-9))
			Expect(pts[0].Y).To(BeNumerically("~", wantY, 1e-9))
		}
	})

	It("reproduces the L=40 reference values", func() {
		rec := &fss.Record{L: 40, Samples: []fss.Sample{{T: 2.369, Chi: 100}}}
		pt := fss.Collapse(rec, onsager)[0]

		Expect(fss.ReducedTemperature(2.369, 2.269)).To(BeNumerically("~", 0.0440723, 1e-6))
		Expect(pt.X).To(BeNumerically("~", 1.7628911, 1e-6))
		Expect(math.Pow(40, 1.75)).To(BeNumerically("~", 636.21658, 1e-4))
		Expect(pt.Y).To(BeNumerically("~", 0.1571792, 1e-6))
	})

	It("is idempotent", func() {
		rec := &fss.Record{L: 60, Samples: []fss.Sample{{2.1, 3}, {2.2, 8}, {2.3, 5}}}
		Expect(fss.Collapse(rec, onsager)).To(Equal(fss.Collapse(rec, onsager)))
	})

	It("keeps points outside the viewing window", func() {
		// (5/80)*Tc + Tc gives x = 5 at L=80.
		T := onsager.Tc * (1 + 5.0/80)
		rec := &fss.Record{L: 80, Samples: []fss.Sample{{T: 2.269, Chi: 1}, {T: T, Chi: 2}}}

		pts := fss.Collapse(rec, onsager)
		Expect(pts).To(HaveLen(2))
		Expect(pts[1].X).To(BeNumerically("~", 5.0, 1e-9))
		Expect(fss.XValues(pts)).To(ContainElement(BeNumerically("~", 5.0, 1e-9)))
	})

	It("keeps sample order and source values", func() {
		rec := &fss.Record{L: 20, Samples: []fss.Sample{{2.0, 1}, {2.5, 4}}}
		pts := fss.Collapse(rec, onsager)
		Expect(pts[0].T).To(Equal(2.0))
		Expect(pts[1].Chi).To(Equal(4.0))
		Expect(fss.YValues(pts)).To(HaveLen(2))
	})

	It("handles an empty record", func() {
		Expect(fss.Collapse(&fss.Record{L: 20}, onsager)).To(BeEmpty())
	})
})

var _ = Describe("Params", func() {
	It("rejects non-positive exponents", func() {
		Expect(fss.Params{Tc: 2.269, Gamma: 1.75, Nu: 0}.Validate()).To(MatchError(fss.ErrInvalidParams))
		Expect(fss.Params{Tc: -1, Gamma: 1.75, Nu: 1}.Validate()).To(MatchError(fss.ErrInvalidParams))
	})

	It("rejects non-positive sizes", func() {
		p := fss.Params{Tc: 2.269, Gamma: 1.75, Nu: 1, Sizes: []int{20, 0}}
		Expect(p.Validate()).To(MatchError(fss.ErrInvalidParams))
	})

	It("rejects a size listed twice", func() {
		p := fss.Params{Tc: 2.269, Gamma: 1.75, Nu: 1, Sizes: []int{20, 40, 20}}
		err := p.Validate()
		Expect(err).To(MatchError(fss.ErrInvalidParams))
		Expect(err.Error()).To(ContainSubstring("20 listed twice"))
	})
})

var _ = Describe("ParseMode", func() {
	It("accepts the two output modes", func() {
		Expect(fss.ParseMode("display")).To(Equal(fss.ModeDisplay))
		Expect(fss.ParseMode("save")).To(Equal(fss.ModeSave))
	})

	It("rejects anything else", func() {
		_, err := fss.ParseMode("both")
		Expect(err).To(HaveOccurred())
	})
})
