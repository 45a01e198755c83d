package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/isingviz/internal/fss"
)

const FigureTitle = "Finite Size Scaling Analysis (2D Ising Model)"

// FigureOptions fixes the physical size of the saved figure and the visible
// window of the collapse panel.
type FigureOptions struct {
	WidthIn  float64
	HeightIn float64
	DPI      float64
	XMin     float64
	XMax     float64
}

func DefaultFigureOptions() FigureOptions {
	return FigureOptions{WidthIn: 16, HeightIn: 6, DPI: 300, XMin: -2, XMax: 2}
}

// Pixels returns the full figure size.
func (o FigureOptions) Pixels() (int, int) {
	return int(math.Round(o.WidthIn * o.DPI)), int(math.Round(o.HeightIn * o.DPI))
}

// scale converts sizes given for a 100 DPI screen to the target resolution.
func (o FigureOptions) scale() float64 {
	return o.DPI / 100
}

// titleBand is the height reserved above the panels for the figure title.
func (o FigureOptions) titleBand() int {
	return int(math.Round(0.5 * o.DPI))
}

// Panels are the two charts of a figure, ready to render.
type Panels struct {
	Raw      chart.Chart
	Collapse chart.Chart
}

// BuildPanels lays out the raw and collapsed charts for fig. The collapse
// panel keeps every point in its series; its X axis is pinned to
// [XMin, XMax] and drawing is clipped to that window.
func BuildPanels(fig *fss.Figure, opts FigureOptions) Panels {
	w, h := opts.Pixels()
	pw, ph := w/2, h-opts.titleBand()
	s := opts.scale()

	raw := chart.Chart{
		Title:  "Raw Susceptibility Peaks",
		Width:  pw,
		Height: ph,
		DPI:    opts.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: int(40 * s), Left: int(20 * s), Right: int(20 * s), Bottom: int(20 * s)},
		},
		XAxis: chart.XAxis{
			Name:           "Temperature (T)",
			GridMajorStyle: gridStyle(s),
		},
		YAxis: chart.YAxis{
			Name:           "Susceptibility (chi)",
			GridMajorStyle: gridStyle(s),
		},
	}
	tMin, tMax, chiMax := math.Inf(1), math.Inf(-1), 0.0
	for _, ser := range fig.Series {
		if len(ser.Raw) == 0 {
			continue
		}
		col := drawing.ColorFromHex(ser.Entry.Color)
		xs, ys := make([]float64, len(ser.Raw)), make([]float64, len(ser.Raw))
		for i, smp := range ser.Raw {
			xs[i], ys[i] = smp.T, smp.Chi
			tMin, tMax = math.Min(tMin, smp.T), math.Max(tMax, smp.T)
			chiMax = math.Max(chiMax, smp.Chi)
		}
		raw.Series = append(raw.Series, chart.ContinuousSeries{
			Name:    ser.Entry.Label,
			XValues: xs,
			YValues: ys,
			Style:   lineMarkerStyle(col, s),
		})
	}
	if chiMax == 0 {
		chiMax = 1
	}
	raw.Series = append(raw.Series, chart.ContinuousSeries{
		Name:    "Theoretical Tc",
		XValues: []float64{fig.Params.Tc, fig.Params.Tc},
		YValues: []float64{0, chiMax},
		Style: chart.Style{
			StrokeColor:     drawing.ColorBlack.WithAlpha(80),
			StrokeWidth:     1.5 * s,
			StrokeDashArray: []float64{6 * s, 4 * s},
		},
	})
	if math.IsInf(tMin, 1) {
		tMin, tMax = fig.Params.Tc-0.5, fig.Params.Tc+0.5
	}
	raw.XAxis.Range = &chart.ContinuousRange{
		Min: math.Min(tMin, fig.Params.Tc),
		Max: math.Max(tMax, fig.Params.Tc),
	}
	raw.Elements = []chart.Renderable{chart.Legend(&raw)}

	collapse := chart.Chart{
		Title:  "Data Collapse (Verification of Universality)",
		Width:  pw,
		Height: ph,
		DPI:    opts.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: int(40 * s), Left: int(20 * s), Right: int(20 * s), Bottom: int(20 * s)},
		},
		XAxis: chart.XAxis{
			Name:           "Scaled Temperature t*L^(1/nu)",
			Range:          &chart.ContinuousRange{Min: opts.XMin, Max: opts.XMax},
			GridMajorStyle: gridStyle(s),
		},
		YAxis: chart.YAxis{
			Name:           "Scaled Susceptibility chi/L^(gamma/nu)",
			GridMajorStyle: gridStyle(s),
		},
	}
	for _, ser := range fig.Series {
		if len(ser.Points) == 0 {
			continue
		}
		col := drawing.ColorFromHex(ser.Entry.Color)
		collapse.Series = append(collapse.Series, ClippedSeries{
			ContinuousSeries: chart.ContinuousSeries{
				Name:    ser.Entry.Label,
				XValues: fss.XValues(ser.Points),
				YValues: fss.YValues(ser.Points),
				Style:   markerStyle(col, s),
			},
			Min: opts.XMin,
			Max: opts.XMax,
		})
	}
	if len(collapse.Series) == 0 {
		collapse.Series = append(collapse.Series, placeholderSeries(opts.XMin, opts.XMax))
	}
	collapse.Elements = []chart.Renderable{chart.Legend(&collapse)}

	return Panels{Raw: raw, Collapse: collapse}
}

func gridStyle(s float64) chart.Style {
	return chart.Style{StrokeColor: drawing.ColorFromHex("dddddd"), StrokeWidth: 1 * s}
}

// lineMarkerStyle draws connected samples with a dot on each one.
func lineMarkerStyle(col drawing.Color, s float64) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5 * s,
		DotColor:    col,
		DotWidth:    3 * s,
	}
}

// markerStyle renders points only, no connecting line.
func markerStyle(col drawing.Color, s float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotColor:    col.WithAlpha(153),
		DotWidth:    3 * s,
	}
}

// placeholderSeries keeps go-chart happy when a panel has nothing to draw.
func placeholderSeries(xmin, xmax float64) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{xmin, xmax},
		YValues: []float64{0, 1},
		Style:   chart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: chart.Disabled},
	}
}

// ClippedSeries is a continuous series whose drawing is limited to
// Min <= x <= Max. Its values, and so its legend entry and Y range, are
// untouched.
type ClippedSeries struct {
	chart.ContinuousSeries
	Min float64
	Max float64
}

// Visible returns the points that fall inside the window.
func (cs ClippedSeries) Visible() ([]float64, []float64) {
	xs := make([]float64, 0, len(cs.XValues))
	ys := make([]float64, 0, len(cs.YValues))
	for i, x := range cs.XValues {
		if x < cs.Min || x > cs.Max {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, cs.YValues[i])
	}
	return xs, ys
}

// GetStyle is the style chart.Legend draws the swatch with. Markers have no
// stroke, so the swatch is a line in the marker colour. Render keeps using
// Style.
func (cs ClippedSeries) GetStyle() chart.Style {
	st := cs.Style
	if st.StrokeWidth == chart.Disabled {
		st.StrokeColor = st.DotColor
		st.StrokeWidth = st.DotWidth
	}
	return st
}

func (cs ClippedSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	visible := cs.ContinuousSeries
	visible.XValues, visible.YValues = cs.Visible()
	if len(visible.XValues) == 0 {
		return
	}
	visible.Render(r, canvasBox, xrange, yrange, defaults)
}

// Compose renders both panels side by side under the figure title.
func Compose(p Panels, opts FigureOptions) (*image.RGBA, error) {
	w, h := opts.Pixels()
	band := opts.titleBand()

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scale := band / (2 * glyphH)
	lw, lh := labelSize(FigureTitle, scale)
	drawLabel(out, (w-lw)/2, (band-lh)/2, FigureTitle, color.Black, scale)

	for i, ch := range []chart.Chart{p.Raw, p.Collapse} {
		img, err := renderChart(ch)
		if err != nil {
			return nil, fmt.Errorf("render panel %d: %w", i+1, err)
		}
		origin := image.Pt(i*ch.Width, band)
		draw.Draw(out, image.Rectangle{Min: origin, Max: origin.Add(img.Bounds().Size())}, img, img.Bounds().Min, draw.Src)
	}
	return out, nil
}

func renderChart(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// EncodeFigure writes the composed figure as PNG.
func EncodeFigure(w io.Writer, fig *fss.Figure, opts FigureOptions) error {
	img, err := Compose(BuildPanels(fig, opts), opts)
	if err != nil {
		return err
	}
	return encodePNG(w, img, opts.DPI)
}

// SaveFigure writes the figure to path. Nothing is left at path when
// rendering fails.
func SaveFigure(path string, fig *fss.Figure, opts FigureOptions) error {
	img, err := Compose(BuildPanels(fig, opts), opts)
	if err != nil {
		return err
	}
	return writeAtomic(path, func(w io.Writer) error {
		return encodePNG(w, img, opts.DPI)
	})
}
