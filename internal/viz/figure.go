package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/isingviz/internal/fss"
)

// View selects which panels the viewer shows.
type View int

const (
	ViewBoth View = iota
	ViewRaw
	ViewCollapse
)

func (v View) String() string {
	switch v {
	case ViewRaw:
		return "raw"
	case ViewCollapse:
		return "collapse"
	}
	return "both"
}

// FigureModel is a bubbletea model that shows a scaling figure in the
// terminal. The collapse panel uses the same fixed X window as the saved
// figure.
type FigureModel struct {
	fig    *fss.Figure
	xmin   float64
	xmax   float64
	view   View
	width  int
	height int
}

func NewFigureModel(fig *fss.Figure, xmin, xmax float64) FigureModel {
	return FigureModel{fig: fig, xmin: xmin, xmax: xmax, width: 120, height: 32}
}

func (m FigureModel) Init() tea.Cmd {
	return nil
}

func (m FigureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.view = (m.view + 1) % 3
		case "1":
			m.view = ViewRaw
		case "2":
			m.view = ViewCollapse
		case "0":
			m.view = ViewBoth
		}
	}
	return m, nil
}

func (m FigureModel) View() string {
	var b strings.Builder
	b.WriteString(GradientTitle.Render("Finite Size Scaling Analysis (2D Ising Model)"))
	b.WriteString("\n")
	b.WriteString(m.legendLine())
	b.WriteString("\n")
	b.WriteString(Separator(m.width))
	b.WriteString("\n")

	// borders, padding, axis labels, header lines
	cw := m.width - 14
	ch := m.height - 10
	if m.view == ViewBoth {
		cw = m.width/2 - 14
	}
	cw, ch = max(cw, 10), max(ch, 4)

	raw := GlassPanel.Render(PanelTitle.Render("Raw Susceptibility Peaks") + "\n" + RawPanel(m.fig, cw, ch))
	col := GlassPanel.Render(PanelTitle.Render("Data Collapse") + "\n" + CollapsePanel(m.fig, m.xmin, m.xmax, cw, ch))
	switch m.view {
	case ViewRaw:
		b.WriteString(raw)
	case ViewCollapse:
		b.WriteString(col)
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, raw, col))
	}
	b.WriteString("\n")
	b.WriteString(KeyHint.Render("tab: switch view  1/2/0: raw/collapse/both  q: quit"))
	return b.String()
}

func (m FigureModel) legendLine() string {
	if m.fig.Empty() {
		return Warning.Render(fmt.Sprintf("no observable tables found (tried %v)", m.fig.Params.Sizes))
	}
	parts := make([]string, 0, len(m.fig.Series)+1)
	for _, s := range m.fig.Series {
		parts = append(parts, SeriesStyle(s.Entry.Color).Render("● "+s.Entry.Label))
	}
	parts = append(parts, RefLine.Render(fmt.Sprintf("┆ Tc=%.3f", m.fig.Params.Tc)))
	line := strings.Join(parts, "  ")
	if len(m.fig.Skipped) > 0 {
		line += "  " + Warning.Render(fmt.Sprintf("missing: %v", m.fig.Skipped))
	}
	return line
}

func seriesStyles(fig *fss.Figure) []lipgloss.Style {
	styles := make([]lipgloss.Style, 0, len(fig.Series)+1)
	for _, s := range fig.Series {
		styles = append(styles, SeriesStyle(s.Entry.Color))
	}
	return append(styles, RefLine)
}

// RawPanel draws Chi against T for every size, connected, with a dashed
// vertical line at Tc.
func RawPanel(fig *fss.Figure, w, h int) string {
	c := NewCanvas(w, h)
	vp := Viewport{XMin: fig.Params.Tc, XMax: fig.Params.Tc, YMin: 0, YMax: 0}
	for _, s := range fig.Series {
		for _, smp := range s.Raw {
			vp.XMin = math.Min(vp.XMin, smp.T)
			vp.XMax = math.Max(vp.XMax, smp.T)
			vp.YMin = math.Min(vp.YMin, smp.Chi)
			vp.YMax = math.Max(vp.YMax, smp.Chi)
		}
	}
	if vp.XMax == vp.XMin {
		vp.XMin, vp.XMax = fig.Params.Tc-0.5, fig.Params.Tc+0.5
	}
	if vp.YMax == vp.YMin {
		vp.YMax = vp.YMin + 1
	}

	tcOwner := len(fig.Series)
	if x, _, ok := vp.Project(c, fig.Params.Tc, vp.YMin); ok {
		c.DashedVLine(x, tcOwner)
	}
	for i, s := range fig.Series {
		prevX, prevY, havePrev := 0, 0, false
		for _, smp := range s.Raw {
			x, y, ok := vp.Project(c, smp.T, smp.Chi)
			if !ok {
				havePrev = false
				continue
			}
			if havePrev {
				c.DrawLine(prevX, prevY, x, y, i)
			} else {
				c.Set(x, y, i)
			}
			prevX, prevY, havePrev = x, y, true
		}
	}
	return frame(c, vp, seriesStyles(fig))
}

// CollapsePanel draws the scaled points of every size as unconnected dots.
// Points outside [xmin, xmax] are not drawn; the Y range covers all points.
func CollapsePanel(fig *fss.Figure, xmin, xmax float64, w, h int) string {
	c := NewCanvas(w, h)
	vp := Viewport{XMin: xmin, XMax: xmax, YMin: math.Inf(1), YMax: math.Inf(-1)}
	for _, s := range fig.Series {
		for _, p := range s.Points {
			vp.YMin = math.Min(vp.YMin, p.Y)
			vp.YMax = math.Max(vp.YMax, p.Y)
		}
	}
	if math.IsInf(vp.YMin, 1) {
		vp.YMin, vp.YMax = 0, 1
	}
	if vp.YMax == vp.YMin {
		vp.YMax = vp.YMin + 1
	}

	for i, s := range fig.Series {
		for _, p := range s.Points {
			if x, y, ok := vp.Project(c, p.X, p.Y); ok {
				c.Set(x, y, i)
			}
		}
	}
	return frame(c, vp, seriesStyles(fig))
}

// frame adds the axis bounds around a rendered canvas.
func frame(c *Canvas, vp Viewport, styles []lipgloss.Style) string {
	rows := strings.Split(c.Render(styles), "\n")
	var b strings.Builder
	for i, row := range rows {
		label := "        "
		switch i {
		case 0:
			label = fmt.Sprintf("%8.3g", vp.YMax)
		case len(rows) - 1:
			label = fmt.Sprintf("%8.3g", vp.YMin)
		}
		b.WriteString(Subtle.Render(label) + "│" + row + "\n")
	}
	lo := fmt.Sprintf("%.3g", vp.XMin)
	hi := fmt.Sprintf("%.3g", vp.XMax)
	gap := max(c.Width-len(lo)-len(hi), 1)
	b.WriteString(Subtle.Render("         " + lo + strings.Repeat(" ", gap) + hi))
	return b.String()
}

// Show runs the viewer until the user quits.
func Show(fig *fss.Figure, xmin, xmax float64) error {
	p := tea.NewProgram(NewFigureModel(fig, xmin, xmax), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
