package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/san-kum/isingviz/internal/fss"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON, FormatXLSX:
		return Format(s), nil
	}
	return "", fmt.Errorf("export: unknown format %q (want csv, json or xlsx)", s)
}

var columns = []string{"L", "T", "Chi", "x", "y"}

type ExportData struct {
	Tc      float64        `json:"tc"`
	Gamma   float64        `json:"gamma"`
	Nu      float64        `json:"nu"`
	Skipped []int          `json:"skipped"`
	Series  []ExportSeries `json:"series"`
}

type ExportSeries struct {
	L      int         `json:"L"`
	Label  string      `json:"label"`
	Color  string      `json:"color"`
	Points []fss.Point `json:"points"`
}

func newExportData(fig *fss.Figure) ExportData {
	data := ExportData{
		Tc:      fig.Params.Tc,
		Gamma:   fig.Params.Gamma,
		Nu:      fig.Params.Nu,
		Skipped: fig.Skipped,
		Series:  make([]ExportSeries, len(fig.Series)),
	}
	if data.Skipped == nil {
		data.Skipped = []int{}
	}
	for i, s := range fig.Series {
		data.Series[i] = ExportSeries{L: s.L, Label: s.Entry.Label, Color: s.Entry.Color, Points: s.Points}
	}
	return data
}

// CSV writes one row per collapsed point, grouped by size in legend order.
func CSV(w io.Writer, fig *fss.Figure) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, s := range fig.Series {
		for _, p := range s.Points {
			row := []string{
				strconv.Itoa(s.L),
				strconv.FormatFloat(p.T, 'f', -1, 64),
				strconv.FormatFloat(p.Chi, 'f', -1, 64),
				strconv.FormatFloat(p.X, 'g', 10, 64),
				strconv.FormatFloat(p.Y, 'g', 10, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func JSON(w io.Writer, fig *fss.Figure) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(fig))
}

// XLSX writes a "params" sheet followed by one sheet per lattice size.
func XLSX(w io.Writer, fig *fss.Figure) error {
	f := excelize.NewFile()
	defer f.Close()

	const params = "params"
	if err := f.SetSheetName("Sheet1", params); err != nil {
		return err
	}
	rows := [][]any{
		{"Tc", fig.Params.Tc},
		{"gamma", fig.Params.Gamma},
		{"nu", fig.Params.Nu},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(params, cell, &r); err != nil {
			return err
		}
	}

	for _, s := range fig.Series {
		sheet := s.Entry.Label
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		header := []any{"T", "Chi", "x", "y"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		for i, p := range s.Points {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			row := []any{p.T, p.Chi, p.X, p.Y}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}

// Write dispatches on format.
func Write(w io.Writer, fig *fss.Figure, format Format) error {
	switch format {
	case FormatCSV:
		return CSV(w, fig)
	case FormatJSON:
		return JSON(w, fig)
	case FormatXLSX:
		return XLSX(w, fig)
	}
	return fmt.Errorf("export: unknown format %q", format)
}

// WriteFile creates path and writes fig into it.
func WriteFile(path string, fig *fss.Figure, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, fig, format); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}
