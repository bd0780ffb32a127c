// Package renderer writes finalized statements to a spreadsheet workbook.
package renderer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"StockDashboard/internal/statement"
)

const (
	colorRed   = "#FF0000"
	colorWhite = "#FFFFFF"
	colorGreen = "#008000"
)

// ExcelRenderer writes one workbook per ticker with a sheet per statement.
type ExcelRenderer struct {
	Dir     string
	Classes Classification
	Log     zerolog.Logger
}

// NewExcelRenderer creates a renderer writing into dir. An empty
// classification falls back to DefaultClassification.
func NewExcelRenderer(dir string, classes Classification, logger zerolog.Logger) *ExcelRenderer {
	if classes.Empty() {
		classes = DefaultClassification()
	}
	return &ExcelRenderer{Dir: dir, Classes: classes, Log: logger}
}

// Path returns the workbook path of ticker.
func (r *ExcelRenderer) Path(ticker string) string {
	return filepath.Join(r.Dir, strings.ToUpper(ticker)+".xlsx")
}

// Render writes the workbook of ticker and returns its path. Nothing is
// written when any sheet fails.
func (r *ExcelRenderer) Render(ticker string, finals []*statement.Final) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, fin := range finals {
		sh := Layout(fin, r.Classes)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.Name); err != nil {
				return "", fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return "", fmt.Errorf("new sheet %q: %w", sh.Name, err)
		}
		if err := writeSheet(f, sh); err != nil {
			return "", fmt.Errorf("sheet %q: %w", sh.Name, err)
		}
		r.Log.Debug().Str("sheet", sh.Name).Int("metrics", len(sh.Rows)).Int("years", len(sh.Years)).Msg("sheet written")
	}
	f.SetActiveSheet(0)

	path := r.Path(ticker)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func writeSheet(f *excelize.File, sh Sheet) error {
	name := sh.Name
	if err := f.SetCellValue(name, "A1", "Year"); err != nil {
		return err
	}
	for j, year := range sh.Years {
		cell, err := excelize.CoordinatesToCellName(j+2, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, year); err != nil {
			return err
		}
	}

	for i, row := range sh.Rows {
		rowNum := i + 2
		if err := f.SetCellValue(name, fmt.Sprintf("A%d", rowNum), row.Metric); err != nil {
			return err
		}
		for j := range sh.Years {
			cell, err := excelize.CoordinatesToCellName(j+2, rowNum)
			if err != nil {
				return err
			}
			if err := writeCell(f, name, cell, row, j); err != nil {
				return err
			}
		}
		if err := colorRow(f, name, rowNum, len(sh.Years), row.Class); err != nil {
			return err
		}
	}

	if w := sh.MetricWidth(); w > 0 {
		if err := f.SetColWidth(name, "A", "A", float64(w)); err != nil {
			return err
		}
	}
	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

// writeCell leaves null cells empty.
func writeCell(f *excelize.File, sheet, cell string, row Row, j int) error {
	if row.Text != nil {
		return f.SetCellStr(sheet, cell, row.Text[j])
	}
	v := row.Values[j]
	switch {
	case math.IsNaN(v):
		return nil
	case math.IsInf(v, 1):
		return f.SetCellStr(sheet, cell, "inf")
	case math.IsInf(v, -1):
		return f.SetCellStr(sheet, cell, "-inf")
	default:
		return f.SetCellFloat(sheet, cell, v, -1, 64)
	}
}

// colorRow adds a three colour scale across the year cells of a row.
func colorRow(f *excelize.File, sheet string, rowNum, years int, class Class) error {
	if years == 0 || class == Neutral {
		return nil
	}
	minColor, maxColor := colorRed, colorGreen
	if class == Negative {
		minColor, maxColor = colorGreen, colorRed
	}
	last, err := excelize.CoordinatesToCellName(years+1, rowNum)
	if err != nil {
		return err
	}
	return f.SetConditionalFormat(sheet, fmt.Sprintf("B%d:%s", rowNum, last), []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MidType:  "percentile",
		MaxType:  "max",
		MidValue: "50",
		MinColor: minColor,
		MidColor: colorWhite,
		MaxColor: maxColor,
	}})
}
