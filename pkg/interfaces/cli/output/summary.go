package output

import (
	"fmt"
	"io"
	"math"

	"github.com/tealeg/xlsx"

	"github.com/buildstock/panelload/pkg/application/services/summary"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
)

// SummaryFormats lists the supported summary formats
var SummaryFormats = []string{"csv", "xlsx"}

const summarySheet = "panel_summary"

func summaryHeader() []string {
	header := []string{"column", "count", "missing", "mean_A", "min_A", "p10_A", "p50_A", "p90_A", "max_A"}
	for _, t := range summary.Thresholds {
		header = append(header, fmt.Sprintf("share_above_%sA", FormatFloat(t)))
	}
	return header
}

func summaryValues(s summary.ColumnSummary) []float64 {
	values := []float64{s.Mean, s.Min, s.P10, s.P50, s.P90, s.Max}
	return append(values, s.ShareAbove...)
}

// SummaryTable lays a report out as one row per amperage column
func SummaryTable(r *summary.Report) *csv.Table {
	t := csv.NewTable(summaryHeader())
	for _, s := range r.Columns {
		record := []string{s.Column, fmt.Sprint(s.Count), fmt.Sprint(s.Missing)}
		for _, v := range summaryValues(s) {
			record = append(record, FormatFloat(v))
		}
		// widths always match the header
		_ = t.Append(record)
	}
	return t
}

// GenerateSummary writes a summary report in the configured format
func GenerateSummary(r *summary.Report, config Config) error {
	return write(config, func(w io.Writer) error {
		switch config.Format {
		case "", "csv":
			return csv.WriteTable(w, SummaryTable(r))
		case "xlsx":
			return WriteSummaryXLSX(w, r)
		default:
			return fmt.Errorf("unsupported summary format: %s", config.Format)
		}
	})
}

// WriteSummaryXLSX writes the report as a single-sheet workbook
func WriteSummaryXLSX(w io.Writer, r *summary.Report) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(summarySheet)
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	row := sheet.AddRow()
	for _, h := range summaryHeader() {
		row.AddCell().SetString(h)
	}

	for _, s := range r.Columns {
		row = sheet.AddRow()
		row.AddCell().SetString(s.Column)
		row.AddCell().SetInt(s.Count)
		row.AddCell().SetInt(s.Missing)
		for _, v := range summaryValues(s) {
			cell := row.AddCell()
			if !math.IsNaN(v) {
				cell.SetFloat(v)
			}
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
