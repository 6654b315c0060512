// Package summary reduces a results table to per-column panel amperage statistics.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"gonum.org/v1/gonum/stat"

	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
)

// AmperageColumnPrefix marks the result columns that are summarized
const AmperageColumnPrefix = "amp_total_"

// Thresholds are the panel ratings whose exceedance share is reported, in amperes
var Thresholds = []float64{100, 150, 200}

// Options controls which rows are summarized
type Options struct {
	// SingleFamilyDetachedOnly keeps only single-family detached dwellings
	SingleFamilyDetachedOnly bool
}

// ColumnSummary holds the statistics of one amperage column. Empty cells
// (incomplete or excluded buildings) are counted as missing and ignored.
type ColumnSummary struct {
	Column  string
	Count   int
	Missing int
	Mean    float64
	Min     float64
	P10     float64
	P50     float64
	P90     float64
	Max     float64
	// ShareAbove[i] is the fraction of buildings above Thresholds[i]
	ShareAbove []float64
}

// Report is the summary of a results table
type Report struct {
	Rows    int
	Options Options
	Columns []ColumnSummary
}

// AmperageColumns returns the summarized columns of a results table, in header order
func AmperageColumns(t *csv.Table) []string {
	var columns []string
	for _, h := range t.Header {
		if strings.HasPrefix(h, AmperageColumnPrefix) {
			columns = append(columns, h)
		}
	}
	return columns
}

// Summarize computes a report over every amperage column of t
func Summarize(t *csv.Table, opts Options) (*Report, error) {
	columns := AmperageColumns(t)
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no %s* columns to summarize", entities.ErrMissingColumn, AmperageColumnPrefix)
	}

	rows, err := selectRows(t, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{Rows: len(rows), Options: opts}
	for _, c := range columns {
		idx, _ := t.Column(c)
		values := make([]float64, 0, len(rows))
		missing := 0
		for _, r := range rows {
			cell := strings.TrimSpace(t.Records[r][idx])
			if cell == "" {
				missing++
				continue
			}
			v, err := cast.ToFloat64E(cell)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", c, r+2, err)
			}
			if math.IsNaN(v) {
				missing++
				continue
			}
			values = append(values, v)
		}
		s := Column(values)
		s.Column = c
		s.Missing = missing
		report.Columns = append(report.Columns, s)
	}
	return report, nil
}

func selectRows(t *csv.Table, opts Options) ([]int, error) {
	rows := make([]int, 0, t.Len())
	if !opts.SingleFamilyDetachedOnly {
		for i := range t.Records {
			rows = append(rows, i)
		}
		return rows, nil
	}

	column := csv.Existing(csv.FieldBuildingType)
	idx, ok := t.Column(column)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrMissingColumn, column)
	}
	for i, record := range t.Records {
		if strings.TrimSpace(record[idx]) == entities.SingleFamilyDetached.String() {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

// Column summarizes a set of amperages. An empty set yields NaN statistics.
func Column(values []float64) ColumnSummary {
	s := ColumnSummary{Count: len(values), ShareAbove: make([]float64, len(Thresholds))}
	if len(values) == 0 {
		nan := math.NaN()
		s.Mean, s.Min, s.P10, s.P50, s.P90, s.Max = nan, nan, nan, nan, nan, nan
		for i := range s.ShareAbove {
			s.ShareAbove[i] = nan
		}
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P10 = stat.Quantile(0.1, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	for i, limit := range Thresholds {
		above := 0
		for _, v := range sorted {
			if v > limit {
				above++
			}
		}
		s.ShareAbove[i] = float64(above) / float64(len(sorted))
	}
	return s
}
