package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a header plus rows of string cells, in file order
type Table struct {
	Header  []string
	Records [][]string
	columns map[string]int
}

// NewTable creates an empty table with the given header
func NewTable(header []string) *Table {
	t := &Table{
		Header:  make([]string, len(header)),
		columns: make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		t.Header[i] = h
		t.columns[h] = i
	}
	return t
}

// Append adds a row; its width must match the header
func (t *Table) Append(record []string) error {
	if len(record) != len(t.Header) {
		return fmt.Errorf("expected %d columns, got %d", len(t.Header), len(record))
	}
	t.Records = append(t.Records, record)
	return nil
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Records)
}

// HasColumn reports whether the header contains the column
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns the index of a column
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.columns[name]
	return i, ok
}

// MissingColumns returns the names not present in the header, in argument order
func (t *Table) MissingColumns(names []string) []string {
	var missing []string
	for _, n := range names {
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Row returns a name-addressed view of row i
func (t *Table) Row(i int) Row {
	row := make(Row, len(t.Header))
	for j, h := range t.Header {
		row[h] = t.Records[i][j]
	}
	return row
}

// Row is one table row keyed by column name
type Row map[string]string

// Get returns the trimmed value of a column and whether it is present
func (r Row) Get(column string) (string, bool) {
	v, ok := r[column]
	return strings.TrimSpace(v), ok
}

// Overlay returns a copy of r with every non-empty value of other applied on top
func (r Row) Overlay(other Row) Row {
	out := make(Row, len(r)+len(other))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range other {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

// WriteTable writes the table as CSV
func WriteTable(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, record := range t.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+2, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
