package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
)

// Config holds configuration for output generation
type Config struct {
	Format string
	// Path is the output file; empty writes to Stdout
	Path   string
	Stdout io.Writer
}

// Formats lists the supported result formats
var Formats = []string{"csv", "json"}

// Generate writes a result table in the configured format
func Generate(table *csv.Table, config Config) error {
	return write(config, func(w io.Writer) error {
		switch config.Format {
		case "", "csv":
			return csv.WriteTable(w, table)
		case "json":
			return WriteJSON(w, table)
		default:
			return fmt.Errorf("unsupported output format: %s", config.Format)
		}
	})
}

func write(config Config, fn func(io.Writer) error) error {
	if config.Path == "" {
		out := config.Stdout
		if out == nil {
			out = os.Stdout
		}
		return fn(out)
	}

	if dir := filepath.Dir(config.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(config.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	buf := bufio.NewWriter(f)
	if err := fn(buf); err != nil {
		f.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}

// WriteJSON writes the table as an array of objects with keys in header
// order. Result columns are written as numbers, empty result cells as null
// and every other cell as a string.
func WriteJSON(w io.Writer, table *csv.Table) error {
	numeric := make([]bool, len(table.Header))
	keys := make([][]byte, len(table.Header))
	for i, h := range table.Header {
		numeric[i] = isResultColumn(h)
		k, err := json.Marshal(h)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON key: %w", err)
		}
		keys[i] = k
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("[")
	for r, record := range table.Records {
		if r > 0 {
			bw.WriteString(",")
		}
		bw.WriteString("\n  {")
		for i, cell := range record {
			if i > 0 {
				bw.WriteString(", ")
			}
			bw.Write(keys[i])
			bw.WriteString(": ")
			switch {
			case numeric[i] && cell == "":
				bw.WriteString("null")
			case numeric[i]:
				bw.WriteString(cell)
			default:
				v, err := json.Marshal(cell)
				if err != nil {
					return fmt.Errorf("failed to marshal JSON value: %w", err)
				}
				bw.Write(v)
			}
		}
		bw.WriteString("}")
	}
	if len(table.Records) > 0 {
		bw.WriteString("\n")
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

func isResultColumn(name string) bool {
	if strings.HasPrefix(name, "load_") || strings.HasPrefix(name, "amp_total_") {
		return strings.Contains(name, "_VA_") || strings.Contains(name, "_A_")
	}
	return false
}
