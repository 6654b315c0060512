package csv

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

//go:embed nameplate_ratings.csv
var defaultRatingTable []byte

var (
	//go:embed sample_baseline.csv
	sampleBaseline []byte
	//go:embed sample_upgrade.csv
	sampleUpgrade []byte
)

// Loader handles loading panel data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// DefaultRatings returns the nameplate table compiled into the binary
func DefaultRatings() ([]*entities.NameplateRating, error) {
	return ParseRatings(bytes.NewReader(defaultRatingTable))
}

// LoadRatings loads a nameplate rating table from a CSV file
func (l *Loader) LoadRatings(filename string) ([]*entities.NameplateRating, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open rating table %s: %w", filename, err)
	}
	defer file.Close()

	ratings, err := ParseRatings(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ratings, nil
}

// ParseRatings reads the load_category,appliance,voltage,amperage,volt-amps table
func ParseRatings(r io.Reader) ([]*entities.NameplateRating, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rating CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("rating CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"load_category", "appliance", "voltage", "amperage", "volt-amps"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("rating CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var ratings []*entities.NameplateRating
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("rating CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		rating, err := parseRating(record)
		if err != nil {
			return nil, fmt.Errorf("rating CSV row %d: %w", i+2, err)
		}

		ratings = append(ratings, rating)
	}

	return ratings, nil
}

func parseRating(record []string) (*entities.NameplateRating, error) {
	category := entities.LoadCategory(strings.TrimSpace(record[0]))
	appliance := strings.TrimSpace(record[1])

	voltage, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, fmt.Errorf("invalid voltage %q: %w", record[2], err)
	}

	var regression *entities.AmperageRegression
	if s := strings.TrimSpace(record[3]); s != "" {
		regression, err = entities.ParseAmperageRegression(s)
		if err != nil {
			return nil, err
		}
	}

	voltAmps := 0.0
	if s := strings.TrimSpace(record[4]); s != "" {
		va, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid volt-amps %q: %w", record[4], err)
		}
		voltAmps = va.InexactFloat64()
	} else if regression == nil {
		return nil, fmt.Errorf("%s/%s has neither amperage nor volt-amps", category, appliance)
	}

	return entities.NewNameplateRating(category, appliance, voltage.InexactFloat64(), regression, voltAmps)
}

// ReadTable loads a building-stock results table from a CSV file
func (l *Loader) ReadTable(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file %s: %w", filename, err)
	}
	defer file.Close()

	t, err := ParseTable(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// SampleTables returns the baseline and upgrade tables compiled into the binary
func SampleTables() (baseline, upgrade *Table, err error) {
	if baseline, err = ParseTable(bytes.NewReader(sampleBaseline)); err != nil {
		return nil, nil, fmt.Errorf("sample baseline: %w", err)
	}
	if upgrade, err = ParseTable(bytes.NewReader(sampleUpgrade)); err != nil {
		return nil, nil, fmt.Errorf("sample upgrade: %w", err)
	}
	return baseline, upgrade, nil
}

// ParseTable reads a CSV table with a header row
func ParseTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read results CSV: %w", err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("results CSV must have a header row")
	}

	t := NewTable(records[0])
	for i, record := range records[1:] {
		if err := t.Append(record); err != nil {
			return nil, fmt.Errorf("results CSV row %d: %w", i+2, err)
		}
	}
	return t, nil
}

// validateHeader checks if the CSV header matches expected columns
func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range header {
		if strings.TrimSpace(col) != expected[i] {
			return false
		}
	}
	return true
}
