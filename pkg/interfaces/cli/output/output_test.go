package output

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"

	"github.com/buildstock/panelload/pkg/application/services/dataset"
	"github.com/buildstock/panelload/pkg/application/services/summary"
	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	testhelpers "github.com/buildstock/panelload/pkg/infrastructure/testing"
)

func runDataset(t *testing.T, year entities.CodeYear, upgrade *csv.Table) *dataset.Result {
	t.Helper()
	repo, err := testhelpers.BuildRatingRepository()
	if err != nil {
		t.Fatalf("Failed to build rating repository: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := dataset.DefaultConfig()
	cfg.CodeYear = year
	cfg.GarbageDisposalFraction = 0
	d, err := dataset.NewDriver(repo, cfg, log, nil)
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}

	failed := testhelpers.AllGasRow(2)
	failed[csv.ColumnCompletedStatus] = "Fail"
	baseline := testhelpers.BuildTable(testhelpers.AllGasRow(1), failed)

	res, err := d.Run(context.Background(), baseline, upgrade)
	if err != nil {
		t.Fatalf("Failed to run: %v", err)
	}
	return res
}

func column(t *testing.T, table *csv.Table, row int, name string) string {
	t.Helper()
	i, ok := table.Column(name)
	if !ok {
		t.Fatalf("Missing column %s", name)
	}
	return table.Records[row][i]
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{10593.6, "10593.6"},
		{6500, "6500"},
		{44.14, "44.14"},
		{0, "0"},
		{math.NaN(), ""},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.v); got != tt.want {
			t.Errorf("FormatFloat(%v): expected %q, got %q", tt.v, tt.want, got)
		}
	}
}

func TestResultTable_Baseline(t *testing.T) {
	res := runDataset(t, entities.NEC2023, nil)
	table, err := ResultTable(res, ResultOptions{})
	if err != nil {
		t.Fatalf("Failed to build result table: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", table.Len())
	}
	if !table.HasColumn(testhelpers.PeakColumn) {
		t.Error("Expected input columns to be kept")
	}
	if table.HasColumn(ColumnReplacedLoads) || table.HasColumn(TotalColumn(PostUpgrade, entities.LoadSumming)) {
		t.Error("Expected no upgrade columns without an upgrade")
	}

	if got := column(t, table, 0, "load_total_pre_upgrade_VA_220_83"); got != "10593.6" {
		t.Errorf("Expected 10593.6, got %s", got)
	}
	if got := column(t, table, 0, "amp_total_pre_upgrade_A_220_83"); got != "44.14" {
		t.Errorf("Expected 44.14, got %s", got)
	}
	if got := column(t, table, 0, "load_total_pre_upgrade_VA_220_87"); got != "6500" {
		t.Errorf("Expected 6500, got %s", got)
	}
	if got := column(t, table, 1, "amp_total_pre_upgrade_A_220_87"); got != "" {
		t.Errorf("Expected empty cell for failed simulation, got %q", got)
	}
}

func TestResultTable_UpgradeExplodedMap(t *testing.T) {
	upgrade := testhelpers.BuildTable(
		testhelpers.HeatPumpUpgradeRow(1, "heat pump"),
		testhelpers.NotApplicableUpgradeRow(2),
	)
	res := runDataset(t, entities.NEC2026Proposed, upgrade)

	table, err := ResultTable(res, ResultOptions{Explode: true, AsMap: true})
	if err != nil {
		t.Fatalf("Failed to build result table: %v", err)
	}

	if table.Header[0] != csv.ColumnBuildingID || table.HasColumn(testhelpers.PeakColumn) {
		t.Errorf("Expected only building_id and results, got header %v", table.Header[:3])
	}
	if got := column(t, table, 0, "load_total_post_upgrade_VA_220_83"); got != "10772" {
		t.Errorf("Expected 10772, got %s", got)
	}
	if got := column(t, table, 0, ColumnReplacedLoads); got != "load_heating_air_handler;load_cooling;load_cooling_air_handler" {
		t.Errorf("Unexpected replaced loads %q", got)
	}
	if got := column(t, table, 0, "load_primary_heating_heat_pump_post_upgrade_VA_220_83"); got != "4800" {
		t.Errorf("Expected exploded heat pump load 4800, got %s", got)
	}
	if got := column(t, table, 0, "load_lighting_pre_upgrade_VA_220_87"); got != "2000" {
		t.Errorf("Expected exploded lighting load 2000, got %s", got)
	}
	if table.HasColumn("load_hvac_pre_upgrade_VA_220_83") {
		t.Error("Expected itemized HVAC columns only")
	}

	// 2 methods × 2 stages × 23 items, plus 8 totals and replaced loads
	if want := 1 + 8 + 1 + 2*2*23; len(table.Header) != want {
		t.Errorf("Expected %d columns, got %d", want, len(table.Header))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	var first, second bytes.Buffer
	for _, buf := range []*bytes.Buffer{&first, &second} {
		table, err := ResultTable(runDataset(t, entities.NEC2023, nil), ResultOptions{Explode: true})
		if err != nil {
			t.Fatalf("Failed to build result table: %v", err)
		}
		if err := Generate(table, Config{Format: "csv", Stdout: buf}); err != nil {
			t.Fatalf("Failed to write results: %v", err)
		}
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("Expected byte-identical output across runs")
	}
}

func TestGenerate_JSON(t *testing.T) {
	table, err := ResultTable(runDataset(t, entities.NEC2023, nil), ResultOptions{AsMap: true})
	if err != nil {
		t.Fatalf("Failed to build result table: %v", err)
	}

	var buf bytes.Buffer
	if err := Generate(table, Config{Format: "json", Stdout: &buf}); err != nil {
		t.Fatalf("Failed to write JSON: %v", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rows); err != nil {
		t.Fatalf("Expected valid JSON, got %v:\n%s", err, buf.String())
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0][csv.ColumnBuildingID] != "1" {
		t.Errorf("Expected building_id \"1\", got %v", rows[0][csv.ColumnBuildingID])
	}
	if rows[0]["load_total_pre_upgrade_VA_220_83"] != 10593.6 {
		t.Errorf("Expected numeric total, got %v", rows[0]["load_total_pre_upgrade_VA_220_83"])
	}
	if rows[1]["amp_total_pre_upgrade_A_220_87"] != nil {
		t.Errorf("Expected null for failed simulation, got %v", rows[1]["amp_total_pre_upgrade_A_220_87"])
	}
}

func TestGenerate_File(t *testing.T) {
	table, err := ResultTable(runDataset(t, entities.NEC2023, nil), ResultOptions{})
	if err != nil {
		t.Fatalf("Failed to build result table: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	if err := Generate(table, Config{Path: path}); err != nil {
		t.Fatalf("Failed to write results: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer f.Close()
	back, err := csv.ParseTable(f)
	if err != nil {
		t.Fatalf("Failed to read results back: %v", err)
	}
	if back.Len() != 2 || len(back.Header) != len(table.Header) {
		t.Errorf("Expected the written table to read back unchanged")
	}

	if err := Generate(table, Config{Format: "parquet", Stdout: io.Discard}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func sampleReport() *summary.Report {
	return &summary.Report{
		Rows: 3,
		Columns: []summary.ColumnSummary{
			summary.Column([]float64{50, 100, 200}),
			summary.Column(nil),
		},
	}
}

func TestSummaryTable(t *testing.T) {
	table := SummaryTable(sampleReport())
	want := "column,count,missing,mean_A,min_A,p10_A,p50_A,p90_A,max_A,share_above_100A,share_above_150A,share_above_200A"
	if got := strings.Join(table.Header, ","); got != want {
		t.Errorf("Unexpected header %s", got)
	}
	if table.Records[0][4] != "50" || table.Records[0][8] != "200" {
		t.Errorf("Unexpected min/max %v", table.Records[0])
	}
	if table.Records[1][3] != "" {
		t.Errorf("Expected empty mean for an empty column, got %q", table.Records[1][3])
	}
}

func TestWriteSummaryXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateSummary(sampleReport(), Config{Format: "xlsx", Stdout: &buf}); err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	book, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("Failed to read workbook: %v", err)
	}
	sheet, ok := book.Sheet[summarySheet]
	if !ok {
		t.Fatalf("Expected sheet %s", summarySheet)
	}
	if len(sheet.Rows) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d", len(sheet.Rows))
	}
	if got := sheet.Rows[0].Cells[0].Value; got != "column" {
		t.Errorf("Expected header cell \"column\", got %q", got)
	}
	max, err := sheet.Rows[1].Cells[8].Float()
	if err != nil || max != 200 {
		t.Errorf("Expected max 200, got %v (%v)", max, err)
	}
}
