package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	testhelpers "github.com/buildstock/panelload/pkg/infrastructure/testing"
	"github.com/buildstock/panelload/pkg/interfaces/cli/output"
)

const upgradeName = "ducted heat pump"

func writeTable(t *testing.T, dir, name string, table *csv.Table) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
	defer f.Close()
	if err := csv.WriteTable(f, table); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func baselineFile(t *testing.T, dir string) string {
	return writeTable(t, dir, "baseline.csv", testhelpers.BuildTable(testhelpers.AllGasRow(1)))
}

func upgradeFile(t *testing.T, dir string) string {
	return writeTable(t, dir, "upgrade.csv", testhelpers.BuildTable(testhelpers.HeatPumpUpgradeRow(1, upgradeName)))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(append(args, "--log-level", "error"))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func parseOutput(t *testing.T, s string) *csv.Table {
	t.Helper()
	table, err := csv.ParseTable(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Failed to parse output: %v\n%s", err, s)
	}
	return table
}

func cell(t *testing.T, table *csv.Table, row int, column string) string {
	t.Helper()
	i, ok := table.Column(column)
	if !ok {
		t.Fatalf("Missing column %s in %v", column, table.Header)
	}
	return table.Records[row][i]
}

func TestRunCommand_Baseline(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", baselineFile(t, dir), "--garbage-disposal-fraction", "0")
	if err != nil {
		t.Fatalf("Expected run to succeed: %v", err)
	}

	table := parseOutput(t, out)
	if table.Len() != 1 {
		t.Fatalf("Expected 1 row, got %d", table.Len())
	}
	testCases := []struct {
		column string
		want   string
	}{
		{output.TotalColumn(output.PreUpgrade, entities.LoadSumming), "10593.6"},
		{output.AmperageColumn(output.PreUpgrade, entities.LoadSumming), "44.14"},
		{output.TotalColumn(output.PreUpgrade, entities.MaximumDemand), "6500"},
	}
	for _, tc := range testCases {
		if got := cell(t, table, 0, tc.column); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.column, tc.want, got)
		}
	}
	if table.HasColumn(output.TotalColumn(output.PostUpgrade, entities.LoadSumming)) {
		t.Error("Expected no post-upgrade columns without an upgrade table")
	}
}

func TestRunCommand_UpgradeWithSummary(t *testing.T) {
	dir := t.TempDir()
	results := filepath.Join(dir, "out", "results.csv")
	_, err := execute(t, "run", baselineFile(t, dir), upgradeFile(t, dir),
		"--code-year", "2026",
		"--garbage-disposal-fraction", "0",
		"-o", results,
		"-p")
	if err != nil {
		t.Fatalf("Expected run to succeed: %v", err)
	}

	data, err := os.ReadFile(results)
	if err != nil {
		t.Fatalf("Expected results file: %v", err)
	}
	table := parseOutput(t, string(data))
	if got := cell(t, table, 0, output.TotalColumn(output.PostUpgrade, entities.LoadSumming)); got != "10772" {
		t.Errorf("Expected post-upgrade 220.83 total 10772, got %s", got)
	}
	if got := cell(t, table, 0, output.ColumnReplacedLoads); got == "" {
		t.Error("Expected replaced loads to be reported")
	}

	summaryData, err := os.ReadFile(SummaryPath(results, "csv"))
	if err != nil {
		t.Fatalf("Expected summary file: %v", err)
	}
	summaryTable := parseOutput(t, string(summaryData))
	if summaryTable.Len() != 4 {
		t.Errorf("Expected one summary row per amperage column (4), got %d", summaryTable.Len())
	}
}

func TestRunCommand_ResultAsMapExploded(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", baselineFile(t, dir), "-m", "-x", "--methods", "83", "--format", "json")
	if err != nil {
		t.Fatalf("Expected run to succeed: %v", err)
	}
	if strings.Contains(out, csv.Existing(csv.FieldVintage)) {
		t.Error("Expected result-as-map output to omit input columns")
	}
	if !strings.Contains(out, output.ItemColumn(entities.LoadLighting, output.PreUpgrade, entities.LoadSumming)) {
		t.Error("Expected exploded lighting column")
	}
	if strings.Contains(out, "220_87") {
		t.Error("Expected only 220.83 columns")
	}
}

func TestRunCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "panelload.yaml")
	content := "code-year: 2026\nmethods: [\"83\"]\ngarbage-disposal-fraction: 0\n"
	if err := os.WriteFile(config, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	out, err := execute(t, "run", baselineFile(t, dir), "--config", config)
	if err != nil {
		t.Fatalf("Expected run to succeed: %v", err)
	}
	table := parseOutput(t, out)
	if got := cell(t, table, 0, output.TotalColumn(output.PreUpgrade, entities.LoadSumming)); got != "10193.6" {
		t.Errorf("Expected NEC 2026 total 10193.6, got %s", got)
	}
	if table.HasColumn(output.TotalColumn(output.PreUpgrade, entities.MaximumDemand)) {
		t.Error("Expected the configured methods to exclude 220.87")
	}
}

func TestRunCommand_Environment(t *testing.T) {
	t.Setenv("PANELLOAD_CODE_YEAR", "2026")
	t.Setenv("PANELLOAD_GARBAGE_DISPOSAL_FRACTION", "0")

	dir := t.TempDir()
	out, err := execute(t, "run", baselineFile(t, dir))
	if err != nil {
		t.Fatalf("Expected run to succeed: %v", err)
	}
	table := parseOutput(t, out)
	if got := cell(t, table, 0, output.TotalColumn(output.PreUpgrade, entities.LoadSumming)); got != "10193.6" {
		t.Errorf("Expected NEC 2026 total 10193.6, got %s", got)
	}
}

func TestRunCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	baseline := baselineFile(t, dir)

	testCases := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"run", baseline, "--format", "parquet"}},
		{"unknown code year", []string{"run", baseline, "--code-year", "2020"}},
		{"unknown method", []string{"run", baseline, "--methods", "85"}},
		{"bad retain flag", []string{"run", baseline, "--retain-existing-as-backup", "maybe"}},
		{"xlsx summary to stdout", []string{"run", baseline, "-p", "--summary-format", "xlsx"}},
		{"missing baseline", []string{"run", filepath.Join(dir, "missing.csv")}},
		{"missing rating table", []string{"run", baseline, "--rating-table", filepath.Join(dir, "missing.csv")}},
		{"too many arguments", []string{"run", baseline, baseline, baseline}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := execute(t, tc.args...); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestRunCommand_IncompleteRatingTable(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "ratings.csv")
	content := "load_category,appliance,voltage,amperage,volt-amps\nkitchen,small appliance circuit,120,,1500\n"
	if err := os.WriteFile(table, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write rating table: %v", err)
	}

	_, err := execute(t, "run", baselineFile(t, dir), "--rating-table", table)
	if !errors.Is(err, entities.ErrRatingNotFound) {
		t.Errorf("Expected ErrRatingNotFound, got %v", err)
	}
}

func TestSummarizeCommand(t *testing.T) {
	dir := t.TempDir()
	results := filepath.Join(dir, "results.csv")
	if _, err := execute(t, "run", baselineFile(t, dir), "-o", results); err != nil {
		t.Fatalf("Expected run to succeed: %v", err)
	}

	out, err := execute(t, "summarize", results, "-d")
	if err != nil {
		t.Fatalf("Expected summarize to succeed: %v", err)
	}
	summary := parseOutput(t, out)
	if summary.Len() != 2 {
		t.Errorf("Expected 2 summarized columns, got %d", summary.Len())
	}

	if _, err := execute(t, "summarize", baselineFile(t, dir)); !errors.Is(err, entities.ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn for a table without amperage columns, got %v", err)
	}

	xlsxPath := filepath.Join(dir, "summary.xlsx")
	if _, err := execute(t, "summarize", results, "--summary-format", "xlsx", "-o", xlsxPath); err != nil {
		t.Fatalf("Expected xlsx summary to succeed: %v", err)
	}
	if info, err := os.Stat(xlsxPath); err != nil || info.Size() == 0 {
		t.Errorf("Expected non-empty xlsx file, got %v", err)
	}
}

func TestRatingsCommand(t *testing.T) {
	out, err := execute(t, "ratings")
	if err != nil {
		t.Fatalf("Expected ratings to succeed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "load_category,appliance,voltage,amperage,volt-amps" {
		t.Errorf("Unexpected header %q", lines[0])
	}
	for _, want := range []string{
		"evse,level 2,240,,7680",
		`air_handler,120V,120,"0.12,1,3",`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestRunCommand_SampleData(t *testing.T) {
	// the bundled tables must not depend on the working directory
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := execute(t, "run", "--garbage-disposal-fraction", "0")
	if err != nil {
		t.Fatalf("Expected run on the bundled tables to succeed: %v", err)
	}
	table := parseOutput(t, out)
	if table.Len() != 6 {
		t.Errorf("Expected 6 bundled buildings, got %d", table.Len())
	}
	if !table.HasColumn(output.TotalColumn(output.PostUpgrade, entities.LoadSumming)) {
		t.Error("Expected post-upgrade columns from the bundled upgrade table")
	}
}

func TestRunConfig_Args(t *testing.T) {
	testCases := []struct {
		args     []string
		sample   bool
		baseline string
		upgrade  string
	}{
		{nil, true, "", ""},
		{[]string{"b.csv"}, false, "b.csv", ""},
		{[]string{"b.csv", "u.csv"}, false, "b.csv", "u.csv"},
	}
	cfg := viper.New()
	cfg.Set("code-year", "2023")
	cfg.Set("methods", "83,87")
	for _, tc := range testCases {
		config, err := runConfig(cfg, tc.args)
		if err != nil {
			t.Fatalf("%v: expected config to parse: %v", tc.args, err)
		}
		if config.SampleData != tc.sample || config.BaselineFile != tc.baseline || config.UpgradeFile != tc.upgrade {
			t.Errorf("%v: unexpected tables %v %q %q", tc.args, config.SampleData, config.BaselineFile, config.UpgradeFile)
		}
	}
}

func TestMustBindPFlag(t *testing.T) {
	set := pflag.NewFlagSet("test", pflag.ContinueOnError)
	set.String("seed", "8", "")

	cfg := viper.New()
	mustBindPFlag(cfg, "seed", set)
	if got := cfg.GetString("seed"); got != "8" {
		t.Errorf("Expected bound default 8, got %s", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic binding a flag that does not exist")
		}
	}()
	mustBindPFlag(cfg, "workers", set)
}

func TestDatasetConfig(t *testing.T) {
	cfg := viper.New()
	cfg.Set("code-year", 2026)
	cfg.Set("methods", "87,83")
	cfg.Set("retain-existing-as-backup", true)
	cfg.Set("seed", "42")
	cfg.Set("garbage-disposal-fraction", "0.25")
	cfg.Set("workers", 4)
	cfg.Set("kitchen-circuits", 3)
	cfg.Set("laundry-circuits", 0)

	config, err := datasetConfig(cfg)
	if err != nil {
		t.Fatalf("Expected config to parse: %v", err)
	}
	if config.CodeYear != entities.NEC2026Proposed {
		t.Errorf("Expected NEC 2026, got %s", config.CodeYear)
	}
	if len(config.Methods) != 2 || config.Methods[0] != entities.MaximumDemand || config.Methods[1] != entities.LoadSumming {
		t.Errorf("Expected [220_87 220_83], got %v", config.Methods)
	}
	if config.RetainExistingAsBackup == nil || !*config.RetainExistingAsBackup {
		t.Error("Expected retain override to be set")
	}
	if config.Seed != 42 || config.GarbageDisposalFraction != 0.25 || config.Workers != 4 {
		t.Errorf("Unexpected numeric options %+v", config)
	}
	if config.Circuits.Kitchen != 3 || config.Circuits.Laundry != 0 {
		t.Errorf("Unexpected circuits %+v", config.Circuits)
	}
}

func TestSummaryPath(t *testing.T) {
	testCases := []struct {
		results, format, want string
	}{
		{"", "csv", ""},
		{"out/results.csv", "csv", "out/results_summary.csv"},
		{"out/results.json", "xlsx", "out/results_summary.xlsx"},
		{"results", "", "results_summary.csv"},
	}
	for _, tc := range testCases {
		if got := SummaryPath(tc.results, tc.format); got != tc.want {
			t.Errorf("SummaryPath(%q, %q): expected %q, got %q", tc.results, tc.format, tc.want, got)
		}
	}
}
