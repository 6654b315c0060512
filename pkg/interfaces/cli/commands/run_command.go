package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/buildstock/panelload/pkg/application/services/dataset"
	"github.com/buildstock/panelload/pkg/application/services/nec"
	"github.com/buildstock/panelload/pkg/application/services/summary"
	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/catalog"
	"github.com/buildstock/panelload/pkg/infrastructure/events"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	"github.com/buildstock/panelload/pkg/interfaces/cli/output"
)

// RunConfig holds configuration for the run command
type RunConfig struct {
	BaselineFile string
	UpgradeFile  string
	// SampleData runs the bundled baseline and upgrade tables instead of files
	SampleData   bool

	OutputFile    string
	Format        string
	ExplodeResult bool
	ResultAsMap   bool

	Summary       bool
	SummaryFormat string
	SFDOnly       bool

	RatingTable    string
	UpgradeCatalog string
	Dataset        dataset.Config

	Progress       bool
	ProgressOutput io.Writer
	Stdout         io.Writer
}

// RunCommand computes panel loads for a results table
type RunCommand struct {
	config RunConfig
	log    logrus.FieldLogger
}

// NewRunCommand creates a new run command with the given configuration
func NewRunCommand(config RunConfig, log logrus.FieldLogger) *RunCommand {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RunCommand{config: config, log: log}
}

// Execute runs the command
func (c *RunCommand) Execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	ratings, err := loadRatings(c.config.RatingTable, c.log)
	if err != nil {
		return err
	}

	config := c.config.Dataset
	if c.config.UpgradeCatalog != "" {
		config.Catalog, err = catalog.Load(c.config.UpgradeCatalog)
		if err != nil {
			return err
		}
		c.log.WithField("upgrades", len(config.Catalog.Names())).Debug("upgrade catalog loaded")
	}
	if c.config.ProgressOutput != nil {
		config.Progress = c.config.ProgressOutput
	}

	baseline, upgrade, err := c.readTables()
	if err != nil {
		return err
	}

	journal := events.NewInMemoryEventStore(c.log)
	if err := journal.Subscribe(events.AllRunEvents, events.NewLogHandler(c.log)); err != nil {
		return err
	}

	driver, err := dataset.NewDriver(ratings, config, c.log, journal)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := driver.Run(ctx, baseline, upgrade)
	if err != nil {
		return fmt.Errorf("error computing panel loads: %w", err)
	}
	c.log.WithFields(logrus.Fields{
		"run":       result.RunID,
		"buildings": len(result.Results),
		"elapsed":   time.Since(start).Round(time.Millisecond),
	}).Info("panel loads computed")

	table, err := output.ResultTable(result, output.ResultOptions{
		Explode: c.config.ExplodeResult,
		AsMap:   c.config.ResultAsMap,
	})
	if err != nil {
		return err
	}
	if err := output.Generate(table, output.Config{
		Format: c.config.Format,
		Path:   c.config.OutputFile,
		Stdout: c.config.Stdout,
	}); err != nil {
		return fmt.Errorf("error writing results: %w", err)
	}

	if !c.config.Summary {
		return nil
	}
	// result-as-map tables carry no building type column
	opts := summary.Options{SingleFamilyDetachedOnly: c.config.SFDOnly}
	summaryInput := table
	if c.config.ResultAsMap && c.config.SFDOnly {
		summaryInput, err = output.ResultTable(result, output.ResultOptions{})
		if err != nil {
			return err
		}
	}
	report, err := summary.Summarize(summaryInput, opts)
	if err != nil {
		return err
	}
	return output.GenerateSummary(report, output.Config{
		Format: c.config.SummaryFormat,
		Path:   SummaryPath(c.config.OutputFile, c.config.SummaryFormat),
		Stdout: c.config.Stdout,
	})
}

func (c *RunCommand) readTables() (baseline, upgrade *csv.Table, err error) {
	if c.config.SampleData {
		c.log.Info("no tables given, using the bundled sample data")
		return csv.SampleTables()
	}

	loader := csv.NewLoader()
	baseline, err = loader.ReadTable(c.config.BaselineFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading baseline table: %w", err)
	}
	if c.config.UpgradeFile != "" {
		upgrade, err = loader.ReadTable(c.config.UpgradeFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading upgrade table: %w", err)
		}
	}
	return baseline, upgrade, nil
}

func (c *RunCommand) validateInputs() error {
	if c.config.BaselineFile == "" && !c.config.SampleData {
		return fmt.Errorf("a baseline results table is required")
	}
	if !contains(output.Formats, c.config.Format) {
		return fmt.Errorf("unsupported output format %q, expected one of %v", c.config.Format, output.Formats)
	}
	if c.config.Summary {
		if !contains(output.SummaryFormats, c.config.SummaryFormat) {
			return fmt.Errorf("unsupported summary format %q, expected one of %v", c.config.SummaryFormat, output.SummaryFormats)
		}
		if c.config.SummaryFormat == "xlsx" && c.config.OutputFile == "" {
			return fmt.Errorf("an xlsx summary needs --output")
		}
	}
	return c.config.Dataset.Validate()
}

// SummaryPath returns the summary file written next to a results file,
// empty when results go to standard output
func SummaryPath(resultsPath, format string) string {
	if resultsPath == "" {
		return ""
	}
	if format == "" {
		format = "csv"
	}
	base := strings.TrimSuffix(resultsPath, filepath.Ext(resultsPath))
	return base + "_summary." + format
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// runConfig reads the run configuration from cfg
func runConfig(cfg *viper.Viper, args []string) (RunConfig, error) {
	config := RunConfig{
		OutputFile:     cfg.GetString("output"),
		Format:         cfg.GetString("format"),
		ExplodeResult:  cast.ToBool(cfg.Get("explode-result")),
		ResultAsMap:    cast.ToBool(cfg.Get("result-as-map")),
		Summary:        cast.ToBool(cfg.Get("summary")),
		SummaryFormat:  cfg.GetString("summary-format"),
		SFDOnly:        cast.ToBool(cfg.Get("sfd-only")),
		RatingTable:    cfg.GetString("rating-table"),
		UpgradeCatalog: cfg.GetString("upgrade-catalog"),
		Progress:       cast.ToBool(cfg.Get("progress")),
	}
	switch len(args) {
	case 0:
		config.SampleData = true
	case 1:
		config.BaselineFile, config.UpgradeFile = args[0], ""
	case 2:
		config.BaselineFile, config.UpgradeFile = args[0], args[1]
	}

	ds, err := datasetConfig(cfg)
	if err != nil {
		return RunConfig{}, err
	}
	config.Dataset = ds
	return config, nil
}

// datasetConfig coerces the calculation options of cfg, which may come
// from flags, environment variables or a configuration file
func datasetConfig(cfg *viper.Viper) (dataset.Config, error) {
	config := dataset.DefaultConfig()

	year, err := entities.ParseCodeYear(cast.ToString(cfg.Get("code-year")))
	if err != nil {
		return config, err
	}
	config.CodeYear = year

	methodNames, err := cast.ToStringSliceE(cfg.Get("methods"))
	if err != nil {
		return config, fmt.Errorf("invalid methods: %w", err)
	}
	config.Methods = nil
	for _, name := range methodNames {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			m, err := entities.ParseMethod(part)
			if err != nil {
				return config, err
			}
			config.Methods = append(config.Methods, m)
		}
	}

	if s := strings.TrimSpace(cast.ToString(cfg.Get("retain-existing-as-backup"))); s != "" {
		retain, err := cast.ToBoolE(s)
		if err != nil {
			return config, fmt.Errorf("invalid retain-existing-as-backup %q: %w", s, err)
		}
		config.RetainExistingAsBackup = &retain
	}

	if config.Seed, err = cast.ToInt64E(cfg.Get("seed")); err != nil {
		return config, fmt.Errorf("invalid seed: %w", err)
	}
	if config.GarbageDisposalFraction, err = cast.ToFloat64E(cfg.Get("garbage-disposal-fraction")); err != nil {
		return config, fmt.Errorf("invalid garbage-disposal-fraction: %w", err)
	}
	if config.Workers, err = cast.ToIntE(cfg.Get("workers")); err != nil {
		return config, fmt.Errorf("invalid workers: %w", err)
	}

	kitchen, err := cast.ToIntE(cfg.Get("kitchen-circuits"))
	if err != nil {
		return config, fmt.Errorf("invalid kitchen-circuits: %w", err)
	}
	laundry, err := cast.ToIntE(cfg.Get("laundry-circuits"))
	if err != nil {
		return config, fmt.Errorf("invalid laundry-circuits: %w", err)
	}
	config.Circuits = nec.CircuitOptions{Kitchen: kitchen, Laundry: laundry}

	return config, nil
}
