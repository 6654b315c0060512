package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/buildstock/panelload/pkg/application/services/summary"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	"github.com/buildstock/panelload/pkg/interfaces/cli/output"
)

// SummarizeConfig holds configuration for the summarize command
type SummarizeConfig struct {
	ResultsFile string
	OutputFile  string
	Format      string
	SFDOnly     bool
	Stdout      io.Writer
}

// SummarizeCommand regenerates the summary report of an existing results file
type SummarizeCommand struct {
	config SummarizeConfig
	log    logrus.FieldLogger
}

// NewSummarizeCommand creates a new summarize command
func NewSummarizeCommand(config SummarizeConfig, log logrus.FieldLogger) *SummarizeCommand {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SummarizeCommand{config: config, log: log}
}

// Execute runs the command
func (c *SummarizeCommand) Execute(_ context.Context) error {
	if !contains(output.SummaryFormats, c.config.Format) {
		return fmt.Errorf("unsupported summary format %q, expected one of %v", c.config.Format, output.SummaryFormats)
	}
	if c.config.Format == "xlsx" && c.config.OutputFile == "" {
		return fmt.Errorf("an xlsx summary needs --output")
	}

	table, err := csv.NewLoader().ReadTable(c.config.ResultsFile)
	if err != nil {
		return fmt.Errorf("error loading results: %w", err)
	}
	report, err := summary.Summarize(table, summary.Options{SingleFamilyDetachedOnly: c.config.SFDOnly})
	if err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{
		"file":    c.config.ResultsFile,
		"rows":    report.Rows,
		"columns": len(report.Columns),
	}).Info("results summarized")

	return output.GenerateSummary(report, output.Config{
		Format: c.config.Format,
		Path:   c.config.OutputFile,
		Stdout: c.config.Stdout,
	})
}
