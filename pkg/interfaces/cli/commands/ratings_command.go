package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	"github.com/buildstock/panelload/pkg/interfaces/cli/output"
)

// RatingsConfig holds configuration for the ratings command
type RatingsConfig struct {
	RatingTable string
	Stdout      io.Writer
}

// RatingsCommand prints the active nameplate table
type RatingsCommand struct {
	config RatingsConfig
	log    logrus.FieldLogger
}

// NewRatingsCommand creates a new ratings command
func NewRatingsCommand(config RatingsConfig, log logrus.FieldLogger) *RatingsCommand {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RatingsCommand{config: config, log: log}
}

// Execute runs the command
func (c *RatingsCommand) Execute(_ context.Context) error {
	repo, err := loadRatings(c.config.RatingTable, c.log)
	if err != nil {
		return err
	}
	ratings, err := repo.GetAllRatings()
	if err != nil {
		return err
	}

	t := csv.NewTable([]string{"load_category", "appliance", "voltage", "amperage", "volt-amps"})
	for _, r := range ratings {
		amperage, voltAmps := "", output.FormatFloat(r.VoltAmps)
		if r.IsRegression() {
			amperage = fmt.Sprintf("%s,%s,%s",
				output.FormatFloat(r.Regression.Slope),
				output.FormatFloat(r.Regression.Intercept),
				output.FormatFloat(r.Regression.Minimum))
			voltAmps = ""
		}
		record := []string{string(r.Category), r.Appliance, strconv.Itoa(int(r.Voltage)), amperage, voltAmps}
		if err := t.Append(record); err != nil {
			return err
		}
	}

	out := c.config.Stdout
	if out == nil {
		out = os.Stdout
	}
	return csv.WriteTable(out, t)
}
