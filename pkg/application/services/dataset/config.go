// Package dataset applies the NEC calculator to every row of a
// building-stock results table.
package dataset

import (
	"fmt"
	"io"

	"github.com/buildstock/panelload/pkg/application/services/nec"
	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/infrastructure/catalog"
)

const (
	// DefaultGarbageDisposalFraction is the share of post-1940 dwellings
	// assigned a garbage disposal
	DefaultGarbageDisposalFraction = 0.52
	DefaultGarbageDisposalVintage  = 1940
	DefaultSeed                    = 8
)

// Config controls a dataset run
type Config struct {
	CodeYear entities.CodeYear
	Methods  []entities.Method
	Circuits nec.CircuitOptions

	// Catalog supplies per-upgrade profiles; nil uses the default profile
	Catalog *catalog.Catalog
	// RetainExistingAsBackup overrides the catalog when set
	RetainExistingAsBackup *bool

	Seed                      int64
	GarbageDisposalFraction   float64
	GarbageDisposalMinVintage int

	// Workers > 1 evaluates rows on a worker pool
	Workers int
	// Progress receives a progress bar when non-nil
	Progress io.Writer
}

// DefaultConfig returns the configuration of a plain NEC 2023 run over both methods
func DefaultConfig() Config {
	return Config{
		CodeYear:                  entities.NEC2023,
		Methods:                   []entities.Method{entities.LoadSumming, entities.MaximumDemand},
		Seed:                      DefaultSeed,
		GarbageDisposalFraction:   DefaultGarbageDisposalFraction,
		GarbageDisposalMinVintage: DefaultGarbageDisposalVintage,
		Workers:                   1,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if _, err := entities.PolicyFor(c.CodeYear); err != nil {
		return err
	}
	if len(c.Methods) == 0 {
		return fmt.Errorf("at least one NEC method is required")
	}
	seen := make(map[entities.Method]bool, len(c.Methods))
	for _, m := range c.Methods {
		if m != entities.LoadSumming && m != entities.MaximumDemand {
			return fmt.Errorf("%w: %d", entities.ErrUnsupportedMethod, int(m))
		}
		if seen[m] {
			return fmt.Errorf("method %s listed twice", m)
		}
		seen[m] = true
	}
	if c.GarbageDisposalFraction < 0 || c.GarbageDisposalFraction > 1 {
		return fmt.Errorf("garbage disposal fraction must be within [0, 1], got %v", c.GarbageDisposalFraction)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	return nil
}

// UsesMethod reports whether the run evaluates m
func (c Config) UsesMethod(m entities.Method) bool {
	for _, x := range c.Methods {
		if x == m {
			return true
		}
	}
	return false
}

// upgradeOptions resolves the crediting options of an upgrade
func (c Config) upgradeOptions(name string) nec.UpgradeOptions {
	p, _ := c.Catalog.Profile(name)
	opts := nec.UpgradeOptions{
		RetainExistingAsBackup: p.RetainExistingAsBackup,
		ExpectLoadChange:       p.ExpectLoadChange,
	}
	if c.RetainExistingAsBackup != nil {
		opts.RetainExistingAsBackup = *c.RetainExistingAsBackup
	}
	return opts
}
