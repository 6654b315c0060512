// Package commands wires the panelload command-line interface.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of configuration environment variables
const EnvPrefix = "PANELLOAD"

// option is a configuration value settable by flag, environment variable
// or configuration file
type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// addOptions creates each option's flag on its first flag set, shares it
// with the others and binds it to cfg
func addOptions(cfg *viper.Viper, options []option) {
	for _, o := range options {
		for i, set := range o.flagsets {
			if i != 0 {
				set.AddFlag(o.flagsets[0].Lookup(o.name))
				continue
			}
			switch v := o.defaultVal.(type) {
			case string:
				set.StringP(o.name, o.shorthand, v, o.usage)
			case []string:
				set.StringSliceP(o.name, o.shorthand, v, o.usage)
			case bool:
				set.BoolP(o.name, o.shorthand, v, o.usage)
			case int:
				set.IntP(o.name, o.shorthand, v, o.usage)
			case float64:
				set.Float64P(o.name, o.shorthand, v, o.usage)
			default:
				panic(fmt.Sprintf("invalid default for option %s: %T", o.name, o.defaultVal))
			}
		}
		mustBindPFlag(cfg, o.name, o.flagsets[0])
	}
}

func mustBindPFlag(cfg *viper.Viper, name string, set *pflag.FlagSet) {
	if err := cfg.BindPFlag(name, set.Lookup(name)); err != nil {
		panic(fmt.Sprintf("cannot bind option %s: %v", name, err))
	}
}

// NewRootCommand builds the command tree. Each call has its own
// configuration, so commands can be built and executed independently.
func NewRootCommand() *cobra.Command {
	cfg := viper.New()
	cfg.SetEnvPrefix(EnvPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	root := &cobra.Command{
		Use:   "panelload",
		Short: "Estimate residential electrical panel loads under NEC 220.83 and 220.87.",
		Long: `panelload estimates the existing and post-upgrade electrical load of every
dwelling in a building-stock results table, using the NEC 220.83 load-summing
method and the NEC 220.87 maximum-demand method.

Configuration can be set with command-line flags, with a configuration file
(toml, yaml or json, given with --config), or with environment variables
named PANELLOAD_<FLAG>, for example PANELLOAD_CODE_YEAR=2026.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig(cfg) },
	}

	runCmd := &cobra.Command{
		Use:   "run [baseline] [upgrade]",
		Short: "Compute panel loads for a results table",
		Long: `run computes itemized loads and panel totals for every building of the
baseline results table. When an upgrade results table is given, each building
is paired with its upgrade row and post-upgrade totals are computed too.
Without arguments, the bundled test data is used.`,
		Args:              cobra.MaximumNArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := runConfig(cfg, args)
			if err != nil {
				return err
			}
			config.Stdout = cmd.OutOrStdout()
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if config.Progress {
				config.ProgressOutput = cmd.ErrOrStderr()
			}
			return NewRunCommand(config, log).Execute(cmd.Context())
		},
	}

	summarizeCmd := &cobra.Command{
		Use:   "summarize <results>",
		Short: "Summarize the amperage columns of an existing results file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			config := SummarizeConfig{
				ResultsFile: args[0],
				OutputFile:  cfg.GetString("output"),
				Format:      cfg.GetString("summary-format"),
				SFDOnly:     cast.ToBool(cfg.Get("sfd-only")),
				Stdout:      cmd.OutOrStdout(),
			}
			return NewSummarizeCommand(config, log).Execute(cmd.Context())
		},
		DisableAutoGenTag: true,
	}

	ratingsCmd := &cobra.Command{
		Use:   "ratings",
		Short: "Print the active nameplate rating table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			config := RatingsConfig{
				RatingTable: cfg.GetString("rating-table"),
				Stdout:      cmd.OutOrStdout(),
			}
			return NewRatingsCommand(config, log).Execute(cmd.Context())
		},
		DisableAutoGenTag: true,
	}

	root.AddCommand(runCmd, summarizeCmd, ratingsCmd)

	addOptions(cfg, []option{
		{
			name:       "config",
			usage:      "configuration file location",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "log-level",
			usage:      "logging level: debug, info, warn or error",
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "rating-table",
			usage:      "nameplate rating table CSV; empty uses the bundled table",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), ratingsCmd.Flags()},
		},
		{
			name:       "output",
			shorthand:  "o",
			usage:      "output file; empty writes to standard output",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), summarizeCmd.Flags()},
		},
		{
			name:       "format",
			usage:      "results format: csv or json",
			defaultVal: "csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "explode-result",
			shorthand:  "x",
			usage:      "write every itemized load as its own column",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "result-as-map",
			shorthand:  "m",
			usage:      "write only building_id and the computed columns",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "sfd-only",
			shorthand:  "d",
			usage:      "summarize single-family detached dwellings only",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), summarizeCmd.Flags()},
		},
		{
			name:       "summary",
			shorthand:  "p",
			usage:      "also write a summary of the amperage columns",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "summary-format",
			usage:      "summary format: csv or xlsx",
			defaultVal: "csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), summarizeCmd.Flags()},
		},
		{
			name:       "code-year",
			usage:      "NEC edition: 2023 or 2026 (proposed)",
			defaultVal: 2023,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "methods",
			usage:      "NEC methods to compute: 83, 87 or both",
			defaultVal: []string{"83", "87"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "upgrade-catalog",
			usage:      "YAML catalog of upgrade profiles",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "retain-existing-as-backup",
			usage:      "true or false; overrides the catalog for every upgrade",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "seed",
			usage:      "random seed of the garbage disposal assignment",
			defaultVal: 8,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "garbage-disposal-fraction",
			usage:      "share of eligible dwellings assigned a garbage disposal",
			defaultVal: 0.52,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "kitchen-circuits",
			usage:      "kitchen small-appliance circuits; 0 uses the NEC minimum",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "laundry-circuits",
			usage:      "laundry circuits; 0 uses the NEC minimum",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "workers",
			usage:      "number of rows evaluated concurrently",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name:       "progress",
			usage:      "show a progress bar on standard error",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	})

	return root
}

// setConfig reads the configuration file, if there is one
func setConfig(cfg *viper.Viper) error {
	if path := cfg.GetString("config"); path != "" {
		cfg.SetConfigFile(path)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("problem reading configuration file: %w", err)
		}
	}
	return nil
}

func newLogger(cfg *viper.Viper, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	return log, nil
}
