// Command esl reproduces the least-squares and best-subset analyses of the
// prostate cancer data: correlation table, regression table, and the
// comparison of least squares against best-subset selection on held-out
// rows.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/eslgo/config"
	"github.com/YuminosukeSato/eslgo/pkg/log"
)

// flags are the command-line overrides of the config file.
type flags struct {
	configPath  string
	data        string
	subsetSize  int
	workers     int
	format      string
	logLevel    string
	logJSON     bool
	noStandard  bool
	noIntercept bool
	chartPNG    string
	chartHTML   string
	profileDir  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		f flags
		a *app
	)

	rootCmd := &cobra.Command{
		Use:   "esl",
		Short: "Least squares and best-subset selection on the prostate cancer data",
		Long: `esl fits ordinary least squares and exhaustive best-subset models to a
fixed tabular dataset split into training and held-out rows.

Predictors are standardised and an intercept is prepended unless disabled.
Best-subset searches always keep the intercept; --subset-size counts the
other columns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg, stderr)
			if err != nil {
				return err
			}
			a = newApp(cfg, logger, stdout)
			if cfg.ProfileDir != "" {
				a.profile = profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.ProfileDir), profile.Quiet)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil {
				return nil
			}
			return a.finish()
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&f.data, "data", "d", "", "observation table (overrides data.path)")
	pf.IntVarP(&f.subsetSize, "subset-size", "k", 0, "best-subset size, intercept excluded")
	pf.IntVar(&f.workers, "workers", 1, "goroutines for the subset search (0: one per CPU)")
	pf.StringVarP(&f.format, "format", "f", config.FormatTable, "output format: table or json")
	pf.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&f.logJSON, "log-json", false, "log slog JSON records instead of console output")
	pf.BoolVar(&f.noStandard, "no-standardize", false, "fit on raw predictors")
	pf.BoolVar(&f.noIntercept, "no-intercept", false, "do not prepend an intercept column")
	pf.StringVar(&f.chartPNG, "chart-png", "", "write the coefficient chart to this PNG file")
	pf.StringVar(&f.chartHTML, "chart-html", "", "write the comparison page to this HTML file")
	pf.StringVar(&f.profileDir, "profile-dir", "", "write a CPU profile into this directory")

	run := func(steps ...func(*app) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return a.run("esl "+cmd.Name(), steps...)
		}
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "correlations",
			Short: "Print the correlations of the training data",
			Args:  cobra.NoArgs,
			RunE:  run((*app).correlations),
		},
		&cobra.Command{
			Use:   "regression",
			Short: "Least squares coefficients, standard errors and Z scores",
			Args:  cobra.NoArgs,
			RunE:  run((*app).regression),
		},
		&cobra.Command{
			Use:   "shrinkage",
			Short: "Compare least squares and best subset on held-out rows",
			Args:  cobra.NoArgs,
			RunE:  run((*app).shrinkage),
		},
		&cobra.Command{
			Use:   "path",
			Short: "Best-subset RSS for every subset size",
			Args:  cobra.NoArgs,
			RunE:  run((*app).path),
		},
		&cobra.Command{
			Use:   "all",
			Short: "Run correlations, regression and shrinkage in order",
			Args:  cobra.NoArgs,
			RunE:  run((*app).correlations, (*app).regression, (*app).shrinkage),
		},
	)
	return rootCmd
}

// apply copies the flags the user set onto cfg.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("data") {
		cfg.Data.Path = f.data
	}
	if changed("subset-size") {
		cfg.Model.SubsetSize = f.subsetSize
	}
	if changed("workers") {
		cfg.Model.Workers = f.workers
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if changed("log-json") {
		cfg.Logging.JSON = f.logJSON
	}
	if changed("no-standardize") {
		cfg.Model.Standardize = !f.noStandard
	}
	if changed("no-intercept") {
		cfg.Model.Intercept = !f.noIntercept
	}
	if changed("chart-png") {
		cfg.Output.ChartPNG = f.chartPNG
	}
	if changed("chart-html") {
		cfg.Output.ChartHTML = f.chartHTML
	}
	if changed("profile-dir") {
		cfg.ProfileDir = f.profileDir
	}
}

// newLogger builds the slog JSON logger or the zerolog console logger.
func newLogger(cfg *config.Config, w io.Writer) (log.Logger, error) {
	if cfg.Logging.JSON {
		slogger, err := log.SetupLogger(w, cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		return log.NewSlogLogger(slogger), nil
	}
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	provider := log.NewZerologProvider(zerolog.ConsoleWriter{Out: w, NoColor: true}, level)
	provider.InstallWarnings()
	return provider.GetLoggerWithName("esl"), nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
