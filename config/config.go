// Package config holds the settings of the esl command.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/eslgo/dataset"
	"github.com/YuminosukeSato/eslgo/pkg/errors"
	"github.com/YuminosukeSato/eslgo/pkg/log"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds all esl configuration.
type Config struct {
	// Input data
	Data DataConfig `yaml:"data"`

	// Model settings
	Model ModelConfig `yaml:"model"`

	// Output settings
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// ProfileDir enables CPU profiling into this directory when set.
	ProfileDir string `yaml:"profile_dir"`
}

// DataConfig locates the observation table and describes its layout.
type DataConfig struct {
	Path            string   `yaml:"path"`
	Delimiter       string   `yaml:"delimiter"` // single character, "\t" by default
	Response        string   `yaml:"response"`
	Flag            string   `yaml:"flag"`
	TrainValue      string   `yaml:"train_value"`
	TestValue       string   `yaml:"test_value"`
	DropFirstColumn bool     `yaml:"drop_first_column"`
	Ignore          []string `yaml:"ignore"`
}

// ModelConfig configures preprocessing and the subset search.
type ModelConfig struct {
	Standardize bool `yaml:"standardize"`
	Ddof        int  `yaml:"ddof"`      // 1: sample variance, 0: population variance
	Intercept   bool `yaml:"intercept"` // prepend an intercept column, always kept by subset searches
	SubsetSize  int  `yaml:"subset_size"`
	Workers     int  `yaml:"workers"` // 0: one per CPU
}

// OutputConfig configures how results are written.
type OutputConfig struct {
	Format    string `yaml:"format"`     // table, json
	ChartPNG  string `yaml:"chart_png"`  // coefficient chart, skipped when empty
	ChartHTML string `yaml:"chart_html"` // comparison page, skipped when empty
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`  // slog JSON instead of zerolog console output
}

// DefaultConfig returns the settings that reproduce the prostate cancer
// analysis.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:            "data/prostate.data",
			Delimiter:       "\t",
			Response:        "lpsa",
			Flag:            "train",
			TrainValue:      "T",
			TestValue:       "F",
			DropFirstColumn: true,
		},
		Model: ModelConfig{
			Standardize: true,
			Ddof:        1,
			Intercept:   true,
			SubsetSize:  2,
			Workers:     1,
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "failed to parse config %s", path)
			}
		case os.IsNotExist(err):
			// Return defaults if config file doesn't exist
		default:
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("ESL_DATA"); v != "" {
		c.Data.Path = v
	}
	if v := os.Getenv("ESL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ESL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewInvalidParameterError("config.Load", "ESL_WORKERS", v, "must be an integer")
		}
		c.Model.Workers = n
	}
	return nil
}

// Schema converts the data settings into a dataset.Schema.
func (c *Config) Schema() (dataset.Schema, error) {
	r, size := utf8.DecodeRuneInString(c.Data.Delimiter)
	if r == utf8.RuneError || size != len(c.Data.Delimiter) {
		return dataset.Schema{}, errors.NewInvalidParameterError("config.Schema", "delimiter", c.Data.Delimiter,
			"must be a single character")
	}
	return dataset.Schema{
		Response:        c.Data.Response,
		Flag:            c.Data.Flag,
		TrainValue:      c.Data.TrainValue,
		TestValue:       c.Data.TestValue,
		Delimiter:       r,
		DropFirstColumn: c.Data.DropFirstColumn,
		Ignore:          c.Data.Ignore,
	}, nil
}

// Validate checks the configuration for values no command can run with.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return errors.NewInvalidParameterError("config.Validate", "data.path", c.Data.Path, "data file is required")
	}
	schema, err := c.Schema()
	if err != nil {
		return err
	}
	if err := schema.Validate(); err != nil {
		return err
	}
	if c.Model.Ddof != 0 && c.Model.Ddof != 1 {
		return errors.NewInvalidParameterError("config.Validate", "model.ddof", c.Model.Ddof, "must be 0 or 1")
	}
	if c.Model.SubsetSize < 1 {
		return errors.NewInvalidParameterError("config.Validate", "model.subset_size", c.Model.SubsetSize, "must be >= 1")
	}
	if c.Model.Workers < 0 {
		return errors.NewInvalidParameterError("config.Validate", "model.workers", c.Model.Workers, "must be >= 0")
	}
	if c.Output.Format != FormatTable && c.Output.Format != FormatJSON {
		return errors.NewInvalidParameterError("config.Validate", "output.format", c.Output.Format, "must be table or json")
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
