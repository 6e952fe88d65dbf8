package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/KaramelBytes/edakit/internal/dataset"
)

// Global configuration structure.
type Global struct {
	// Heuristic thresholds
	IdentifierPct         float64 `mapstructure:"identifier_pct" yaml:"identifier_pct"`
	HighNullPct           float64 `mapstructure:"high_null_pct" yaml:"high_null_pct"`
	RowNullPct            float64 `mapstructure:"row_null_pct" yaml:"row_null_pct"`
	LowCardinalityMax     int     `mapstructure:"low_cardinality_max" yaml:"low_cardinality_max"`
	BinaryCategoricalOnly bool    `mapstructure:"binary_categorical_only" yaml:"binary_categorical_only"`

	// Loading
	NullValues []string `mapstructure:"na_values" yaml:"na_values"`
	MaxRows    int      `mapstructure:"max_rows" yaml:"max_rows"`

	// Output
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`

	// Plotting
	PlotWidthCm  float64 `mapstructure:"plot_width_cm" yaml:"plot_width_cm"`
	PlotHeightCm float64 `mapstructure:"plot_height_cm" yaml:"plot_height_cm"`
	HistBins     int     `mapstructure:"hist_bins" yaml:"hist_bins"`
}

// Default returns the built-in configuration, used when no config can be loaded.
func Default() *Global {
	th := analysis.DefaultThresholds()
	return &Global{
		IdentifierPct:     th.IdentifierPct,
		HighNullPct:       th.HighNullPct,
		RowNullPct:        th.RowNullPct,
		LowCardinalityMax: th.LowCardinalityMax,
		NullValues:        dataset.DefaultLoadOptions().NullValues,
		OutputFormat:      "table",
		PlotWidthCm:       16,
		PlotHeightCm:      12,
		HistBins:          10,
	}
}

// Thresholds converts the configured cut-offs for the classifiers.
func (c *Global) Thresholds() analysis.Thresholds {
	return analysis.Thresholds{
		IdentifierPct:         c.IdentifierPct,
		HighNullPct:           c.HighNullPct,
		RowNullPct:            c.RowNullPct,
		LowCardinalityMax:     c.LowCardinalityMax,
		BinaryCategoricalOnly: c.BinaryCategoricalOnly,
	}
}

// LoadOptions converts the configured loading settings.
func (c *Global) LoadOptions() dataset.LoadOptions {
	opt := dataset.DefaultLoadOptions()
	if len(c.NullValues) > 0 {
		opt.NullValues = c.NullValues
	}
	opt.MaxRows = c.MaxRows
	return opt
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edakit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults; command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDAKIT")
	v.AutomaticEnv()

	th := analysis.DefaultThresholds()
	v.SetDefault("identifier_pct", th.IdentifierPct)
	v.SetDefault("high_null_pct", th.HighNullPct)
	v.SetDefault("row_null_pct", th.RowNullPct)
	v.SetDefault("low_cardinality_max", th.LowCardinalityMax)
	v.SetDefault("binary_categorical_only", th.BinaryCategoricalOnly)
	v.SetDefault("na_values", dataset.DefaultLoadOptions().NullValues)
	v.SetDefault("max_rows", 0)
	v.SetDefault("output_format", "table")
	v.SetDefault("plot_width_cm", 16.0)
	v.SetDefault("plot_height_cm", 12.0)
	v.SetDefault("hist_bins", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Thresholds().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".edakit"), nil
}
