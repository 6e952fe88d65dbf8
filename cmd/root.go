package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/edakit/internal/config"
)

var (
	// Global flags
	cfgFile      string
	debug        bool
	outputFormat string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "edakit",
	Short: "edakit: quick exploratory analysis of CSV/TSV/XLSX datasets",
	Long: `edakit profiles tabular datasets: per-column metadata, heuristic column
classification (identifier-like, high-null, unary, binary, low-cardinality),
drop and one-hot encoding helpers, and simple plots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(setupLogging, loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.edakit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format: table|md|json (overrides config)")
}

func setupLogging() {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		slog.Warn("failed to load config, using defaults", "error", err)
		c = cfgpkg.Default()
	}
	cfg = c
	if rootCmd.PersistentFlags().Changed("format") && outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}
	slog.Debug("config loaded", "file", cfgFile, "format", cfg.OutputFormat)
}

// format returns the effective output format.
func format() string {
	if outputFormat != "" {
		return outputFormat
	}
	if cfg != nil && cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return "table"
}
