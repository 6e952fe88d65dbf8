package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/edakit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set edakit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "identifier_pct: %g\n", cfg.IdentifierPct)
		fmt.Fprintf(w, "high_null_pct: %g\n", cfg.HighNullPct)
		fmt.Fprintf(w, "row_null_pct: %g\n", cfg.RowNullPct)
		fmt.Fprintf(w, "low_cardinality_max: %d\n", cfg.LowCardinalityMax)
		fmt.Fprintf(w, "binary_categorical_only: %t\n", cfg.BinaryCategoricalOnly)
		fmt.Fprintf(w, "na_values: %s\n", strings.Join(cfg.NullValues, ","))
		if cfg.MaxRows > 0 {
			fmt.Fprintf(w, "max_rows: %d\n", cfg.MaxRows)
		}
		fmt.Fprintf(w, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(w, "plot_width_cm: %g\n", cfg.PlotWidthCm)
		fmt.Fprintf(w, "plot_height_cm: %g\n", cfg.PlotHeightCm)
		fmt.Fprintf(w, "hist_bins: %d\n", cfg.HistBins)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "identifier_pct", "high_null_pct", "row_null_pct":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 || f > 100 {
				return fmt.Errorf("invalid percentage for %s: %v (use 0-100)", key, val)
			}
			switch key {
			case "identifier_pct":
				cfg.IdentifierPct = f
			case "high_null_pct":
				cfg.HighNullPct = f
			default:
				cfg.RowNullPct = f
			}
		case "low_cardinality_max", "max_rows", "hist_bins":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for %s: %v", key, val)
			}
			switch key {
			case "low_cardinality_max":
				cfg.LowCardinalityMax = i
			case "max_rows":
				cfg.MaxRows = i
			default:
				cfg.HistBins = i
			}
		case "binary_categorical_only":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %w", key, err)
			}
			cfg.BinaryCategoricalOnly = b
		case "na_values":
			cfg.NullValues = strings.Split(val, ",")
		case "output_format":
			switch val {
			case "table", "md", "markdown", "json":
				cfg.OutputFormat = val
			default:
				return fmt.Errorf("invalid output_format: %s (use table, md or json)", val)
			}
		case "plot_width_cm", "plot_height_cm":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid size for %s: %v", key, val)
			}
			if key == "plot_width_cm" {
				cfg.PlotWidthCm = f
			} else {
				cfg.PlotHeightCm = f
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
