package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/KaramelBytes/edakit/internal/dataset"
)

var (
	drLoad       loadFlags
	drOutput     string
	drColumns    []string
	drNullRowsIn []string
	drAnyNull    bool
	drDuplicates bool
	drHighNull   bool
	drUnary      bool
)

var dropCmd = &cobra.Command{
	Use:   "drop <file>",
	Short: "Drop columns, rows with nulls, or duplicate rows and write the result as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := drLoad.load(args[0])
		if err != nil {
			return err
		}
		cols := append([]string(nil), drColumns...)
		if drHighNull || drUnary {
			th := analysis.DefaultThresholds()
			if cfg != nil {
				th = cfg.Thresholds()
			}
			if drHighNull {
				sel, err := analysis.HighNullColumns(ds, th.HighNullPct)
				if err != nil {
					return err
				}
				cols = appendSelected(cols, sel)
			}
			if drUnary {
				sel, err := analysis.UnaryColumns(ds)
				if err != nil {
					return err
				}
				cols = appendSelected(cols, sel)
			}
		}

		// Summary goes to stderr when the CSV itself is written to stdout.
		info := cmd.OutOrStdout()
		if drOutput == "" {
			info = cmd.ErrOrStderr()
		}
		if err := ds.DropColumns(cols...); err != nil {
			return err
		}
		if len(cols) > 0 {
			fmt.Fprintf(info, "Dropped %d column(s): %v\n", len(cols), cols)
		}
		if drAnyNull || len(drNullRowsIn) > 0 {
			n, err := ds.DropNullRows(drNullRowsIn...)
			if err != nil {
				return err
			}
			fmt.Fprintf(info, "Dropped %d row(s) with nulls\n", n)
		}
		if drDuplicates {
			n, err := ds.DropDuplicateRows()
			if err != nil {
				return err
			}
			fmt.Fprintf(info, "Dropped %d duplicate row(s)\n", n)
		}
		return writeDataset(cmd.OutOrStdout(), ds, drOutput)
	},
}

func writeDataset(w io.Writer, ds *dataset.Dataset, path string) error {
	if path == "" {
		return ds.WriteCSV(w)
	}
	if err := ds.SaveCSV(path); err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ Wrote %d rows x %d columns to %s\n", ds.Nrow(), ds.Ncol(), path)
	return nil
}

func appendSelected(cols []string, sel analysis.Selection) []string {
	if !sel.Found() {
		slog.Debug("no columns selected", "heuristic", sel.Heuristic, "reason", sel.Message)
		return cols
	}
	return appendUnique(cols, sel.Columns...)
}

func appendUnique(dst []string, vals ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[v] = true
	}
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			dst = append(dst, v)
		}
	}
	return dst
}

func init() {
	rootCmd.AddCommand(dropCmd)
	drLoad.register(dropCmd)
	dropCmd.Flags().StringVarP(&drOutput, "output", "o", "", "path to write the resulting CSV (stdout if omitted)")
	dropCmd.Flags().StringSliceVar(&drColumns, "columns", nil, "columns to drop")
	dropCmd.Flags().StringSliceVar(&drNullRowsIn, "null-rows-in", nil, "drop rows holding a null in any of these columns")
	dropCmd.Flags().BoolVar(&drAnyNull, "any-null", false, "drop rows holding a null in any column")
	dropCmd.Flags().BoolVar(&drDuplicates, "duplicates", false, "drop duplicate rows, keeping the first")
	dropCmd.Flags().BoolVar(&drHighNull, "high-null", false, "also drop columns flagged as high-null")
	dropCmd.Flags().BoolVar(&drUnary, "unary", false, "also drop columns holding a single value")
}
