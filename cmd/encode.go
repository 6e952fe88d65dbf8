package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/edakit/internal/analysis"
)

var (
	enLoad        loadFlags
	enOutput      string
	enBinary      []string
	enCategorical []string
	enAuto        bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <file>",
	Short: "One-hot encode binary and categorical columns and write the result as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := enLoad.load(args[0])
		if err != nil {
			return err
		}
		binary := append([]string(nil), enBinary...)
		categorical := append([]string(nil), enCategorical...)
		if enAuto {
			th := analysis.DefaultThresholds()
			if cfg != nil {
				th = cfg.Thresholds()
			}
			_, f, err := analysis.Classify(ds, th)
			if err != nil {
				return err
			}
			binary = appendSelected(binary, f.Binary)
			categorical = appendSelected(categorical, f.LowCardinality)
		}
		if len(binary) == 0 && len(categorical) == 0 {
			return fmt.Errorf("nothing to encode: pass --binary, --categorical or --auto")
		}
		out := ds
		if len(binary) > 0 {
			if out, err = out.EncodeBinary(binary...); err != nil {
				return err
			}
		}
		if len(categorical) > 0 {
			if out, err = out.EncodeCategorical(categorical...); err != nil {
				return err
			}
		}
		return writeDataset(cmd.OutOrStdout(), out, enOutput)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	enLoad.register(encodeCmd)
	encodeCmd.Flags().StringVarP(&enOutput, "output", "o", "", "path to write the resulting CSV (stdout if omitted)")
	encodeCmd.Flags().StringSliceVar(&enBinary, "binary", nil, "two-valued columns to replace with a single indicator")
	encodeCmd.Flags().StringSliceVar(&enCategorical, "categorical", nil, "columns to replace with one indicator per value")
	encodeCmd.Flags().BoolVar(&enAuto, "auto", false, "also encode detected binary and low-cardinality columns")
}
