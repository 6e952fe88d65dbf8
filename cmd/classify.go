package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/edakit/internal/analysis"
)

var (
	clLoad       loadFlags
	clOutput     string
	clIDPct      float64
	clHighNull   float64
	clRowNull    float64
	clLowCardMax int
	clBinaryCat  bool
	clWithMeta   bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Flag identifier-like, high-null, unary, binary and low-cardinality columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		th := analysis.DefaultThresholds()
		if cfg != nil {
			th = cfg.Thresholds()
		}
		f := cmd.Flags()
		if f.Changed("id-pct") {
			th.IdentifierPct = clIDPct
		}
		if f.Changed("high-null-pct") {
			th.HighNullPct = clHighNull
		}
		if f.Changed("row-null-pct") {
			th.RowNullPct = clRowNull
		}
		if f.Changed("low-card-max") {
			th.LowCardinalityMax = clLowCardMax
		}
		if f.Changed("binary-categorical-only") {
			th.BinaryCategoricalOnly = clBinaryCat
		}
		if err := th.Validate(); err != nil {
			return err
		}
		ds, err := clLoad.load(args[0])
		if err != nil {
			return err
		}
		rep, err := analysis.NewReport(ds, th)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), renderable{
			markdown: func() string {
				var b strings.Builder
				if clWithMeta {
					b.WriteString(rep.Metadata.Markdown())
					b.WriteString("\n")
				}
				b.WriteString(rep.Findings.Markdown())
				return b.String()
			},
			table: func(w io.Writer) {
				if clWithMeta {
					rep.Metadata.WriteTable(w)
				}
				rep.Findings.WriteTable(w)
			},
			value: rep,
		}, clOutput)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	clLoad.register(classifyCmd)
	th := analysis.DefaultThresholds()
	classifyCmd.Flags().StringVarP(&clOutput, "output", "o", "", "optional path to write the report (.json or Markdown)")
	classifyCmd.Flags().Float64Var(&clIDPct, "id-pct", th.IdentifierPct, "identifier-like when distinct values >= this % of non-null count")
	classifyCmd.Flags().Float64Var(&clHighNull, "high-null-pct", th.HighNullPct, "high-null when null % >= this value")
	classifyCmd.Flags().Float64Var(&clRowNull, "row-null-pct", th.RowNullPct, "row-drop hint when 0 < null % <= this value")
	classifyCmd.Flags().IntVar(&clLowCardMax, "low-card-max", th.LowCardinalityMax, "low-cardinality when a categorical column has 3..N distinct values")
	classifyCmd.Flags().BoolVar(&clBinaryCat, "binary-categorical-only", th.BinaryCategoricalOnly, "only report string/bool columns as binary")
	classifyCmd.Flags().BoolVar(&clWithMeta, "metadata", false, "include the metadata table in the output")
}
