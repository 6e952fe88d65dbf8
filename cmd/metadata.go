package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/edakit/internal/analysis"
)

var (
	mdLoad   loadFlags
	mdOutput string
)

var metadataCmd = &cobra.Command{
	Use:   "metadata <file>",
	Short: "Show per-column metadata: type, memory, nulls, cardinality and summary statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := mdLoad.load(args[0])
		if err != nil {
			return err
		}
		md, err := analysis.BuildMetadata(ds)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), renderable{
			markdown: md.Markdown,
			table:    md.WriteTable,
			value:    md,
		}, mdOutput)
	},
}

func init() {
	rootCmd.AddCommand(metadataCmd)
	mdLoad.register(metadataCmd)
	metadataCmd.Flags().StringVarP(&mdOutput, "output", "o", "", "optional path to write metadata (.json or Markdown)")
}
