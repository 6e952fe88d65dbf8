package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/KaramelBytes/edakit/internal/dataset"
	"github.com/KaramelBytes/edakit/internal/plot"
)

var (
	plLoad   loadFlags
	plOutput string
	plColumn string
	plBins   int
	plTop    int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render a correlation heatmap, histogram or count plot",
}

var plotHeatmapCmd = &cobra.Command{
	Use:   "heatmap <file>",
	Short: "Correlation heatmap of the numeric columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := plLoad.load(args[0])
		if err != nil {
			return err
		}
		corr, err := analysis.Correlation(ds)
		if err != nil {
			return err
		}
		if err := plot.Heatmap(corr, plOutput, plotOptions()); err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "✓ Wrote heatmap to %s\n", plOutput)
		if plTop > 0 {
			fmt.Fprint(w, corr.Markdown(plTop))
		}
		return nil
	},
}

var plotHistCmd = &cobra.Command{
	Use:   "hist <file>",
	Short: "Histogram of a numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return columnPlot(cmd, args[0], "histogram", plot.Histogram)
	},
}

var plotCountCmd = &cobra.Command{
	Use:   "count <file>",
	Short: "Count plot of a categorical column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return columnPlot(cmd, args[0], "count plot", plot.CountPlot)
	},
}

func columnPlot(cmd *cobra.Command, path, what string, draw func(*dataset.Dataset, string, string, plot.Options) error) error {
	if plColumn == "" {
		return fmt.Errorf("--column is required")
	}
	ds, err := plLoad.load(path)
	if err != nil {
		return err
	}
	if err := draw(ds, plColumn, plOutput, plotOptions()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s of %s to %s\n", what, plColumn, plOutput)
	return nil
}

func plotOptions() plot.Options {
	opt := plot.DefaultOptions()
	if cfg != nil {
		if cfg.PlotWidthCm > 0 && cfg.PlotHeightCm > 0 {
			opt.Width = vg.Length(cfg.PlotWidthCm) * vg.Centimeter
			opt.Height = vg.Length(cfg.PlotHeightCm) * vg.Centimeter
		}
		if cfg.HistBins > 0 {
			opt.Bins = cfg.HistBins
		}
	}
	if plBins > 0 {
		opt.Bins = plBins
	}
	return opt
}

func init() {
	rootCmd.AddCommand(plotCmd)
	for _, c := range []*cobra.Command{plotHeatmapCmd, plotHistCmd, plotCountCmd} {
		plotCmd.AddCommand(c)
		plLoad.register(c)
		c.Flags().StringVarP(&plOutput, "output", "o", "plot.png", "image path; format follows the extension (png, svg, pdf)")
	}
	for _, c := range []*cobra.Command{plotHistCmd, plotCountCmd} {
		c.Flags().StringVarP(&plColumn, "column", "c", "", "column to plot")
	}
	plotHeatmapCmd.Flags().IntVar(&plTop, "top", 10, "also print the N strongest correlation pairs (0 to skip)")
	plotHistCmd.Flags().IntVar(&plBins, "bins", 0, "number of histogram bins (default from config)")
}
