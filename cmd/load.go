package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

// loadFlags are shared by every command that reads a dataset.
type loadFlags struct {
	delimiter  string
	decimal    string
	thousands  string
	maxRows    int
	sheetName  string
	sheetIndex int
	naValues   []string
}

func (lf *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&lf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	cmd.Flags().StringVar(&lf.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma'")
	cmd.Flags().StringVar(&lf.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space'")
	cmd.Flags().IntVar(&lf.maxRows, "max-rows", 0, "maximum rows to read (0 = config value, unlimited by default)")
	cmd.Flags().StringVar(&lf.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	cmd.Flags().IntVar(&lf.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	cmd.Flags().StringSliceVar(&lf.naValues, "na", nil, "values treated as null (overrides config)")
}

func (lf *loadFlags) options() (dataset.LoadOptions, error) {
	opt := dataset.DefaultLoadOptions()
	if cfg != nil {
		opt = cfg.LoadOptions()
	}
	if lf.maxRows > 0 {
		opt.MaxRows = lf.maxRows
	}
	if len(lf.naValues) > 0 {
		opt.NullValues = lf.naValues
	}
	opt.SheetName = lf.sheetName
	opt.SheetIndex = lf.sheetIndex
	switch lf.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", lf.delimiter)
	}
	switch strings.ToLower(strings.TrimSpace(lf.decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", lf.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(lf.thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", lf.thousands)
	}
	return opt, nil
}

func (lf *loadFlags) load(path string) (*dataset.Dataset, error) {
	opt, err := lf.options()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded", "file", ds.Name, "rows", ds.Nrow(), "cols", ds.Ncol())
	return ds, nil
}
