package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// nullToken is how missing cells are handed to gota.
const nullToken = "NaN"

// LoadOptions controls how raw records become a Dataset.
type LoadOptions struct {
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, picked from the file extension (tab for .tsv, else comma).
	Delimiter rune
	// Numeric locale. When either separator is set, numeric-looking cells are
	// normalized to plain Go float syntax before type detection.
	DecimalSeparator   rune
	ThousandsSeparator rune
	// NullValues are cell values treated as missing (compared after trimming spaces).
	NullValues []string
	// XLSX sheet selection, used by Load: SheetName wins when set, otherwise the
	// 1-based SheetIndex (0 means the first sheet).
	SheetName  string
	SheetIndex int
}

// DefaultLoadOptions returns reasonable defaults for loading a dataset.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		NullValues: []string{"", "NA", "NaN", "N/A", "null", "<nil>"},
	}
}

// Load reads a CSV, TSV or XLSX file, choosing the reader by extension.
// XLSX files are read from the sheet selected in opt.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadXLSX(path, opt, opt.SheetName, opt.SheetIndex)
	}
	return LoadCSV(path, opt)
}

// LoadCSV reads a delimited text file into a Dataset.
func LoadCSV(path string, opt LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	ds, err := ReadCSV(f, opt)
	if err != nil {
		return nil, err
	}
	ds.Name = filepath.Base(path)
	return ds, nil
}

// ReadCSV reads delimited records from r. The first record is the header.
func ReadCSV(r io.Reader, opt LoadOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if opt.Delimiter != 0 {
		cr.Comma = opt.Delimiter
	}
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	records := [][]string{header}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	for n := 0; n < maxRows; n++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", n+1, err)
		}
		records = append(records, rec)
	}
	return FromRecords(records, opt)
}

// FromRecords builds a Dataset from a header row followed by data rows.
// Short rows are padded with nulls and long rows truncated to the header width.
func FromRecords(records [][]string, opt LoadOptions) (*Dataset, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmptyInput
	}
	ncol := len(records[0])
	nulls := make(map[string]struct{}, len(opt.NullValues))
	for _, v := range opt.NullValues {
		nulls[strings.TrimSpace(v)] = struct{}{}
	}
	normalize := opt.DecimalSeparator != 0 || opt.ThousandsSeparator != 0

	header := make([]string, ncol)
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	out := make([][]string, 0, len(records))
	out = append(out, header)
	for _, rec := range records[1:] {
		row := make([]string, ncol)
		for j := 0; j < ncol; j++ {
			if j >= len(rec) {
				row[j] = nullToken
				continue
			}
			v := strings.TrimSpace(rec[j])
			if _, ok := nulls[v]; ok {
				row[j] = nullToken
				continue
			}
			if normalize {
				if x, ok := parseNumeric(v, opt); ok {
					v = strconv.FormatFloat(x, 'f', -1, 64)
				}
			}
			row[j] = v
		}
		out = append(out, row)
	}
	if len(out) == 1 {
		return nil, ErrEmptyInput
	}
	df := dataframe.LoadRecords(out,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues([]string{nullToken}),
	)
	return New(df)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseNumeric parses locale-formatted numbers such as "1.000,5" or "12 %".
func parseNumeric(s string, opt LoadOptions) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec = ','
		case thou == ',':
			dec = '.'
		case cpos >= 0 && dpos < 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
