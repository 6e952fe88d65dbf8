package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-gota/gota/series"

	"github.com/KaramelBytes/edakit/internal/utils"
)

// WriteCSV writes the dataset with a header row. Floats keep their shortest
// round-trip form and nulls are written as NaN, which Load reads back as null.
func (d *Dataset) WriteCSV(w io.Writer) error {
	names := d.df.Names()
	cols := make([]series.Series, len(names))
	for j, name := range names {
		cols[j] = d.df.Col(name)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(cols))
	for i := 0; i < d.df.Nrow(); i++ {
		for j, s := range cols {
			v, ok := CellString(s, i)
			if !ok {
				v = nullToken
			}
			row[j] = v
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// SaveCSV writes the dataset to path atomically.
func (d *Dataset) SaveCSV(path string) error {
	var buf bytes.Buffer
	if err := d.WriteCSV(&buf); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
