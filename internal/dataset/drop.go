package dataset

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/series"
)

// DropColumns removes the named columns in place. Unknown names fail the whole
// call and leave the dataset untouched, as does dropping every column
// (ErrNoColumnsLeft).
func (d *Dataset) DropColumns(names ...string) error {
	if len(names) == 0 {
		return nil
	}
	if err := d.checkColumns(names); err != nil {
		return err
	}
	dropped := make(map[string]bool, len(names))
	for _, n := range names {
		dropped[n] = true
	}
	if len(dropped) >= d.df.Ncol() {
		return fmt.Errorf("%w: %s", ErrNoColumnsLeft, strings.Join(names, ", "))
	}
	out := d.df.Drop(names)
	if out.Err != nil {
		return fmt.Errorf("drop columns: %w", out.Err)
	}
	d.df = out
	return nil
}

// DropNullRows removes, in place, every row holding a null in any of the subset
// columns (all columns when subset is empty). It returns the number of rows dropped.
func (d *Dataset) DropNullRows(subset ...string) (int, error) {
	if err := d.checkColumns(subset); err != nil {
		return 0, err
	}
	if len(subset) == 0 {
		subset = d.df.Names()
	}
	n := d.df.Nrow()
	drop := make([]bool, n)
	for _, name := range subset {
		for i, isNaN := range d.df.Col(name).IsNaN() {
			if isNaN {
				drop[i] = true
			}
		}
	}
	return d.keepRows(drop)
}

// DropDuplicateRows removes repeated rows in place, keeping the first occurrence.
// It returns the number of rows dropped.
func (d *Dataset) DropDuplicateRows() (int, error) {
	cols := make([]series.Series, d.df.Ncol())
	for j, name := range d.df.Names() {
		cols[j] = d.df.Col(name)
	}
	drop := make([]bool, d.df.Nrow())
	seen := make(map[string]struct{}, len(drop))
	var key strings.Builder
	for i := range drop {
		key.Reset()
		for _, s := range cols {
			// \x00 marks a null so it never equals a stored value.
			if v, ok := CellString(s, i); ok {
				key.WriteString(v)
			} else {
				key.WriteByte(0)
			}
			key.WriteByte(0x1f)
		}
		if _, ok := seen[key.String()]; ok {
			drop[i] = true
			continue
		}
		seen[key.String()] = struct{}{}
	}
	return d.keepRows(drop)
}

func (d *Dataset) keepRows(drop []bool) (int, error) {
	keep := make([]int, 0, len(drop))
	for i, dropped := range drop {
		if !dropped {
			keep = append(keep, i)
		}
	}
	removed := len(drop) - len(keep)
	if removed == 0 {
		return 0, nil
	}
	out := d.df.Subset(keep)
	if out.Err != nil {
		return 0, fmt.Errorf("drop rows: %w", out.Err)
	}
	d.df = out
	return removed, nil
}
