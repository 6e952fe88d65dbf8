package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// EncodeBinary returns a new dataset where each named two-valued column is
// replaced by a single int indicator "<col>_<value>" for its second category
// (sorted order); the first category is implied by 0. Indicators follow the
// untouched columns. Nulls encode as 0. An indicator name already used by
// another column fails with ErrDuplicateColumn.
func (d *Dataset) EncodeBinary(cols ...string) (*Dataset, error) {
	return d.encode(cols, func(name string, s series.Series) ([]series.Series, error) {
		cats := Categories(s)
		if len(cats) != 2 {
			return nil, fmt.Errorf("%w: %s has %d distinct values", ErrNotBinary, name, len(cats))
		}
		return []series.Series{indicator(s, name, cats[1])}, nil
	})
}

// EncodeCategorical returns a new dataset where each named column is replaced by
// one int indicator per distinct non-null value, in sorted order.
func (d *Dataset) EncodeCategorical(cols ...string) (*Dataset, error) {
	return d.encode(cols, func(name string, s series.Series) ([]series.Series, error) {
		cats := Categories(s)
		out := make([]series.Series, 0, len(cats))
		for _, c := range cats {
			out = append(out, indicator(s, name, c))
		}
		return out, nil
	})
}

type encoderFunc func(name string, s series.Series) ([]series.Series, error)

func (d *Dataset) encode(cols []string, enc encoderFunc) (*Dataset, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	if err := d.checkColumns(cols); err != nil {
		return nil, err
	}
	encoded := make(map[string]bool, len(cols))
	for _, c := range cols {
		encoded[c] = true
	}
	var kept, added []series.Series
	taken := make(map[string]bool, d.df.Ncol())
	for _, name := range d.df.Names() {
		if !encoded[name] {
			kept = append(kept, d.df.Col(name))
			taken[name] = true
		}
	}
	for _, name := range cols {
		if !encoded[name] {
			continue
		}
		encoded[name] = false
		ind, err := enc(name, d.df.Col(name))
		if err != nil {
			return nil, err
		}
		for _, s := range ind {
			// gota renames clashing columns silently; refuse instead.
			if taken[s.Name] {
				return nil, fmt.Errorf("%w: encoding %s would create %s", ErrDuplicateColumn, name, s.Name)
			}
			taken[s.Name] = true
		}
		added = append(added, ind...)
	}
	df := dataframe.New(append(kept, added...)...)
	if df.Err != nil {
		return nil, fmt.Errorf("encode: %w", df.Err)
	}
	return &Dataset{Name: d.Name, df: df}, nil
}

func indicator(s series.Series, name, value string) series.Series {
	vals := make([]int, s.Len())
	for i := range vals {
		if v, ok := CellString(s, i); ok && v == value {
			vals[i] = 1
		}
	}
	return series.New(vals, series.Int, name+"_"+value)
}
