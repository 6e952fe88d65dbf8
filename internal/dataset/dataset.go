// Package dataset holds the tabular data edakit operates on. A Dataset wraps a
// gota DataFrame; drop operations mutate the receiver in place while encoders
// and selections return a new Dataset.
package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind groups gota column types the way the heuristics see them.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// KindOf maps a gota column type to its Kind. Bool columns count as categorical.
func KindOf(t series.Type) Kind {
	switch t {
	case series.Int, series.Float:
		return KindNumeric
	default:
		return KindCategorical
	}
}

// Dataset is a caller-owned table. It is not safe for concurrent use.
type Dataset struct {
	Name string
	df   dataframe.DataFrame
}

// New wraps an existing DataFrame. A frame carrying an error is rejected.
func New(df dataframe.DataFrame) (*Dataset, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, df.Err)
	}
	return &Dataset{df: df}, nil
}

// Validate reports ErrInvalidInput for a nil or broken dataset and
// ErrEmptyInput when there are no rows or no columns.
func Validate(ds *Dataset) error {
	if ds == nil {
		return ErrInvalidInput
	}
	if ds.df.Err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, ds.df.Err)
	}
	if ds.df.Nrow() == 0 || ds.df.Ncol() == 0 {
		return ErrEmptyInput
	}
	return nil
}

// DataFrame returns the underlying frame. gota frames are values, so changes to
// the returned frame do not affect the dataset.
func (d *Dataset) DataFrame() dataframe.DataFrame { return d.df }

func (d *Dataset) Nrow() int { return d.df.Nrow() }

func (d *Dataset) Ncol() int { return d.df.Ncol() }

func (d *Dataset) Names() []string { return d.df.Names() }

// Has reports whether the dataset contains a column with the given name.
func (d *Dataset) Has(name string) bool {
	for _, n := range d.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Column returns the named column.
func (d *Dataset) Column(name string) (series.Series, error) {
	if !d.Has(name) {
		return series.Series{}, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	return d.df.Col(name), nil
}

// Select returns a new dataset holding only the named columns, in the given order.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	if err := d.checkColumns(names); err != nil {
		return nil, err
	}
	sel := d.df.Select(names)
	if sel.Err != nil {
		return nil, fmt.Errorf("select columns: %w", sel.Err)
	}
	return &Dataset{Name: d.Name, df: sel}, nil
}

func (d *Dataset) checkColumns(names []string) error {
	for _, n := range names {
		if !d.Has(n) {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, n)
		}
	}
	return nil
}

// String renders the underlying frame the way gota prints it.
func (d *Dataset) String() string { return d.df.String() }
