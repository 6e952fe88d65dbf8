package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

// Heuristic names a column classifier.
type Heuristic string

const (
	Identifier     Heuristic = "identifier"
	HighNull       Heuristic = "high_null"
	RowNull        Heuristic = "row_null"
	Unary          Heuristic = "unary"
	Binary         Heuristic = "binary"
	LowCardinality Heuristic = "low_cardinality"
)

// Thresholds are the tunable cut-offs used by Classify.
type Thresholds struct {
	// IdentifierPct flags a column when its distinct count reaches this
	// percentage of its non-null count.
	IdentifierPct float64 `json:"identifier_pct"`
	// HighNullPct flags a column whose null percentage is at least this value.
	HighNullPct float64 `json:"high_null_pct"`
	// RowNullPct flags a column with some nulls, at most this percentage; its
	// null rows are candidates for dropping rather than the column.
	RowNullPct float64 `json:"row_null_pct"`
	// LowCardinalityMax is the largest distinct count for a categorical column
	// to be considered low-cardinality (the smallest is 3).
	LowCardinalityMax int `json:"low_cardinality_max"`
	// BinaryCategoricalOnly restricts binary detection to string and bool columns.
	BinaryCategoricalOnly bool `json:"binary_categorical_only"`
}

// DefaultThresholds returns the standard heuristic cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		IdentifierPct:     90,
		HighNullPct:       75,
		RowNullPct:        5,
		LowCardinalityMax: 20,
	}
}

// Validate checks every threshold is within its accepted range.
func (t Thresholds) Validate() error {
	for _, p := range []float64{t.IdentifierPct, t.HighNullPct, t.RowNullPct} {
		if err := checkPct(p); err != nil {
			return err
		}
	}
	return checkCount(t.LowCardinalityMax)
}

// Selection is the outcome of a classifier. When no column qualifies NotFound
// is set, View is nil and Message explains what was looked for.
type Selection struct {
	Heuristic Heuristic `json:"heuristic"`
	Threshold float64   `json:"threshold"`
	Columns   []string  `json:"columns"`
	NotFound  bool      `json:"not_found"`
	Message   string    `json:"message,omitempty"`
	// AffectedRows counts rows holding a null in any selected column (row_null only).
	AffectedRows int `json:"affected_rows,omitempty"`
	// View holds the selected original columns.
	View *dataset.Dataset `json:"-"`
}

// Found reports whether at least one column qualified.
func (s Selection) Found() bool { return !s.NotFound }

// IdentifierColumns returns columns whose distinct count is at least pct% of
// their non-null count. All-null columns never qualify.
func IdentifierColumns(ds *dataset.Dataset, pct float64) (Selection, error) {
	if err := checkPct(pct); err != nil {
		return Selection{}, err
	}
	md, err := BuildMetadata(ds)
	if err != nil {
		return Selection{}, err
	}
	return identifierColumns(ds, md, pct)
}

// HighNullColumns returns columns whose null percentage is at least pct.
func HighNullColumns(ds *dataset.Dataset, pct float64) (Selection, error) {
	if err := checkPct(pct); err != nil {
		return Selection{}, err
	}
	md, err := BuildMetadata(ds)
	if err != nil {
		return Selection{}, err
	}
	return highNullColumns(ds, md, pct)
}

// RowNullColumns returns columns with a null percentage in (0, pct], ordered
// by null percentage, highest first. Dropping the null rows of these columns
// is usually cheaper than dropping the columns.
func RowNullColumns(ds *dataset.Dataset, pct float64) (Selection, error) {
	if err := checkPct(pct); err != nil {
		return Selection{}, err
	}
	md, err := BuildMetadata(ds)
	if err != nil {
		return Selection{}, err
	}
	return rowNullColumns(ds, md, pct)
}

// UnaryColumns returns columns holding a single distinct value.
func UnaryColumns(ds *dataset.Dataset) (Selection, error) {
	md, err := BuildMetadata(ds)
	if err != nil {
		return Selection{}, err
	}
	return unaryColumns(ds, md)
}

// BinaryColumns returns columns holding exactly two distinct values,
// optionally only among categorical columns.
func BinaryColumns(ds *dataset.Dataset, categoricalOnly bool) (Selection, error) {
	md, err := BuildMetadata(ds)
	if err != nil {
		return Selection{}, err
	}
	return binaryColumns(ds, md, categoricalOnly)
}

// LowCardinalityColumns returns categorical columns with 3 to maxUnique distinct
// values, ordered by distinct count, highest first.
func LowCardinalityColumns(ds *dataset.Dataset, maxUnique int) (Selection, error) {
	if err := checkCount(maxUnique); err != nil {
		return Selection{}, err
	}
	md, err := BuildMetadata(ds)
	if err != nil {
		return Selection{}, err
	}
	return lowCardinalityColumns(ds, md, maxUnique)
}

func identifierColumns(ds *dataset.Dataset, md *Metadata, pct float64) (Selection, error) {
	return selectColumns(ds, md, Identifier, pct, func(c ColumnMetadata) bool {
		return c.Count > 0 && float64(c.Unique) >= pct/100*float64(c.Count)
	}, nil, fmt.Sprintf("no identifier-like columns found (distinct values >= %g%% of non-null count)", pct))
}

func highNullColumns(ds *dataset.Dataset, md *Metadata, pct float64) (Selection, error) {
	return selectColumns(ds, md, HighNull, pct, func(c ColumnMetadata) bool {
		return c.NullPct >= pct
	}, nil, fmt.Sprintf("no columns found with %g%% or more nulls", pct))
}

func rowNullColumns(ds *dataset.Dataset, md *Metadata, pct float64) (Selection, error) {
	sel, err := selectColumns(ds, md, RowNull, pct, func(c ColumnMetadata) bool {
		return c.NullPct > 0 && c.NullPct <= pct
	}, func(a, b ColumnMetadata) bool {
		return a.NullPct > b.NullPct
	}, fmt.Sprintf("no columns found with nulls at or below %g%%", pct))
	if err != nil || sel.NotFound {
		return sel, err
	}
	sel.AffectedRows = rowsWithNulls(sel.View)
	return sel, nil
}

func unaryColumns(ds *dataset.Dataset, md *Metadata) (Selection, error) {
	return selectColumns(ds, md, Unary, 1, func(c ColumnMetadata) bool {
		return c.Unique == 1
	}, nil, "no unary columns found")
}

func binaryColumns(ds *dataset.Dataset, md *Metadata, categoricalOnly bool) (Selection, error) {
	msg := "no binary columns found"
	if categoricalOnly {
		msg = "no binary categorical columns found"
	}
	return selectColumns(ds, md, Binary, 2, func(c ColumnMetadata) bool {
		if categoricalOnly && c.Kind != dataset.KindCategorical {
			return false
		}
		return c.Unique == 2
	}, nil, msg)
}

func lowCardinalityColumns(ds *dataset.Dataset, md *Metadata, maxUnique int) (Selection, error) {
	return selectColumns(ds, md, LowCardinality, float64(maxUnique), func(c ColumnMetadata) bool {
		return c.Kind == dataset.KindCategorical && c.Unique >= 3 && c.Unique <= maxUnique
	}, func(a, b ColumnMetadata) bool {
		return a.Unique > b.Unique
	}, fmt.Sprintf("no categorical columns found with 3 to %d distinct values", maxUnique))
}

// selectColumns applies pred to every metadata record and, when less is set,
// orders the matches stably by it.
func selectColumns(ds *dataset.Dataset, md *Metadata, h Heuristic, threshold float64,
	pred func(ColumnMetadata) bool, less func(a, b ColumnMetadata) bool, notFound string) (Selection, error) {
	var matched []ColumnMetadata
	for _, c := range md.Columns {
		if pred(c) {
			matched = append(matched, c)
		}
	}
	sel := Selection{Heuristic: h, Threshold: threshold}
	if len(matched) == 0 {
		sel.NotFound = true
		sel.Message = notFound
		return sel, nil
	}
	if less != nil {
		sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	}
	sel.Columns = make([]string, len(matched))
	for i, c := range matched {
		sel.Columns[i] = c.Name
	}
	view, err := ds.Select(sel.Columns...)
	if err != nil {
		return Selection{}, err
	}
	sel.View = view
	return sel, nil
}

func rowsWithNulls(ds *dataset.Dataset) int {
	df := ds.DataFrame()
	hit := make([]bool, df.Nrow())
	for _, name := range df.Names() {
		for i, isNaN := range df.Col(name).IsNaN() {
			if isNaN {
				hit[i] = true
			}
		}
	}
	n := 0
	for _, h := range hit {
		if h {
			n++
		}
	}
	return n
}

func checkPct(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return fmt.Errorf("%w: %g is outside [0, 100]", ErrInvalidThreshold, p)
	}
	return nil
}

func checkCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d must not be negative", ErrInvalidThreshold, n)
	}
	return nil
}
