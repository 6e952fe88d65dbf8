// Package analysis computes per-column metadata for a dataset and applies
// threshold heuristics over it to flag columns worth a closer look.
package analysis

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

// Errors reported by the metadata builder and classifiers.
var (
	ErrInvalidInput     = dataset.ErrInvalidInput
	ErrEmptyInput       = dataset.ErrEmptyInput
	ErrInvalidThreshold = dataset.ErrInvalidThreshold
)

// Metadata holds one record per dataset column, in column order.
type Metadata struct {
	Name    string           `json:"name,omitempty"`
	Rows    int              `json:"rows"`
	Columns []ColumnMetadata `json:"columns"`
}

// ColumnMetadata is the describe-style record for a single column.
type ColumnMetadata struct {
	Name        string       `json:"name"`
	DType       series.Type  `json:"dtype"`
	Kind        dataset.Kind `json:"kind"`
	MemoryBytes int64        `json:"memory_bytes"`
	Rows        int          `json:"rows"`
	Nulls       int          `json:"nulls"`
	NullPct     float64      `json:"null_pct"`
	// Count is the number of non-null cells.
	Count int `json:"count"`
	// Unique is the number of distinct non-null values.
	Unique      int               `json:"unique"`
	Numeric     *NumericStats     `json:"numeric,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
}

// NumericStats is filled for int and float columns with at least one value.
// Std is the sample standard deviation; it is 0 for a single value.
type NumericStats struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// CategoricalStats is filled for string and bool columns with at least one value.
type CategoricalStats struct {
	Top  string `json:"top"`
	Freq int    `json:"freq"`
}

// Column returns the record for name.
func (m *Metadata) Column(name string) (ColumnMetadata, bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnMetadata{}, false
}

// BuildMetadata computes a fresh metadata record for every column of ds.
func BuildMetadata(ds *dataset.Dataset) (*Metadata, error) {
	if err := dataset.Validate(ds); err != nil {
		return nil, err
	}
	df := ds.DataFrame()
	rows := df.Nrow()
	md := &Metadata{Name: ds.Name, Rows: rows, Columns: make([]ColumnMetadata, 0, df.Ncol())}
	for _, name := range df.Names() {
		md.Columns = append(md.Columns, describeColumn(df.Col(name), rows))
	}
	return md, nil
}

func describeColumn(s series.Series, rows int) ColumnMetadata {
	c := ColumnMetadata{
		Name:  s.Name,
		DType: s.Type(),
		Kind:  dataset.KindOf(s.Type()),
		Rows:  rows,
	}
	counts := make(map[string]int)
	var order []string
	var nums []float64
	var strBytes int64
	for i := 0; i < s.Len(); i++ {
		v, ok := dataset.CellString(s, i)
		if !ok {
			c.Nulls++
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
		switch s.Type() {
		case series.Int, series.Float:
			nums = append(nums, s.Elem(i).Float())
		case series.String:
			strBytes += int64(len(v))
		}
	}
	c.Count = rows - c.Nulls
	c.Unique = len(counts)
	if rows > 0 {
		c.NullPct = float64(c.Nulls) / float64(rows) * 100
	}
	c.MemoryBytes = memoryUsage(s.Type(), rows, strBytes)

	if c.Count == 0 {
		return c
	}
	if c.Kind == dataset.KindNumeric {
		c.Numeric = numericStats(nums)
	} else {
		top := order[0]
		for _, v := range order[1:] {
			if counts[v] > counts[top] {
				top = v
			}
		}
		c.Categorical = &CategoricalStats{Top: top, Freq: counts[top]}
	}
	return c
}

// memoryUsage estimates the in-memory footprint of a column: 8 bytes per
// numeric cell, 1 per bool cell, a 16-byte header plus content per string cell.
func memoryUsage(t series.Type, rows int, strBytes int64) int64 {
	switch t {
	case series.Int, series.Float:
		return int64(rows) * 8
	case series.Bool:
		return int64(rows)
	default:
		return int64(rows)*16 + strBytes
	}
}

func numericStats(vals []float64) *NumericStats {
	st := &NumericStats{Min: math.Inf(1), Max: math.Inf(-1)}
	// Welford
	var mean, m2 float64
	for i, x := range vals {
		if x < st.Min {
			st.Min = x
		}
		if x > st.Max {
			st.Max = x
		}
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}
	st.Mean = mean
	if len(vals) > 1 {
		st.Std = math.Sqrt(m2 / float64(len(vals)-1))
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	st.Q25 = quantile(sorted, 0.25)
	st.Median = quantile(sorted, 0.5)
	st.Q75 = quantile(sorted, 0.75)
	return st
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
