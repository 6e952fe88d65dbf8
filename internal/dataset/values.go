package dataset

import (
	"sort"
	"strconv"

	"github.com/go-gota/gota/series"
)

// CellString formats element i of s; ok is false for a null cell.
// Floats use the shortest representation that round-trips, so distinct values
// always format distinctly.
func CellString(s series.Series, i int) (string, bool) {
	e := s.Elem(i)
	if e.IsNA() {
		return "", false
	}
	switch s.Type() {
	case series.Float:
		return strconv.FormatFloat(e.Float(), 'g', -1, 64), true
	case series.Int:
		v, err := e.Int()
		if err != nil {
			return e.String(), true
		}
		return strconv.Itoa(v), true
	default:
		return e.String(), true
	}
}

// Categories returns the distinct non-null values of s in sorted order:
// numerically for numeric columns, lexically otherwise.
func Categories(s series.Series) []string {
	seen := make(map[string]float64)
	var out []string
	for i := 0; i < s.Len(); i++ {
		v, ok := CellString(s, i)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = s.Elem(i).Float()
		out = append(out, v)
	}
	if KindOf(s.Type()) == KindNumeric {
		sort.SliceStable(out, func(a, b int) bool { return seen[out[a]] < seen[out[b]] })
	} else {
		sort.Strings(out)
	}
	return out
}
