package analysis

import (
	"errors"
	"math"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

// ErrTooFewNumeric is returned when a correlation needs more numeric columns.
var ErrTooFewNumeric = errors.New("correlation needs at least two numeric columns")

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric columns.
type CorrMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"` // row-major, Values[i][j]
}

// pairAcc accumulates sums over rows where both columns are present.
type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (pa *pairAcc) add(x, y float64) {
	pa.n++
	pa.sumX += x
	pa.sumY += y
	pa.sumXX += x * x
	pa.sumYY += y * y
	pa.sumXY += x * y
}

// r returns the Pearson coefficient, or 0 when it is undefined.
func (pa *pairAcc) r() float64 {
	if pa.n < 2 {
		return 0
	}
	denom := math.Sqrt((pa.n*pa.sumXX - pa.sumX*pa.sumX) * (pa.n*pa.sumYY - pa.sumY*pa.sumY))
	if denom == 0 {
		return 0
	}
	r := (pa.n*pa.sumXY - pa.sumX*pa.sumY) / denom
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

// Correlation computes Pearson correlations between all numeric columns of ds,
// using for each pair only the rows where both values are present.
func Correlation(ds *dataset.Dataset) (*CorrMatrix, error) {
	if err := dataset.Validate(ds); err != nil {
		return nil, err
	}
	df := ds.DataFrame()
	var names []string
	var cols [][]float64
	var nulls [][]bool
	for _, name := range df.Names() {
		s := df.Col(name)
		if dataset.KindOf(s.Type()) != dataset.KindNumeric {
			continue
		}
		names = append(names, name)
		cols = append(cols, s.Float())
		nulls = append(nulls, s.IsNaN())
	}
	if len(names) < 2 {
		return nil, ErrTooFewNumeric
	}
	n := len(names)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
		mat[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			var pa pairAcc
			for i := range cols[a] {
				if nulls[a][i] || nulls[b][i] {
					continue
				}
				pa.add(cols[a][i], cols[b][i])
			}
			r := pa.r()
			mat[a][b] = r
			mat[b][a] = r
		}
	}
	return &CorrMatrix{Columns: names, Values: mat}, nil
}
