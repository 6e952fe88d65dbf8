package analysis

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

var nan = math.NaN()

// peopleDataset is a 10-row table with one column per heuristic:
// id (identifier), country (unary), notes (80% null), age and income (few
// nulls), member (binary yes/no 6/4), color and size (low cardinality).
func peopleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(dataframe.New(
		series.New([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, series.Int, "id"),
		series.New([]string{"NO", "NO", "NO", "NO", "NO", "NO", "NO", "NO", "NO", "NO"}, series.String, "country"),
		series.New([]string{"a", "NaN", "NaN", "NaN", "b", "NaN", "NaN", "NaN", "NaN", "NaN"}, series.String, "notes"),
		series.New([]float64{30, 30, 40, 40, 50, 50, 60, 60, 70, nan}, series.Float, "age"),
		series.New([]float64{1, 1, 2, 2, 3, 3, 4, 4, nan, nan}, series.Float, "income"),
		series.New([]string{"yes", "no", "yes", "yes", "no", "yes", "no", "yes", "no", "yes"}, series.String, "member"),
		series.New([]string{"red", "green", "blue", "red", "green", "blue", "red", "green", "blue", "red"}, series.String, "color"),
		series.New([]string{"S", "M", "L", "XL", "S", "M", "L", "XL", "S", "M"}, series.String, "size"),
	))
	require.NoError(t, err)
	ds.Name = "people.csv"
	return ds
}

func emptyDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(dataframe.New(series.New([]string{}, series.String, "a")))
	require.NoError(t, err)
	return ds
}
