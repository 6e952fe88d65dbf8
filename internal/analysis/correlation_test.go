package analysis

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

func TestCorrelation(t *testing.T) {
	ds, err := dataset.New(dataframe.New(
		series.New([]float64{1, 2, 3, 4, 5, nan}, series.Float, "x"),
		series.New([]float64{2, 4, 6, 8, 10, 99}, series.Float, "double"),
		series.New([]int{5, 4, 3, 2, 1, 0}, series.Int, "reverse"),
		series.New([]float64{7, 7, 7, 7, 7, 7}, series.Float, "flat"),
		series.New([]string{"a", "b", "c", "d", "e", "f"}, series.String, "label"),
	))
	require.NoError(t, err)

	corr, err := Correlation(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "double", "reverse", "flat"}, corr.Columns)
	require.Len(t, corr.Values, 4)
	for i := range corr.Values {
		assert.Equal(t, 1.0, corr.Values[i][i])
		for j := range corr.Values {
			assert.Equal(t, corr.Values[i][j], corr.Values[j][i])
		}
	}
	assert.InDelta(t, 1.0, corr.Values[0][1], 1e-12)
	assert.InDelta(t, -1.0, corr.Values[0][2], 1e-12)
	assert.Equal(t, 0.0, corr.Values[0][3])

	md := corr.Markdown(2)
	assert.Contains(t, md, "[CORRELATIONS]")
	assert.Contains(t, md, "x ~ double: r=1.000")
}

func TestCorrelationTooFewNumeric(t *testing.T) {
	ds, err := dataset.New(dataframe.New(
		series.New([]int{1, 2}, series.Int, "n"),
		series.New([]string{"a", "b"}, series.String, "s"),
	))
	require.NoError(t, err)
	_, err = Correlation(ds)
	assert.ErrorIs(t, err, ErrTooFewNumeric)

	_, err = Correlation(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
