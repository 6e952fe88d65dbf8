package analysis

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

func TestBuildMetadataNullAccounting(t *testing.T) {
	md, err := BuildMetadata(peopleDataset(t))
	require.NoError(t, err)
	require.Len(t, md.Columns, 8)
	assert.Equal(t, 10, md.Rows)
	assert.Equal(t, "people.csv", md.Name)

	for _, c := range md.Columns {
		assert.Equal(t, c.Rows, c.Nulls+c.Count, c.Name)
		assert.InDelta(t, float64(c.Nulls)/float64(c.Rows)*100, c.NullPct, 1e-9, c.Name)
		assert.LessOrEqual(t, c.Unique, c.Count, c.Name)
	}

	notes, ok := md.Column("notes")
	require.True(t, ok)
	assert.Equal(t, 8, notes.Nulls)
	assert.InDelta(t, 80.0, notes.NullPct, 1e-9)
	assert.Equal(t, dataset.KindCategorical, notes.Kind)

	_, ok = md.Column("missing")
	assert.False(t, ok)
}

func TestBuildMetadataRejectsBadInput(t *testing.T) {
	_, err := BuildMetadata(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildMetadata(emptyDataset(t))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestNumericStats(t *testing.T) {
	ds, err := dataset.New(dataframe.New(
		series.New([]float64{5, 1, math.NaN(), 3, 2, 4}, series.Float, "x"),
		series.New([]int{7, 7, 7, 7, 7, 7}, series.Int, "k"),
	))
	require.NoError(t, err)
	md, err := BuildMetadata(ds)
	require.NoError(t, err)

	x, _ := md.Column("x")
	require.NotNil(t, x.Numeric)
	assert.Nil(t, x.Categorical)
	assert.Equal(t, 5, x.Count)
	assert.InDelta(t, 3.0, x.Numeric.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), x.Numeric.Std, 1e-12)
	assert.Equal(t, 1.0, x.Numeric.Min)
	assert.InDelta(t, 2.0, x.Numeric.Q25, 1e-12)
	assert.InDelta(t, 3.0, x.Numeric.Median, 1e-12)
	assert.InDelta(t, 4.0, x.Numeric.Q75, 1e-12)
	assert.Equal(t, 5.0, x.Numeric.Max)

	k, _ := md.Column("k")
	assert.Equal(t, 1, k.Unique)
	assert.Equal(t, 0.0, k.Numeric.Std)
}

func TestSingleValueStd(t *testing.T) {
	assert.Equal(t, 0.0, numericStats([]float64{42}).Std)
}

func TestQuantileInterpolates(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	assert.InDelta(t, 17.5, quantile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 25.0, quantile(sorted, 0.5), 1e-12)
	assert.Equal(t, 10.0, quantile(sorted, 0))
	assert.Equal(t, 40.0, quantile(sorted, 1))
	assert.Equal(t, 0.0, quantile(nil, 0.5))
}

func TestCategoricalTop(t *testing.T) {
	md, err := BuildMetadata(peopleDataset(t))
	require.NoError(t, err)

	member, _ := md.Column("member")
	require.NotNil(t, member.Categorical)
	assert.Nil(t, member.Numeric)
	assert.Equal(t, "yes", member.Categorical.Top)
	assert.Equal(t, 6, member.Categorical.Freq)

	color, _ := md.Column("color")
	assert.Equal(t, "red", color.Categorical.Top)
	assert.Equal(t, 4, color.Categorical.Freq)
	assert.Equal(t, 3, color.Unique)
}

func TestCategoricalTopTieKeepsFirstSeen(t *testing.T) {
	ds, err := dataset.New(dataframe.New(series.New([]string{"b", "a", "a", "b"}, series.String, "s")))
	require.NoError(t, err)
	md, err := BuildMetadata(ds)
	require.NoError(t, err)
	assert.Equal(t, "b", md.Columns[0].Categorical.Top)
	assert.Equal(t, 2, md.Columns[0].Categorical.Freq)
}

func TestAllNullColumnHasNoStats(t *testing.T) {
	ds, err := dataset.New(dataframe.New(
		series.New([]string{"NaN", "NaN"}, series.String, "empty"),
		series.New([]int{1, 2}, series.Int, "n"),
	))
	require.NoError(t, err)
	md, err := BuildMetadata(ds)
	require.NoError(t, err)
	empty, _ := md.Column("empty")
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, 0, empty.Unique)
	assert.InDelta(t, 100.0, empty.NullPct, 1e-9)
	assert.Nil(t, empty.Numeric)
	assert.Nil(t, empty.Categorical)
}

func TestMemoryUsage(t *testing.T) {
	md, err := BuildMetadata(peopleDataset(t))
	require.NoError(t, err)

	id, _ := md.Column("id")
	assert.EqualValues(t, 80, id.MemoryBytes)
	country, _ := md.Column("country")
	assert.EqualValues(t, 10*16+10*2, country.MemoryBytes)
	notes, _ := md.Column("notes")
	assert.EqualValues(t, 10*16+2, notes.MemoryBytes)

	var total int64
	for _, c := range md.Columns {
		total += c.MemoryBytes
	}
	assert.Equal(t, total, md.MemoryBytes())
	assert.EqualValues(t, 10, memoryUsage(series.Bool, 10, 0))
}
