package analysis

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

func TestIdentifierColumns(t *testing.T) {
	ds := peopleDataset(t)

	sel, err := IdentifierColumns(ds, 90)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "notes"}, sel.Columns)
	assert.Equal(t, Identifier, sel.Heuristic)
	require.NotNil(t, sel.View)
	assert.Equal(t, []string{"id", "notes"}, sel.View.Names())
	assert.Equal(t, 10, sel.View.Nrow())

	// At 100% only columns whose values are all distinct qualify.
	sel, err = IdentifierColumns(ds, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "notes"}, sel.Columns)
	md, _ := BuildMetadata(ds)
	for _, name := range sel.Columns {
		c, _ := md.Column(name)
		assert.Equal(t, c.Count, c.Unique, name)
	}
}

func TestUnaryColumns(t *testing.T) {
	sel, err := UnaryColumns(peopleDataset(t))
	require.NoError(t, err)
	assert.True(t, sel.Found())
	assert.Equal(t, []string{"country"}, sel.Columns)
}

func TestHighNullColumns(t *testing.T) {
	ds := peopleDataset(t)
	for _, pct := range []float64{80, 50} {
		sel, err := HighNullColumns(ds, pct)
		require.NoError(t, err)
		assert.Equal(t, []string{"notes"}, sel.Columns, "pct %g", pct)
	}

	sel, err := HighNullColumns(ds, 90)
	require.NoError(t, err)
	assert.True(t, sel.NotFound)
	assert.False(t, sel.Found())
	assert.Nil(t, sel.View)
	assert.Empty(t, sel.Columns)
	assert.Contains(t, sel.Message, "90%")
}

func TestHighNullAtDefaultThreshold(t *testing.T) {
	ds, err := dataset.New(dataframe.New(
		series.New([]float64{1, nan, nan, nan, nan, nan, nan, nan, nan, 2}, series.Float, "a"),
		series.New([]string{"x", "NaN", "y", "NaN", "z", "NaN", "w", "NaN", "v", "NaN"}, series.String, "b"),
	))
	require.NoError(t, err)
	sel, err := HighNullColumns(ds, 75)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, sel.Columns)
}

func TestUnaryIgnoresTwoValuedColumn(t *testing.T) {
	ds, err := dataset.New(dataframe.New(
		series.New([]string{"k", "k", "k", "k"}, series.String, "constant"),
		series.New([]bool{true, false, true, false}, series.Bool, "flag"),
	))
	require.NoError(t, err)
	sel, err := UnaryColumns(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"constant"}, sel.Columns)
	assert.Equal(t, []string{"constant"}, sel.View.Names())
}

func TestRowNullColumnsOrderedByNullShare(t *testing.T) {
	ds := peopleDataset(t)

	sel, err := RowNullColumns(ds, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"income", "age"}, sel.Columns)
	assert.Equal(t, 2, sel.AffectedRows)

	sel, err = RowNullColumns(ds, 5)
	require.NoError(t, err)
	assert.True(t, sel.NotFound)
	assert.Zero(t, sel.AffectedRows)
}

func TestBinaryColumns(t *testing.T) {
	ds := peopleDataset(t)

	sel, err := BinaryColumns(ds, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes", "member"}, sel.Columns)

	sel, err = BinaryColumns(ds, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes", "member"}, sel.Columns)

	enc, err := ds.EncodeBinary("member")
	require.NoError(t, err)
	col, err := enc.Column("member_yes")
	require.NoError(t, err)
	vals, err := col.Int()
	require.NoError(t, err)
	ones := 0
	for _, v := range vals {
		ones += v
	}
	assert.Equal(t, 6, ones)
	assert.Equal(t, 4, len(vals)-ones)
}

func TestLowCardinalityColumns(t *testing.T) {
	ds := peopleDataset(t)

	sel, err := LowCardinalityColumns(ds, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"size", "color"}, sel.Columns)

	sel, err = LowCardinalityColumns(ds, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"color"}, sel.Columns)

	sel, err = LowCardinalityColumns(ds, 2)
	require.NoError(t, err)
	assert.True(t, sel.NotFound)
}

func TestClassifiersRejectBadThresholds(t *testing.T) {
	ds := peopleDataset(t)
	for _, pct := range []float64{150, -5, math.NaN()} {
		_, err := IdentifierColumns(ds, pct)
		assert.ErrorIs(t, err, ErrInvalidThreshold, "identifier %g", pct)
		_, err = HighNullColumns(ds, pct)
		assert.ErrorIs(t, err, ErrInvalidThreshold, "high null %g", pct)
		_, err = RowNullColumns(ds, pct)
		assert.ErrorIs(t, err, ErrInvalidThreshold, "row null %g", pct)
	}
	_, err := LowCardinalityColumns(ds, -1)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	th := DefaultThresholds()
	th.HighNullPct = 150
	_, _, err = Classify(ds, th)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestClassifiersRejectBadInput(t *testing.T) {
	_, err := UnaryColumns(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = BinaryColumns(emptyDataset(t), false)
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, _, err = Classify(nil, DefaultThresholds())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClassifyRunsEveryHeuristic(t *testing.T) {
	th := DefaultThresholds()
	th.RowNullPct = 20
	md, f, err := Classify(peopleDataset(t), th)
	require.NoError(t, err)
	assert.Len(t, md.Columns, 8)
	assert.Equal(t, th, f.Thresholds)

	sels := f.Selections()
	require.Len(t, sels, 6)
	want := []Heuristic{Identifier, HighNull, RowNull, Unary, Binary, LowCardinality}
	for i, s := range sels {
		assert.Equal(t, want[i], s.Heuristic)
		assert.True(t, s.Found(), s.Heuristic)
	}
	assert.Equal(t, []string{"income", "age"}, f.RowNull.Columns)
	assert.Equal(t, []string{"size", "color"}, f.LowCardinality.Columns)
}

func TestClassifyLeavesDatasetUntouched(t *testing.T) {
	ds := peopleDataset(t)
	before := ds.String()
	_, _, err := Classify(ds, DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, before, ds.String())
}

func TestNewReport(t *testing.T) {
	r1, err := NewReport(peopleDataset(t), DefaultThresholds())
	require.NoError(t, err)
	r2, err := NewReport(peopleDataset(t), DefaultThresholds())
	require.NoError(t, err)

	_, err = uuid.Parse(r1.RunID)
	assert.NoError(t, err)
	assert.NotEqual(t, r1.RunID, r2.RunID)
	assert.False(t, r1.CreatedAt.IsZero())
	assert.NotNil(t, r1.Metadata)
	assert.NotNil(t, r1.Findings)
}

func TestRender(t *testing.T) {
	th := DefaultThresholds()
	th.RowNullPct = 20
	md, f, err := Classify(peopleDataset(t), th)
	require.NoError(t, err)

	out := md.Markdown()
	assert.Contains(t, out, "[DATASET METADATA]")
	assert.Contains(t, out, "File: people.csv")
	assert.Contains(t, out, "Columns: 8 (3 numeric, 5 categorical)")
	assert.Contains(t, out, "- notes: string/categorical (nulls 8, 80.0%")

	hs := f.Markdown()
	assert.Contains(t, hs, "[HEURISTICS]")
	assert.Contains(t, hs, "- row_null: income, age (2 rows affected)")
	assert.Contains(t, hs, "- unary: country")

	var buf bytes.Buffer
	md.WriteTable(&buf)
	assert.Contains(t, buf.String(), "member")
	buf.Reset()
	f.WriteTable(&buf)
	assert.Contains(t, buf.String(), "low_cardinality")
	assert.Contains(t, buf.String(), "<= 20")
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.5 KiB", humanBytes(1536))
	assert.Equal(t, "2.0 MiB", humanBytes(2*1024*1024))
}
