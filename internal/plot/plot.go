// Package plot renders dataset charts to image files with gonum/plot. The
// output format (png, svg, pdf, jpg, eps, tif) follows the file extension.
package plot

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/KaramelBytes/edakit/internal/dataset"
	"github.com/KaramelBytes/edakit/internal/utils"
)

var (
	// ErrKind is returned when a column has the wrong kind for the chart.
	ErrKind = errors.New("column kind not supported by this chart")
	// ErrNoValues is returned when a column has nothing to draw.
	ErrNoValues = errors.New("column has no non-null values")
)

// Options controls figure size and histogram binning.
type Options struct {
	Width  vg.Length
	Height vg.Length
	Bins   int
}

// DefaultOptions returns a 16x12 cm figure with 10 histogram bins.
func DefaultOptions() Options {
	return Options{Width: 16 * vg.Centimeter, Height: 12 * vg.Centimeter, Bins: 10}
}

// Heatmap draws a correlation matrix, first column at the top left.
func Heatmap(corr *analysis.CorrMatrix, path string, opt Options) error {
	if corr == nil || len(corr.Columns) == 0 {
		return analysis.ErrTooFewNumeric
	}
	p := plot.New()
	p.Title.Text = "Correlation"
	h := plotter.NewHeatMap(corrGrid{corr}, palette.Heat(12, 1))
	h.Min, h.Max = -1, 1
	p.Add(h)
	n := len(corr.Columns)
	rev := make([]string, n)
	for i, c := range corr.Columns {
		rev[n-1-i] = c
	}
	p.NominalX(corr.Columns...)
	p.NominalY(rev...)
	return save(p, path, opt)
}

// Histogram draws the distribution of a numeric column.
func Histogram(ds *dataset.Dataset, column string, path string, opt Options) error {
	s, err := ds.Column(column)
	if err != nil {
		return err
	}
	if dataset.KindOf(s.Type()) != dataset.KindNumeric {
		return fmt.Errorf("%w: histogram needs a numeric column, %s is %s", ErrKind, column, s.Type())
	}
	var vals plotter.Values
	nulls := s.IsNaN()
	for i, v := range s.Float() {
		if !nulls[i] {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return fmt.Errorf("%w: %s", ErrNoValues, column)
	}
	bins := opt.Bins
	if bins <= 0 {
		bins = 10
	}
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return fmt.Errorf("histogram %s: %w", column, err)
	}
	p := plot.New()
	p.Title.Text = column
	p.X.Label.Text = column
	p.Y.Label.Text = "count"
	p.Add(h)
	return save(p, path, opt)
}

// CountPlot draws one bar per category of a categorical column, most frequent first.
func CountPlot(ds *dataset.Dataset, column string, path string, opt Options) error {
	s, err := ds.Column(column)
	if err != nil {
		return err
	}
	if dataset.KindOf(s.Type()) != dataset.KindCategorical {
		return fmt.Errorf("%w: count plot needs a categorical column, %s is %s", ErrKind, column, s.Type())
	}
	counts := map[string]int{}
	var order []string
	for i := 0; i < s.Len(); i++ {
		v, ok := dataset.CellString(s, i)
		if !ok {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return fmt.Errorf("%w: %s", ErrNoValues, column)
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	vals := make(plotter.Values, len(order))
	for i, k := range order {
		vals[i] = float64(counts[k])
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return fmt.Errorf("count plot %s: %w", column, err)
	}
	p := plot.New()
	p.Title.Text = column
	p.Y.Label.Text = "count"
	p.Add(bars)
	p.NominalX(order...)
	return save(p, path, opt)
}

func save(p *plot.Plot, path string, opt Options) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "svg", "pdf", "jpg", "jpeg", "eps", "tif", "tiff":
	default:
		return fmt.Errorf("unsupported image format %q (use png, svg or pdf)", filepath.Ext(path))
	}
	w, h := opt.Width, opt.Height
	if w <= 0 || h <= 0 {
		d := DefaultOptions()
		w, h = d.Width, d.Height
	}
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ with row 0 on top.
type corrGrid struct{ m *analysis.CorrMatrix }

func (g corrGrid) Dims() (c, r int) { return len(g.m.Columns), len(g.m.Columns) }

func (g corrGrid) Z(c, r int) float64 { return g.m.Values[len(g.m.Columns)-1-r][c] }

func (g corrGrid) X(c int) float64 { return float64(c) }

func (g corrGrid) Y(r int) float64 { return float64(r) }
