package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

// Markdown renders a compact metadata summary suitable for docs or prompts.
func (m *Metadata) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET METADATA]\n")
	if m.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", m.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", m.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d (%d numeric, %d categorical)\n",
		len(m.Columns), kindCount(m, dataset.KindNumeric), kindCount(m, dataset.KindCategorical)))
	b.WriteString(fmt.Sprintf("Memory: %s\n\n", humanBytes(m.MemoryBytes())))

	b.WriteString("[COLUMNS]\n")
	for _, c := range m.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s/%s (nulls %d, %.1f%%; unique %d; memory %s)",
			safeName(c.Name), c.DType, c.Kind, c.Nulls, c.NullPct, c.Unique, humanBytes(c.MemoryBytes)))
		switch {
		case c.Numeric != nil:
			n := c.Numeric
			b.WriteString(fmt.Sprintf(" — mean %.4g, std %.4g, min %.4g, 25%% %.4g, median %.4g, 75%% %.4g, max %.4g",
				n.Mean, n.Std, n.Min, n.Q25, n.Median, n.Q75, n.Max))
		case c.Categorical != nil:
			b.WriteString(fmt.Sprintf(" — top %s (%d)", safeVal(c.Categorical.Top), c.Categorical.Freq))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// MemoryBytes sums the footprint of every column.
func (m *Metadata) MemoryBytes() int64 {
	var total int64
	for _, c := range m.Columns {
		total += c.MemoryBytes
	}
	return total
}

// WriteTable renders the metadata as a describe-style terminal table.
func (m *Metadata) WriteTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"column", "dtype", "memory", "rows", "nulls", "null %", "count", "unique",
		"top", "freq", "mean", "std", "min", "25%", "50%", "75%", "max"})
	for _, c := range m.Columns {
		row := table.Row{c.Name, string(c.DType), c.MemoryBytes, c.Rows, c.Nulls, fmt.Sprintf("%.2f", c.NullPct), c.Count, c.Unique}
		if c.Categorical != nil {
			row = append(row, c.Categorical.Top, c.Categorical.Freq)
		} else {
			row = append(row, "", "")
		}
		if n := c.Numeric; n != nil {
			for _, v := range []float64{n.Mean, n.Std, n.Min, n.Q25, n.Median, n.Q75, n.Max} {
				row = append(row, fmt.Sprintf("%.4g", v))
			}
		} else {
			row = append(row, "", "", "", "", "", "", "")
		}
		t.AppendRow(row)
	}
	t.Render()
}

// Markdown renders every heuristic, listing matches or the not-found message.
func (f *Findings) Markdown() string {
	var b strings.Builder
	b.WriteString("[HEURISTICS]\n")
	for _, s := range f.Selections() {
		b.WriteString(fmt.Sprintf("- %s: ", s.Heuristic))
		if s.NotFound {
			b.WriteString(s.Message)
			b.WriteString("\n")
			continue
		}
		b.WriteString(strings.Join(s.Columns, ", "))
		if s.Heuristic == RowNull {
			b.WriteString(fmt.Sprintf(" (%d rows affected)", s.AffectedRows))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteTable renders one row per heuristic.
func (f *Findings) WriteTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"heuristic", "threshold", "columns"})
	for _, s := range f.Selections() {
		cols := strings.Join(s.Columns, ", ")
		if s.NotFound {
			cols = "(" + s.Message + ")"
		}
		t.AppendRow(table.Row{string(s.Heuristic), thresholdLabel(s), cols})
	}
	t.Render()
}

// Markdown lists the strongest pairs by |r|.
func (c *CorrMatrix) Markdown(limit int) string {
	type pair struct {
		A, B string
		R    float64
	}
	var pairs []pair
	for i := range c.Columns {
		for j := i + 1; j < len(c.Columns); j++ {
			pairs = append(pairs, pair{c.Columns[i], c.Columns[j], c.Values[i][j]})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return math.Abs(pairs[i].R) > math.Abs(pairs[j].R) })
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	var b strings.Builder
	b.WriteString("[CORRELATIONS]\n")
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
	}
	return b.String()
}

func thresholdLabel(s Selection) string {
	switch s.Heuristic {
	case Identifier, HighNull, RowNull:
		return fmt.Sprintf("%g%%", s.Threshold)
	case LowCardinality:
		return fmt.Sprintf("<= %g", s.Threshold)
	default:
		return fmt.Sprintf("== %g", s.Threshold)
	}
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

func kindCount(m *Metadata, k dataset.Kind) int {
	n := 0
	for _, c := range m.Columns {
		if c.Kind == k {
			n++
		}
	}
	return n
}
