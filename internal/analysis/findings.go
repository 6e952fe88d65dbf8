package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/edakit/internal/dataset"
)

// Findings collects every heuristic run over one metadata pass.
type Findings struct {
	Thresholds     Thresholds `json:"thresholds"`
	Identifier     Selection  `json:"identifier"`
	HighNull       Selection  `json:"high_null"`
	RowNull        Selection  `json:"row_null"`
	Unary          Selection  `json:"unary"`
	Binary         Selection  `json:"binary"`
	LowCardinality Selection  `json:"low_cardinality"`
}

// Selections returns the findings in a fixed display order.
func (f *Findings) Selections() []Selection {
	return []Selection{f.Identifier, f.HighNull, f.RowNull, f.Unary, f.Binary, f.LowCardinality}
}

// Classify runs all heuristics against ds using a single metadata pass.
func Classify(ds *dataset.Dataset, th Thresholds) (*Metadata, *Findings, error) {
	if err := th.Validate(); err != nil {
		return nil, nil, err
	}
	md, err := BuildMetadata(ds)
	if err != nil {
		return nil, nil, err
	}
	f := &Findings{Thresholds: th}
	steps := []struct {
		dst *Selection
		run func() (Selection, error)
	}{
		{&f.Identifier, func() (Selection, error) { return identifierColumns(ds, md, th.IdentifierPct) }},
		{&f.HighNull, func() (Selection, error) { return highNullColumns(ds, md, th.HighNullPct) }},
		{&f.RowNull, func() (Selection, error) { return rowNullColumns(ds, md, th.RowNullPct) }},
		{&f.Unary, func() (Selection, error) { return unaryColumns(ds, md) }},
		{&f.Binary, func() (Selection, error) { return binaryColumns(ds, md, th.BinaryCategoricalOnly) }},
		{&f.LowCardinality, func() (Selection, error) { return lowCardinalityColumns(ds, md, th.LowCardinalityMax) }},
	}
	for _, s := range steps {
		sel, err := s.run()
		if err != nil {
			return nil, nil, err
		}
		*s.dst = sel
	}
	return md, f, nil
}

// Report bundles metadata and findings for export. Each report gets its own run id.
type Report struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Metadata  *Metadata `json:"metadata"`
	Findings  *Findings `json:"findings,omitempty"`
}

// NewReport builds metadata and findings for ds.
func NewReport(ds *dataset.Dataset, th Thresholds) (*Report, error) {
	md, f, err := Classify(ds, th)
	if err != nil {
		return nil, err
	}
	return &Report{RunID: uuid.NewString(), CreatedAt: time.Now().UTC(), Metadata: md, Findings: f}, nil
}
