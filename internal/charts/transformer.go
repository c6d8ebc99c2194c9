// Package charts turns a dataset and a chart spec into renderer-ready records.
package charts

import (
	"chartlab/domain/chart"
	"chartlab/domain/dataset"
	"chartlab/internal/profiling"
)

// Result is the output of Prepare. Supported is false for chart kinds the
// transformer does not know, in which case Records is empty.
type Result struct {
	Kind      chart.Kind     `json:"kind"`
	Records   []chart.Record `json:"records"`
	Supported bool           `json:"supported"`
}

// Prepare converts rows into the record shape the renderer needs for spec.Type.
// It reads ds without modifying it and never fails.
func Prepare(ds dataset.Dataset, spec chart.Spec) Result {
	result := Result{Kind: spec.Type, Supported: true}

	switch spec.Type {
	case chart.KindPie:
		result.Records = groupCounts(ds, spec.XColumn)
	case chart.KindBar, chart.KindLine, chart.KindArea, chart.KindScatter:
		result.Records = series(ds, spec.XColumn, spec.YColumn)
	case chart.KindHistogram:
		result.Records = histogram(ds, spec.YColumn)
	case chart.KindTreemap:
		result.Records = treemap(ds, spec.XColumn, spec.YColumn)
	default:
		result.Supported = false
	}

	if result.Records == nil {
		result.Records = []chart.Record{}
	}
	return result
}

// groupCounts counts rows per x category in first-seen order. Categories are
// keyed by display string, so Number(3) and Text("3") share a slice.
func groupCounts(ds dataset.Dataset, x string) []chart.Record {
	counts := newOrderedTally[int]()
	for _, row := range ds.Rows {
		v := row.Get(x)
		if v.IsMissing() {
			continue
		}
		counts.Add(v.String(), 1)
	}

	records := make([]chart.Record, 0, counts.Len())
	counts.Each(func(name string, n int) {
		records = append(records, chart.CategoryCount{Name: name, Value: n})
	})
	return records
}

// series emits one point per row with a present x and a numeric y. When the y
// column holds no numeric values at all the chart degrades to grouped counts
// on x.
func series(ds dataset.Dataset, x, y string) []chart.Record {
	if yIsCategorical(ds, y) {
		return groupCounts(ds, x)
	}

	records := make([]chart.Record, 0, ds.Len())
	for _, row := range ds.Rows {
		xv := row.Get(x)
		if xv.IsMissing() {
			continue
		}
		yv, ok := row.Get(y).Float()
		if !ok {
			continue
		}
		records = append(records, chart.SeriesPoint{X: xv, Y: yv})
	}
	return records
}

// yIsCategorical decides the fallback for series charts. Only a y column
// without a single coercible value falls back; a mostly-numeric column with a
// few bad cells still plots, dropping those rows.
func yIsCategorical(ds dataset.Dataset, y string) bool {
	scan := profiling.ScanColumn(ds.Column(y))
	return scan.NonEmpty > 0 && len(scan.Numbers) == 0
}

// treemap sums y per x category. Rows with an empty category or a
// non-numeric y are skipped.
func treemap(ds dataset.Dataset, x, y string) []chart.Record {
	sums := newOrderedTally[float64]()
	for _, row := range ds.Rows {
		name := row.Get(x)
		if name.IsEmpty() {
			continue
		}
		size, ok := row.Get(y).Float()
		if !ok {
			continue
		}
		sums.Add(name.String(), size)
	}

	records := make([]chart.Record, 0, sums.Len())
	sums.Each(func(name string, size float64) {
		records = append(records, chart.TreemapNode{Name: name, Size: size})
	})
	return records
}
