package profiling

import (
	"chartlab/domain/dataset"
)

// Analyze profiles every column of ds in header order. It returns nil for a
// dataset without rows.
func Analyze(ds dataset.Dataset) *dataset.Report {
	if ds.IsEmpty() {
		return nil
	}

	headers := ds.ColumnNames()
	report := &dataset.Report{
		RowCount:    ds.Len(),
		ColumnCount: len(headers),
		Columns:     make([]dataset.ColumnProfile, 0, len(headers)),
	}

	for _, header := range headers {
		report.Columns = append(report.Columns, ClassifyColumn(header, ds.Column(header)))
	}

	return report
}
