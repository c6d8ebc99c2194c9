package profiling

import (
	"chartlab/domain/dataset"

	"github.com/montanaflynn/stats"
)

// NumericThreshold is the share of non-empty values that must coerce to a
// number before a column is treated as numeric. The comparison is strict.
const NumericThreshold = 0.8

// ColumnScan holds the raw counts gathered from one column
type ColumnScan struct {
	NonEmpty     int
	MissingCount int
	Numbers      []float64
	Distinct     int
}

// ScanColumn walks a column once, dropping missing and empty-text cells,
// collecting coerced numbers and counting distinct raw values.
func ScanColumn(values []dataset.Value) ColumnScan {
	scan := ColumnScan{}
	distinct := make(map[dataset.Value]struct{})

	for _, v := range values {
		if v.IsEmpty() {
			scan.MissingCount++
			continue
		}
		scan.NonEmpty++
		distinct[v] = struct{}{}
		if f, ok := v.Float(); ok {
			scan.Numbers = append(scan.Numbers, f)
		}
	}

	scan.Distinct = len(distinct)
	return scan
}

// IsNumeric applies the dominance rule to the scan
func (s ColumnScan) IsNumeric() bool {
	if s.NonEmpty == 0 {
		return false
	}
	return float64(len(s.Numbers)) > NumericThreshold*float64(s.NonEmpty)
}

// ClassifyColumn infers whether a column is numeric or categorical and computes
// the stats for that kind. It never fails: a column with no usable values is
// categorical with zero unique values.
func ClassifyColumn(name string, values []dataset.Value) dataset.ColumnProfile {
	scan := ScanColumn(values)
	profile := dataset.ColumnProfile{
		Name:         name,
		MissingCount: scan.MissingCount,
	}

	if scan.IsNumeric() {
		profile.Kind = dataset.ColumnNumeric
		profile.Numeric = numericStats(scan.Numbers)
		return profile
	}

	profile.Kind = dataset.ColumnCategorical
	profile.Categorical = &dataset.CategoricalStats{UniqueCount: scan.Distinct}
	return profile
}

// numericStats is only called with a non-empty slice, so the stats errors
// (all of which report empty input) cannot occur.
func numericStats(numbers []float64) *dataset.NumericStats {
	data := stats.Float64Data(numbers)
	min, _ := data.Min()
	max, _ := data.Max()
	avg, _ := data.Mean()
	return &dataset.NumericStats{Min: min, Max: max, Avg: avg}
}
