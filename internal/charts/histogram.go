package charts

import (
	"math"

	"chartlab/domain/chart"
	"chartlab/domain/dataset"
	"chartlab/internal/format"

	"gonum.org/v1/gonum/floats"
)

// HistogramBins is the fixed number of equal-width bins
const HistogramBins = 10

// histogram buckets the numeric values of column y into HistogramBins bins
// spanning [min, max]. A column without numeric values yields no bins.
func histogram(ds dataset.Dataset, y string) []chart.Record {
	values := make([]float64, 0, ds.Len())
	for _, row := range ds.Rows {
		if f, ok := row.Get(y).Float(); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return nil
	}

	lo := floats.Min(values)
	hi := floats.Max(values)
	binSize := (hi - lo) / HistogramBins
	if math.IsInf(binSize, 0) {
		binSize = hi/HistogramBins - lo/HistogramBins
	}

	counts := make([]int, HistogramBins)
	for _, v := range values {
		counts[binIndex(v, lo, binSize)]++
	}

	records := make([]chart.Record, HistogramBins)
	for i, n := range counts {
		start := binEdge(i, lo, hi, binSize)
		end := binEdge(i+1, lo, hi, binSize)
		records[i] = chart.HistogramBin{
			Range: format.Fixed(start, 1) + "-" + format.Fixed(end, 1),
			Count: n,
		}
	}
	return records
}

// binIndex places v in [0, HistogramBins-1]. The maximum lands in the last
// bin; a zero-width range puts everything in bin 0.
func binIndex(v, lo, binSize float64) int {
	if binSize == 0 {
		return 0
	}
	pos := (v - lo) / binSize
	if math.IsInf(v-lo, 0) {
		pos = (v/2 - lo/2) / (binSize / 2)
	}
	if math.IsNaN(pos) || pos < 0 {
		return 0
	}
	if pos >= HistogramBins {
		return HistogramBins - 1
	}
	return int(math.Floor(pos))
}

// binEdge returns lo + i*binSize, interpolating between lo and hi when the
// product overflows
func binEdge(i int, lo, hi, binSize float64) float64 {
	edge := lo + float64(i)*binSize
	if !math.IsInf(edge, 0) {
		return edge
	}
	t := float64(i) / HistogramBins
	return lo*(1-t) + hi*t
}
